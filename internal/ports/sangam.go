package ports

import (
	"context"

	"github.com/Esangam/Esangam-UI/internal/domain/model"
	"golang.org/x/oauth2"
)

// PlatformAPI covers the platform-admin endpoints.
type PlatformAPI interface {
	ListSocieties(ctx context.Context, ts oauth2.TokenSource) ([]model.Society, error)
	CreateSociety(ctx context.Context, ts oauth2.TokenSource, req model.CreateSocietyRequest) error
	// BootstrapAdmin is unauthenticated; it only succeeds while no platform admin exists.
	BootstrapAdmin(ctx context.Context, req model.BootstrapAdminRequest) (model.BootstrapAdminResponse, error)
}

// SocietyAdminAPI covers the society-admin endpoints.
type SocietyAdminAPI interface {
	Dashboard(ctx context.Context, ts oauth2.TokenSource) (model.AdminDashboard, error)
	CreateMember(ctx context.Context, ts oauth2.TokenSource, req model.CreateMemberRequest) error
	ApproveLoan(ctx context.Context, ts oauth2.TokenSource, d model.LoanDecision) error
	RejectLoan(ctx context.Context, ts oauth2.TokenSource, d model.LoanDecision) error
	UpdateInterest(ctx context.Context, ts oauth2.TokenSource, rate model.InterestRate) error
	PostAnnouncement(ctx context.Context, ts oauth2.TokenSource, req model.PostAnnouncementRequest) error
}

// MemberAPI covers the member endpoints.
type MemberAPI interface {
	MyLoans(ctx context.Context, ts oauth2.TokenSource) ([]model.Loan, error)
	Announcements(ctx context.Context, ts oauth2.TokenSource) ([]model.Announcement, error)
	CurrentInterest(ctx context.Context, ts oauth2.TokenSource) (model.InterestRate, error)
	RequestLoan(ctx context.Context, ts oauth2.TokenSource, req model.LoanRequest) error
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/Esangam/Esangam-UI/internal/errors"
	"github.com/Esangam/Esangam-UI/internal/domain/model"
	"github.com/Esangam/Esangam-UI/internal/ports"
)

// Messages shown to users for form outcomes.
const (
	MsgBootstrapMissing  = "Please enter mobile number and password"
	MsgBootstrapMismatch = "Passwords do not match"
	MsgBootstrapCreated  = "ES_ADMIN created successfully. You can now login."
	MsgBootstrapFailed   = "Failed to initialize ES_ADMIN (maybe already exists?)"

	MsgSocietiesLoadFailed = "Failed to load societies"
	MsgSocietyMissing      = "Please fill all required fields"
	MsgSocietyCreated      = "Society and Admin created"
	MsgSocietyFailed       = "Failed to create society/admin"

	MsgDashboardFailed     = "Failed to load dashboard"
	MsgMemberFailed        = "Failed to create member"
	MsgApproveFailed       = "Failed to approve loan"
	MsgRejectFailed        = "Failed to reject loan"
	MsgInterestFailed      = "Failed to update interest"
	MsgAnnouncementFailed  = "Failed to post announcement"
	MsgMemberDashFailed    = "Failed to load member dashboard"
	MsgLoanAmountInvalid   = "Please enter a valid loan amount greater than 0"
	MsgLoanRequested       = "Loan request submitted successfully."
	MsgLoanRequestFailed   = "Failed to request loan. Please try again."
	MsgLoginFailed         = "Login failed. Please check your mobile and password."
	MsgMemberCreated       = "Member created"
	MsgLoanApproved        = "Loan approved"
	MsgLoanRejected        = "Loan rejected"
	MsgInterestUpdated     = "Interest updated"
	MsgAnnouncementPosted  = "Announcement posted"
	MsgMemberFieldsMissing = "Mobile, first name and password are required"
)

// Slice names reported in MemberDashboard.Failed.
const (
	SliceLoans         = "loans"
	SliceAnnouncements = "announcements"
	SliceInterest      = "interest"
)

// PlatformServiceOptions groups dependencies for PlatformService.
type PlatformServiceOptions struct {
	API    ports.PlatformAPI
	Logger *slog.Logger
}

// PlatformService backs the platform admin pages and the bootstrap form.
type PlatformService struct {
	api    ports.PlatformAPI
	logger *slog.Logger
}

// NewPlatformService constructs a new PlatformService.
func NewPlatformService(opts PlatformServiceOptions) *PlatformService {
	if opts.API == nil {
		panic("PlatformAPI is required")
	}
	return &PlatformService{api: opts.API, logger: loggerOrDefault(opts.Logger)}
}

// Societies lists every society on the platform.
func (s *PlatformService) Societies(ctx context.Context, ts oauth2.TokenSource) ([]model.Society, error) {
	societies, err := s.api.ListSocieties(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("list societies: %w", err)
	}
	return societies, nil
}

// CreateSociety creates a society and its first admin.
func (s *PlatformService) CreateSociety(ctx context.Context, ts oauth2.TokenSource, req model.CreateSocietyRequest) error {
	req.SocietyName = strings.TrimSpace(req.SocietyName)
	req.Description = strings.TrimSpace(req.Description)
	req.AdminMobile = strings.TrimSpace(req.AdminMobile)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if err := req.Validate(); err != nil {
		return apperrors.Validation(MsgSocietyMissing)
	}
	if err := s.api.CreateSociety(ctx, ts, req); err != nil {
		return fmt.Errorf("create society: %w", err)
	}
	return nil
}

// BootstrapAdmin creates the first platform admin. It never sends a credential.
// The returned string is the confirmation to show on success.
func (s *PlatformService) BootstrapAdmin(ctx context.Context, mobile, password, confirm string) (string, error) {
	mobile = strings.TrimSpace(mobile)
	if mobile == "" || password == "" {
		return "", apperrors.Validation(MsgBootstrapMissing)
	}
	if password != confirm {
		return "", apperrors.Validation(MsgBootstrapMismatch)
	}
	resp, err := s.api.BootstrapAdmin(ctx, model.BootstrapAdminRequest{MobileNumber: mobile, Password: password})
	if err != nil {
		return "", fmt.Errorf("bootstrap admin: %w", err)
	}
	if resp.Message != "" {
		return resp.Message, nil
	}
	return MsgBootstrapCreated, nil
}

// SocietyAdminServiceOptions groups dependencies for SocietyAdminService.
type SocietyAdminServiceOptions struct {
	API    ports.SocietyAdminAPI
	Logger *slog.Logger
}

// SocietyAdminService backs the society admin dashboard and its forms.
type SocietyAdminService struct {
	api    ports.SocietyAdminAPI
	logger *slog.Logger
}

// NewSocietyAdminService constructs a new SocietyAdminService.
func NewSocietyAdminService(opts SocietyAdminServiceOptions) *SocietyAdminService {
	if opts.API == nil {
		panic("SocietyAdminAPI is required")
	}
	return &SocietyAdminService{api: opts.API, logger: loggerOrDefault(opts.Logger)}
}

// Dashboard loads the admin dashboard in a single request.
func (s *SocietyAdminService) Dashboard(ctx context.Context, ts oauth2.TokenSource) (model.AdminDashboard, error) {
	d, err := s.api.Dashboard(ctx, ts)
	if err != nil {
		return model.AdminDashboard{}, fmt.Errorf("load admin dashboard: %w", err)
	}
	return d, nil
}

// CreateMember adds a member to the admin's society.
func (s *SocietyAdminService) CreateMember(ctx context.Context, ts oauth2.TokenSource, req model.CreateMemberRequest) error {
	req.Mobile = strings.TrimSpace(req.Mobile)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if err := req.Validate(); err != nil {
		return apperrors.Validation(MsgMemberFieldsMissing)
	}
	if err := s.api.CreateMember(ctx, ts, req); err != nil {
		return fmt.Errorf("create member: %w", err)
	}
	return nil
}

// ApproveLoan approves a requested loan.
func (s *SocietyAdminService) ApproveLoan(ctx context.Context, ts oauth2.TokenSource, loanID int64) error {
	if err := s.api.ApproveLoan(ctx, ts, model.LoanDecision{LoanID: loanID}); err != nil {
		return fmt.Errorf("approve loan %d: %w", loanID, err)
	}
	return nil
}

// RejectLoan rejects a requested loan.
func (s *SocietyAdminService) RejectLoan(ctx context.Context, ts oauth2.TokenSource, loanID int64) error {
	if err := s.api.RejectLoan(ctx, ts, model.LoanDecision{LoanID: loanID}); err != nil {
		return fmt.Errorf("reject loan %d: %w", loanID, err)
	}
	return nil
}

// UpdateInterest parses form values and updates the society rates.
func (s *SocietyAdminService) UpdateInterest(ctx context.Context, ts oauth2.TokenSource, base, overdue string) error {
	rate, err := model.ParseInterestRate(base, overdue)
	if err != nil {
		return apperrors.Validation(err.Error())
	}
	if err := s.api.UpdateInterest(ctx, ts, rate); err != nil {
		return fmt.Errorf("update interest: %w", err)
	}
	return nil
}

// PostAnnouncement publishes an announcement to the society.
func (s *SocietyAdminService) PostAnnouncement(ctx context.Context, ts oauth2.TokenSource, title, message string) error {
	req := model.PostAnnouncementRequest{Title: strings.TrimSpace(title), Message: strings.TrimSpace(message)}
	if err := req.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	if err := s.api.PostAnnouncement(ctx, ts, req); err != nil {
		return fmt.Errorf("post announcement: %w", err)
	}
	return nil
}

// MemberServiceOptions groups dependencies for MemberService.
type MemberServiceOptions struct {
	API    ports.MemberAPI
	Logger *slog.Logger
}

// MemberService backs the member dashboard.
type MemberService struct {
	api    ports.MemberAPI
	logger *slog.Logger
}

// NewMemberService constructs a new MemberService.
func NewMemberService(opts MemberServiceOptions) *MemberService {
	if opts.API == nil {
		panic("MemberAPI is required")
	}
	return &MemberService{api: opts.API, logger: loggerOrDefault(opts.Logger)}
}

// Dashboard runs the three member reads concurrently. A failed read is logged and
// its slice left empty; the dashboard itself never fails.
func (s *MemberService) Dashboard(ctx context.Context, ts oauth2.TokenSource) model.MemberDashboard {
	var (
		loans         []model.Loan
		announcements []model.Announcement
		interest      model.InterestRate
		loansErr      error
		annErr        error
		interestErr   error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loans, loansErr = s.api.MyLoans(gctx, ts)
		return nil
	})
	g.Go(func() error {
		announcements, annErr = s.api.Announcements(gctx, ts)
		return nil
	})
	g.Go(func() error {
		interest, interestErr = s.api.CurrentInterest(gctx, ts)
		return nil
	})
	_ = g.Wait()

	d := model.MemberDashboard{Loans: []model.Loan{}, Announcements: []model.Announcement{}}
	if loansErr != nil {
		s.partialFailure(ctx, SliceLoans, loansErr, &d)
	} else if loans != nil {
		d.Loans = loans
	}
	if annErr != nil {
		s.partialFailure(ctx, SliceAnnouncements, annErr, &d)
	} else if announcements != nil {
		d.Announcements = announcements
	}
	if interestErr != nil {
		s.partialFailure(ctx, SliceInterest, interestErr, &d)
	} else {
		d.Interest = interest
	}
	return d
}

func (s *MemberService) partialFailure(ctx context.Context, slice string, err error, d *model.MemberDashboard) {
	s.logger.WarnContext(ctx, "member dashboard read failed", "slice", slice, "error", err)
	d.Failed = append(d.Failed, slice)
}

// RequestLoan parses the form amount and submits a loan request.
func (s *MemberService) RequestLoan(ctx context.Context, ts oauth2.TokenSource, amount string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	req := model.LoanRequest{Amount: v}
	if err != nil || req.Validate() != nil {
		return apperrors.Validation(MsgLoanAmountInvalid)
	}
	if err := s.api.RequestLoan(ctx, ts, req); err != nil {
		return fmt.Errorf("request loan: %w", err)
	}
	return nil
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

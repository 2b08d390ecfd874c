package backend

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/Esangam/Esangam-UI/internal/domain/model"
	apperrors "github.com/Esangam/Esangam-UI/internal/errors"
)

// getJSON performs an authenticated GET and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, ts oauth2.TokenSource, path, name string, out any) error {
	req, err := c.newRequest(ctx, ts, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	return c.do(req, name, out)
}

// postJSON performs an authenticated POST and ignores the response body.
func (c *Client) postJSON(ctx context.Context, ts oauth2.TokenSource, path, name string, body any) error {
	req, err := c.newRequest(ctx, ts, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	return c.do(req, name, nil)
}

// ListSocieties returns GET /society/all. Rows that fail validation are dropped.
func (c *Client) ListSocieties(ctx context.Context, ts oauth2.TokenSource) ([]model.Society, error) {
	var rows []model.Society
	if err := c.getJSON(ctx, ts, "/society/all", "society_all", &rows); err != nil {
		return nil, err
	}
	out := make([]model.Society, 0, len(rows))
	for _, s := range rows {
		if err := s.Validate(); err != nil {
			c.logger.Warn("dropping invalid society row", "id", s.ID, "error", err)
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// CreateSociety creates a society together with its first admin.
func (c *Client) CreateSociety(ctx context.Context, ts oauth2.TokenSource, in model.CreateSocietyRequest) error {
	if err := in.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	return c.postJSON(ctx, ts, "/society/create", "society_create", in)
}

// Dashboard returns the society-admin dashboard.
func (c *Client) Dashboard(ctx context.Context, ts oauth2.TokenSource) (model.AdminDashboard, error) {
	var d model.AdminDashboard
	if err := c.getJSON(ctx, ts, "/dashboard", "dashboard", &d); err != nil {
		return model.AdminDashboard{}, err
	}
	d.Normalize()
	d.Loans = c.validLoans(d.Loans)
	return d, nil
}

// CreateMember adds a member to the admin's society.
func (c *Client) CreateMember(ctx context.Context, ts oauth2.TokenSource, in model.CreateMemberRequest) error {
	if err := in.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	return c.postJSON(ctx, ts, "/member/create", "member_create", in)
}

// ApproveLoan approves a REQUESTED loan.
func (c *Client) ApproveLoan(ctx context.Context, ts oauth2.TokenSource, d model.LoanDecision) error {
	if err := d.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	return c.postJSON(ctx, ts, "/loan/approve", "loan_approve", d)
}

// RejectLoan rejects a REQUESTED loan.
func (c *Client) RejectLoan(ctx context.Context, ts oauth2.TokenSource, d model.LoanDecision) error {
	if err := d.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	return c.postJSON(ctx, ts, "/loan/reject", "loan_reject", d)
}

// UpdateInterest sets the society's base and overdue rates.
func (c *Client) UpdateInterest(ctx context.Context, ts oauth2.TokenSource, rate model.InterestRate) error {
	if err := rate.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	return c.postJSON(ctx, ts, "/interest/update", "interest_update", rate)
}

// PostAnnouncement publishes a society-wide announcement.
func (c *Client) PostAnnouncement(
	ctx context.Context,
	ts oauth2.TokenSource,
	in model.PostAnnouncementRequest,
) error {
	if err := in.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	return c.postJSON(ctx, ts, "/announcement/post", "announcement_post", in)
}

// MyLoans returns the member's loans in backend order.
func (c *Client) MyLoans(ctx context.Context, ts oauth2.TokenSource) ([]model.Loan, error) {
	var rows []model.Loan
	if err := c.getJSON(ctx, ts, "/loan/my", "loan_my", &rows); err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Normalize()
	}
	return c.validLoans(rows), nil
}

// Announcements returns the society's announcements.
func (c *Client) Announcements(ctx context.Context, ts oauth2.TokenSource) ([]model.Announcement, error) {
	var rows []model.Announcement
	if err := c.getJSON(ctx, ts, "/announcement/list", "announcement_list", &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.Announcement{}
	}
	return rows, nil
}

// CurrentInterest returns the society's current rates.
func (c *Client) CurrentInterest(ctx context.Context, ts oauth2.TokenSource) (model.InterestRate, error) {
	var rate model.InterestRate
	if err := c.getJSON(ctx, ts, "/interest/current", "interest_current", &rate); err != nil {
		return model.InterestRate{}, err
	}
	if err := rate.Validate(); err != nil {
		return model.InterestRate{}, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "invalid interest payload")
	}
	return rate, nil
}

// RequestLoan submits a loan request for the current member.
func (c *Client) RequestLoan(ctx context.Context, ts oauth2.TokenSource, in model.LoanRequest) error {
	if err := in.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	return c.postJSON(ctx, ts, "/loan/request", "loan_request", in)
}

func (c *Client) validLoans(rows []model.Loan) []model.Loan {
	out := make([]model.Loan, 0, len(rows))
	for _, l := range rows {
		if err := l.Validate(); err != nil {
			c.logger.Warn("dropping invalid loan row", "id", l.ID, "error", err)
			continue
		}
		out = append(out, l)
	}
	return out
}

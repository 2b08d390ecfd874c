package httpx

import (
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/Esangam/Esangam-UI/internal/errors"
	"github.com/Esangam/Esangam-UI/internal/domain/model"
	"github.com/Esangam/Esangam-UI/internal/http/ui/viewmodel"
	"github.com/Esangam/Esangam-UI/internal/service"
)

// Home renders the public landing page.
// GET /.
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{Title: "Esangam", PageTitle: "Welcome to Esangam", CurrentPage: PageHome}).Build()
	h.renderPage(w, r, data)
}

// Loading renders the placeholder shown while a browser's session is being restored.
// The page re-requests itself until the guard lets it through.
func (h *UIHandlers) Loading(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{Title: "Esangam", PageTitle: "Loading...", CurrentPage: PageLoading}).
		With("RetryURL", safeRedirectPath(r.URL.RequestURI())).
		With("RetryAfter", int(loadingRetry/time.Second)).
		Build()
	h.renderPage(w, r, data)
}

// NotFound sends unknown paths home.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "message": "no such route"})
		return
	}
	redirectTo(w, r, "/")
}

// PlatformAdminPage lists societies and hosts the create-society form.
// GET /esadmin.
func (h *UIHandlers) PlatformAdminPage(w http.ResponseWriter, r *http.Request) {
	h.renderPlatformAdmin(w, r, "", nil)
}

func (h *UIHandlers) renderPlatformAdmin(w http.ResponseWriter, r *http.Request, formErr string, form map[string]string) {
	b := NewTemplateData(r, PageMeta{Title: "Esangam - Sangams", PageTitle: "Esangam Admin", CurrentPage: PagePlatformAdmin})
	societies, err := h.Platform.Societies(r.Context(), tokenSource(r))
	if err != nil {
		h.logger().WarnContext(r.Context(), "failed to load societies", "error", err)
		b.With("LoadError", service.MsgSocietiesLoadFailed)
		societies = []model.Society{}
	}
	b.With("Societies", societies).WithError(formErr)
	if form != nil {
		b.WithForm(form)
	}
	h.renderPage(w, r, b.Build())
}

// CreateSociety creates a society with its first admin.
// Validation failures re-render the form with the submitted values.
// POST /esadmin/societies.
func (h *UIHandlers) CreateSociety(w http.ResponseWriter, r *http.Request) {
	req := model.CreateSocietyRequest{
		SocietyName: r.PostFormValue("societyName"),
		Description: r.PostFormValue("description"),
		AdminMobile: r.PostFormValue("adminMobile"),
		FirstName:   r.PostFormValue("firstName"),
		LastName:    r.PostFormValue("lastName"),
		Password:    r.PostFormValue("password"),
	}
	err := h.Platform.CreateSociety(r.Context(), tokenSource(r), req)
	if err == nil {
		addFlash(w, r, FlashSuccess, service.MsgSocietyCreated)
		redirectTo(w, r, "/esadmin")
		return
	}

	msg := service.MsgSocietyFailed
	if apperrors.IsValidation(err) {
		msg = apperrors.UserMessage(err, service.MsgSocietyMissing)
	} else {
		h.logger().WarnContext(r.Context(), "create society failed", "error", err)
	}
	h.renderPlatformAdmin(w, r, msg, map[string]string{
		"societyName": req.SocietyName,
		"description": req.Description,
		"adminMobile": req.AdminMobile,
		"firstName":   req.FirstName,
		"lastName":    req.LastName,
	})
}

// SocietyAdminPage renders the society admin dashboard from a single backend read.
// GET /admin.
func (h *UIHandlers) SocietyAdminPage(w http.ResponseWriter, r *http.Request) {
	b := NewTemplateData(r, PageMeta{Title: "Esangam - Admin Dashboard", PageTitle: "Admin Dashboard", CurrentPage: PageSocietyAdmin})
	d, err := h.Society.Dashboard(r.Context(), tokenSource(r))
	if err != nil {
		h.logger().WarnContext(r.Context(), "failed to load admin dashboard", "error", err)
		h.renderPage(w, r, b.With("LoadError", service.MsgDashboardFailed).Build())
		return
	}
	h.renderPage(w, r, b.With("Dashboard", d).With("PendingLoans", d.PendingLoans()).Build())
}

// CreateMember adds a member to the admin's society.
// POST /admin/members.
func (h *UIHandlers) CreateMember(w http.ResponseWriter, r *http.Request) {
	err := h.Society.CreateMember(r.Context(), tokenSource(r), model.CreateMemberRequest{
		Mobile:    r.PostFormValue("mobile"),
		FirstName: r.PostFormValue("firstName"),
		LastName:  r.PostFormValue("lastName"),
		Password:  r.PostFormValue("password"),
	})
	h.finishMutation(w, r, mutationOutcome{Back: "/admin", Err: err, OK: service.MsgMemberCreated, Failed: service.MsgMemberFailed})
}

// ApproveLoan approves a REQUESTED loan.
// POST /admin/loans/{id}/approve.
func (h *UIHandlers) ApproveLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := loanIDFromPath(r)
	if !ok {
		h.finishMutation(w, r, mutationOutcome{Back: "/admin", Err: apperrors.Validation("Invalid loan id"), Failed: service.MsgApproveFailed})
		return
	}
	err := h.Society.ApproveLoan(r.Context(), tokenSource(r), id)
	h.finishMutation(w, r, mutationOutcome{Back: "/admin", Err: err, OK: service.MsgLoanApproved, Failed: service.MsgApproveFailed})
}

// RejectLoan rejects a REQUESTED loan.
// POST /admin/loans/{id}/reject.
func (h *UIHandlers) RejectLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := loanIDFromPath(r)
	if !ok {
		h.finishMutation(w, r, mutationOutcome{Back: "/admin", Err: apperrors.Validation("Invalid loan id"), Failed: service.MsgRejectFailed})
		return
	}
	err := h.Society.RejectLoan(r.Context(), tokenSource(r), id)
	h.finishMutation(w, r, mutationOutcome{Back: "/admin", Err: err, OK: service.MsgLoanRejected, Failed: service.MsgRejectFailed})
}

// UpdateInterest sets the society's base and overdue rates.
// POST /admin/interest.
func (h *UIHandlers) UpdateInterest(w http.ResponseWriter, r *http.Request) {
	err := h.Society.UpdateInterest(r.Context(), tokenSource(r), r.PostFormValue("baseRate"), r.PostFormValue("overdueRate"))
	h.finishMutation(w, r, mutationOutcome{Back: "/admin", Err: err, OK: service.MsgInterestUpdated, Failed: service.MsgInterestFailed})
}

// PostAnnouncement publishes a notice to the society.
// POST /admin/announcements.
func (h *UIHandlers) PostAnnouncement(w http.ResponseWriter, r *http.Request) {
	err := h.Society.PostAnnouncement(r.Context(), tokenSource(r), r.PostFormValue("title"), r.PostFormValue("message"))
	h.finishMutation(w, r, mutationOutcome{Back: "/admin", Err: err, OK: service.MsgAnnouncementPosted, Failed: service.MsgAnnouncementFailed})
}

// MemberPage renders the member dashboard. Failed reads leave their section empty.
// GET /member.
func (h *UIHandlers) MemberPage(w http.ResponseWriter, r *http.Request) {
	d := h.Members.Dashboard(r.Context(), tokenSource(r))
	societyName := ""
	if u, ok := CurrentUser(r.Context()); ok {
		societyName = u.SocietyName
	}
	data := NewTemplateData(r, PageMeta{Title: "Esangam - My Dashboard", PageTitle: "My Dashboard", CurrentPage: PageMember}).
		With("SocietyName", societyName).
		With("Stats", viewmodel.NewMemberStats(d)).
		With("Loans", viewmodel.NewMemberLoanRows(d, h.now())).
		With("Chart", d.Chart()).
		With("Announcements", d.Announcements).
		With("Failed", d.Failed).
		Build()
	h.renderPage(w, r, data)
}

// RequestLoan submits a loan request for the member.
// POST /member/loans.
func (h *UIHandlers) RequestLoan(w http.ResponseWriter, r *http.Request) {
	err := h.Members.RequestLoan(r.Context(), tokenSource(r), r.PostFormValue("amount"))
	h.finishMutation(w, r, mutationOutcome{Back: "/member", Err: err, OK: service.MsgLoanRequested, Failed: service.MsgLoanRequestFailed})
}

// mutationOutcome describes how a dashboard form post ended.
type mutationOutcome struct {
	Back   string
	Err    error
	OK     string
	Failed string
}

// finishMutation flashes the outcome and redirects back to the dashboard (post/redirect/get).
// Validation errors show their own message; anything else shows the fixed failure text.
func (h *UIHandlers) finishMutation(w http.ResponseWriter, r *http.Request, o mutationOutcome) {
	switch {
	case o.Err == nil:
		addFlash(w, r, FlashSuccess, o.OK)
	case apperrors.IsValidation(o.Err):
		addFlash(w, r, FlashError, apperrors.UserMessage(o.Err, o.Failed))
	default:
		h.logger().WarnContext(r.Context(), "dashboard action failed", "path", r.URL.Path, "error", o.Err)
		addFlash(w, r, FlashError, o.Failed)
	}
	redirectTo(w, r, o.Back)
}

func loanIDFromPath(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

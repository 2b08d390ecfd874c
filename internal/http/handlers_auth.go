package httpx

import (
	"errors"
	"net/http"
	"strings"

	apperrors "github.com/Esangam/Esangam-UI/internal/errors"
	"github.com/Esangam/Esangam-UI/internal/observability/metrics"
	"github.com/Esangam/Esangam-UI/internal/service"
)

// MsgLoginThrottled is shown when a browser submits credentials too often.
const MsgLoginThrottled = "Too many login attempts. Please wait a moment and try again."

func loginMeta() PageMeta {
	return PageMeta{Title: "Esangam - Login", PageTitle: "Login", CurrentPage: PageLogin}
}

func bootstrapMeta() PageMeta {
	return PageMeta{Title: "Esangam - Initialize ES Admin", PageTitle: "Initialize ES Admin", CurrentPage: PageBootstrap}
}

// LoginPage renders the login form.
// GET /login?redirect=<optional same-origin path>.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, loginMeta()).
		With("Redirect", loginRedirect(r.URL.Query().Get("redirect"))).
		Build()
	h.renderPage(w, r, data)
}

// Login exchanges the submitted credentials for a session and redirects on success.
// Any failure, including a failed identity fetch after a successful exchange, re-renders
// the form with a single generic message.
// POST /login.
func (h *UIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	bs, ok := GetBrowserSessionFromContext(r.Context())
	if !ok {
		h.renderError(w, r, http.StatusInternalServerError, "Browser session unavailable.")
		return
	}

	mobile := strings.TrimSpace(r.PostFormValue("mobile"))
	password := r.PostFormValue("password")
	redirect := loginRedirect(r.PostFormValue("redirect"))

	fail := func(result string) {
		metrics.LoginAttemptsTotal.WithLabelValues(result).Inc()
		data := NewTemplateData(r, loginMeta()).
			WithError(service.MsgLoginFailed).
			WithForm(map[string]string{"mobile": mobile}).
			With("Redirect", redirect).
			Build()
		h.renderPage(w, r, data)
	}

	if mobile == "" || password == "" {
		fail("failed")
		return
	}

	err := bs.Manager.Login(r.Context(), mobile, password)
	switch {
	case err == nil, errors.Is(err, service.ErrSessionChanged):
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
		redirectTo(w, r, redirect)
	case errors.Is(err, service.ErrIdentityUnavailable):
		h.logger().WarnContext(r.Context(), "identity unavailable after login", "browser_id", bs.ID, "error", err)
		fail("identity_unavailable")
	default:
		h.logger().InfoContext(r.Context(), "login failed", "browser_id", bs.ID, "error", err)
		fail("failed")
	}
}

// throttled re-renders a credential form when the throttle rejects a submission.
func (h *UIHandlers) throttled(meta PageMeta) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := NewTemplateData(r, meta).
			WithError(MsgLoginThrottled).
			WithForm(map[string]string{"mobile": strings.TrimSpace(r.PostFormValue("mobile"))}).
			With("Redirect", loginRedirect(r.PostFormValue("redirect"))).
			Build()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if !IsHTMX(r) {
			w.WriteHeader(http.StatusTooManyRequests)
		}
		h.renderPage(w, r, data)
	}
}

// Logout clears the browser's session and returns to the home page.
// POST /logout.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if bs, ok := GetBrowserSessionFromContext(r.Context()); ok {
		if err := bs.Manager.Logout(r.Context()); err != nil {
			h.logger().WarnContext(r.Context(), "logout left a persisted token", "browser_id", bs.ID, "error", err)
		}
	}
	redirectTo(w, r, "/")
}

// AuthStatus reports the session state as JSON.
// GET /auth/status.
func (h *UIHandlers) AuthStatus(w http.ResponseWriter, r *http.Request) {
	s := SessionSnapshot(r.Context())
	if s.User == nil {
		WriteJSON(w, http.StatusOK, map[string]any{
			"authenticated": false,
			"loading":       s.Loading,
		})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"loading":       s.Loading,
		"user":          s.User,
		"landing":       s.User.Role.LandingPath(),
	})
}

// BootstrapPage renders the one-time platform admin form.
// GET /bootstrap.
func (h *UIHandlers) BootstrapPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, NewTemplateData(r, bootstrapMeta()).Build())
}

// Bootstrap creates the first ES_ADMIN account. No credential is sent with the request.
// POST /bootstrap.
func (h *UIHandlers) Bootstrap(w http.ResponseWriter, r *http.Request) {
	mobile := strings.TrimSpace(r.PostFormValue("mobile"))
	msg, err := h.Platform.BootstrapAdmin(r.Context(), mobile, r.PostFormValue("password"), r.PostFormValue("confirm"))

	b := NewTemplateData(r, bootstrapMeta())
	switch {
	case err == nil:
		b.WithSuccess(msg)
	case apperrors.IsValidation(err):
		b.WithError(apperrors.UserMessage(err, service.MsgBootstrapFailed)).
			WithForm(map[string]string{"mobile": mobile})
	default:
		h.logger().WarnContext(r.Context(), "bootstrap admin failed", "error", err)
		b.WithError(backendMessage(err, service.MsgBootstrapFailed)).
			WithForm(map[string]string{"mobile": mobile})
	}
	h.renderPage(w, r, b.Build())
}

// backendMessage surfaces the error text the backend sent with a non-2xx answer.
// Transport failures and bare status codes fall back.
func backendMessage(err error, fallback string) string {
	status := apperrors.GetStatus(err)
	if status == 0 {
		return fallback
	}
	msg := apperrors.UserMessage(err, fallback)
	if msg == http.StatusText(status) {
		return fallback
	}
	return msg
}

// loginRedirect keeps post-login redirects inside the app.
func loginRedirect(candidate string) string {
	p := safeRedirectPath(candidate)
	if p == "/login" || strings.HasPrefix(p, "/login?") {
		return "/"
	}
	return p
}

package httpx

import (
	"context"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/oauth2"

	domainauth "github.com/Esangam/Esangam-UI/internal/domain/auth"
	"github.com/Esangam/Esangam-UI/internal/domain/model"
	"github.com/Esangam/Esangam-UI/internal/http/ui/viewmodel"
	"github.com/Esangam/Esangam-UI/internal/service"
)

// PlatformService is a minimal interface for the platform admin and bootstrap pages.
type PlatformService interface {
	Societies(ctx context.Context, ts oauth2.TokenSource) ([]model.Society, error)
	CreateSociety(ctx context.Context, ts oauth2.TokenSource, req model.CreateSocietyRequest) error
	BootstrapAdmin(ctx context.Context, mobile, password, confirm string) (string, error)
}

// SocietyAdminService is a minimal interface for the society admin dashboard.
type SocietyAdminService interface {
	Dashboard(ctx context.Context, ts oauth2.TokenSource) (model.AdminDashboard, error)
	CreateMember(ctx context.Context, ts oauth2.TokenSource, req model.CreateMemberRequest) error
	ApproveLoan(ctx context.Context, ts oauth2.TokenSource, loanID int64) error
	RejectLoan(ctx context.Context, ts oauth2.TokenSource, loanID int64) error
	UpdateInterest(ctx context.Context, ts oauth2.TokenSource, base, overdue string) error
	PostAnnouncement(ctx context.Context, ts oauth2.TokenSource, title, message string) error
}

// MemberService is a minimal interface for the member dashboard.
type MemberService interface {
	Dashboard(ctx context.Context, ts oauth2.TokenSource) model.MemberDashboard
	RequestLoan(ctx context.Context, ts oauth2.TokenSource, amount string) error
}

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ PlatformService     = (*service.PlatformService)(nil)
	_ SocietyAdminService = (*service.SocietyAdminService)(nil)
	_ MemberService       = (*service.MemberService)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T        *TemplateRenderer
	Platform PlatformService
	Society  SocietyAdminService
	Members  MemberService
	Clock    clockwork.Clock // optional, defaults to the real clock
	IsDev    bool            // Development mode flag for enhanced error reporting
	Logger   *slog.Logger
}

func (h *UIHandlers) now() time.Time {
	if h.Clock != nil {
		return h.Clock.Now()
	}
	return time.Now()
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// tokenSource returns the credential source for backend calls made on behalf of the browser.
func tokenSource(r *http.Request) oauth2.TokenSource {
	if bs, ok := GetBrowserSessionFromContext(r.Context()); ok {
		return bs.Manager
	}
	return noCredentials{}
}

type noCredentials struct{}

func (noCredentials) Token() (*oauth2.Token, error) { return nil, service.ErrNoCredentials }

// triggerToast sends a standardized HX-Trigger payload for toast notifications.
func triggerToast(w http.ResponseWriter, message, toastType string) {
	if w == nil || strings.TrimSpace(message) == "" {
		return
	}
	HTMX(w).Trigger("showToast", map[string]any{
		"message": message,
		"type":    strings.TrimSpace(toastType),
	})
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout constructs shared layout metadata from the request/session context.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
	}

	u, ok := CurrentUser(r.Context())
	if !ok {
		return layout
	}
	layout.IsAuthenticated = true
	layout.User = &viewmodel.User{
		Mobile:      u.Mobile,
		Role:        string(u.Role),
		SocietyName: u.SocietyName,
		Label:       u.Label(),
	}
	layout.Nav = navFor(u.Role, meta.CurrentPage)
	return layout
}

// navFor returns the header links a role sees. Each role has exactly one dashboard.
func navFor(role domainauth.Role, currentPage string) []viewmodel.NavItem {
	label := role.NavLabel()
	href := role.LandingPath()
	if label == "" || href == "" {
		return nil
	}
	return []viewmodel.NavItem{{
		Label:  label,
		Href:   href,
		Active: "/"+currentPage == href,
	}}
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"Nav":             layout.Nav,
	}

	if layout.CSRFToken != "" {
		data["CSRFToken"] = layout.CSRFToken
	}
	if layout.User != nil {
		data["User"] = layout.User
	}

	return data
}

// renderPage renders a page with htmx partial support. Pending flashes are drained into
// the data so both full and partial renders show them.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if flashes := popFlashes(w, r); len(flashes) > 0 {
		data["Flashes"] = flashes
	}

	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	layout := extractLayoutInfo(data)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})

	// Include a <title> element so htmx updates document.title on partial swaps
	if _, err := w.Write([]byte(`<title>` + html.EscapeString(layout.Title) + `</title>`)); err != nil {
		h.logger().Error("failed to write partial document title", "error", err)
		return
	}

	if err := h.T.ExecuteTo(w, ContentTemplateFor(layout.CurrentPage), data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
	}
}

func layoutFromProvider(data any) *viewmodel.Layout {
	provider, ok := data.(viewmodel.LayoutProvider)
	if !ok {
		return nil
	}
	return provider.LayoutData()
}

func layoutFromMap(data any) viewmodel.Layout {
	m, mapOK := data.(map[string]any)
	if !mapOK {
		return viewmodel.Layout{}
	}

	layout := viewmodel.Layout{}
	if v, ok := m["Title"].(string); ok {
		layout.Title = v
	}
	if v, ok := m["PageTitle"].(string); ok {
		layout.PageTitle = v
	}
	if v, ok := m["CurrentPage"].(string); ok {
		layout.CurrentPage = v
	}
	return layout
}

func extractLayoutInfo(data any) viewmodel.Layout {
	if layout := layoutFromProvider(data); layout != nil {
		return *layout
	}
	if layout, ok := data.(viewmodel.Layout); ok {
		return layout
	}
	return layoutFromMap(data)
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		if _, writeErr := w.Write([]byte(`<div class="template-error"><h2>Template Rendering Error</h2>` +
			`<p><strong>Context:</strong> ` + html.EscapeString(context) + `</p>` +
			`<p><strong>Path:</strong> ` + html.EscapeString(r.URL.Path) + `</p>` +
			`<pre>` + html.EscapeString(err.Error()) + `</pre></div>`)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// renderError renders the standalone error page with status.
func (h *UIHandlers) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := basePageData(r, PageMeta{Title: "Esangam - Error", PageTitle: "Error"})
	data["StatusCode"] = status
	data["ErrorMessage"] = message
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.T.RenderError(w, r, data); err != nil {
		h.logger().Error("failed to render error page", "error", err, "status", status)
	}
}

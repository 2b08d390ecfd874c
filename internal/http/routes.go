package httpx

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"regexp"

	"github.com/gorilla/sessions"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	esangam "github.com/Esangam/Esangam-UI"
	domainauth "github.com/Esangam/Esangam-UI/internal/domain/auth"
	"github.com/Esangam/Esangam-UI/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Registry *service.SessionRegistry
	Platform PlatformService
	Society  SocietyAdminService
	Members  MemberService

	// CookieStore signs the browser id cookie.
	CookieStore sessions.Store
	CSRF        CSRFConfig

	LoginRate  rate.Limit
	LoginBurst int

	MetricsEnabled bool
	MetricsPath    string

	// TemplateFS overrides the template source (tests). Defaults to disk in dev, embedded otherwise.
	TemplateFS fs.FS
	Clock      clockwork.Clock
	IsDev      bool         // Development mode flag for hot reloading, etc.
	Logger     *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Registry == nil || services.CookieStore == nil {
		return nil, errors.New("router requires a session registry and a cookie store")
	}
	if services.Platform == nil || services.Society == nil || services.Members == nil {
		return nil, errors.New("router requires platform, society and member services")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := services.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	ui, err := setupUIHandlers(services, clock, logger)
	if err != nil {
		return nil, err
	}

	if services.CSRF.Logger == nil {
		services.CSRF.Logger = logger
	}
	csrf := CSRFProtection(services.CSRF)
	browser := BrowserSessions(BrowserSessionsConfig{
		Store:    services.CookieStore,
		Registry: services.Registry,
		Logger:   logger,
	})
	loading := http.HandlerFunc(ui.Loading)

	// page wraps a handler with CSRF, the browser session and the route guard.
	page := func(policy domainauth.Policy, h http.HandlerFunc) http.Handler {
		return csrf(browser(RequirePolicy(policy, loading)(h)))
	}
	// throttled limits credential posts per browser; each form gets its own limiter set.
	throttled := func(meta PageMeta, h http.HandlerFunc) http.Handler {
		t := Throttle(ThrottleConfig{
			Rate:     services.LoginRate,
			Burst:    services.LoginBurst,
			Clock:    clock,
			OnReject: ui.throttled(meta),
		})
		return csrf(browser(t(h)))
	}

	public := domainauth.Public()
	platformAdmin := domainauth.RequireRoles(domainauth.RolePlatformAdmin)
	societyAdmin := domainauth.RequireRoles(domainauth.RoleSocietyAdmin)
	member := domainauth.RequireRoles(domainauth.RoleMember)
	anyUser := domainauth.Authenticated()

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.Handle("GET /static/", staticHandler(services.IsDev))
	if services.MetricsEnabled {
		path := services.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, promhttp.Handler())
	}

	mux.Handle("GET /{$}", page(public, ui.Home))
	mux.Handle("GET /login", page(public, ui.LoginPage))
	mux.Handle("POST /login", throttled(loginMeta(), ui.Login))
	mux.Handle("POST /logout", page(public, ui.Logout))
	mux.Handle("GET /auth/status", page(public, ui.AuthStatus))
	mux.Handle("GET /bootstrap", page(public, ui.BootstrapPage))
	mux.Handle("POST /bootstrap", throttled(bootstrapMeta(), ui.Bootstrap))

	mux.Handle("GET /esadmin", page(platformAdmin, ui.PlatformAdminPage))
	mux.Handle("POST /esadmin/societies", page(platformAdmin, ui.CreateSociety))

	mux.Handle("GET /admin", page(societyAdmin, ui.SocietyAdminPage))
	mux.Handle("POST /admin/members", page(societyAdmin, ui.CreateMember))
	mux.Handle("POST /admin/loans/{id}/approve", page(societyAdmin, ui.ApproveLoan))
	mux.Handle("POST /admin/loans/{id}/reject", page(societyAdmin, ui.RejectLoan))
	mux.Handle("POST /admin/interest", page(societyAdmin, ui.UpdateInterest))
	mux.Handle("POST /admin/announcements", page(societyAdmin, ui.PostAnnouncement))

	mux.Handle("GET /member", page(member, ui.MemberPage))
	mux.Handle("POST /member/loans", page(member, ui.RequestLoan))

	mux.Handle("GET /notifications", page(anyUser, ui.Notifications))
	mux.Handle("POST /notifications/{id}/dismiss", page(anyUser, ui.DismissNotification))
	mux.Handle("GET /notifications/ws", page(anyUser, ui.NotificationsSocket))

	mux.HandleFunc("/", ui.NotFound)

	return mux, nil
}

// setupUIHandlers creates UI handlers with the template renderer.
// In dev mode templates are read from disk on every render.
func setupUIHandlers(services RouterServices, clock clockwork.Clock, logger *slog.Logger) (*UIHandlers, error) {
	templateFS := services.TemplateFS
	if templateFS == nil {
		if services.IsDev {
			templateFS = os.DirFS(TemplatePathFromRoot)
		} else {
			sub, err := fs.Sub(esangam.TemplateFS, TemplatePathFromRoot)
			if err != nil {
				return nil, fmt.Errorf("templates sub-filesystem: %w", err)
			}
			templateFS = sub
		}
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		DevMode:    services.IsDev,
		Now:        clock.Now,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create template renderer: %w", err)
	}

	return &UIHandlers{
		T:        tr,
		Platform: services.Platform,
		Society:  services.Society,
		Members:  services.Members,
		Clock:    clock,
		IsDev:    services.IsDev,
		Logger:   logger,
	}, nil
}

// staticHandler serves /static/* from disk in dev mode and from the embedded FS otherwise.
func staticHandler(isDev bool) http.Handler {
	if isDev {
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))))
	}
	staticSub, err := fs.Sub(esangam.StaticFS, "frontend/static")
	if err != nil {
		slog.Default().Error("failed to create sub-filesystem for static assets", "error", err)
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))))
	}
	return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))
}

// hashedFilePattern matches content-hashed filenames such as app.abc12345.js.
var hashedFilePattern = regexp.MustCompile(`\.[a-f0-9]{8}\.(?:js|css)(?:\.map)?$`) //nolint:gochecknoglobals // compiled once

// staticWithCacheHeaders caches hashed assets for a year and revalidates everything else.
func staticWithCacheHeaders(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hashedFilePattern.MatchString(r.URL.Path) {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}
		handler.ServeHTTP(w, r)
	})
}

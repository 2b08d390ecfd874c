package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/Esangam/Esangam-UI/internal/http/ui/viewmodel"
	"github.com/Esangam/Esangam-UI/internal/service"
)

const (
	browserIDKey    = "bid"
	flashSuccessKey = "flash_success"
	flashErrorKey   = "flash_error"
)

// CookieStoreOptions configures the signed browser cookie.
type CookieStoreOptions struct {
	Secret []byte
	Domain string
	Secure bool
	MaxAge time.Duration
}

// NewCookieStore builds the gorilla cookie store that carries the browser id and flashes.
func NewCookieStore(opts CookieStoreOptions) *sessions.CookieStore {
	store := sessions.NewCookieStore(opts.Secret)
	store.Options = &sessions.Options{
		Path:     "/",
		Domain:   opts.Domain,
		MaxAge:   int(opts.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// BrowserSessionsConfig holds dependencies for the BrowserSessions middleware.
type BrowserSessionsConfig struct {
	Store    sessions.Store
	Registry *service.SessionRegistry
	Logger   *slog.Logger
}

// BrowserSessions resolves the browser id from the signed cookie, issuing one on first visit,
// and attaches that browser's session from the registry to the request context.
// A cookie that fails verification is replaced with a fresh id.
func BrowserSessions(cfg BrowserSessionsConfig) func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cs, err := cfg.Store.Get(r, BrowserCookieName)
			if err != nil {
				logger.DebugContext(r.Context(), "browser cookie rejected", "error", err)
			}
			if cs == nil {
				cs = sessions.NewSession(cfg.Store, BrowserCookieName)
			}

			id, _ := cs.Values[browserIDKey].(string)
			if _, perr := uuid.Parse(id); perr != nil {
				id = uuid.NewString()
				cs.Values[browserIDKey] = id
				if err := cs.Save(r, w); err != nil {
					logger.ErrorContext(r.Context(), "failed to issue browser cookie", "error", err)
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
			}

			bs := cfg.Registry.Get(r.Context(), id)
			ctx := setCookieSessionInContext(r.Context(), cs)
			ctx = SetBrowserSessionInContext(ctx, bs)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// addFlash queues a one-shot message for the next page render. It must run before the
// response is written.
func addFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	cs, ok := cookieSessionFromContext(r.Context())
	if !ok || message == "" {
		return
	}
	key := flashErrorKey
	if kind == FlashSuccess {
		key = flashSuccessKey
	}
	cs.AddFlash(message, key)
	if err := cs.Save(r, w); err != nil {
		slog.Default().WarnContext(r.Context(), "failed to save flash", "error", err)
	}
}

// popFlashes drains queued flashes. Success messages come first.
func popFlashes(w http.ResponseWriter, r *http.Request) []viewmodel.Flash {
	cs, ok := cookieSessionFromContext(r.Context())
	if !ok {
		return nil
	}
	var out []viewmodel.Flash
	for _, kf := range []struct{ kind, key string }{
		{FlashSuccess, flashSuccessKey},
		{FlashError, flashErrorKey},
	} {
		for _, v := range cs.Flashes(kf.key) {
			if msg, ok := v.(string); ok && msg != "" {
				out = append(out, viewmodel.Flash{Kind: kf.kind, Message: msg})
			}
		}
	}
	if len(out) > 0 {
		if err := cs.Save(r, w); err != nil {
			slog.Default().WarnContext(r.Context(), "failed to clear flashes", "error", err)
		}
	}
	return out
}

package httpx

import (
	"context"

	"github.com/gorilla/sessions"

	domainauth "github.com/Esangam/Esangam-UI/internal/domain/auth"
	"github.com/Esangam/Esangam-UI/internal/service"
)

// browserSessionKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type browserSessionKey struct{}

// cookieSessionKey carries the gorilla cookie session used for flashes.
type cookieSessionKey struct{}

// SetBrowserSessionInContext returns a child context that carries the given browser session.
// If bs is nil, the original ctx is returned unchanged.
func SetBrowserSessionInContext(ctx context.Context, bs *service.BrowserSession) context.Context {
	if bs == nil {
		return ctx
	}
	return context.WithValue(ctx, browserSessionKey{}, bs)
}

// GetBrowserSessionFromContext returns the browser session from context and a boolean indicating presence.
func GetBrowserSessionFromContext(ctx context.Context) (*service.BrowserSession, bool) {
	if bs, ok := ctx.Value(browserSessionKey{}).(*service.BrowserSession); ok && bs != nil {
		return bs, true
	}
	return nil, false
}

// SessionSnapshot returns the session state for the request's browser.
// Requests without a browser session are treated as logged out.
func SessionSnapshot(ctx context.Context) domainauth.Session {
	if bs, ok := GetBrowserSessionFromContext(ctx); ok {
		return bs.Manager.Snapshot()
	}
	return domainauth.Session{}
}

// CurrentUser returns the authenticated identity for the request, if any.
func CurrentUser(ctx context.Context) (domainauth.UserIdentity, bool) {
	if bs, ok := GetBrowserSessionFromContext(ctx); ok {
		return bs.Manager.User()
	}
	return domainauth.UserIdentity{}, false
}

// IsGuestUser reports whether the current request context has no authenticated identity.
func IsGuestUser(ctx context.Context) bool {
	_, ok := CurrentUser(ctx)
	return !ok
}

func setCookieSessionInContext(ctx context.Context, s *sessions.Session) context.Context {
	return context.WithValue(ctx, cookieSessionKey{}, s)
}

func cookieSessionFromContext(ctx context.Context) (*sessions.Session, bool) {
	s, ok := ctx.Value(cookieSessionKey{}).(*sessions.Session)
	return s, ok && s != nil
}

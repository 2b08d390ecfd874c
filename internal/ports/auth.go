package ports

// Package ports defines interfaces (hexagonal ports) for session-related behavior.
// Implementations live in internal/adapters and internal/backend; orchestration in internal/service.

import (
	"context"
	"errors"
	"io"

	domainauth "github.com/Esangam/Esangam-UI/internal/domain/auth"
	"golang.org/x/oauth2"
)

// ErrTokenNotFound is returned by TokenStorage.Get when nothing is persisted under the key.
var ErrTokenNotFound = errors.New("token not found")

// TokenStorage persists the bearer token under a well-known key.
// Implementations scope keys to their owner (browser, CLI profile).
type TokenStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// IdentityClient exchanges credentials for a token and resolves the current identity.
type IdentityClient interface {
	// Login sends credentials to the authentication endpoint and returns the issued bearer token.
	Login(ctx context.Context, mobile, password string) (string, error)

	// Me fetches the identity bound to the token supplied by ts.
	Me(ctx context.Context, ts oauth2.TokenSource) (domainauth.UserIdentity, error)
}

// NotificationStreamer opens the server-push stream for one identity.
// The returned body yields text/event-stream framing until closed or the context ends.
type NotificationStreamer interface {
	OpenStream(ctx context.Context, mobile string) (io.ReadCloser, error)
}

// TokenStorageProvider hands out TokenStorage scoped to one owner.
type TokenStorageProvider interface {
	ForOwner(owner string) TokenStorage
}

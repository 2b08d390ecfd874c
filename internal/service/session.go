package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/oauth2"

	domainauth "github.com/Esangam/Esangam-UI/internal/domain/auth"
	"github.com/Esangam/Esangam-UI/internal/ports"
)

var (
	// ErrLoginFailed wraps a failed credential exchange.
	ErrLoginFailed = errors.New("login failed")
	// ErrIdentityUnavailable is returned when a token was issued but the identity fetch failed.
	ErrIdentityUnavailable = errors.New("failed to load user details")
	// ErrNoCredentials is returned by Token when no bearer token is installed.
	ErrNoCredentials = errors.New("no session credential")
	// ErrSessionChanged is returned when the session was replaced while an operation was in flight.
	ErrSessionChanged = errors.New("session changed during request")
)

// SessionManagerOptions groups dependencies for SessionManager.
type SessionManagerOptions struct {
	Identity ports.IdentityClient
	Storage  ports.TokenStorage
	Logger   *slog.Logger
}

// SessionManager owns one bearer token and the identity derived from it.
// It is the only writer of its Session; every mutation bumps a generation counter
// and identity responses are applied only if the generation is unchanged when they arrive.
//
// SessionManager implements oauth2.TokenSource so backend calls read the current credential
// when each request is built.
type SessionManager struct {
	identity ports.IdentityClient
	storage  ports.TokenStorage
	logger   *slog.Logger

	mu    sync.RWMutex
	state domainauth.Session
	gen   uint64

	restoreOnce sync.Once
	restored    chan struct{}

	subMu   sync.Mutex
	subs    map[int]func(domainauth.Session)
	nextSub int
	// pubMu serializes publication so the last subscriber call always sees the latest state.
	pubMu sync.Mutex
}

var _ oauth2.TokenSource = (*SessionManager)(nil)

// NewSessionManager constructs a manager in the loading state. Call Restore to resolve it.
func NewSessionManager(opts SessionManagerOptions) *SessionManager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		identity: opts.Identity,
		storage:  opts.Storage,
		logger:   logger,
		state:    domainauth.Session{Loading: true},
		restored: make(chan struct{}),
		subs:     make(map[int]func(domainauth.Session)),
	}
}

// Restore reads the persisted token and, if present, resolves its identity.
// Failures are never returned: an unusable token degrades to a logged-out session.
// Only the first call does any work.
func (m *SessionManager) Restore(ctx context.Context) {
	m.restoreOnce.Do(func() {
		defer close(m.restored)
		m.restore(ctx)
	})
}

func (m *SessionManager) restore(ctx context.Context) {
	tok, err := m.storage.Get(ctx, domainauth.TokenKey)
	if err != nil || tok == "" {
		if err != nil && !errors.Is(err, ports.ErrTokenNotFound) {
			m.logger.WarnContext(ctx, "read persisted token", "error", err)
		}
		m.update(func(s *domainauth.Session) { s.Loading = false })
		return
	}

	gen := m.update(func(s *domainauth.Session) {
		s.Token = tok
		s.User = nil
		s.Loading = true
	})

	id, err := m.identity.Me(ctx, m)
	if err != nil {
		m.logger.DebugContext(ctx, "persisted token rejected, clearing session", "error", err)
		cleared := m.updateIf(gen, func(s *domainauth.Session) {
			s.Token = ""
			s.User = nil
			s.Loading = false
		})
		if cleared {
			if delErr := m.storage.Delete(ctx, domainauth.TokenKey); delErr != nil {
				m.logger.WarnContext(ctx, "remove rejected token", "error", delErr)
			}
		}
		return
	}

	if !m.updateIf(gen, func(s *domainauth.Session) {
		s.User = &id
		s.Loading = false
	}) {
		m.logger.DebugContext(ctx, "discarding stale identity response")
	}
}

// WaitRestored blocks until Restore has finished or ctx is done.
func (m *SessionManager) WaitRestored(ctx context.Context) error {
	select {
	case <-m.restored:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Restored reports whether Restore has completed.
func (m *SessionManager) Restored() bool {
	select {
	case <-m.restored:
		return true
	default:
		return false
	}
}

// Login exchanges credentials for a token, persists and installs it, then loads the identity.
// If the identity fetch fails the token stays installed and ErrIdentityUnavailable is returned.
func (m *SessionManager) Login(ctx context.Context, mobile, password string) error {
	tok, err := m.identity.Login(ctx, mobile, password)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}
	if err := m.storage.Set(ctx, domainauth.TokenKey, tok); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	gen := m.update(func(s *domainauth.Session) {
		s.Token = tok
		s.User = nil
		s.Loading = false
	})

	id, err := m.identity.Me(ctx, m)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIdentityUnavailable, err)
	}
	if !m.updateIf(gen, func(s *domainauth.Session) { s.User = &id }) {
		return ErrSessionChanged
	}
	return nil
}

// Logout clears token, identity and persisted storage. No network call is made.
// In-memory state is cleared even when the storage delete fails.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.update(func(s *domainauth.Session) {
		s.Token = ""
		s.User = nil
		s.Loading = false
	})
	if err := m.storage.Delete(ctx, domainauth.TokenKey); err != nil {
		return fmt.Errorf("remove persisted token: %w", err)
	}
	return nil
}

// Token implements oauth2.TokenSource over the current session credential.
func (m *SessionManager) Token() (*oauth2.Token, error) {
	m.mu.RLock()
	tok := m.state.Token
	m.mu.RUnlock()
	if tok == "" {
		return nil, ErrNoCredentials
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}

// Snapshot returns a copy of the current session state.
func (m *SessionManager) Snapshot() domainauth.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copySession(m.state)
}

// User returns the current identity, if any.
func (m *SessionManager) User() (domainauth.UserIdentity, bool) {
	s := m.Snapshot()
	if s.User == nil {
		return domainauth.UserIdentity{}, false
	}
	return *s.User, true
}

// Loading reports whether the initial restore is still in progress.
func (m *SessionManager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Loading
}

// Subscribe registers fn to be called after every state change with the latest snapshot.
// fn must not call mutating methods on the manager.
func (m *SessionManager) Subscribe(fn func(domainauth.Session)) (unsubscribe func()) {
	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.subMu.Lock()
			delete(m.subs, id)
			m.subMu.Unlock()
		})
	}
}

// update applies fn under the lock, bumps the generation and publishes the new state.
func (m *SessionManager) update(fn func(*domainauth.Session)) uint64 {
	m.mu.Lock()
	fn(&m.state)
	m.gen++
	gen := m.gen
	m.mu.Unlock()

	m.publish()
	return gen
}

// updateIf applies fn only if no other mutation happened since gen.
func (m *SessionManager) updateIf(gen uint64, fn func(*domainauth.Session)) bool {
	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return false
	}
	fn(&m.state)
	m.gen++
	m.mu.Unlock()

	m.publish()
	return true
}

func (m *SessionManager) publish() {
	m.pubMu.Lock()
	defer m.pubMu.Unlock()

	m.subMu.Lock()
	subs := make([]func(domainauth.Session), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.subMu.Unlock()

	snap := m.Snapshot()
	for _, fn := range subs {
		fn(snap)
	}
}

func copySession(s domainauth.Session) domainauth.Session {
	if s.User == nil {
		return s
	}
	u := *s.User
	if u.SocietyID != nil {
		id := *u.SocietyID
		u.SocietyID = &id
	}
	s.User = &u
	return s
}

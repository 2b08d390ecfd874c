package service

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Esangam/Esangam-UI/internal/notify"
	"github.com/Esangam/Esangam-UI/internal/observability/metrics"
	"github.com/Esangam/Esangam-UI/internal/ports"
)

// SessionRegistryConfig tunes browser session lifetimes.
type SessionRegistryConfig struct {
	// IdleTimeout evicts a browser session that has not been seen for this long.
	IdleTimeout time.Duration
	// RestoreWait bounds how long Get waits for a restore before returning a loading session.
	RestoreWait time.Duration
	// RestoreTimeout bounds the identity fetch made while restoring.
	RestoreTimeout time.Duration
	// SweepInterval is how often Run evicts idle sessions.
	SweepInterval time.Duration
}

func (c SessionRegistryConfig) withDefaults() SessionRegistryConfig {
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = 30 * time.Minute
	}
	if c.RestoreWait <= 0 {
		c.RestoreWait = 2 * time.Second
	}
	if c.RestoreTimeout <= 0 {
		c.RestoreTimeout = 10 * time.Second
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = time.Minute
	}
	return c
}

// SessionRegistryOptions groups dependencies for SessionRegistry.
type SessionRegistryOptions struct {
	Identity ports.IdentityClient
	Tokens   ports.TokenStorageProvider
	Streamer ports.NotificationStreamer
	Clock    clockwork.Clock
	Logger   *slog.Logger
	Config   SessionRegistryConfig
}

// BrowserSession is the per-browser pair of session manager and notification channel.
type BrowserSession struct {
	ID      string
	Manager *SessionManager
	Channel *notify.Channel

	lastSeen time.Time
	unbind   func()
	registry *SessionRegistry
	attached atomic.Int32
}

// Attach marks the session as having a live consumer (an open notification socket).
// Attached sessions are never swept as idle. The returned detach refreshes the idle
// clock so eviction counts from the moment the last consumer went away.
func (b *BrowserSession) Attach() (detach func()) {
	b.attached.Add(1)
	var once sync.Once
	return func() {
		once.Do(func() {
			b.registry.touch(b)
			b.attached.Add(-1)
		})
	}
}

func (b *BrowserSession) close() {
	b.unbind()
	b.Channel.Close()
}

// SessionRegistry holds one BrowserSession per browser id.
// Evicting a session closes its notification channel but leaves the persisted token,
// so the next request from that browser restores it.
type SessionRegistry struct {
	identity ports.IdentityClient
	tokens   ports.TokenStorageProvider
	streamer ports.NotificationStreamer
	clock    clockwork.Clock
	logger   *slog.Logger
	cfg      SessionRegistryConfig

	mu       sync.Mutex
	sessions map[string]*BrowserSession
}

// NewSessionRegistry constructs an empty registry.
func NewSessionRegistry(opts SessionRegistryOptions) *SessionRegistry {
	if opts.Identity == nil || opts.Tokens == nil {
		panic("SessionRegistry requires Identity and Tokens")
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SessionRegistry{
		identity: opts.Identity,
		tokens:   opts.Tokens,
		streamer: opts.Streamer,
		clock:    clock,
		logger:   loggerOrDefault(opts.Logger).With("component", "session_registry"),
		cfg:      opts.Config.withDefaults(),
		sessions: make(map[string]*BrowserSession),
	}
}

// Get returns the session for id, creating and restoring it on first use.
// It waits up to RestoreWait for the restore; a session still restoring is returned in the loading state.
func (r *SessionRegistry) Get(ctx context.Context, id string) *BrowserSession {
	s, created := r.getOrCreate(id)
	if created {
		restoreCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.cfg.RestoreTimeout)
		go func() {
			defer cancel()
			s.Manager.Restore(restoreCtx)
		}()
	}
	if s.Manager.Restored() {
		return s
	}

	waitCtx, cancel := context.WithTimeout(ctx, r.cfg.RestoreWait)
	defer cancel()
	if err := s.Manager.WaitRestored(waitCtx); err != nil {
		r.logger.DebugContext(ctx, "restore still in progress", "browser_id", id)
	}
	return s
}

// Lookup returns the session for id without creating one.
func (r *SessionRegistry) Lookup(id string) (*BrowserSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if ok {
		s.lastSeen = r.clock.Now()
	}
	return s, ok
}

func (r *SessionRegistry) touch(s *BrowserSession) {
	r.mu.Lock()
	s.lastSeen = r.clock.Now()
	r.mu.Unlock()
}

func (r *SessionRegistry) getOrCreate(id string) (*BrowserSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	if s, ok := r.sessions[id]; ok {
		s.lastSeen = now
		return s, false
	}

	manager := NewSessionManager(SessionManagerOptions{
		Identity: r.identity,
		Storage:  r.tokens.ForOwner(id),
		Logger:   r.logger.With("browser_id", id),
	})
	channel := notify.NewChannel(notify.Options{
		Streamer: r.streamer,
		Clock:    r.clock,
		Logger:   r.logger.With("browser_id", id),
	})
	s := &BrowserSession{
		ID:       id,
		Manager:  manager,
		Channel:  channel,
		lastSeen: now,
		unbind:   notify.Bind(manager, channel),
		registry: r,
	}
	r.sessions[id] = s
	metrics.SessionsActive.Set(float64(len(r.sessions)))
	return s, true
}

// Remove closes and forgets the session for id.
func (r *SessionRegistry) Remove(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
		metrics.SessionsActive.Set(float64(len(r.sessions)))
	}
	r.mu.Unlock()
	if ok {
		s.close()
	}
}

// Len returns the number of sessions held.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep evicts sessions idle for longer than IdleTimeout and returns how many were evicted.
// Sessions with an attached consumer are kept.
func (r *SessionRegistry) Sweep() int {
	cutoff := r.clock.Now().Add(-r.cfg.IdleTimeout)

	r.mu.Lock()
	var idle []*BrowserSession
	for id, s := range r.sessions {
		if s.attached.Load() == 0 && s.lastSeen.Before(cutoff) {
			idle = append(idle, s)
			delete(r.sessions, id)
		}
	}
	metrics.SessionsActive.Set(float64(len(r.sessions)))
	r.mu.Unlock()

	for _, s := range idle {
		s.close()
	}
	if len(idle) > 0 {
		r.logger.Debug("evicted idle browser sessions", "count", len(idle))
	}
	return len(idle)
}

// Run sweeps on SweepInterval until ctx is done, then closes every session.
func (r *SessionRegistry) Run(ctx context.Context) {
	ticker := r.clock.NewTicker(r.cfg.SweepInterval)
	defer ticker.Stop()
	defer r.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			r.Sweep()
		}
	}
}

// Close closes every session. Persisted tokens are kept.
func (r *SessionRegistry) Close() {
	r.mu.Lock()
	all := make([]*BrowserSession, 0, len(r.sessions))
	for id, s := range r.sessions {
		all = append(all, s)
		delete(r.sessions, id)
	}
	metrics.SessionsActive.Set(0)
	r.mu.Unlock()

	for _, s := range all {
		s.close()
	}
}

// Package notify maintains the per-identity server-push notification stream
// and the queue of messages waiting to be dismissed.
package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/jonboulle/clockwork"

	domainauth "github.com/Esangam/Esangam-UI/internal/domain/auth"
	"github.com/Esangam/Esangam-UI/internal/domain/model"
	"github.com/Esangam/Esangam-UI/internal/observability/metrics"
	"github.com/Esangam/Esangam-UI/internal/ports"
)

// State is the connection state of a Channel.
type State int

const (
	StateClosed State = iota
	StateOpen
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

// Options configures a Channel.
type Options struct {
	Streamer ports.NotificationStreamer
	Clock    clockwork.Clock
	Logger   *slog.Logger
	// RandN returns a value in [0, n). Defaults to math/rand/v2.
	RandN func(n int64) int64
}

// Channel holds at most one open stream, owned by one identity.
// A transport error closes the stream without retrying; the queue is left untouched.
// The stream is reopened only when the owner changes or Reopen is called.
type Channel struct {
	streamer ports.NotificationStreamer
	clock    clockwork.Clock
	logger   *slog.Logger
	randN    func(int64) int64

	mu       sync.Mutex
	owner    string
	state    State
	conn     uint64
	cancel   context.CancelFunc
	shut     bool
	messages []model.NotificationMessage
	watchers map[chan struct{}]struct{}
}

// NewChannel creates a closed channel.
func NewChannel(opts Options) *Channel {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	randN := opts.RandN
	if randN == nil {
		randN = rand.Int64N
	}
	return &Channel{
		streamer: opts.Streamer,
		clock:    clock,
		logger:   logger.With("component", "notify"),
		randN:    randN,
		watchers: make(map[chan struct{}]struct{}),
	}
}

// Sync makes the channel follow user. A different identity closes the current stream,
// clears the queue and opens a stream for the new identity; nil closes the stream.
// Syncing to the current owner is a no-op, even when its stream has failed.
func (c *Channel) Sync(user *domainauth.UserIdentity) {
	mobile := ""
	if user != nil {
		mobile = user.Mobile
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.shut || mobile == c.owner {
		return
	}

	c.closeLocked()
	if len(c.messages) > 0 {
		c.messages = nil
		c.notifyLocked()
	}
	c.owner = mobile
	if mobile != "" {
		c.openLocked()
	}
}

// Reopen opens a new stream for the current owner if the previous one closed.
// It is how a remounted view resumes after a transport error.
func (c *Channel) Reopen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.shut || c.owner == "" || c.state == StateOpen {
		return false
	}
	c.openLocked()
	return true
}

// Close tears the channel down permanently. Later Sync calls are ignored.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.shut {
		return
	}
	c.closeLocked()
	c.shut = true
	c.owner = ""
	for w := range c.watchers {
		close(w)
		delete(c.watchers, w)
	}
}

// State returns the current connection state.
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Owner returns the mobile identifier the channel follows, or "".
func (c *Channel) Owner() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.owner
}

// Messages returns a copy of the queue in arrival order.
func (c *Channel) Messages() []model.NotificationMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.messages)
}

// Dismiss removes the message with id. Unknown ids are a no-op.
func (c *Channel) Dismiss(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := slices.IndexFunc(c.messages, func(m model.NotificationMessage) bool { return m.ID == id })
	if i < 0 {
		return false
	}
	c.messages = slices.Delete(c.messages, i, i+1)
	c.notifyLocked()
	return true
}

// Subscribe returns a channel that receives a signal after every queue change.
// Signals coalesce; read Messages for the current queue. The channel is closed by Close.
func (c *Channel) Subscribe() (<-chan struct{}, func()) {
	w := make(chan struct{}, 1)
	c.mu.Lock()
	if c.shut {
		c.mu.Unlock()
		close(w)
		return w, func() {}
	}
	c.watchers[w] = struct{}{}
	c.mu.Unlock()

	var once sync.Once
	return w, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if _, ok := c.watchers[w]; ok {
				delete(c.watchers, w)
				close(w)
			}
		})
	}
}

func (c *Channel) openLocked() {
	if c.streamer == nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.conn++
	c.cancel = cancel
	c.state = StateOpen
	metrics.NotificationStreamsOpen.Inc()
	go c.read(ctx, c.conn, c.owner)
}

func (c *Channel) closeLocked() {
	if c.state != StateOpen {
		return
	}
	c.cancel()
	c.cancel = nil
	c.state = StateClosed
	metrics.NotificationStreamsOpen.Dec()
}

func (c *Channel) read(ctx context.Context, conn uint64, mobile string) {
	body, err := c.streamer.OpenStream(ctx, mobile)
	if err != nil {
		c.fail(conn, err)
		return
	}
	stop := context.AfterFunc(ctx, func() { _ = body.Close() })
	defer func() {
		stop()
		_ = body.Close()
	}()

	dec := NewDecoder(body)
	defer dec.Close()
	for {
		ev, err := dec.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			c.fail(conn, err)
			return
		}
		if !ev.IsMessage() {
			continue
		}
		if !c.append(conn, ev.Data) {
			return
		}
	}
}

// append adds a message if conn is still the live stream.
func (c *Channel) append(conn uint64, text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if conn != c.conn || c.state != StateOpen {
		return false
	}
	now := c.clock.Now()
	c.messages = append(c.messages, model.NotificationMessage{
		ID:         now.UnixMilli()*1000 + c.randN(1000),
		Text:       text,
		ReceivedAt: now,
	})
	metrics.NotificationMessagesTotal.Inc()
	c.notifyLocked()
	return true
}

// fail closes the stream for conn without touching the queue.
func (c *Channel) fail(conn uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if conn != c.conn || c.state != StateOpen {
		return
	}
	c.logger.Debug("notification stream closed", "owner", c.owner, "error", err)
	metrics.NotificationStreamErrorsTotal.Inc()
	c.closeLocked()
	c.notifyLocked()
}

func (c *Channel) notifyLocked() {
	for w := range c.watchers {
		select {
		case w <- struct{}{}:
		default:
		}
	}
}

package notify

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/Esangam/Esangam-UI/internal/domain/auth"
	"github.com/Esangam/Esangam-UI/internal/mocks"
)

const waitFor = 2 * time.Second

var epoch = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

type openedStream struct {
	ctx    context.Context
	mobile string
	w      *io.PipeWriter
}

type channelFixture struct {
	streamer *mocks.MockNotificationStreamer
	clock    *clockwork.FakeClock
	streams  chan openedStream
	ch       *Channel
}

func newChannelFixture(t *testing.T) *channelFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &channelFixture{
		streamer: mocks.NewMockNotificationStreamer(ctrl),
		clock:    clockwork.NewFakeClockAt(epoch),
		streams:  make(chan openedStream, 8),
	}
	var n atomic.Int64
	f.ch = NewChannel(Options{
		Streamer: f.streamer,
		Clock:    f.clock,
		RandN:    func(int64) int64 { return n.Add(1) },
	})
	t.Cleanup(f.ch.Close)
	return f
}

// expectPipes makes the next n OpenStream calls return pipes published on f.streams.
func (f *channelFixture) expectPipes(n int) {
	f.streamer.EXPECT().OpenStream(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, mobile string) (io.ReadCloser, error) {
			pr, pw := io.Pipe()
			f.streams <- openedStream{ctx: ctx, mobile: mobile, w: pw}
			return pr, nil
		}).Times(n)
}

func (f *channelFixture) next(t *testing.T) openedStream {
	t.Helper()
	select {
	case s := <-f.streams:
		return s
	case <-time.After(waitFor):
		t.Fatal("stream was not opened")
		return openedStream{}
	}
}

func (f *channelFixture) waitMessages(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return len(f.ch.Messages()) == n }, waitFor, 5*time.Millisecond)
}

func (f *channelFixture) waitState(t *testing.T, want State) {
	t.Helper()
	require.Eventually(t, func() bool { return f.ch.State() == want }, waitFor, 5*time.Millisecond)
}

func send(t *testing.T, s openedStream, frames string) {
	t.Helper()
	_, err := io.WriteString(s.w, frames)
	require.NoError(t, err)
}

func user(mobile string) *domainauth.UserIdentity {
	return &domainauth.UserIdentity{Mobile: mobile, Role: domainauth.RoleMember}
}

func texts(ch *Channel) []string {
	msgs := ch.Messages()
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Text)
	}
	return out
}

func TestChannel_StartsClosed(t *testing.T) {
	f := newChannelFixture(t)
	assert.Equal(t, StateClosed, f.ch.State())
	assert.Empty(t, f.ch.Owner())
	assert.Empty(t, f.ch.Messages())
}

func TestChannel_QueuesMessagesInArrivalOrder(t *testing.T) {
	f := newChannelFixture(t)
	f.expectPipes(1)

	f.ch.Sync(user("9999999999"))
	s := f.next(t)
	assert.Equal(t, "9999999999", s.mobile)
	assert.Equal(t, StateOpen, f.ch.State())

	send(t, s, "data: Loan approved\n\n")
	f.waitMessages(t, 1)
	f.clock.Advance(time.Second)
	send(t, s, ": keepalive\n\nevent: ping\ndata: ignored\n\ndata: Interest updated\n\n")
	f.waitMessages(t, 2)

	msgs := f.ch.Messages()
	assert.Equal(t, []string{"Loan approved", "Interest updated"}, texts(f.ch))
	assert.Equal(t, epoch.UnixMilli()*1000+1, msgs[0].ID)
	assert.Equal(t, epoch.Add(time.Second).UnixMilli()*1000+2, msgs[1].ID)
	assert.Equal(t, epoch, msgs[0].ReceivedAt)
}

func TestChannel_Dismiss(t *testing.T) {
	f := newChannelFixture(t)
	f.expectPipes(1)

	f.ch.Sync(user("9999999999"))
	s := f.next(t)
	send(t, s, "data: one\n\ndata: two\n\ndata: three\n\n")
	f.waitMessages(t, 3)

	msgs := f.ch.Messages()
	assert.True(t, f.ch.Dismiss(msgs[1].ID))
	assert.Equal(t, []string{"one", "three"}, texts(f.ch))

	assert.False(t, f.ch.Dismiss(12345))
	assert.Equal(t, []string{"one", "three"}, texts(f.ch))
}

func TestChannel_MessagesIsACopy(t *testing.T) {
	f := newChannelFixture(t)
	f.expectPipes(1)

	f.ch.Sync(user("9999999999"))
	send(t, f.next(t), "data: original\n\n")
	f.waitMessages(t, 1)

	msgs := f.ch.Messages()
	msgs[0].Text = "mutated"
	assert.Equal(t, []string{"original"}, texts(f.ch))
}

func TestChannel_TransportErrorClosesWithoutRetry(t *testing.T) {
	f := newChannelFixture(t)
	f.expectPipes(1)

	f.ch.Sync(user("9999999999"))
	s := f.next(t)
	send(t, s, "data: kept\n\n")
	f.waitMessages(t, 1)

	require.NoError(t, s.w.CloseWithError(errors.New("connection reset")))
	f.waitState(t, StateClosed)

	assert.Equal(t, []string{"kept"}, texts(f.ch))
	assert.Equal(t, "9999999999", f.ch.Owner())

	// Same identity: no new connection.
	f.ch.Sync(user("9999999999"))
	assert.Equal(t, StateClosed, f.ch.State())
}

func TestChannel_OpenFailureClosesChannel(t *testing.T) {
	f := newChannelFixture(t)
	f.streamer.EXPECT().OpenStream(gomock.Any(), "9999999999").Return(nil, errors.New("dial refused"))

	f.ch.Sync(user("9999999999"))
	f.waitState(t, StateClosed)
	assert.Equal(t, "9999999999", f.ch.Owner())
}

func TestChannel_ReopenAfterError(t *testing.T) {
	f := newChannelFixture(t)
	f.expectPipes(2)

	f.ch.Sync(user("9999999999"))
	first := f.next(t)
	send(t, first, "data: before\n\n")
	f.waitMessages(t, 1)
	require.NoError(t, first.w.Close())
	f.waitState(t, StateClosed)

	assert.True(t, f.ch.Reopen())
	second := f.next(t)
	assert.Equal(t, "9999999999", second.mobile)
	assert.False(t, f.ch.Reopen(), "already open")

	send(t, second, "data: after\n\n")
	f.waitMessages(t, 2)
	assert.Equal(t, []string{"before", "after"}, texts(f.ch))
}

func TestChannel_ReopenWithoutOwner(t *testing.T) {
	f := newChannelFixture(t)
	assert.False(t, f.ch.Reopen())
}

func TestChannel_IdentityChangeReplacesStream(t *testing.T) {
	f := newChannelFixture(t)
	f.expectPipes(2)

	f.ch.Sync(user("9999999999"))
	first := f.next(t)
	send(t, first, "data: for alpha\n\n")
	f.waitMessages(t, 1)

	f.ch.Sync(user("8888888888"))
	second := f.next(t)
	assert.Equal(t, "8888888888", second.mobile)
	assert.Empty(t, f.ch.Messages())

	select {
	case <-first.ctx.Done():
	case <-time.After(waitFor):
		t.Fatal("previous stream was not cancelled")
	}
	require.Eventually(t, func() bool {
		_, err := io.WriteString(first.w, "data: late\n\n")
		return errors.Is(err, io.ErrClosedPipe)
	}, waitFor, 5*time.Millisecond)

	send(t, second, "data: for beta\n\n")
	f.waitMessages(t, 1)
	assert.Equal(t, []string{"for beta"}, texts(f.ch))
}

func TestChannel_SyncNilCloses(t *testing.T) {
	f := newChannelFixture(t)
	f.expectPipes(1)

	f.ch.Sync(user("9999999999"))
	s := f.next(t)
	send(t, s, "data: bye\n\n")
	f.waitMessages(t, 1)

	f.ch.Sync(nil)
	assert.Equal(t, StateClosed, f.ch.State())
	assert.Empty(t, f.ch.Owner())
	assert.Empty(t, f.ch.Messages())
	<-s.ctx.Done()
}

type countingCloser struct {
	io.Reader
	closes atomic.Int32
}

func (c *countingCloser) Close() error {
	c.closes.Add(1)
	return nil
}

func TestChannel_StaleStreamMessagesIgnored(t *testing.T) {
	f := newChannelFixture(t)

	gate := make(chan struct{})
	stale := &countingCloser{Reader: strings.NewReader("data: stale\n\n")}
	f.streamer.EXPECT().OpenStream(gomock.Any(), "9999999999").
		DoAndReturn(func(context.Context, string) (io.ReadCloser, error) {
			<-gate
			return stale, nil
		})
	f.streamer.EXPECT().OpenStream(gomock.Any(), "8888888888").
		DoAndReturn(func(ctx context.Context, mobile string) (io.ReadCloser, error) {
			pr, pw := io.Pipe()
			f.streams <- openedStream{ctx: ctx, mobile: mobile, w: pw}
			return pr, nil
		})

	f.ch.Sync(user("9999999999"))
	f.ch.Sync(user("8888888888"))
	fresh := f.next(t)
	close(gate)

	// Closed once by cancellation and once on reader exit.
	require.Eventually(t, func() bool { return stale.closes.Load() >= 2 }, waitFor, 5*time.Millisecond)
	assert.Empty(t, f.ch.Messages())
	assert.Equal(t, StateOpen, f.ch.State())

	send(t, fresh, "data: fresh\n\n")
	f.waitMessages(t, 1)
	assert.Equal(t, []string{"fresh"}, texts(f.ch))
}

func TestChannel_SubscribeSignalsChanges(t *testing.T) {
	f := newChannelFixture(t)
	f.expectPipes(1)

	changes, unsubscribe := f.ch.Subscribe()
	f.ch.Sync(user("9999999999"))
	send(t, f.next(t), "data: ping me\n\n")

	select {
	case <-changes:
	case <-time.After(waitFor):
		t.Fatal("no change signal")
	}
	assert.Len(t, f.ch.Messages(), 1)

	unsubscribe()
	unsubscribe()
	_, open := <-changes
	assert.False(t, open)
}

func TestChannel_StreamFailureSignalsSubscribers(t *testing.T) {
	f := newChannelFixture(t)
	f.expectPipes(1)

	changes, unsubscribe := f.ch.Subscribe()
	defer unsubscribe()

	f.ch.Sync(user("9999999999"))
	s := f.next(t)
	send(t, s, "data: before drop\n\n")
	f.waitMessages(t, 1)
	select {
	case <-changes:
	default:
	}

	require.NoError(t, s.w.CloseWithError(errors.New("connection reset")))
	select {
	case <-changes:
	case <-time.After(waitFor):
		t.Fatal("stream failure was not signalled")
	}
	assert.Equal(t, StateClosed, f.ch.State())
}

func TestChannel_CloseIsTerminal(t *testing.T) {
	f := newChannelFixture(t)
	f.expectPipes(1)

	changes, _ := f.ch.Subscribe()
	f.ch.Sync(user("9999999999"))
	s := f.next(t)

	f.ch.Close()
	f.ch.Close()
	<-s.ctx.Done()
	assert.Equal(t, StateClosed, f.ch.State())

	for range changes {
	}

	f.ch.Sync(user("8888888888"))
	assert.Equal(t, StateClosed, f.ch.State())
	assert.False(t, f.ch.Reopen())

	late, _ := f.ch.Subscribe()
	_, open := <-late
	assert.False(t, open)
}

func TestChannel_ConcurrentAccess(t *testing.T) {
	f := newChannelFixture(t)
	f.expectPipes(1)

	f.ch.Sync(user("9999999999"))
	s := f.next(t)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			_, err := io.WriteString(s.w, "data: msg\n\n")
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			for _, m := range f.ch.Messages() {
				f.ch.Dismiss(m.ID)
			}
			_ = f.ch.State()
		}
	}()
	wg.Wait()
}

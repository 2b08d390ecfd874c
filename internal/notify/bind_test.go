package notify

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	domainauth "github.com/Esangam/Esangam-UI/internal/domain/auth"
)

type fakeSource struct {
	mu   sync.Mutex
	user *domainauth.UserIdentity
	subs map[int]func(domainauth.Session)
	next int
}

func newFakeSource(u *domainauth.UserIdentity) *fakeSource {
	return &fakeSource{user: u, subs: make(map[int]func(domainauth.Session))}
}

func (s *fakeSource) Subscribe(fn func(domainauth.Session)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *fakeSource) User() (domainauth.UserIdentity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domainauth.UserIdentity{}, false
	}
	return *s.user, true
}

func (s *fakeSource) set(u *domainauth.UserIdentity) {
	s.mu.Lock()
	s.user = u
	subs := make([]func(domainauth.Session), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(domainauth.Session{User: u})
	}
}

func TestBind_FollowsIdentity(t *testing.T) {
	f := newChannelFixture(t)
	f.expectPipes(2)
	src := newFakeSource(user("9999999999"))

	unbind := Bind(src, f.ch)
	first := f.next(t)
	assert.Equal(t, "9999999999", first.mobile)

	// A publish for the same identity keeps the stream.
	src.set(user("9999999999"))
	assert.Equal(t, StateOpen, f.ch.State())

	src.set(user("8888888888"))
	second := f.next(t)
	assert.Equal(t, "8888888888", second.mobile)

	src.set(nil)
	assert.Equal(t, StateClosed, f.ch.State())
	assert.Empty(t, f.ch.Owner())

	unbind()
	src.set(user("7777777777"))
	assert.Equal(t, StateClosed, f.ch.State())
	assert.Empty(t, f.ch.Owner())
}

func TestBind_ReadsCurrentUserNotSnapshot(t *testing.T) {
	f := newChannelFixture(t)
	f.streamer.EXPECT().OpenStream(gomock.Any(), gomock.Any()).Times(0)
	src := newFakeSource(nil)

	unbind := Bind(src, f.ch)
	defer unbind()

	// Stale snapshot carrying an identity the source no longer holds.
	src.mu.Lock()
	subs := make([]func(domainauth.Session), 0, len(src.subs))
	for _, fn := range src.subs {
		subs = append(subs, fn)
	}
	src.mu.Unlock()
	for _, fn := range subs {
		fn(domainauth.Session{User: user("9999999999")})
	}

	assert.Equal(t, StateClosed, f.ch.State())
	assert.Empty(t, f.ch.Owner())
}

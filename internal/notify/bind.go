package notify

import domainauth "github.com/Esangam/Esangam-UI/internal/domain/auth"

// SessionSource is the part of a session manager the channel follows.
type SessionSource interface {
	Subscribe(fn func(domainauth.Session)) (unsubscribe func())
	User() (domainauth.UserIdentity, bool)
}

// Bind keeps ch in step with the identity held by src and returns a function that stops it.
// The user is read from src on every change rather than from the published snapshot,
// so a late callback cannot resurrect an identity that has already been replaced.
func Bind(src SessionSource, ch *Channel) (unbind func()) {
	sync := func() {
		if u, ok := src.User(); ok {
			ch.Sync(&u)
			return
		}
		ch.Sync(nil)
	}
	unsubscribe := src.Subscribe(func(domainauth.Session) { sync() })
	sync()
	return unsubscribe
}

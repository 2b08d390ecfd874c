package config

import (
	"strings"
	"time"
)

const minSessionSecretLen = 32

// AuthConfig groups browser session and login configuration.
type AuthConfig struct {
	// SessionSecret signs the browser id cookie. Required outside dev mode.
	SessionSecret string `env:"SESSION_SECRET"`

	// SessionMaxAge is the lifetime of the browser id cookie.
	SessionMaxAge time.Duration `env:"SESSION_MAX_AGE" envDefault:"168h"`

	// IdleTimeout evicts in-memory browser sessions that have not been seen for this long.
	// The persisted token is kept and restored on the next request.
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`

	// RestoreWait bounds how long a request waits for a session restore before rendering "Loading...".
	RestoreWait time.Duration `env:"RESTORE_WAIT" envDefault:"2s"`

	// LoginRate is the sustained number of login attempts per second allowed per browser.
	LoginRate float64 `env:"LOGIN_RATE" envDefault:"0.2"`

	// LoginBurst is the number of login attempts allowed in a burst per browser.
	LoginBurst int `env:"LOGIN_BURST" envDefault:"5"`
}

// Sanitize applies guardrails to session configuration values.
func (a *AuthConfig) Sanitize() {
	a.SessionSecret = strings.TrimSpace(a.SessionSecret)
	if a.SessionMaxAge <= 0 {
		a.SessionMaxAge = 168 * time.Hour
	}
	if a.IdleTimeout <= 0 {
		a.IdleTimeout = 30 * time.Minute
	}
	if a.RestoreWait <= 0 {
		a.RestoreWait = 2 * time.Second
	}
	if a.RestoreWait > 30*time.Second {
		a.RestoreWait = 30 * time.Second
	}
	if a.LoginRate <= 0 {
		a.LoginRate = 0.2
	}
	if a.LoginBurst < 1 {
		a.LoginBurst = 1
	}
}

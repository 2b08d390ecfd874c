package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// BackendConfig contains the Sangam backend client configuration.
type BackendConfig struct {
	// URL is the base URL of the Sangam REST backend.
	URL string `env:"URL" envDefault:"http://localhost:8081"`

	// Timeout bounds every non-streaming backend request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`

	// Breaker configures the circuit breaker in front of the backend.
	Breaker BreakerConfig `envPrefix:"BREAKER_"`
}

// BreakerConfig configures the backend circuit breaker.
type BreakerConfig struct {
	// ConsecutiveFailures trips the breaker after this many failures in a row.
	ConsecutiveFailures uint32 `env:"FAILURES" envDefault:"5"`
	// OpenTimeout is how long the breaker stays open before probing.
	OpenTimeout time.Duration `env:"OPEN_TIMEOUT" envDefault:"30s"`
	// Interval clears failure counts while closed. Zero never clears.
	Interval time.Duration `env:"INTERVAL" envDefault:"60s"`
	// HalfOpenRequests is the number of probes allowed while half-open.
	HalfOpenRequests uint32 `env:"HALF_OPEN_REQUESTS" envDefault:"1"`
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	b.URL = strings.TrimRight(strings.TrimSpace(b.URL), "/")
	if b.Timeout <= 0 {
		b.Timeout = 10 * time.Second
	}
	if b.Breaker.ConsecutiveFailures == 0 {
		b.Breaker.ConsecutiveFailures = 5
	}
	if b.Breaker.OpenTimeout <= 0 {
		b.Breaker.OpenTimeout = 30 * time.Second
	}
	if b.Breaker.Interval < 0 {
		b.Breaker.Interval = 0
	}
	if b.Breaker.HalfOpenRequests == 0 {
		b.Breaker.HalfOpenRequests = 1
	}
}

// Validate checks that the backend URL is usable.
func (b *BackendConfig) Validate() error {
	if b.URL == "" {
		return errors.New("BACKEND_URL is required")
	}
	u, err := url.Parse(b.URL)
	if err != nil {
		return fmt.Errorf("BACKEND_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("BACKEND_URL must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("BACKEND_URL must have a host")
	}
	return nil
}

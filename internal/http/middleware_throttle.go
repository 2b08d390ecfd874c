package httpx

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"

	"github.com/Esangam/Esangam-UI/internal/observability/metrics"
)

const throttleExpiry = 5 * time.Minute

// ThrottleConfig configures per-client limits on credential endpoints.
type ThrottleConfig struct {
	Rate  rate.Limit
	Burst int
	Clock clockwork.Clock
	// OnReject renders the rejection for browsers. API clients always get JSON.
	OnReject http.Handler
}

type throttleEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Throttle limits requests per browser, falling back to client IP when no browser
// session is attached. Rejected requests get 429 with Retry-After. A zero Rate disables limiting.
func Throttle(cfg ThrottleConfig) func(http.Handler) http.Handler {
	if cfg.Rate <= 0 {
		cfg.Rate = rate.Inf
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*throttleEntry)
	)
	allow := func(key string) (bool, time.Duration) {
		now := cfg.Clock.Now()
		mu.Lock()
		defer mu.Unlock()
		for k, e := range clients {
			if now.Sub(e.lastSeen) > throttleExpiry {
				delete(clients, k)
			}
		}
		e, ok := clients[key]
		if !ok {
			e = &throttleEntry{limiter: rate.NewLimiter(cfg.Rate, cfg.Burst)}
			clients[key] = e
		}
		e.lastSeen = now
		res := e.limiter.ReserveN(now, 1)
		if !res.OK() {
			return false, throttleExpiry
		}
		if d := res.DelayFrom(now); d > 0 {
			res.CancelAt(now)
			return false, d
		}
		return true, 0
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, wait := allow(throttleKey(r))
			if ok {
				next.ServeHTTP(w, r)
				return
			}
			metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
			retryAfter(w, wait)
			if cfg.OnReject != nil && IsBrowserRequest(r) {
				cfg.OnReject.ServeHTTP(w, r)
				return
			}
			WriteJSON(w, http.StatusTooManyRequests, map[string]string{
				"error":   "rate_limited",
				"message": "too many attempts, try again shortly",
			})
		})
	}
}

func throttleKey(r *http.Request) string {
	if bs, ok := GetBrowserSessionFromContext(r.Context()); ok {
		return "browser:" + bs.ID
	}
	return "ip:" + clientIP(r)
}

// clientIP prefers the first X-Forwarded-For hop, then RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

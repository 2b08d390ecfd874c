package httpx

import (
	"net/http"
	"time"

	domainauth "github.com/Esangam/Esangam-UI/internal/domain/auth"
	"github.com/Esangam/Esangam-UI/internal/observability/metrics"
)

// loadingRetry is how long clients are asked to wait while a session restores.
const loadingRetry = time.Second

// RequirePolicy guards a route with policy, evaluated against the request's session.
// Browsers are redirected (login or home) or shown the loading page; API clients get
// 401, 403 or 503 JSON respectively. onLoading may be nil.
func RequirePolicy(policy domainauth.Policy, onLoading http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := domainauth.Decide(SessionSnapshot(r.Context()), policy)
			if !policy.IsPublic() {
				metrics.GuardDecisionsTotal.WithLabelValues(decision.String()).Inc()
			}

			switch decision {
			case domainauth.DecisionRender:
				next.ServeHTTP(w, r)
			case domainauth.DecisionLoading:
				retryAfter(w, loadingRetry)
				if IsBrowserRequest(r) && onLoading != nil {
					onLoading.ServeHTTP(w, r)
					return
				}
				WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
					"error":   "session_loading",
					"message": "session is being restored",
				})
			case domainauth.DecisionLogin:
				if IsBrowserRequest(r) {
					redirectTo(w, r, decision.Location())
					return
				}
				WriteJSON(w, http.StatusUnauthorized, map[string]string{
					"error":   "unauthorized",
					"message": "login required",
				})
			case domainauth.DecisionHome:
				if IsBrowserRequest(r) {
					redirectTo(w, r, decision.Location())
					return
				}
				WriteJSON(w, http.StatusForbidden, map[string]string{
					"error":   "forbidden",
					"message": "role not permitted",
				})
			}
		})
	}
}

package httpx

import (
	"io"
	"net/http"
)

// healthHandler answers load balancer health checks. It never calls the backend, so a
// backend outage does not take the front-end out of rotation.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	}
}

// Package metrics exposes the Prometheus collectors for the front-end.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	obserrors "github.com/Esangam/Esangam-UI/internal/observability/errors"
)

// Result constants for metric labels.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Backend client metrics
var (
	// BackendRequestsTotal tracks calls to the Sangam backend by endpoint and result
	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "esangam_backend_requests_total",
			Help: "Total backend requests by endpoint and result",
		},
		[]string{"endpoint", "result"},
	)

	// BackendRequestDuration tracks backend call latency in seconds
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "esangam_backend_request_duration_seconds",
			Help:    "Backend request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"endpoint"},
	)

	// BackendErrorsTotal tracks backend failures by endpoint and error class
	BackendErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "esangam_backend_errors_total",
			Help: "Backend request failures by endpoint and error class",
		},
		[]string{"endpoint", "error_class"},
	)

	// CircuitBreakerState tracks current breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "esangam_circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)

// Session and notification metrics
var (
	// SessionsActive tracks browser sessions held by the registry
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "esangam_sessions_active",
			Help: "Browser sessions currently held in memory",
		},
	)

	// LoginAttemptsTotal tracks login outcomes
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "esangam_login_attempts_total",
			Help: "Login attempts by result (success, failed, identity_unavailable, throttled)",
		},
		[]string{"result"},
	)

	// GuardDecisionsTotal tracks route guard outcomes
	GuardDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "esangam_guard_decisions_total",
			Help: "Route guard decisions by outcome (render, loading, login, home)",
		},
		[]string{"decision"},
	)

	// NotificationStreamsOpen tracks open backend notification streams
	NotificationStreamsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "esangam_notification_streams_open",
			Help: "Notification streams currently open against the backend",
		},
	)

	// NotificationMessagesTotal tracks messages received from notification streams
	NotificationMessagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "esangam_notification_messages_total",
			Help: "Notification messages received",
		},
	)

	// NotificationStreamErrorsTotal tracks streams that closed on a transport error
	NotificationStreamErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "esangam_notification_stream_errors_total",
			Help: "Notification streams closed by a transport error",
		},
	)
)

// HTTP server metrics
var (
	// HTTPRequestsTotal tracks served requests by method, route pattern and status class
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "esangam_http_requests_total",
			Help: "HTTP requests served by method, route and status class",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "esangam_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// ObserveBackendCall records the outcome of one backend request.
func ObserveBackendCall(endpoint string, elapsed time.Duration, err error) {
	BackendRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	if err == nil {
		BackendRequestsTotal.WithLabelValues(endpoint, ResultSuccess).Inc()
		return
	}
	BackendRequestsTotal.WithLabelValues(endpoint, ResultError).Inc()
	BackendErrorsTotal.WithLabelValues(endpoint, obserrors.Classify(err)).Inc()
}

// StatusClass collapses an HTTP status into "2xx", "3xx" and so on.
func StatusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}

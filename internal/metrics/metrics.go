// Package metrics exposes Prometheus collectors for the HTTP layer and the
// authentication pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Authentication operations.
const (
	OpRegister = "register"
	OpLogin    = "login"
)

// Operation outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	httpBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.2, 0.5, 1, 2, 5}
	// bcrypt dominates authentication latency
	authBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.2, 0.3, 0.5, 1, 2}
)

// HTTPMetrics tracks request counts and latency by route template.
type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewHTTPMetrics registers HTTP collectors on reg.
func NewHTTPMetrics(namespace string, reg prometheus.Registerer) *HTTPMetrics {
	factory := promauto.With(reg)

	return &HTTPMetrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Count of HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Latency histogram of HTTP requests by route and method",
				Buckets:   httpBuckets,
			},
			[]string{"route", "method"},
		),
	}
}

// Record stores one finished request.
func (m *HTTPMetrics) Record(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// AuthMetrics tracks registration and login outcomes.
type AuthMetrics struct {
	Attempts *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewAuthMetrics registers authentication collectors on reg.
func NewAuthMetrics(namespace string, reg prometheus.Registerer) *AuthMetrics {
	factory := promauto.With(reg)

	return &AuthMetrics{
		Attempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_attempts_total",
				Help:      "Count of registration and login attempts by outcome",
			},
			[]string{"operation", "outcome"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "auth_duration_seconds",
				Help:      "Latency histogram of registration and login",
				Buckets:   authBuckets,
			},
			[]string{"operation", "outcome"},
		),
	}
}

// Observe records one authentication attempt. Safe on a nil receiver.
func (m *AuthMetrics) Observe(operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Attempts.WithLabelValues(operation, outcome).Inc()
	m.Duration.WithLabelValues(operation, outcome).Observe(d.Seconds())
}

// Handler exposes the collectors registered on g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

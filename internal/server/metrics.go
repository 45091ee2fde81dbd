package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agbru/fibdev/internal/metrics"
)

// Metrics holds the HTTP metrics. They live in the registry of the device
// Recorder so /metrics exposes both.
type Metrics struct {
	recorder *metrics.Recorder
	handler  http.Handler

	activeRequests  prometheus.Gauge
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates HTTP metrics in a fresh Recorder.
func NewMetrics() *Metrics {
	return NewMetricsFor(metrics.New())
}

// NewMetricsFor registers the HTTP metrics in rec's registry.
func NewMetricsFor(rec *metrics.Recorder) *Metrics {
	m := &Metrics{
		recorder: rec,
		handler:  rec.Handler(),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: "http",
			Name:      "active_requests",
			Help:      "Requests currently being served.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Requests served, by method and status code.",
		}, []string{"method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	rec.Registry().MustRegister(m.activeRequests, m.requestsTotal, m.requestDuration)
	return m
}

// Recorder returns the device recorder backing these metrics.
func (m *Metrics) Recorder() *metrics.Recorder { return m.recorder }

// IncrementActiveRequests increments the in-flight gauge.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests decrements the in-flight gauge.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// ObserveRequest records a finished request.
func (m *Metrics) ObserveRequest(method string, code int, d time.Duration) {
	m.requestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(method).Observe(d.Seconds())
}

// WritePrometheus serves the registry in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware tracks in-flight requests, status codes and latency.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next(rec, r)
		s.metrics.ObserveRequest(r.Method, rec.status, time.Since(start))
	}
}

// handleMetrics serves GET /metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}
	s.metrics.WritePrometheus(w, r)
}

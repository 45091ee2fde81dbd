package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/fibdev/internal/logging"
	"github.com/agbru/fibdev/internal/metrics"
)

// scrape returns the text exposition served by m.
func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.WritePrometheus(w, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()
	require.NotNil(t, m)
	assert.NotNil(t, m.Recorder())

	body := scrape(t, m)
	assert.Contains(t, body, "fibdev_http_active_requests 0")
	assert.Contains(t, body, "fibdev_session_active 0")
	assert.Contains(t, body, "go_goroutines")
}

func TestNewMetricsForSharesDeviceRegistry(t *testing.T) {
	rec := metrics.New()
	m := NewMetricsFor(rec)
	assert.Same(t, rec, m.Recorder())

	m.IncrementActiveRequests()
	m.IncrementActiveRequests()
	m.DecrementActiveRequests()

	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	assert.Contains(t, w.Body.String(), "fibdev_http_active_requests 1")
}

func TestObserveRequest(t *testing.T) {
	m := NewMetrics()
	m.ObserveRequest(http.MethodPost, http.StatusCreated, 2*time.Millisecond)
	m.ObserveRequest(http.MethodPost, http.StatusConflict, time.Millisecond)
	m.ObserveRequest(http.MethodPost, http.StatusConflict, time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `fibdev_http_requests_total{code="201",method="POST"} 1`)
	assert.Contains(t, body, `fibdev_http_requests_total{code="409",method="POST"} 2`)
	assert.Contains(t, body, `fibdev_http_request_duration_seconds_count{method="POST"} 3`)
}

func TestMetricsMiddleware(t *testing.T) {
	s := &Server{metrics: NewMetrics(), logger: logging.NopLogger{}}

	var inFlight string
	h := s.metricsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		inFlight = scrape(t, s.metrics)
		w.WriteHeader(http.StatusInsufficientStorage)
	})
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/v1/session/x/write", http.NoBody))

	assert.Equal(t, http.StatusInsufficientStorage, w.Code)
	assert.Contains(t, inFlight, "fibdev_http_active_requests 1")

	after := scrape(t, s.metrics)
	assert.Contains(t, after, `fibdev_http_requests_total{code="507",method="GET"} 1`)
	assert.Contains(t, after, "fibdev_http_active_requests 0")
}

func TestMetricsMiddlewareDefaultsToOK(t *testing.T) {
	s := &Server{metrics: NewMetrics(), logger: logging.NopLogger{}}
	h := s.metricsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

	assert.Contains(t, scrape(t, s.metrics), `fibdev_http_requests_total{code="200",method="GET"} 1`)
}

func TestHandleMetrics(t *testing.T) {
	s := &Server{metrics: NewMetrics(), logger: logging.NopLogger{}}

	w := httptest.NewRecorder()
	s.handleMetrics(w, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fibdev_session_active")

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		w := httptest.NewRecorder()
		s.handleMetrics(w, httptest.NewRequest(method, "/metrics", http.NoBody))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
		assert.JSONEq(t, `{"error":"method not allowed"}`, w.Body.String(), method)
	}
}

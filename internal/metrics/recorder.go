package metrics

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/agbru/fibdev/internal/errors"
	"github.com/agbru/fibdev/internal/fibdev"
)

// Namespace prefixes every metric exported by this package.
const Namespace = "fibdev"

var _ fibdev.Observer = (*Recorder)(nil)

// Recorder records device events. It implements fibdev.Observer.
type Recorder struct {
	registry *prometheus.Registry

	OpensTotal      *prometheus.CounterVec
	ReleasesTotal   *prometheus.CounterVec
	SessionActive   prometheus.Gauge
	SeeksTotal      prometheus.Counter
	Position        prometheus.Gauge
	WritesTotal     *prometheus.CounterVec
	ComputeDuration prometheus.Histogram
}

// New creates a Recorder with a fresh registry holding the device metrics
// and the Go runtime collector.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		OpensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "opens_total",
				Help:      "Open attempts by result (ok, busy).",
			},
			[]string{"result"},
		),
		ReleasesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "releases_total",
				Help:      "Releases, labelled by whether a session was held.",
			},
			[]string{"held"},
		),
		SessionActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "session_active",
			Help:      "1 while a session is held.",
		}),
		SeeksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "seeks_total",
			Help:      "Seek operations.",
		}),
		Position: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "position",
			Help:      "Position after the last seek.",
		}),
		WritesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "writes_total",
				Help:      "Write operations by result (ok, enomem, efault).",
			},
			[]string{"result"},
		),
		ComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "compute_duration_seconds",
			Help:      "Time spent in the fast-doubling computation per write.",
			Buckets:   prometheus.ExponentialBuckets(1e-8, 4, 12),
		}),
	}

	r.registry.MustRegister(
		r.OpensTotal,
		r.ReleasesTotal,
		r.SessionActive,
		r.SeeksTotal,
		r.Position,
		r.WritesTotal,
		r.ComputeDuration,
		collectors.NewGoCollector(),
	)
	return r
}

// Registry returns the registry so other components can add their own
// collectors next to the device metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) SessionOpened() {
	r.OpensTotal.WithLabelValues("ok").Inc()
	r.SessionActive.Set(1)
}

func (r *Recorder) SessionBusy() {
	r.OpensTotal.WithLabelValues("busy").Inc()
}

func (r *Recorder) SessionReleased(wasHeld bool) {
	r.ReleasesTotal.WithLabelValues(strconv.FormatBool(wasHeld)).Inc()
	r.SessionActive.Set(0)
}

func (r *Recorder) Seeked(position int64) {
	r.SeeksTotal.Inc()
	r.Position.Set(float64(position))
}

func (r *Recorder) Wrote(_, elapsedNs int64, err error) {
	r.WritesTotal.WithLabelValues(writeResult(err)).Inc()
	r.ComputeDuration.Observe(float64(elapsedNs) / 1e9)
}

func writeResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperrors.ErrOutOfMemory):
		return "enomem"
	case errors.Is(err, apperrors.ErrFault):
		return "efault"
	}
	return "error"
}

package control

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the control API collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
	inFlight prometheus.Gauge
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "datedir",
				Subsystem: "control",
				Name:      "requests_total",
				Help:      "Control API requests by operation and status code.",
			},
			[]string{"operation", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "datedir",
				Subsystem: "control",
				Name:      "request_duration_seconds",
				Help:      "Time spent serving control API requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "datedir",
				Subsystem: "control",
				Name:      "operation_failures_total",
				Help:      "Failed operations by error kind.",
			},
			[]string{"operation", "error_type"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "datedir",
				Subsystem: "control",
				Name:      "requests_in_flight",
				Help:      "Requests currently holding a worker slot.",
			},
		),
	}
	reg.MustRegister(
		m.requests,
		m.duration,
		m.failures,
		m.inFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and embedding.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

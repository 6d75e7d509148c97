// Package metrics exposes Prometheus counters for the HTTP server and the
// progress store.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dsa_sheet"

// Metrics holds the collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	requests          *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	mutations         *prometheus.CounterVec
	slotWriteFailures prometheus.Counter
	searches          *prometheus.CounterVec
	wsClients         prometheus.Gauge
}

// New registers all collectors, plus the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route"}),
		mutations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "progress",
			Name:      "mutations_total",
			Help:      "Progress mutations by kind",
		}, []string{"kind"}),
		slotWriteFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "progress",
			Name:      "slot_write_failures_total",
			Help:      "Progress mutations whose slot write failed",
		}),
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "queries_total",
			Help:      "Search queries by result (hit, miss, blank)",
		}, []string{"result"}),
		wsClients: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ws",
			Name:      "clients",
			Help:      "Connected change feed clients",
		}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(route string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveMutation records one progress mutation.
func (m *Metrics) ObserveMutation(kind string, persisted bool) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(kind).Inc()
	if !persisted {
		m.slotWriteFailures.Inc()
	}
}

// ObserveSearch records a search. searched is false for blank queries.
func (m *Metrics) ObserveSearch(searched bool, hits int) {
	if m == nil {
		return
	}
	switch {
	case !searched:
		m.searches.WithLabelValues("blank").Inc()
	case hits == 0:
		m.searches.WithLabelValues("miss").Inc()
	default:
		m.searches.WithLabelValues("hit").Inc()
	}
}

// WSClients adjusts the connected client gauge by delta.
func (m *Metrics) WSClients(delta int) {
	if m == nil {
		return
	}
	m.wsClients.Add(float64(delta))
}

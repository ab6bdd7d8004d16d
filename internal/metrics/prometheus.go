package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/fibhost/internal/host"
)

const namespace = "fibhost"

// Metrics holds the Prometheus collectors of one process. Each instance owns
// its registry so that tests can create as many as they need.
type Metrics struct {
	registry       *prometheus.Registry
	handler        http.Handler
	calls          *prometheus.CounterVec
	callErrors     *prometheus.CounterVec
	callDuration   *prometheus.HistogramVec
	lastIndex      *prometheus.GaugeVec
	libraryVersion prometheus.Gauge
	activeRequests prometheus.Gauge
	requestsTotal  *prometheus.CounterVec
}

var _ host.Observer = (*Metrics)(nil)

// NewMetrics creates and registers every collector, including the Go runtime
// and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "library_calls_total",
			Help:      "Library calls by operation.",
		}, []string{"op"}),
		callErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "library_call_errors_total",
			Help:      "Library calls that returned an error, by operation.",
		}, []string{"op"}),
		callDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "library_call_duration_seconds",
			Help:      "Duration of library calls by operation.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 10, 9),
		}, []string{"op"}),
		lastIndex: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "library_last_index",
			Help:      "Index passed to the most recent call, by operation.",
		}, []string{"op"}),
		libraryVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "library_version",
			Help:      "Version tag of the loaded library.",
		}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_requests",
			Help:      "HTTP requests currently being served.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "HTTP requests served, by path.",
		}, []string{"path"}),
	}

	reg.MustRegister(
		m.calls, m.callErrors, m.callDuration, m.lastIndex,
		m.libraryVersion, m.activeRequests, m.requestsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m
}

// Observe records one library call event.
func (m *Metrics) Observe(ev host.Event) {
	op := string(ev.Op)
	m.calls.WithLabelValues(op).Inc()
	m.callDuration.WithLabelValues(op).Observe(ev.Duration.Seconds())
	m.lastIndex.WithLabelValues(op).Set(float64(ev.Index))
	if ev.Err != nil {
		m.callErrors.WithLabelValues(op).Inc()
	}
}

// SetLibraryVersion records the version of the loaded library.
func (m *Metrics) SetLibraryVersion(v uint16) {
	m.libraryVersion.Set(float64(v))
}

// IncrementActiveRequests marks the start of an HTTP request.
func (m *Metrics) IncrementActiveRequests() { m.activeRequests.Inc() }

// DecrementActiveRequests marks the end of an HTTP request.
func (m *Metrics) DecrementActiveRequests() { m.activeRequests.Dec() }

// CountRequest counts a served HTTP request.
func (m *Metrics) CountRequest(path string) { m.requestsTotal.WithLabelValues(path).Inc() }

// WritePrometheus serves the registry in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

package metric

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every featherserve metric.
const Namespace = "featherserve"

// Reasons a connection is closed without being served.
const (
	RejectQueueFull   = "queue_full"
	RejectRateLimited = "rate_limited"
	RejectShutdown    = "shutdown"
)

// Registry holds all application metrics.
//
// Each Registry owns its own prometheus.Registry, so tests can create as
// many as they like without duplicate registration panics.
type Registry struct {
	registry *prometheus.Registry

	// Connection metrics
	ConnectionsAccepted *prometheus.CounterVec
	ConnectionsActive   prometheus.Gauge
	ConnectionsRejected *prometheus.CounterVec
	AcceptErrors        *prometheus.CounterVec
	HandshakeFailures   prometheus.Counter
	RateLimitClients    prometheus.Gauge

	// Worker pool metrics
	QueueDepth prometheus.Gauge
	Workers    prometheus.Gauge

	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	BadRequests     prometheus.Counter
	RequestDuration *prometheus.HistogramVec
	ResponseBytes   prometheus.Counter
	HoneypotHits    *prometheus.CounterVec

	// Asset cache metrics
	CacheReloads prometheus.Counter
}

// NewRegistry creates a registry with Go runtime and process collectors
// and all featherserve metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)
	r := &Registry{registry: reg}
	r.initConnectionMetrics(factory)
	r.initRequestMetrics(factory)
	return r
}

func (r *Registry) initConnectionMetrics(factory promauto.Factory) {
	r.ConnectionsAccepted = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "connections_accepted_total",
		Help:      "Connections accepted, by listener address.",
	}, []string{"listener"})

	r.ConnectionsActive = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "connections_active",
		Help:      "Connections currently being served by a worker.",
	})

	r.ConnectionsRejected = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "connections_rejected_total",
		Help:      "Connections closed without being served, by reason.",
	}, []string{"reason"})

	r.AcceptErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "accept_errors_total",
		Help:      "Accept failures, by listener address.",
	}, []string{"listener"})

	r.HandshakeFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "tls_handshake_failures_total",
		Help:      "TLS handshakes that failed.",
	})

	r.RateLimitClients = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "ratelimit_clients",
		Help:      "Client IPs with a live rate limit bucket.",
	})

	r.QueueDepth = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "worker_queue_depth",
		Help:      "Accepted connections waiting for a worker.",
	})

	r.Workers = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "workers",
		Help:      "Size of the worker pool.",
	})
}

func (r *Registry) initRequestMetrics(factory promauto.Factory) {
	r.RequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Requests answered, by disposition.",
	}, []string{"disposition"})

	r.BadRequests = factory.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "bad_requests_total",
		Help:      "Connections closed because the request could not be parsed.",
	})

	r.RequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Time from first byte read to response written.",
		Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 16), // 50µs to ~1.6s
	}, []string{"disposition"})

	r.ResponseBytes = factory.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "response_bytes_total",
		Help:      "Bytes written in responses, headers included.",
	})

	r.HoneypotHits = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "honeypot_hits_total",
		Help:      "Probe requests answered with decoy content, by category.",
	}, []string{"category"})

	r.CacheReloads = factory.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "cache_reloads_total",
		Help:      "Asset cache rebuilds published.",
	})
}

// MustRegister registers additional collectors.
func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	r.registry.MustRegister(cs...)
}

// Gatherer exposes the underlying registry for tests and custom handlers.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RecordReject counts a connection closed without service.
func (r *Registry) RecordReject(reason string) {
	r.ConnectionsRejected.WithLabelValues(reason).Inc()
}

// RecordRequest counts an answered request and its latency.
func (r *Registry) RecordRequest(disposition string, seconds float64, bytes int) {
	r.RequestsTotal.WithLabelValues(disposition).Inc()
	r.RequestDuration.WithLabelValues(disposition).Observe(seconds)
	r.ResponseBytes.Add(float64(bytes))
}

// RecordHoneypot counts a decoy response.
func (r *Registry) RecordHoneypot(category string) {
	r.HoneypotHits.WithLabelValues(category).Inc()
}

var (
	globalOnce     sync.Once
	globalRegistry *Registry
)

// Global returns the process-wide registry.
func Global() *Registry {
	globalOnce.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// Handler returns the /metrics handler of the global registry.
func Handler() http.Handler {
	return Global().Handler()
}

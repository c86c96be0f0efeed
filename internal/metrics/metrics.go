// Package metrics implements the observability hooks with Prometheus
// collectors and exposes them over HTTP.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/kryptos/pkg/observability"
)

const namespace = "kryptos"

// Metrics owns a registry and the collectors fed by the hooks.
type Metrics struct {
	registry *prometheus.Registry

	builds        prometheus.Counter
	buildDuration prometheus.Histogram
	gridRows      prometheus.Histogram
	rejects       *prometheus.CounterVec

	storeLookups    *prometheus.CounterVec
	storeWrites     *prometheus.CounterVec
	storeWriteBytes *prometheus.CounterVec

	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	upstreamErrors   *prometheus.CounterVec
}

// New creates the collectors on a fresh registry that also carries the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		builds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "grid", Name: "builds_total",
			Help: "Grids built.",
		}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "grid", Name: "build_duration_seconds",
			Help:    "Time to build a grid and both readouts.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		gridRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "grid", Name: "rows",
			Help:    "Rows per built grid.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		rejects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "grid", Name: "rejected_total",
			Help: "Requests refused before building, by error code.",
		}, []string{"reason"}),
		storeLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "kv", Name: "lookups_total",
			Help: "Key-value lookups by source and result.",
		}, []string{"source", "result"}),
		storeWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "kv", Name: "writes_total",
			Help: "Key-value writes by source.",
		}, []string{"source"}),
		storeWriteBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "kv", Name: "write_bytes_total",
			Help: "Bytes written to the key-value store by source.",
		}, []string{"source"}),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "upstream", Name: "responses_total",
			Help: "Responses from external services by status code.",
		}, []string{"method", "host", "status"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "upstream", Name: "request_duration_seconds",
			Help:    "Latency of requests to external services.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "host"}),
		upstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "upstream", Name: "errors_total",
			Help: "Requests to external services that failed without a response.",
		}, []string{"method", "host"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.builds, m.buildDuration, m.gridRows, m.rejects,
		m.storeLookups, m.storeWrites, m.storeWriteBytes,
		m.upstreamRequests, m.upstreamDuration, m.upstreamErrors,
	)
	return m
}

// Install registers m as the global engine, store and HTTP hooks.
func (m *Metrics) Install() {
	observability.SetEngineHooks(engineHooks{m})
	observability.SetStoreHooks(storeHooks{m})
	observability.SetHTTPHooks(httpHooks{m})
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

type engineHooks struct{ m *Metrics }

func (h engineHooks) OnBuild(_ context.Context, _, rows int, d time.Duration) {
	h.m.builds.Inc()
	h.m.buildDuration.Observe(d.Seconds())
	h.m.gridRows.Observe(float64(rows))
}

func (h engineHooks) OnReject(_ context.Context, reason string) {
	if reason == "" {
		reason = "unknown"
	}
	h.m.rejects.WithLabelValues(reason).Inc()
}

type storeHooks struct{ m *Metrics }

func (h storeHooks) OnStoreHit(_ context.Context, source string) {
	h.m.storeLookups.WithLabelValues(source, "hit").Inc()
}

func (h storeHooks) OnStoreMiss(_ context.Context, source string) {
	h.m.storeLookups.WithLabelValues(source, "miss").Inc()
}

func (h storeHooks) OnStoreSet(_ context.Context, source string, size int) {
	h.m.storeWrites.WithLabelValues(source).Inc()
	h.m.storeWriteBytes.WithLabelValues(source).Add(float64(size))
}

type httpHooks struct{ m *Metrics }

func (httpHooks) OnRequest(context.Context, string, string, string) {}

func (h httpHooks) OnResponse(_ context.Context, method, host, _ string, status int, d time.Duration) {
	h.m.upstreamRequests.WithLabelValues(method, host, strconv.Itoa(status)).Inc()
	h.m.upstreamDuration.WithLabelValues(method, host).Observe(d.Seconds())
}

func (h httpHooks) OnError(_ context.Context, method, host, _ string, _ error) {
	h.m.upstreamErrors.WithLabelValues(method, host).Inc()
}

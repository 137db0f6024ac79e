package server

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/permnet/pkg/observability"
)

// Metrics holds the Prometheus collectors for the API. It implements the
// pipeline, cache and HTTP hook interfaces; install it with [Metrics.Install].
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	synthesized     *prometheus.CounterVec
	synthDuration   prometheus.Histogram
	synthSize       prometheus.Histogram
	renders         *prometheus.CounterVec
	renderDuration  prometheus.Histogram
	cacheEvents     *prometheus.CounterVec
	cacheBytes      *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "permnet",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "permnet",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		synthesized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "permnet",
			Name:      "synthesize_total",
			Help:      "Networks synthesized, by result.",
		}, []string{"result"}),
		synthDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "permnet",
			Name:      "synthesize_duration_seconds",
			Help:      "Time to build and verify one network.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
		synthSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "permnet",
			Name:      "synthesize_size",
			Help:      "Permutation sizes submitted for synthesis.",
			Buckets:   prometheus.ExponentialBuckets(2, 2, 16),
		}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "permnet",
			Name:      "render_total",
			Help:      "Render calls, by result.",
		}, []string{"result"}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "permnet",
			Name:      "render_duration_seconds",
			Help:      "Time to render all requested formats of one network.",
			Buckets:   prometheus.DefBuckets,
		}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "permnet",
			Name:      "cache_events_total",
			Help:      "Cache hits, misses and writes by entry kind.",
		}, []string{"kind", "event"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "permnet",
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache by entry kind.",
		}, []string{"kind"}),
	}

	for _, c := range []prometheus.Collector{
		m.requests, m.requestDuration,
		m.synthesized, m.synthDuration, m.synthSize,
		m.renders, m.renderDuration,
		m.cacheEvents, m.cacheBytes,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Install registers m as the process-wide observability hooks.
func (m *Metrics) Install() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnSynthesizeStart(_ context.Context, n int) {
	m.synthSize.Observe(float64(n))
}

func (m *Metrics) OnSynthesizeComplete(_ context.Context, _, _ int, d time.Duration, err error) {
	m.synthesized.WithLabelValues(result(err)).Inc()
	m.synthDuration.Observe(d.Seconds())
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	m.renders.WithLabelValues(result(err)).Inc()
	m.renderDuration.Observe(d.Seconds())
}

func (m *Metrics) OnCacheHit(_ context.Context, kind string) {
	m.cacheEvents.WithLabelValues(kind, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, kind string) {
	m.cacheEvents.WithLabelValues(kind, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, kind string, size int) {
	m.cacheEvents.WithLabelValues(kind, "set").Inc()
	m.cacheBytes.WithLabelValues(kind).Add(float64(size))
}

func (m *Metrics) OnRequest(context.Context, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)

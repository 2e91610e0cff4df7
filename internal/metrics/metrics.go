// Package metrics defines the prometheus collectors shared across the server.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ukdata"

// Metrics holds all collectors registered against one registry.
type Metrics struct {
	registry *prometheus.Registry

	cacheLookups     *prometheus.CounterVec
	cacheWrites      *prometheus.CounterVec
	cachePruned      prometheus.Counter
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	throttleWait     prometheus.Histogram
	toolCalls        *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
}

// New creates collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by outcome (hit, miss, corrupt).",
		}, []string{"outcome"}),
		cacheWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_writes_total",
			Help:      "Cache writes by result (ok, error).",
		}, []string{"result"}),
		cachePruned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_pruned_total",
			Help:      "Cache entries removed by pruning.",
		}),
		upstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Outbound requests by upstream and classified outcome.",
		}, []string{"upstream", "outcome"}),
		upstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Outbound request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"upstream"}),
		throttleWait: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "throttle_wait_seconds",
			Help:      "Time callers spent blocked in the request throttle.",
			Buckets:   []float64{0, 0.1, 0.5, 1, 2, 5, 10},
		}),
		toolCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "MCP tool calls by tool and result (ok, error).",
		}, []string{"tool", "result"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status class.",
		}, []string{"method", "code"}),
	}
}

// CacheLookup counts one cache lookup outcome.
func (m *Metrics) CacheLookup(outcome string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(outcome).Inc()
}

// CacheWrite counts one cache write.
func (m *Metrics) CacheWrite(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.cacheWrites.WithLabelValues(result).Inc()
}

// CachePruned counts removed entries.
func (m *Metrics) CachePruned(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.cachePruned.Add(float64(n))
}

// UpstreamRequest records one classified outbound call.
func (m *Metrics) UpstreamRequest(upstream, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(upstream, outcome).Inc()
	m.upstreamDuration.WithLabelValues(upstream).Observe(d.Seconds())
}

// ThrottleWait records time spent waiting for a throttle slot.
func (m *Metrics) ThrottleWait(d time.Duration) {
	if m == nil {
		return
	}
	m.throttleWait.Observe(d.Seconds())
}

// ToolCall counts one MCP tool invocation.
func (m *Metrics) ToolCall(tool string, failed bool) {
	if m == nil {
		return
	}
	result := "ok"
	if failed {
		result = "error"
	}
	m.toolCalls.WithLabelValues(tool, result).Inc()
}

// HTTPRequest counts one served request, bucketed by status class (2xx, 4xx).
func (m *Metrics) HTTPRequest(method string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, fmt.Sprintf("%dxx", status/100)).Inc()
}

// Registry exposes the underlying registry (for tests and custom gatherers).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

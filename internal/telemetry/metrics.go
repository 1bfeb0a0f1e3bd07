// Package telemetry exposes the service's Prometheus instrumentation:
// request counts and latency, upstream call outcomes, and cache hit rates.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the service.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheEvents     *prometheus.CounterVec
}

// New creates the Metrics set on a fresh registry. Using a dedicated
// registry keeps tests isolated from the global default.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by method, route, and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		cacheEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Cache hits and misses by cache name.",
		}, []string{"cache", "event"}),
	}
}

// RecordRequest records one completed HTTP request.
func (m *Metrics) RecordRequest(method, route, status string, duration time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, status).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// CacheHit implements the advisory cache-events sink.
func (m *Metrics) CacheHit(cacheName string) {
	m.cacheEvents.WithLabelValues(cacheName, "hit").Inc()
}

// CacheMiss implements the advisory cache-events sink.
func (m *Metrics) CacheMiss(cacheName string) {
	m.cacheEvents.WithLabelValues(cacheName, "miss").Inc()
}

// Handler returns the Prometheus exposition handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

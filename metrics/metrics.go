package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "cg_proxy_"

// Service constants
const (
	ServiceTop     = "top"
	ServicePrice   = "price"
	ServiceHistory = "history"
)

var (
	// Global upstream request counter (all services)
	// Cardinality: ~3 (success, error, rate_limited)
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "upstream_requests_total",
			Help: "Total number of HTTP requests to the CoinGecko API across all services",
		},
		[]string{"status"},
	)

	// Service-specific upstream request counter
	// Cardinality: ~9 (3 services x 3 statuses)
	ServiceUpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "service_upstream_requests_total",
			Help: "Total number of HTTP requests to the CoinGecko API per service",
		},
		[]string{"service", "status"},
	)

	// Cache lookup outcomes per service
	// Cardinality: ~6 (3 services x hit/miss)
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "cache_lookups_total",
			Help: "Cache lookups per service by outcome",
		},
		[]string{"service", "result"},
	)

	// Fetch duration per service, cache misses only
	// Cardinality: ~3 (number of services)
	FetchDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "fetch_duration_seconds",
			Help: "Time taken to fetch and normalize data on a cache miss",
		},
		[]string{"service"},
	)
)

// MetricsWriter provides a unified interface for recording service metrics
type MetricsWriter struct {
	serviceName string
}

// NewMetricsWriter creates a new MetricsWriter for the specified service
func NewMetricsWriter(serviceName string) *MetricsWriter {
	return &MetricsWriter{
		serviceName: serviceName,
	}
}

// GetServiceName returns the service name
func (mw *MetricsWriter) GetServiceName() string {
	return mw.serviceName
}

// RecordCacheHit records a fresh cache entry serving a request
func (mw *MetricsWriter) RecordCacheHit() {
	CacheLookupsTotal.WithLabelValues(mw.serviceName, "hit").Inc()
}

// RecordCacheMiss records a lookup that had to go upstream
func (mw *MetricsWriter) RecordCacheMiss() {
	CacheLookupsTotal.WithLabelValues(mw.serviceName, "miss").Inc()
}

// RecordFetchDuration records the duration of an upstream fetch cycle
func (mw *MetricsWriter) RecordFetchDuration(duration time.Duration) {
	FetchDurationHistogram.WithLabelValues(mw.serviceName).Observe(duration.Seconds())
}

// OnRequest records an upstream HTTP request with its status.
// Implements the upstream client's StatusHandler interface.
func (mw *MetricsWriter) OnRequest(status string) {
	UpstreamRequestsTotal.WithLabelValues(status).Inc()
	ServiceUpstreamRequestsTotal.WithLabelValues(mw.serviceName, status).Inc()
}

// Package metrics exposes Prometheus collectors for the HTTP surface,
// domain activity and the popular films cache.
//
// Collectors are registered on the default registry at package init and
// served by the /metrics endpoint.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by method, route template and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmorate_http_requests_total",
			Help: "Total number of handled HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency by method and route template.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filmorate_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// DomainEventsTotal counts published activity events by type.
	DomainEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmorate_events_total",
			Help: "Total number of published activity events",
		},
		[]string{"type"},
	)

	// EventSubscribers is the number of connected activity stream clients.
	EventSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "filmorate_event_subscribers",
			Help: "Number of connected activity stream clients",
		},
	)

	// PopularCacheLookupsTotal counts popular list cache lookups by result.
	PopularCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmorate_popular_cache_lookups_total",
			Help: "Total number of popular films cache lookups",
		},
		[]string{"result"},
	)
)

// RecordHTTPRequest records one handled request. An empty route means no route matched.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordEvent(eventType string) {
	DomainEventsTotal.WithLabelValues(eventType).Inc()
}

func RecordCacheHit() {
	PopularCacheLookupsTotal.WithLabelValues("hit").Inc()
}

func RecordCacheMiss() {
	PopularCacheLookupsTotal.WithLabelValues("miss").Inc()
}

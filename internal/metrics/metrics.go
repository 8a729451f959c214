// Package metrics holds the Prometheus collectors shared by the store,
// services and HTTP layer.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcoach_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitcoach_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcoach_store_operations_total",
			Help: "Record store loads and saves by collection and outcome.",
		},
		[]string{"operation", "collection", "outcome"},
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitcoach_store_operation_duration_seconds",
			Help:    "Record store operation latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "collection"},
	)

	StaleWriteRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcoach_stale_write_retries_total",
			Help: "Read-modify-write cycles retried after a stale snapshot.",
		},
		[]string{"collection"},
	)

	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcoach_registrations_total",
			Help: "Class registration attempts by outcome.",
		},
		[]string{"outcome"},
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcoach_recommendations_total",
			Help: "Stored recommendations by recommended class type.",
		},
		[]string{"class_type"},
	)
)

func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordStoreOperation(operation, collection string, err error, duration time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	StoreOperationsTotal.WithLabelValues(operation, collection, outcome).Inc()
	StoreOperationDuration.WithLabelValues(operation, collection).Observe(duration.Seconds())
}

func RecordStaleWriteRetry(collection string) {
	StaleWriteRetries.WithLabelValues(collection).Inc()
}

func RecordRegistration(outcome string) {
	RegistrationsTotal.WithLabelValues(outcome).Inc()
}

func RecordRecommendation(classType string) {
	RecommendationsTotal.WithLabelValues(classType).Inc()
}

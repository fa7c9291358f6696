// Package metrics holds the Prometheus collectors shared by the directory
// usecase and the HTTP layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation outcomes
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeNoop     = "noop"
	OutcomeError    = "error"
)

var (
	DirectoryOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_operations_total",
			Help: "Directory state transitions by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	FilterCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_filter_cache_lookups_total",
			Help: "Filter memo lookups by result",
		},
		[]string{"result"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "route", "status"},
	)
)

// Observe records one directory operation
func Observe(operation, outcome string) {
	DirectoryOperations.WithLabelValues(operation, outcome).Inc()
}

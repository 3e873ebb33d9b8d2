package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UniquenessChecks counts duplicate lookups by outcome (duplicate|available|error).
	UniquenessChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sigpat_uniqueness_checks_total",
			Help: "Total number of uniqueness checks against the store",
		},
		[]string{"entity", "field", "result"},
	)

	// ValidationCacheHits counts debounced lookups answered from the in-memory cache.
	ValidationCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sigpat_validation_cache_hits_total",
			Help: "Debounced uniqueness lookups served without a store round-trip",
		},
	)

	// AuditWriteFailures counts swallowed audit persistence errors.
	AuditWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sigpat_audit_write_failures_total",
			Help: "Audit log writes that failed and were dropped",
		},
	)

	// LifecycleTransitions counts activations and deactivations per entity kind.
	LifecycleTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sigpat_lifecycle_transitions_total",
			Help: "Entity activations and deactivations",
		},
		[]string{"entity", "transition"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sigpat_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

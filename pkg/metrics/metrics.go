// Package metrics exposes Prometheus instrumentation for balance
// computations. Collectors register on the default registry; embedders serve
// them however they like.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ComputationsTotal counts completed balance computations.
	ComputationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitledger_balance_computations_total",
		Help: "Number of balance summaries computed.",
	})

	// ComputationDuration observes end-to-end computation time, fetch
	// included.
	ComputationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "splitledger_balance_computation_duration_seconds",
		Help:    "Time spent fetching data and computing one balance summary.",
		Buckets: prometheus.DefBuckets,
	})

	// SkippedRecords counts malformed records dropped during computations.
	SkippedRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitledger_balance_skipped_records_total",
		Help: "Number of malformed expense/settlement records skipped.",
	})

	// CacheRequests counts summary cache lookups by result (hit or miss).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitledger_summary_cache_requests_total",
		Help: "Summary cache lookups by result.",
	}, []string{"result"})
)

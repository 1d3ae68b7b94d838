package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SamplesDrawnTotal counts Monte Carlo point pairs drawn across all batches
	SamplesDrawnTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cubedist_samples_drawn_total",
			Help: "Total number of Monte Carlo point pairs drawn",
		},
	)

	// BatchesCompletedTotal counts completed sampling batches
	BatchesCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cubedist_batches_completed_total",
			Help: "Total number of completed sampling batches",
		},
	)

	// BatchDurationSeconds measures the latency of one sampling batch
	BatchDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cubedist_batch_duration_seconds",
			Help:    "Duration of sampling batches",
			Buckets: prometheus.DefBuckets,
		},
	)
)

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Classification metrics
var (
	// ClassificationsTotal tracks classifications by resulting label
	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classifications_total",
			Help: "Total classifications by resulting emotion label",
		},
		[]string{"label"},
	)

	// ClassificationFallbacksTotal tracks low-confidence fallbacks to Unclassified
	ClassificationFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "classification_fallbacks_total",
			Help: "Classifications forced to Unclassified by the confidence threshold",
		},
	)

	// ClassificationDuration tracks classification latency in seconds
	ClassificationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "classification_duration_seconds",
			Help:    "Classification duration in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1},
		},
	)

	// ModelReloadsTotal tracks artifact hot swaps by status
	ModelReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_reloads_total",
			Help: "Model artifact reloads by status",
		},
		[]string{"status"},
	)
)

// Feedback metrics
var (
	// FeedbackSubmissionsTotal tracks accepted feedback submissions
	FeedbackSubmissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feedback_submissions_total",
			Help: "Total accepted feedback submissions",
		},
	)
)

// Database metrics
var (
	// DBQueryDuration tracks query latency by statement kind
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"query"},
	)

	// DBErrorsTotal tracks failed queries by statement kind
	DBErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_errors_total",
			Help: "Total database query errors",
		},
		[]string{"query"},
	)
)

// Analytics metrics
var (
	// AnalyticsQueryDuration tracks aggregation query latency by view
	AnalyticsQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_query_duration_seconds",
			Help:    "Analytics aggregation duration in seconds by view",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"view"},
	)

	// SnapshotCacheHits tracks snapshot cache lookups by outcome
	SnapshotCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_cache_lookups_total",
			Help: "Snapshot cache lookups by outcome (hit/miss)",
		},
		[]string{"outcome"},
	)
)

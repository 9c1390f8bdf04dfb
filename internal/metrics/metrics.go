// Package metrics holds the Prometheus collectors for the scheduling engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for placements and availability submissions.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

var (
	placements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tempo_event_placements_total",
		Help: "Event placement attempts by outcome and rejection kind",
	}, []string{"outcome", "kind"})

	availabilitySubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tempo_availability_submissions_total",
		Help: "Availability create and update attempts by outcome and rejection kind",
	}, []string{"outcome", "kind"})

	removals = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tempo_occurrence_removals_total",
		Help: "Single-occurrence removals by record type and resulting action",
	}, []string{"record", "action"})

	materialized = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tempo_materialized_occurrences",
		Help:    "Occurrences produced per materialization request",
		Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000, 10000},
	})

	queryDays = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tempo_interval_query_days",
		Help:    "Width in days of interval queries",
		Buckets: []float64{1, 7, 31, 92, 183, 366},
	})
)

// ObservePlacement records one placement attempt. kind is empty unless rejected.
func ObservePlacement(outcome, kind string) {
	placements.WithLabelValues(outcome, kind).Inc()
}

// ObserveAvailabilitySubmission records one availability create or update attempt.
func ObserveAvailabilitySubmission(outcome, kind string) {
	availabilitySubmissions.WithLabelValues(outcome, kind).Inc()
}

func ObserveRemoval(record, action string) {
	removals.WithLabelValues(record, action).Inc()
}

func ObserveMaterialized(n int) {
	materialized.Observe(float64(n))
}

func ObserveQueryDays(days int) {
	queryDays.Observe(float64(days))
}

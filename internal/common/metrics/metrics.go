// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TrackerMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_mutations_total",
			Help: "Total number of application record mutations by operation",
		},
		[]string{"operation"},
	)

	TrackerMutationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_mutation_failures_total",
			Help: "Total number of failed record mutations by operation and error code",
		},
		[]string{"operation", "error_code"},
	)

	AdvisorCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_calls_total",
			Help: "Total number of advisory AI calls by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	AdvisorCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "advisor_call_duration_seconds",
			Help: "Duration of advisory AI calls in seconds",
		},
		[]string{"action"},
	)

	GestureCommits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gesture_commits_total",
			Help: "Total number of gesture sessions resolved by action",
		},
		[]string{"action"},
	)

	QuotaRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quota_rejections_total",
			Help: "Total number of advisory calls blocked by the daily quota",
		},
	)
)

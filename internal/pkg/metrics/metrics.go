package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Decision outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFault    = "fault"
)

var (
	// RuleDecisions counts every service decision by operation and outcome.
	// Rejections also carry the rule code that failed.
	RuleDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coursemgr_rule_decisions_total",
			Help: "Total number of rule engine decisions",
		},
		[]string{"operation", "outcome"},
	)

	RuleRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coursemgr_rule_rejections_total",
			Help: "Total number of rejected operations by rule code",
		},
		[]string{"code"},
	)

	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coursemgr_operation_duration_seconds",
			Help:    "Time taken to validate and persist an operation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	GradesFinalized = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coursemgr_grades_finalized_total",
			Help: "Total number of grades finalized by the scheduler",
		},
	)
)

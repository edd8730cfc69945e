// Package metrics provides Prometheus instrumentation for the moderation
// service: evaluation counters by outcome, classifier latency, and audit
// write failures
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ScrutinyEvaluations counts pipeline evaluations by resulting level
	// ("0".."3")
	ScrutinyEvaluations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scrutiny_evaluations_total",
		Help: "Scrutiny pipeline evaluations by severity level",
	}, []string{"level"})

	// ModerationChecks counts classifier-backed checks by severity
	// ("normal", "moderate", "high")
	ModerationChecks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "moderation_checks_total",
		Help: "Classifier-backed moderation checks by severity",
	}, []string{"severity"})

	// ClassifierSeconds records wall-clock time spent in external
	// classifier calls, including timeouts
	ClassifierSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "classifier_request_seconds",
		Help:    "External classifier call duration in seconds",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15},
	})

	// AuditWriteFailures counts best-effort audit inserts that failed
	AuditWriteFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "audit_write_failures_total",
		Help: "Audit rows that could not be persisted",
	})
)

func init() {
	prometheus.MustRegister(
		ScrutinyEvaluations,
		ModerationChecks,
		ClassifierSeconds,
		AuditWriteFailures,
	)
}

// Handler returns the Prometheus scrape handler
func Handler() http.Handler { return promhttp.Handler() }

// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipmark_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by statement verb.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "clipmark_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// RegistrationsTotal counts registration attempts by role and outcome.
	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipmark_registrations_total",
		Help: "Total registration attempts by role and outcome",
	}, []string{"role", "outcome"})

	// RegistrationRollbacksTotal counts identity rollbacks after failed
	// profile creation, labelled by whether the rollback itself succeeded.
	RegistrationRollbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipmark_registration_rollbacks_total",
		Help: "Total identity rollbacks during registration",
	}, []string{"role", "outcome"})

	// ClipSubmissionsTotal counts clip submissions by outcome.
	ClipSubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipmark_clip_submissions_total",
		Help: "Total clip submissions by outcome",
	}, []string{"outcome"})

	// StorageOperationsTotal counts blob store operations by bucket, op, and outcome.
	StorageOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipmark_storage_operations_total",
		Help: "Total blob storage operations",
	}, []string{"bucket", "operation", "outcome"})

	// OnboardingSessionsTotal counts Google onboarding sessions by role and outcome.
	OnboardingSessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipmark_onboarding_sessions_total",
		Help: "Total Google onboarding sessions by role and outcome",
	}, []string{"role", "outcome"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}

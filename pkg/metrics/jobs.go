package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// JobMetrics records outcomes of scheduled jobs.
type JobMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	skipped  prometheus.Counter
}

// NewJobMetrics registers the scheduled job metrics on the provided registerer.
func NewJobMetrics(reg prometheus.Registerer) *JobMetrics {
	if reg == nil {
		return &JobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "job_duration_seconds",
		Help:    "Duration of scheduled jobs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_success",
		Help: "Successful scheduled job executions.",
	}, []string{"job"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_failure",
		Help: "Failed scheduled job executions.",
	}, []string{"job"})
	skipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "job_cycles_skipped",
		Help: "Scheduler cycles skipped because another instance held the lock.",
	})
	reg.MustRegister(duration, success, failure, skipped)
	return &JobMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		skipped:  skipped,
	}
}

func (m *JobMetrics) ObserveDuration(job string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(job)).Observe(duration.Seconds())
}

func (m *JobMetrics) IncSuccess(job string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(job)).Inc()
}

func (m *JobMetrics) IncFailure(job string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(job)).Inc()
}

// IncSkipped counts a cycle that did not run because the lock was held elsewhere.
func (m *JobMetrics) IncSkipped() {
	if m == nil || m.skipped == nil {
		return
	}
	m.skipped.Inc()
}

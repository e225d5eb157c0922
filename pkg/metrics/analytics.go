package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ViewMetrics records how long each analytics view takes and how many orders it scanned.
type ViewMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	orders   *prometheus.HistogramVec
}

// NewViewMetrics registers the analytics view metrics on the provided registerer.
func NewViewMetrics(reg prometheus.Registerer) *ViewMetrics {
	if reg == nil {
		return &ViewMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "analytics_view_duration_seconds",
		Help:    "Duration of analytics view computations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"view"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_view_success",
		Help: "Successful analytics view computations.",
	}, []string{"view"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_view_failure",
		Help: "Failed analytics view computations.",
	}, []string{"view"})
	orders := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "analytics_view_orders",
		Help:    "Number of ledger orders scanned per analytics view.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	}, []string{"view"})
	reg.MustRegister(duration, success, failure, orders)
	return &ViewMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		orders:   orders,
	}
}

// ObserveDuration records the duration for the named view.
func (m *ViewMetrics) ObserveDuration(view string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(view)).Observe(duration.Seconds())
}

// ObserveOrders records how many orders the ledger returned for the view.
func (m *ViewMetrics) ObserveOrders(view string, count int) {
	if m == nil || m.orders == nil {
		return
	}
	m.orders.WithLabelValues(normalizeLabel(view)).Observe(float64(count))
}

// IncSuccess increments the success counter for the named view.
func (m *ViewMetrics) IncSuccess(view string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(view)).Inc()
}

// IncFailure increments the failure counter for the named view.
func (m *ViewMetrics) IncFailure(view string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(view)).Inc()
}

func normalizeLabel(view string) string {
	if view == "" {
		return "unknown"
	}
	return view
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AggregationMetrics records per-metric timing and outcome for the
// analytics engine's concurrent aggregation slots.
type AggregationMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewAggregationMetrics registers the aggregation metrics on the provided
// registerer. A nil registerer yields a no-op recorder, which keeps tests
// and disabled deployments free of a registry.
func NewAggregationMetrics(reg prometheus.Registerer) *AggregationMetrics {
	if reg == nil {
		return &AggregationMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "aggregation_duration_seconds",
		Help:    "Duration of analytics aggregation slots in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"metric"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "aggregation_success",
		Help: "Successful analytics aggregation computations.",
	}, []string{"metric"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "aggregation_failure",
		Help: "Failed or timed-out analytics aggregation computations.",
	}, []string{"metric"})
	reg.MustRegister(duration, success, failure)
	return &AggregationMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named metric slot.
func (a *AggregationMetrics) ObserveDuration(metric string, duration time.Duration) {
	if a == nil || a.duration == nil {
		return
	}
	a.duration.WithLabelValues(normalizeLabel(metric)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named metric slot.
func (a *AggregationMetrics) IncSuccess(metric string) {
	if a == nil || a.success == nil {
		return
	}
	a.success.WithLabelValues(normalizeLabel(metric)).Inc()
}

// IncFailure increments the failure counter for the named metric slot.
func (a *AggregationMetrics) IncFailure(metric string) {
	if a == nil || a.failure == nil {
		return
	}
	a.failure.WithLabelValues(normalizeLabel(metric)).Inc()
}

func normalizeLabel(metric string) string {
	if metric == "" {
		return "unknown"
	}
	return metric
}

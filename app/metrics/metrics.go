package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records per-operation counters and latencies for the service layer.
type Metrics struct {
	attempts *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New registers the service metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arenarank",
			Name:      "operation_attempts_total",
			Help:      "Number of service operation invocations.",
		}, []string{"module", "operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arenarank",
			Name:      "operation_failures_total",
			Help:      "Number of service operations that returned an error.",
		}, []string{"module", "operation"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "arenarank",
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"module", "operation"}),
	}
	reg.MustRegister(m.attempts, m.failures, m.duration)
	return m
}

// NewUnregistered returns metrics backed by a private registry, for tests.
func NewUnregistered() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) RecordOperationAttempt(module, operation string) {
	m.attempts.WithLabelValues(module, operation).Inc()
}

func (m *Metrics) RecordOperationFailure(module, operation string) {
	m.failures.WithLabelValues(module, operation).Inc()
}

func (m *Metrics) RecordOperationDuration(module, operation string, d time.Duration) {
	m.duration.WithLabelValues(module, operation).Observe(d.Seconds())
}

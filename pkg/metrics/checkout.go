package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records the outcomes of the order submission pipeline.
type CheckoutMetrics struct {
	duration      *prometheus.HistogramVec
	placed        prometheus.Counter
	rejected      *prometheus.CounterVec
	notifyFailure prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of order submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	placed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders successfully persisted.",
	})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_rejected_total",
		Help: "Order submissions rejected before persistence.",
	}, []string{"reason"})
	notifyFailure := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_notification_failures_total",
		Help: "Confirmation emails that failed after a successful order.",
	})
	reg.MustRegister(duration, placed, rejected, notifyFailure)
	return &CheckoutMetrics{
		duration:      duration,
		placed:        placed,
		rejected:      rejected,
		notifyFailure: notifyFailure,
	}
}

// ObserveDuration records how long a submission took for the given outcome.
func (c *CheckoutMetrics) ObserveDuration(outcome string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncPlaced increments the successful order counter.
func (c *CheckoutMetrics) IncPlaced() {
	if c == nil || c.placed == nil {
		return
	}
	c.placed.Inc()
}

// IncRejected increments the rejection counter for the named reason.
func (c *CheckoutMetrics) IncRejected(reason string) {
	if c == nil || c.rejected == nil {
		return
	}
	c.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncNotifyFailure increments the swallowed notification failure counter.
func (c *CheckoutMetrics) IncNotifyFailure() {
	if c == nil || c.notifyFailure == nil {
		return
	}
	c.notifyFailure.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

package checkout

import "github.com/prometheus/client_golang/prometheus"

// metrics is nil-safe so the service works without a registry.
type metrics struct {
	completedTotal prometheus.Counter
	failedTotal    prometheus.Counter
	revenueTotal   prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}

	m := &metrics{
		completedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wemint",
			Name:      "checkout_completed_total",
			Help:      "Simulated checkouts that recorded a sale",
		}),
		failedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wemint",
			Name:      "checkout_failed_total",
			Help:      "Simulated checkouts whose sale could not be recorded",
		}),
		revenueTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wemint",
			Name:      "checkout_revenue_total",
			Help:      "Sum of prices of completed checkouts",
		}),
	}

	reg.MustRegister(m.completedTotal, m.failedTotal, m.revenueTotal)
	return m
}

func (m *metrics) completed(amount float64) {
	if m == nil {
		return
	}
	m.completedTotal.Inc()
	m.revenueTotal.Add(amount)
}

func (m *metrics) failed() {
	if m == nil {
		return
	}
	m.failedTotal.Inc()
}

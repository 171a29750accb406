package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "myshop"

type ServerMetrics struct {
	Requests         *prometheus.CounterVec
	LatencyMS        *prometheus.HistogramVec
	CheckoutOutcomes *prometheus.CounterVec
	Notifications    *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewServerMetrics registers every collector on reg. A nil reg uses a
// fresh private registry so tests can build as many as they like.
func NewServerMetrics(reg *prometheus.Registry) *ServerMetrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})
	checkout := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "checkout",
		Name:      "outcomes_total",
		Help:      "Checkout attempts by step and terminal state.",
	}, []string{"step", "state"})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "notification",
		Name:      "dispatch_total",
		Help:      "Order notifications by transport and result.",
	}, []string{"transport", "result"})

	reg.MustRegister(requests, latency, checkout, notifications)

	return &ServerMetrics{
		Requests:         requests,
		LatencyMS:        latency,
		CheckoutOutcomes: checkout,
		Notifications:    notifications,
		gatherer:         reg,
	}
}

func (m *ServerMetrics) ObserveCheckout(step, state string) {
	if m == nil {
		return
	}
	m.CheckoutOutcomes.WithLabelValues(step, state).Inc()
}

func (m *ServerMetrics) ObserveNotification(transport, result string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(transport, result).Inc()
}

func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

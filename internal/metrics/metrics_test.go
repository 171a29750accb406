package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestServerMetrics(t *testing.T) {
	m := NewServerMetrics(prometheus.NewRegistry())

	m.ObserveCheckout("finalize", "NOTIFIED")
	m.ObserveCheckout("finalize", "NOTIFIED")
	m.ObserveNotification("log", "sent")
	m.Requests.WithLabelValues("GET /health", "200").Inc()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.CheckoutOutcomes.WithLabelValues("finalize", "NOTIFIED")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Notifications.WithLabelValues("log", "sent")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "myshop_checkout_outcomes_total")
	assert.Contains(t, rec.Body.String(), "myshop_http_requests_total")
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *ServerMetrics
	assert.NotPanics(t, func() {
		m.ObserveCheckout("initiate", "GATEWAY_PENDING")
		m.ObserveNotification("smtp", "failed")
	})
}

func TestNewServerMetrics_NilRegistry(t *testing.T) {
	assert.NotPanics(t, func() {
		NewServerMetrics(nil)
		NewServerMetrics(nil)
	})
}

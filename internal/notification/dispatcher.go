package notification

import (
	"bytes"
	"context"
	"sync"
	"text/template"
	"time"

	"myshop-be/internal/logger"
	"myshop-be/internal/metrics"
	"myshop-be/internal/order"

	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

const confirmationSubject = "Your Order Confirmation"

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`Hi {{.Name}},

Thanks for your purchase!

Order ID: #{{.Order.ID}}
Date: {{.Date}}
Status: {{.Order.Status}}

Items:
{{range .Order.Items}}- {{.Quantity}} x {{.ProductName}} (${{.Price.StringFixed 2}})
{{end}}
Total: ${{.Order.Total.StringFixed 2}}

We'll notify you when your order is shipped.

Best regards,
My Shop Team
`))

// Dispatcher sends order confirmations off the request path. Failures are
// logged and counted, never returned.
type Dispatcher struct {
	transport Transport
	timeout   time.Duration
	metrics   *metrics.ServerMetrics
	wg        sync.WaitGroup
}

func NewDispatcher(t Transport, timeout time.Duration, m *metrics.ServerMetrics) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Dispatcher{transport: t, timeout: timeout, metrics: m}
}

// OrderConfirmed returns immediately. The send outlives the request context
// but keeps its request id for logging.
func (d *Dispatcher) OrderConfirmed(ctx context.Context, to Recipient, o *order.Order) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "notification"),
		zap.String("transport", d.transport.Name()),
		zap.Uint("order_id", o.ID),
	)

	body, err := RenderConfirmation(to, o)
	if err != nil {
		log.Error("failed to render order confirmation", zap.Error(err))
		d.metrics.ObserveNotification(d.transport.Name(), "failed")
		return
	}

	sendCtx := context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(sendCtx, d.timeout)
		defer cancel()

		if err := d.transport.Send(ctx, to, confirmationSubject, body); err != nil {
			log.Error("order confirmation not sent", zap.Error(err))
			d.metrics.ObserveNotification(d.transport.Name(), "failed")
			return
		}
		log.Info("order confirmation sent")
		d.metrics.ObserveNotification(d.transport.Name(), "sent")
	}()
}

// Wait blocks until in-flight sends finish. Called on shutdown.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func RenderConfirmation(to Recipient, o *order.Order) (string, error) {
	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, struct {
		Name  string
		Date  string
		Order *order.Order
	}{
		Name:  to.Name,
		Date:  o.CreatedAt.UTC().Format("02/01/2006 15:04"),
		Order: o,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"myshop-be/internal/logger"
	"myshop-be/internal/metrics"
	"myshop-be/internal/order"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func sampleOrder() *order.Order {
	return &order.Order{
		ID:        42,
		UserID:    7,
		Total:     decimal.RequireFromString("25.50"),
		Status:    order.StatusProcessing,
		CreatedAt: time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC),
		Items: []order.OrderItem{
			{ProductID: 1, ProductName: "Mug", Quantity: 2, Price: decimal.RequireFromString("10.00")},
			{ProductID: 2, ProductName: "Tee", Quantity: 1, Price: decimal.RequireFromString("5.5")},
		},
	}
}

type fakeTransport struct {
	mu    sync.Mutex
	err   error
	sent  []string
	block chan struct{}
}

func (f *fakeTransport) Name() string { return "fake" }

func (f *fakeTransport) Send(ctx context.Context, to Recipient, subject, body string) error {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to.Email+"|"+subject)
	return f.err
}

func TestRenderConfirmation(t *testing.T) {
	body, err := RenderConfirmation(Recipient{Name: "Ana", Email: "ana@example.com"}, sampleOrder())
	require.NoError(t, err)

	assert.Contains(t, body, "Hi Ana,")
	assert.Contains(t, body, "Order ID: #42")
	assert.Contains(t, body, "Date: 01/05/2024 14:30")
	assert.Contains(t, body, "- 2 x Mug ($10.00)")
	assert.Contains(t, body, "- 1 x Tee ($5.50)")
	assert.Contains(t, body, "Total: $25.50")
}

func TestDispatcher_OrderConfirmed(t *testing.T) {
	t.Run("Sends in background", func(t *testing.T) {
		tr := &fakeTransport{}
		m := metrics.NewServerMetrics(nil)
		d := NewDispatcher(tr, time.Second, m)

		d.OrderConfirmed(context.Background(), Recipient{Name: "Ana", Email: "ana@example.com"}, sampleOrder())
		d.Wait()

		assert.Equal(t, []string{"ana@example.com|" + confirmationSubject}, tr.sent)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("fake", "sent")))
	})

	t.Run("Failure is logged not returned", func(t *testing.T) {
		core, observed := observer.New(zapcore.InfoLevel)
		restore := logger.Replace(zap.New(core))
		defer restore()

		tr := &fakeTransport{err: errors.New("smtp down")}
		m := metrics.NewServerMetrics(nil)
		d := NewDispatcher(tr, time.Second, m)

		d.OrderConfirmed(logger.WithRequestID(context.Background(), "req-1"), Recipient{Email: "ana@example.com"}, sampleOrder())
		d.Wait()

		logs := observed.FilterMessage("order confirmation not sent").All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
		assert.Equal(t, "req-1", logs[0].ContextMap()["request_id"])
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("fake", "failed")))
	})

	t.Run("Survives request cancellation", func(t *testing.T) {
		tr := &fakeTransport{block: make(chan struct{})}
		d := NewDispatcher(tr, time.Second, nil)

		ctx, cancel := context.WithCancel(context.Background())
		d.OrderConfirmed(ctx, Recipient{Email: "ana@example.com"}, sampleOrder())
		cancel()
		close(tr.block)
		d.Wait()

		assert.Len(t, tr.sent, 1)
	})

	t.Run("Times out", func(t *testing.T) {
		tr := &fakeTransport{block: make(chan struct{})}
		m := metrics.NewServerMetrics(nil)
		d := NewDispatcher(tr, 20*time.Millisecond, m)

		d.OrderConfirmed(context.Background(), Recipient{Email: "ana@example.com"}, sampleOrder())
		d.Wait()

		assert.Empty(t, tr.sent)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("fake", "failed")))
	})
}

type fakeMailSender struct {
	msgs  []*mail.Msg
	err   error
	block chan struct{}
}

func (f *fakeMailSender) DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.msgs = append(f.msgs, messages...)
	return f.err
}

func rawMessage(t *testing.T, m *mail.Msg) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestNewSMTPTransport(t *testing.T) {
	tr, err := NewSMTPTransport("smtp.example.com", "587", "shop@example.com", "secret", "")
	require.NoError(t, err)
	assert.Equal(t, "smtp", tr.Name())
	assert.Equal(t, "shop@example.com", tr.from)

	_, err = NewSMTPTransport("smtp.example.com", "not-a-port", "", "", "shop@example.com")
	assert.ErrorContains(t, err, "invalid smtp port")
}

func TestSMTPTransport_Send(t *testing.T) {
	newTransport := func(sender *fakeMailSender) *SMTPTransport {
		return &SMTPTransport{
			host:   "smtp.example.com",
			from:   "shop@example.com",
			client: sender,
			now:    func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) },
		}
	}

	t.Run("Success", func(t *testing.T) {
		sender := &fakeMailSender{}
		tr := newTransport(sender)

		err := tr.Send(context.Background(), Recipient{Name: "Ana", Email: "ana@example.com"}, "Hello", "line1\nline2")
		require.NoError(t, err)
		require.Len(t, sender.msgs, 1)

		raw := rawMessage(t, sender.msgs[0])
		assert.Contains(t, raw, "From: <shop@example.com>")
		assert.Contains(t, raw, `To: "Ana" <ana@example.com>`)
		assert.Contains(t, raw, "Subject: Hello")
		assert.Contains(t, raw, "line1")
	})

	t.Run("Non ASCII headers are encoded", func(t *testing.T) {
		sender := &fakeMailSender{}
		tr := newTransport(sender)

		err := tr.Send(context.Background(), Recipient{Name: "Zoë", Email: "zoe@example.com"}, "Olá", "b")
		require.NoError(t, err)

		raw := rawMessage(t, sender.msgs[0])
		assert.NotContains(t, raw, "Zoë")
		assert.NotContains(t, raw, "Olá")
		lower := strings.ToLower(raw)
		assert.Contains(t, lower, "=?utf-8?q?zo=c3=ab?=")
		assert.Contains(t, lower, "=?utf-8?q?ol=c3=a1?=")
	})

	t.Run("Header injection is neutralized", func(t *testing.T) {
		sender := &fakeMailSender{}
		tr := newTransport(sender)

		require.NoError(t, tr.Send(context.Background(), Recipient{Email: "ana@example.com"}, "Hello\r\nBcc: x@y", "b"))
		assert.NotContains(t, rawMessage(t, sender.msgs[0]), "\r\nBcc: x@y")
	})

	t.Run("Server error", func(t *testing.T) {
		tr := newTransport(&fakeMailSender{err: errors.New("550 rejected")})
		err := tr.Send(context.Background(), Recipient{Email: "ana@example.com"}, "s", "b")
		assert.ErrorContains(t, err, "550 rejected")
	})

	t.Run("Invalid recipient", func(t *testing.T) {
		sender := &fakeMailSender{}
		tr := newTransport(sender)
		assert.Error(t, tr.Send(context.Background(), Recipient{Email: "not an address"}, "s", "b"))
		assert.Empty(t, sender.msgs)
	})

	t.Run("No recipient", func(t *testing.T) {
		tr := newTransport(&fakeMailSender{})
		assert.ErrorIs(t, tr.Send(context.Background(), Recipient{}, "s", "b"), ErrNoRecipient)
	})

	t.Run("Context ends first", func(t *testing.T) {
		sender := &fakeMailSender{block: make(chan struct{})}
		defer close(sender.block)
		tr := newTransport(sender)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		assert.ErrorIs(t, tr.Send(ctx, Recipient{Email: "ana@example.com"}, "s", "b"), context.DeadlineExceeded)
	})
}

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *fakeWriter) Close() error { return nil }

func TestKafkaTransport_Send(t *testing.T) {
	w := &fakeWriter{}
	tr := newKafkaTransport(w)
	tr.newID = func() string { return "evt-1" }
	tr.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }

	err := tr.Send(context.Background(), Recipient{Name: "Ana", Email: "ana@example.com"}, "subj", "body")
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "ana@example.com", string(w.msgs[0].Key))

	var ev Event
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	assert.Equal(t, "evt-1", ev.EventID)
	assert.Equal(t, EventTypeNotification, ev.Type)
	assert.Equal(t, "subj", ev.Subject)
	assert.Equal(t, "Ana", ev.ToName)

	assert.ErrorIs(t, tr.Send(context.Background(), Recipient{}, "s", "b"), ErrNoRecipient)
}

func TestNewKafkaTransport_Disabled(t *testing.T) {
	_, err := NewKafkaTransport(" , ", "topic")
	assert.ErrorIs(t, err, ErrKafkaDisabled)

	tr, err := NewKafkaTransport("k1:9092, k2:9092", "topic")
	require.NoError(t, err)
	assert.Equal(t, "kafka", tr.Name())
}

func TestLogTransport_Send(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	restore := logger.Replace(zap.New(core))
	defer restore()

	err := LogTransport{}.Send(context.Background(), Recipient{Email: "ana@example.com"}, "subj", "body")
	assert.NoError(t, err)
	assert.Equal(t, 1, observed.FilterMessage("notification").Len())
}

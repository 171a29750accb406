package notification

import (
	"context"
	"errors"

	"myshop-be/internal/logger"

	"go.uber.org/zap"
)

// Transport delivers one message to one recipient.
type Transport interface {
	Name() string
	Send(ctx context.Context, to Recipient, subject, body string) error
}

type Recipient struct {
	Name  string
	Email string
}

var (
	ErrNoRecipient   = errors.New("notification recipient is empty")
	ErrKafkaDisabled = errors.New("kafka brokers not configured")
)

// LogTransport only writes the message to the log. Used when no mail or
// broker is configured.
type LogTransport struct{}

func (LogTransport) Name() string { return "log" }

func (LogTransport) Send(ctx context.Context, to Recipient, subject, body string) error {
	if to.Email == "" {
		return ErrNoRecipient
	}
	logger.FromCtx(ctx).Info("notification",
		zap.String("transport", "log"),
		zap.String("to", to.Email),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(body)),
	)
	return nil
}

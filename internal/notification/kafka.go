package notification

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// EventTypeNotification marks messages a mail worker should deliver.
const EventTypeNotification = "notification.requested"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Event is the JSON value published per notification.
type Event struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	To        string    `json:"to"`
	ToName    string    `json:"to_name,omitempty"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// KafkaTransport hands the message to a broker topic for an out-of-process
// mailer.
type KafkaTransport struct {
	writer messageWriter
	now    func() time.Time
	newID  func() string
}

func NewKafkaTransport(brokersCSV, topic string) (*KafkaTransport, error) {
	brokers := splitBrokers(brokersCSV)
	if len(brokers) == 0 {
		return nil, ErrKafkaDisabled
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
	return newKafkaTransport(w), nil
}

func newKafkaTransport(w messageWriter) *KafkaTransport {
	return &KafkaTransport{
		writer: w,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (t *KafkaTransport) Name() string { return "kafka" }

func (t *KafkaTransport) Send(ctx context.Context, to Recipient, subject, body string) error {
	if to.Email == "" {
		return ErrNoRecipient
	}

	ev := Event{
		EventID:   t.newID(),
		Type:      EventTypeNotification,
		To:        to.Email,
		ToName:    to.Name,
		Subject:   subject,
		Body:      body,
		CreatedAt: t.now().UTC(),
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	// Keyed by recipient so one customer's messages stay ordered.
	return t.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(to.Email),
		Value: data,
		Time:  ev.CreatedAt,
	})
}

func (t *KafkaTransport) Close() error {
	return t.writer.Close()
}

func splitBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

package notification

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/wneessen/go-mail"
)

// mailSender is the part of *mail.Client the transport needs.
type mailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type SMTPTransport struct {
	host   string
	from   string
	client mailSender
	now    func() time.Time
}

// NewSMTPTransport authenticates with PLAIN when a username is set and
// upgrades to TLS when the server offers it. The sender defaults to the
// username.
func NewSMTPTransport(host, port, username, password, sender string) (*SMTPTransport, error) {
	p, err := strconv.Atoi(port)
	if err != nil {
		return nil, fmt.Errorf("invalid smtp port %q: %w", port, err)
	}

	opts := []mail.Option{
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
		mail.WithPort(p),
	}
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	if sender == "" {
		sender = username
	}
	return &SMTPTransport{host: host, from: sender, client: client, now: time.Now}, nil
}

func (t *SMTPTransport) Name() string { return "smtp" }

// Send dials, delivers and disconnects within ctx.
func (t *SMTPTransport) Send(ctx context.Context, to Recipient, subject, body string) error {
	if to.Email == "" {
		return ErrNoRecipient
	}

	msg, err := t.buildMessage(to, subject, body)
	if err != nil {
		return err
	}
	if err := t.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", t.host, err)
	}
	return nil
}

func (t *SMTPTransport) buildMessage(to Recipient, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(t.from); err != nil {
		return nil, fmt.Errorf("smtp sender %q: %w", t.from, err)
	}
	if err := msg.AddToFormat(to.Name, to.Email); err != nil {
		return nil, fmt.Errorf("smtp recipient %q: %w", to.Email, err)
	}
	msg.Subject(subject)
	msg.SetDateWithValue(t.now())
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

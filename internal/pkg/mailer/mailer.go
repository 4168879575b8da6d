package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Sender sends a plain-text email.
type Sender interface {
	Send(ctx context.Context, to, subject, text string) error
}

// Mailgun wraps Mailgun client configuration.
type Mailgun struct {
	client *mg.MailgunImpl
	sender string
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{client: mg.NewMailgun(domain, apiKey), sender: sender}
}

func (m *Mailgun) Send(ctx context.Context, to, subject, text string) error {
	msg := m.client.NewMessage(m.sender, subject, text, to)
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := m.client.Send(c, msg)
	return err
}

// Nop discards mail. Used when Mailgun is not configured.
type Nop struct{}

func (Nop) Send(context.Context, string, string, string) error { return nil }

// Package mailer sends the transactional emails of the shop. Delivery goes
// through SendGrid; without an API key messages are only logged.
package mailer

import (
	"context"
	"fmt"

	"bookstore-be/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type Message struct {
	To      string
	Subject string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type SendGridSender struct {
	client *sendgrid.Client
	from   *mail.Email
}

func NewSendGridSender(apiKey, from string) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail("Księgarnia", from),
	}
}

// withBaseURL points the client at another host. Used by tests.
func (s *SendGridSender) withBaseURL(url string) *SendGridSender {
	s.client.Request.BaseURL = url + "/v3/mail/send"
	return s
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	m := mail.NewSingleEmail(s.from, msg.Subject, mail.NewEmail("", msg.To), msg.Text, "")

	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: unexpected status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	logger.FromCtx(ctx).Info("email (not delivered)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Text),
	)
	return nil
}

// NewSender picks SendGrid when an API key is configured.
func NewSender(apiKey, from string) Sender {
	if apiKey == "" {
		return LogSender{}
	}
	return NewSendGridSender(apiKey, from)
}

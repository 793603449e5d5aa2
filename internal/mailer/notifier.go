package mailer

import (
	"context"
	"fmt"
	"text/template"

	"bookstore-be/internal/logger"

	"go.uber.org/zap"
)

// OutcomeRecorder receives one call per attempted email.
type OutcomeRecorder interface {
	EmailOutcome(template, outcome string)
}

// Notifier renders and sends the shop's emails. Every method is best
// effort: failures are logged and counted, never returned.
type Notifier struct {
	sender      Sender
	frontendURL string
	recorder    OutcomeRecorder
}

func NewNotifier(sender Sender, frontendURL string, recorder OutcomeRecorder) *Notifier {
	return &Notifier{sender: sender, frontendURL: frontendURL, recorder: recorder}
}

func (n *Notifier) PasswordReset(ctx context.Context, to, token string) {
	link := fmt.Sprintf("%s/reset-password?token=%s", n.frontendURL, token)
	n.deliver(ctx, "password_reset", to, "Resetowanie hasła", passwordResetTmpl, struct{ Link string }{link})
}

func (n *Notifier) PasswordChanged(ctx context.Context, to string) {
	n.deliver(ctx, "password_changed", to, "Hasło zostało zmienione", passwordChangedTmpl, nil)
}

func (n *Notifier) GuestOrderPlaced(ctx context.Context, order OrderEmail) {
	subject := fmt.Sprintf("Potwierdzenie zamówienia #%d", order.OrderID)
	n.deliver(ctx, "guest_order", order.Email, subject, guestOrderTmpl, order)
}

func (n *Notifier) PaymentConfirmed(ctx context.Context, order OrderEmail) {
	subject := fmt.Sprintf("Potwierdzenie zamówienia - Zamówienie #%d", order.OrderID)
	n.deliver(ctx, "payment_confirmed", order.Email, subject, paymentConfirmedTmpl, order)
}

func (n *Notifier) deliver(ctx context.Context, name, to, subject string, tmpl *template.Template, data any) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "mailer"),
		zap.String("template", name),
	)

	if to == "" {
		log.Warn("email skipped, no recipient")
		n.record(name, "skipped")
		return
	}

	body, err := render(tmpl, data)
	if err != nil {
		log.Error("failed to render email", zap.Error(err))
		n.record(name, "failed")
		return
	}

	if err := n.sender.Send(ctx, Message{To: to, Subject: subject, Text: body}); err != nil {
		log.Error("failed to send email", zap.String("to", to), zap.Error(err))
		n.record(name, "failed")
		return
	}

	log.Info("email sent", zap.String("to", to))
	n.record(name, "sent")
}

func (n *Notifier) record(name, outcome string) {
	if n.recorder != nil {
		n.recorder.EmailOutcome(name, outcome)
	}
}

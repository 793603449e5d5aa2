package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookstore-be/internal/cart"
	"bookstore-be/internal/logger"
	"bookstore-be/internal/mailer"
	"bookstore-be/internal/order"

	"go.uber.org/zap"
)

type OrderService interface {
	CreatePending(ctx context.Context, userID uint) (*order.Order, error)
	GetByID(ctx context.Context, id uint) (*order.Order, error)
	Delete(ctx context.Context, id uint) error
	Revert(ctx context.Context, id uint) error
}

type CartClearer interface {
	Clear(ctx context.Context, owner cart.Owner) (int64, error)
}

type Notifier interface {
	PaymentConfirmed(ctx context.Context, order mailer.OrderEmail)
}

type OutcomeRecorder interface {
	WebhookOutcome(event, outcome string)
}

type Service interface {
	CreateCheckoutSession(ctx context.Context, userID uint, email string) (*Session, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type Deps struct {
	Repo        Repository
	Gateway     Gateway
	Orders      OrderService
	Carts       CartClearer
	Notifier    Notifier
	Metrics     OutcomeRecorder
	FrontendURL string
}

type service struct {
	Deps
}

func NewService(d Deps) Service {
	d.FrontendURL = strings.TrimRight(d.FrontendURL, "/")
	return &service{Deps: d}
}

func sessionLines(o *order.Order) []SessionLine {
	lines := make([]SessionLine, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, SessionLine{
			Name:        fmt.Sprintf("%s (%s)", it.Title, it.SelectedFormat.Label()),
			Description: it.Author,
			UnitAmount:  ToMinorUnits(it.Price),
			Quantity:    int64(it.Quantity),
		})
	}
	return lines
}

// CreateCheckoutSession places a pending order from the user's cart and opens
// a hosted payment page for it. The cart is cleared only once the session
// exists. When the provider refuses the session the order is removed and the
// stock it took is not returned. When the payment row cannot be saved the
// order is reverted with its stock.
func (s *service) CreateCheckoutSession(ctx context.Context, userID uint, email string) (*Session, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateCheckoutSession"),
	)

	o, err := s.Orders.CreatePending(ctx, userID)
	if err != nil {
		return nil, err
	}
	log = log.With(zap.Uint("order_id", o.ID))

	sess, err := s.Gateway.CreateCheckoutSession(ctx, SessionRequest{
		OrderID:       o.ID,
		UserID:        userID,
		CustomerEmail: email,
		Lines:         sessionLines(o),
		SuccessURL:    s.FrontendURL + "/payment/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.FrontendURL + "/payment/cancel",
	})
	if err != nil {
		log.Warn("checkout session failed, removing order", zap.Error(err))
		if delErr := s.Orders.Delete(ctx, o.ID); delErr != nil {
			log.Error("failed to remove order", zap.Error(delErr))
		}
		return nil, err
	}

	p := &Payment{
		OrderID:         o.ID,
		StripeSessionID: sess.ID,
		Amount:          o.TotalAmount,
		Status:          StatusPending,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		log.Error("failed to save payment, reverting order", zap.Error(err))
		if revErr := s.Orders.Revert(ctx, o.ID); revErr != nil {
			log.Error("failed to revert order", zap.Error(revErr))
		}
		return nil, err
	}

	if _, err := s.Carts.Clear(ctx, cart.Owner{UserID: userID}); err != nil {
		log.Error("failed to clear cart after checkout session", zap.Error(err))
	}

	log.Info("checkout session created", zap.String("session_id", sess.ID))
	return sess, nil
}

func (s *service) record(event, outcome string) {
	if s.Metrics != nil {
		s.Metrics.WebhookOutcome(event, outcome)
	}
}

// HandleWebhook applies a signed provider event. Only completed checkouts
// change state; a redelivered event is acknowledged without side effects.
func (s *service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "HandleWebhook"),
	)

	if signature == "" {
		s.record("unknown", "missing_signature")
		return ErrMissingSignature
	}

	evt, err := s.Gateway.ParseWebhook(payload, signature)
	if err != nil {
		outcome := "invalid_signature"
		if errors.Is(err, ErrInvalidPayload) {
			outcome = "invalid_payload"
		}
		s.record("unknown", outcome)
		log.Warn("webhook rejected", zap.Error(err))
		return err
	}
	log = log.With(zap.String("event_id", evt.ID), zap.String("event_type", evt.Type))

	if evt.Type != EventCheckoutCompleted {
		s.record(evt.Type, "ignored")
		return nil
	}

	p, err := s.Repo.GetBySessionID(ctx, evt.SessionID)
	if err != nil {
		s.record(evt.Type, "payment_not_found")
		return err
	}

	changed, err := s.Repo.MarkCompleted(ctx, p)
	if err != nil {
		s.record(evt.Type, "error")
		return err
	}
	if !changed {
		log.Info("payment already completed", zap.Uint("order_id", p.OrderID))
		s.record(evt.Type, "duplicate")
		return nil
	}

	log.Info("payment completed", zap.Uint("order_id", p.OrderID))
	s.record(evt.Type, "completed")

	o, err := s.Orders.GetByID(ctx, p.OrderID)
	if err != nil {
		log.Warn("order lookup for confirmation email failed", zap.Error(err))
		return nil
	}
	if o.ContactEmail() != "" {
		s.Notifier.PaymentConfirmed(ctx, order.ToOrderEmail(o))
	}
	return nil
}

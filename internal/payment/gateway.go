package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bookstore-be/internal/apperror"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
)

type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error)
	// ParseWebhook verifies the signature header and decodes the event.
	ParseWebhook(payload []byte, signature string) (*Event, error)
}

type StripeGateway struct {
	sessions      *session.Client
	webhookSecret string
}

func NewStripeGateway(secretKey, webhookSecret string) *StripeGateway {
	return newStripeGateway(stripe.GetBackend(stripe.APIBackend), secretKey, webhookSecret)
}

func newStripeGateway(backend stripe.Backend, secretKey, webhookSecret string) *StripeGateway {
	return &StripeGateway{
		sessions:      &session.Client{B: backend, Key: secretKey},
		webhookSecret: webhookSecret,
	}
}

// CreateCheckoutSession creates a hosted card checkout. Any failure, whether
// reported by Stripe or raised while reaching it, comes back as an apperror
// provider error carrying the underlying message.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
	}
	params.Context = ctx
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	for _, l := range req.Lines {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(Currency),
				UnitAmount: stripe.Int64(l.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(l.Name),
					Description: stripe.String(l.Description),
				},
			},
			Quantity: stripe.Int64(l.Quantity),
		})
	}
	params.AddMetadata("order_id", fmt.Sprint(req.OrderID))
	params.AddMetadata("user_id", fmt.Sprint(req.UserID))

	s, err := g.sessions.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
			return nil, apperror.Provider(stripeErr.Msg)
		}
		return nil, apperror.Provider(err.Error())
	}

	return &Session{ID: s.ID, URL: s.URL}, nil
}

func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*Event, error) {
	if !json.Valid(payload) {
		return nil, ErrInvalidPayload
	}

	evt, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, ErrInvalidSignature
	}

	out := &Event{ID: evt.ID, Type: string(evt.Type)}
	if out.Type == EventCheckoutCompleted && evt.Data != nil {
		var s stripe.CheckoutSession
		if err := json.Unmarshal(evt.Data.Raw, &s); err != nil {
			return nil, ErrInvalidPayload
		}
		out.SessionID = s.ID
	}
	return out, nil
}

// Package webhook receives payment provider notifications.
package webhook

import (
	"context"
	"io"
	"net/http"

	"bookstore-be/internal/payment"
	"bookstore-be/internal/transport"
)

const (
	SignatureHeader = "Stripe-Signature"
	maxBodyBytes    = 65536
)

type EventHandler interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type Handler struct {
	events EventHandler
}

func NewHandler(events EventHandler) *Handler {
	return &Handler{events: events}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		transport.WriteError(w, r, payment.ErrInvalidPayload)
		return
	}

	if err := h.events.HandleWebhook(r.Context(), payload, r.Header.Get(SignatureHeader)); err != nil {
		transport.WriteError(w, r, err)
		return
	}

	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

package rest

import (
	"net/http"

	"bookstore-be/internal/i18n"
	"bookstore-be/internal/order"
	"bookstore-be/internal/transport"
	"bookstore-be/internal/utils"
)

type checkoutSessionResponse struct {
	URL string `json:"url"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.Orders.Checkout(r.Context(), currentUser(r))
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, order.ToResponse(o))
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	list, err := h.Orders.List(r.Context(), currentUser(r))
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, order.ToResponses(list))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		transport.WriteError(w, r, order.ErrOrderNotFound)
		return
	}

	o, err := h.Orders.Get(r.Context(), currentUser(r), id)
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, order.ToResponse(o))
}

func (h *Handler) guestCheckout(w http.ResponseWriter, r *http.Request) {
	session := h.Sessions.Key(r)
	if session == "" {
		transport.WriteError(w, r, order.ErrGuestCartNotFound)
		return
	}

	var in order.GuestCheckoutInput
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(w, r, err)
		return
	}

	o, err := h.Orders.GuestCheckout(r.Context(), session, in)
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}

	transport.WriteJSON(w, http.StatusCreated, order.GuestCheckoutResponse{
		Message:         i18n.T(r.Context(), order.MsgOrderPlaced),
		Order:           order.ToResponse(o),
		PaymentRequired: true,
		OrderID:         o.ID,
	})
}

func (h *Handler) createCheckoutSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s, err := h.Payments.CreateCheckoutSession(ctx, currentUser(r), utils.GetUserEmailFromContext(ctx))
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, checkoutSessionResponse{URL: s.URL})
}

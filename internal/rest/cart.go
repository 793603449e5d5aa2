package rest

import (
	"net/http"

	"bookstore-be/internal/cart"
	"bookstore-be/internal/transport"
)

// ownerFunc resolves whose cart a request works on. create is set for
// operations that may start a new guest session.
type ownerFunc func(w http.ResponseWriter, r *http.Request, create bool) (cart.Owner, bool)

func userOwner(_ http.ResponseWriter, r *http.Request, _ bool) (cart.Owner, bool) {
	return cart.Owner{UserID: currentUser(r)}, true
}

func (h *Handler) guestOwner(w http.ResponseWriter, r *http.Request, create bool) (cart.Owner, bool) {
	if create {
		return cart.Owner{SessionKey: h.Sessions.Ensure(w, r)}, true
	}
	key := h.Sessions.Key(r)
	return cart.Owner{SessionKey: key}, key != ""
}

func (h *Handler) viewCart(owner ownerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, _ := owner(w, r, true)
		c, err := h.Carts.View(r.Context(), o)
		if err != nil {
			transport.WriteError(w, r, err)
			return
		}
		transport.WriteJSON(w, http.StatusOK, cart.ToResponse(c))
	}
}

func (h *Handler) addToCart(owner ownerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in cart.AddInput
		if err := transport.DecodeJSON(r, &in); err != nil {
			transport.WriteError(w, r, err)
			return
		}

		o, _ := owner(w, r, true)
		item, created, err := h.Carts.Add(r.Context(), o, in)
		if err != nil {
			transport.WriteError(w, r, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		transport.WriteJSON(w, status, cart.ToItemResponse(item))
	}
}

func (h *Handler) updateCartItem(owner ownerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			transport.WriteError(w, r, cart.ErrItemNotFound)
			return
		}
		o, ok := owner(w, r, false)
		if !ok {
			transport.WriteError(w, r, cart.ErrCartNotFound)
			return
		}

		var in cart.UpdateInput
		if err := transport.DecodeJSON(r, &in); err != nil {
			transport.WriteError(w, r, err)
			return
		}

		item, err := h.Carts.UpdateItem(r.Context(), o, id, in.Quantity)
		if err != nil {
			transport.WriteError(w, r, err)
			return
		}
		transport.WriteJSON(w, http.StatusOK, cart.ToItemResponse(item))
	}
}

func (h *Handler) removeCartItem(owner ownerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "id")
		if !ok {
			transport.WriteError(w, r, cart.ErrItemNotFound)
			return
		}
		o, ok := owner(w, r, false)
		if !ok {
			transport.WriteError(w, r, cart.ErrCartNotFound)
			return
		}

		if err := h.Carts.RemoveItem(r.Context(), o, id); err != nil {
			transport.WriteError(w, r, err)
			return
		}
		transport.WriteMessage(w, r, http.StatusOK, cart.MsgItemRemoved)
	}
}

func (h *Handler) clearCart(owner ownerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, ok := owner(w, r, false)
		if !ok {
			transport.WriteMessage(w, r, http.StatusOK, cart.MsgCartAlreadyEmpty)
			return
		}

		if _, err := h.Carts.Clear(r.Context(), o); err != nil {
			transport.WriteError(w, r, err)
			return
		}
		transport.WriteMessage(w, r, http.StatusOK, cart.MsgCartCleared)
	}
}

package rest

import (
	"net/http"

	"bookstore-be/internal/address"
	"bookstore-be/internal/i18n"
	"bookstore-be/internal/transport"
)

type setDefaultResponse struct {
	Message string           `json:"message"`
	Address address.Response `json:"address"`
}

func (h *Handler) listAddresses(w http.ResponseWriter, r *http.Request) {
	list, err := h.Addresses.List(r.Context(), currentUser(r))
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, address.ToResponses(list))
}

func (h *Handler) createAddress(w http.ResponseWriter, r *http.Request) {
	var in address.Input
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(w, r, err)
		return
	}

	a, err := h.Addresses.Create(r.Context(), currentUser(r), in)
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, address.ToResponse(a))
}

func (h *Handler) getAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		transport.WriteError(w, r, address.ErrAddressNotFound)
		return
	}

	a, err := h.Addresses.Get(r.Context(), currentUser(r), id)
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, address.ToResponse(a))
}

func (h *Handler) updateAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		transport.WriteError(w, r, address.ErrAddressNotFound)
		return
	}

	var in address.PatchInput
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(w, r, err)
		return
	}

	a, err := h.Addresses.Update(r.Context(), currentUser(r), id, in)
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, address.ToResponse(a))
}

func (h *Handler) deleteAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		transport.WriteError(w, r, address.ErrAddressNotFound)
		return
	}

	if err := h.Addresses.Delete(r.Context(), currentUser(r), id); err != nil {
		transport.WriteError(w, r, err)
		return
	}
	transport.WriteMessage(w, r, http.StatusOK, address.MsgAddressDeleted)
}

func (h *Handler) setDefaultAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		transport.WriteError(w, r, address.ErrAddressNotFound)
		return
	}

	a, err := h.Addresses.SetDefault(r.Context(), currentUser(r), id)
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, setDefaultResponse{
		Message: i18n.T(r.Context(), address.MsgAddressSetDefault),
		Address: address.ToResponse(a),
	})
}

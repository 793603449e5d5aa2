package rest

import (
	"encoding/json"
	"net/http"

	"bookstore-be/internal/i18n"
	"bookstore-be/internal/product"
	"bookstore-be/internal/transport"
	"bookstore-be/internal/vendorpanel"
)

// vendor loads the caller's company assignment from the user record, so a
// change of company takes effect without a new token.
func (h *Handler) vendor(r *http.Request) (vendorpanel.Vendor, error) {
	u, err := h.Users.GetByID(r.Context(), currentUser(r))
	if err != nil {
		return vendorpanel.Vendor{}, err
	}
	return vendorpanel.Vendor{
		UserID:      u.ID,
		Email:       u.Email,
		CompanyID:   u.VendorCompanyID,
		CompanyName: u.VendorCompanyName,
	}, nil
}

func (h *Handler) vendorProducts(w http.ResponseWriter, r *http.Request) {
	v, err := h.vendor(r)
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}

	list, err := h.Vendor.ListProducts(r.Context(), v)
	writeProducts(w, r, list, err)
}

func (h *Handler) vendorProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		transport.WriteError(w, r, product.ErrProductNotFound)
		return
	}
	v, err := h.vendor(r)
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}

	p, err := h.Vendor.GetProduct(r.Context(), v, id)
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, product.ToResponse(p))
}

func (h *Handler) vendorUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		transport.WriteError(w, r, product.ErrProductNotFound)
		return
	}
	v, err := h.vendor(r)
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}

	var body map[string]json.RawMessage
	if err := transport.DecodeJSON(r, &body); err != nil {
		transport.WriteError(w, r, err)
		return
	}

	p, err := h.Vendor.UpdateProduct(r.Context(), v, id, body)
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, product.ToResponse(p))
}

func (h *Handler) vendorAnalytics(w http.ResponseWriter, r *http.Request) {
	v, err := h.vendor(r)
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}

	res, err := h.Vendor.Analytics(r.Context(), v)
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}
	if res.Message != "" {
		res.Message = i18n.T(r.Context(), res.Message)
	}
	transport.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) vendorDashboard(w http.ResponseWriter, r *http.Request) {
	v, err := h.vendor(r)
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}

	res, err := h.Vendor.Dashboard(r.Context(), v)
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, res)
}

package rest

import (
	"net/http"

	"bookstore-be/internal/product"
	"bookstore-be/internal/transport"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.Products.List(r.Context(), q.Get("genre"), q.Get("format"))
	writeProducts(w, r, list, err)
}

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	list, err := h.Products.ListBooks(r.Context(), r.URL.Query().Get("genre"))
	writeProducts(w, r, list, err)
}

func (h *Handler) listEbooks(w http.ResponseWriter, r *http.Request) {
	list, err := h.Products.ListEbooks(r.Context(), r.URL.Query().Get("genre"))
	writeProducts(w, r, list, err)
}

func writeProducts(w http.ResponseWriter, r *http.Request, list []*product.Product, err error) {
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, product.ToResponses(list))
}

func (h *Handler) genres(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, h.Products.Genres())
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		transport.WriteError(w, r, product.ErrProductNotFound)
		return
	}

	p, err := h.Products.GetByID(r.Context(), id)
	if err != nil {
		transport.WriteError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, product.ToResponse(p))
}

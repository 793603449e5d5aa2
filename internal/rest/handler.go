// Package rest exposes the services over a JSON API routed with gorilla/mux.
package rest

import (
	"net/http"

	"bookstore-be/internal/address"
	"bookstore-be/internal/cart"
	"bookstore-be/internal/order"
	"bookstore-be/internal/payment"
	"bookstore-be/internal/product"
	"bookstore-be/internal/transport"
	"bookstore-be/internal/user"
	"bookstore-be/internal/utils"
	"bookstore-be/internal/vendorpanel"

	"github.com/gorilla/mux"
)

// Handler holds the services behind the HTTP routes.
type Handler struct {
	Users     user.Service
	Addresses address.Service
	Products  product.Service
	Carts     cart.Service
	Orders    order.Service
	Payments  payment.Service
	Vendor    vendorpanel.Service

	// Sessions signs and verifies the guest cart cookie.
	Sessions *transport.GuestSessions

	// Webhook receives provider events on the payment webhook route.
	Webhook http.Handler
}

// pathID reads a positive numeric route variable.
func pathID(r *http.Request, name string) (uint, bool) {
	id, err := utils.ToUint(mux.Vars(r)[name])
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// currentUser returns the authenticated caller. Routes behind RequireAuth
// always have one.
func currentUser(r *http.Request) uint {
	id, _ := utils.GetUserIDFromContext(r.Context())
	return id
}

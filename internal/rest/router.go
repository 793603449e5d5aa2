package rest

import (
	"net/http"

	"bookstore-be/internal/middleware"
	"bookstore-be/internal/user"

	"github.com/gorilla/mux"
)

// Register mounts every API route on r.
func (h *Handler) Register(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()

	authR := api.PathPrefix("/auth").Subrouter()
	authR.HandleFunc("/register/", h.register).Methods(http.MethodPost)
	authR.HandleFunc("/login/", h.login).Methods(http.MethodPost)
	authR.HandleFunc("/token/refresh/", h.refreshToken).Methods(http.MethodPost)
	authR.Handle("/me/", middleware.RequireAuth(http.HandlerFunc(h.me))).Methods(http.MethodGet)
	authR.HandleFunc("/forgot-password/", h.forgotPassword).Methods(http.MethodPost)
	authR.HandleFunc("/reset-password/", h.resetPassword).Methods(http.MethodPost)
	authR.HandleFunc("/vendor/companies/", h.vendorCompanies).Methods(http.MethodGet)
	authR.HandleFunc("/vendor/register/", h.registerVendor).Methods(http.MethodPost)

	userR := api.PathPrefix("/user").Subrouter()
	userR.Use(middleware.RequireAuth)
	userR.HandleFunc("/profile/", h.profile).Methods(http.MethodGet)
	userR.HandleFunc("/profile/", h.updateProfile).Methods(http.MethodPatch, http.MethodPut)
	userR.HandleFunc("/addresses/", h.listAddresses).Methods(http.MethodGet)
	userR.HandleFunc("/addresses/", h.createAddress).Methods(http.MethodPost)
	userR.HandleFunc("/addresses/{id}/", h.getAddress).Methods(http.MethodGet)
	userR.HandleFunc("/addresses/{id}/", h.updateAddress).Methods(http.MethodPatch, http.MethodPut)
	userR.HandleFunc("/addresses/{id}/", h.deleteAddress).Methods(http.MethodDelete)
	userR.HandleFunc("/addresses/{id}/default/", h.setDefaultAddress).Methods(http.MethodPatch, http.MethodPost)

	productR := api.PathPrefix("/products").Subrouter()
	productR.HandleFunc("/", h.listProducts).Methods(http.MethodGet)
	productR.HandleFunc("/books/", h.listBooks).Methods(http.MethodGet)
	productR.HandleFunc("/ebooks/", h.listEbooks).Methods(http.MethodGet)
	productR.HandleFunc("/genres/", h.genres).Methods(http.MethodGet)
	productR.HandleFunc("/{id:[0-9]+}/", h.getProduct).Methods(http.MethodGet)

	// Guest routes first, the user cart subrouter shares the prefix.
	guestR := api.PathPrefix("/cart/guest").Subrouter()
	h.registerCart(guestR, h.guestOwner)

	cartR := api.PathPrefix("/cart").Subrouter()
	cartR.Use(middleware.RequireAuth)
	h.registerCart(cartR, userOwner)

	api.HandleFunc("/checkout/guest/", h.guestCheckout).Methods(http.MethodPost)

	orderR := api.PathPrefix("/orders").Subrouter()
	orderR.Use(middleware.RequireAuth)
	orderR.HandleFunc("/", h.listOrders).Methods(http.MethodGet)
	orderR.HandleFunc("/create/", h.createOrder).Methods(http.MethodPost)
	orderR.HandleFunc("/{id:[0-9]+}/", h.getOrder).Methods(http.MethodGet)

	api.Handle("/payments/create-checkout-session/",
		middleware.RequireAuth(http.HandlerFunc(h.createCheckoutSession))).Methods(http.MethodPost)
	if h.Webhook != nil {
		api.Handle("/payments/webhook/", h.Webhook).Methods(http.MethodPost)
	}

	vendorR := api.PathPrefix("/vendor").Subrouter()
	vendorR.Use(middleware.RequireRole(user.RoleVendor))
	vendorR.HandleFunc("/products/", h.vendorProducts).Methods(http.MethodGet)
	vendorR.HandleFunc("/products/{id}/", h.vendorProduct).Methods(http.MethodGet)
	vendorR.HandleFunc("/products/{id}/", h.vendorUpdateProduct).Methods(http.MethodPatch, http.MethodPut)
	vendorR.HandleFunc("/analytics/", h.vendorAnalytics).Methods(http.MethodGet)
	vendorR.HandleFunc("/dashboard/", h.vendorDashboard).Methods(http.MethodGet)
}

func (h *Handler) registerCart(r *mux.Router, owner ownerFunc) {
	r.HandleFunc("/", h.viewCart(owner)).Methods(http.MethodGet)
	r.HandleFunc("/add/", h.addToCart(owner)).Methods(http.MethodPost)
	r.HandleFunc("/update/{id}/", h.updateCartItem(owner)).Methods(http.MethodPatch, http.MethodPut)
	r.HandleFunc("/remove/{id}/", h.removeCartItem(owner)).Methods(http.MethodDelete)
	r.HandleFunc("/clear/", h.clearCart(owner)).Methods(http.MethodDelete)
}

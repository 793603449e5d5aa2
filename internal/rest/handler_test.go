package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bookstore-be/internal/auth"
	"bookstore-be/internal/cart"
	"bookstore-be/internal/i18n"
	"bookstore-be/internal/middleware"
	"bookstore-be/internal/order"
	"bookstore-be/internal/payment"
	"bookstore-be/internal/product"
	"bookstore-be/internal/transport"
	"bookstore-be/internal/user"
	"bookstore-be/internal/vendorpanel"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	handler  http.Handler
	tokens   *auth.TokenManager
	users    *MockUserService
	carts    *MockCartService
	orders   *MockOrderService
	products *MockProductService
	payments *MockPaymentService
	vendor   *MockVendorService
	sessions *transport.GuestSessions
}

func newTestEnv() *testEnv {
	e := &testEnv{
		tokens:   auth.NewTokenManager("test-secret", time.Minute, time.Hour),
		users:    new(MockUserService),
		carts:    new(MockCartService),
		orders:   new(MockOrderService),
		products: new(MockProductService),
		payments: new(MockPaymentService),
		vendor:   new(MockVendorService),
		sessions: transport.NewGuestSessions("test-secret"),
	}

	h := &Handler{
		Users:    e.users,
		Carts:    e.carts,
		Orders:   e.orders,
		Products: e.products,
		Payments: e.payments,
		Vendor:   e.vendor,
		Sessions: e.sessions,
		Webhook: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
		}),
	}

	r := mux.NewRouter()
	h.Register(r)
	e.handler = i18n.Middleware(middleware.AuthMiddleware(e.tokens)(r))
	return e
}

type requestOption func(*http.Request)

func (e *testEnv) as(t *testing.T, id uint, email, role string) requestOption {
	pair, err := e.tokens.GeneratePair(id, email, role)
	require.NoError(t, err)
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+pair.Access)
	}
}

func (e *testEnv) withSession(t *testing.T, key string) requestOption {
	c, err := e.sessions.Cookie(key)
	require.NoError(t, err)
	return func(r *http.Request) {
		r.AddCookie(c)
	}
}

func (e *testEnv) do(method, path, body string, opts ...requestOption) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept-Language", "en")
	for _, opt := range opts {
		opt(req)
	}

	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestLogin(t *testing.T) {
	result := &user.AuthResult{
		User:    &user.User{ID: 7, Email: "anna@example.com", Role: user.RoleCustomer},
		Access:  "access-token",
		Refresh: "refresh-token",
	}

	t.Run("merges the guest cart", func(t *testing.T) {
		e := newTestEnv()
		session := uuid.NewString()

		e.users.On("Login", mock.Anything, "anna@example.com", "secret123").Return(result, nil).Once()
		e.carts.On("Merge", mock.Anything, session, uint(7)).Return(2, nil).Once()

		w := e.do(http.MethodPost, "/api/auth/login/",
			`{"email": "anna@example.com", "password": "secret123"}`, e.withSession(t, session))

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "access-token", body["access"])
		assert.Equal(t, "refresh-token", body["refresh"])
		e.carts.AssertExpectations(t)
	})

	t.Run("failed merge does not fail the login", func(t *testing.T) {
		e := newTestEnv()
		session := uuid.NewString()

		e.users.On("Login", mock.Anything, "anna@example.com", "secret123").Return(result, nil).Once()
		e.carts.On("Merge", mock.Anything, session, uint(7)).Return(0, errors.New("db down")).Once()

		w := e.do(http.MethodPost, "/api/auth/login/",
			`{"email": "anna@example.com", "password": "secret123"}`, e.withSession(t, session))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("no session skips the merge", func(t *testing.T) {
		e := newTestEnv()
		e.users.On("Login", mock.Anything, "anna@example.com", "secret123").Return(result, nil).Once()

		w := e.do(http.MethodPost, "/api/auth/login/", `{"email": "anna@example.com", "password": "secret123"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		e.carts.AssertNotCalled(t, "Merge", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("bad credentials", func(t *testing.T) {
		e := newTestEnv()
		e.users.On("Login", mock.Anything, "anna@example.com", "wrong").Return(nil, user.ErrInvalidCredentials).Once()

		w := e.do(http.MethodPost, "/api/auth/login/", `{"email": "anna@example.com", "password": "wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "invalid credentials", decodeBody(t, w)["error"])
	})

	t.Run("malformed body", func(t *testing.T) {
		e := newTestEnv()

		w := e.do(http.MethodPost, "/api/auth/login/", `{"email":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRefreshToken(t *testing.T) {
	e := newTestEnv()
	e.users.On("Refresh", mock.Anything, "refresh-token").
		Return(&user.AuthResult{User: &user.User{ID: 7}, Access: "new-access"}, nil).Once()

	w := e.do(http.MethodPost, "/api/auth/token/refresh/", `{"refresh": "refresh-token"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"access": "new-access"}, decodeBody(t, w))
}

func TestForgotPassword_SameAnswer(t *testing.T) {
	e := newTestEnv()
	e.users.On("ForgotPassword", mock.Anything, "nobody@example.com").Return(nil).Once()

	w := e.do(http.MethodPost, "/api/auth/forgot-password/", `{"email": "nobody@example.com"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user.MsgPasswordResetSent, decodeBody(t, w)["message"])
}

func TestMe_RequiresAuth(t *testing.T) {
	e := newTestEnv()

	w := e.do(http.MethodGet, "/api/auth/me/", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCart_User(t *testing.T) {
	p := &product.Product{ID: 3, Title: "Lalka", Format: product.FormatPaperback, Price: decimal.RequireFromString("39.90"), Stock: 5}
	qty := 2

	t.Run("new line is created", func(t *testing.T) {
		e := newTestEnv()
		e.carts.On("Add", mock.Anything, cart.Owner{UserID: 7}, cart.AddInput{ProductID: 3, Quantity: &qty}).
			Return(&cart.Item{ID: 11, ProductID: 3, Quantity: 2, SelectedFormat: product.FormatPaperback, Product: p}, true, nil).Once()

		w := e.do(http.MethodPost, "/api/cart/add/", `{"product_id": 3, "quantity": 2}`,
			e.as(t, 7, "anna@example.com", user.RoleCustomer))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "79.80", decodeBody(t, w)["subtotal"])
	})

	t.Run("existing line is increased", func(t *testing.T) {
		e := newTestEnv()
		e.carts.On("Add", mock.Anything, cart.Owner{UserID: 7}, cart.AddInput{ProductID: 3, Quantity: &qty}).
			Return(&cart.Item{ID: 11, ProductID: 3, Quantity: 4, Product: p}, false, nil).Once()

		w := e.do(http.MethodPost, "/api/cart/add/", `{"product_id": 3, "quantity": 2}`,
			e.as(t, 7, "anna@example.com", user.RoleCustomer))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("stock exceeded", func(t *testing.T) {
		e := newTestEnv()
		e.carts.On("Add", mock.Anything, cart.Owner{UserID: 7}, mock.Anything).
			Return(nil, false, cart.ErrInsufficientStock.With(5)).Once()

		w := e.do(http.MethodPost, "/api/cart/add/", `{"product_id": 3, "quantity": 9}`,
			e.as(t, 7, "anna@example.com", user.RoleCustomer))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, map[string]any{"quantity": "only 5 available"}, body["fields"])
	})

	t.Run("anonymous caller is rejected", func(t *testing.T) {
		e := newTestEnv()

		w := e.do(http.MethodGet, "/api/cart/", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		e.carts.AssertNotCalled(t, "View", mock.Anything, mock.Anything)
	})
}

func TestCart_Guest(t *testing.T) {
	t.Run("first view starts a session", func(t *testing.T) {
		e := newTestEnv()
		e.carts.On("View", mock.Anything, mock.MatchedBy(func(o cart.Owner) bool {
			return o.UserID == 0 && o.SessionKey != ""
		})).Return(&cart.Cart{ID: 1}, nil).Once()

		w := e.do(http.MethodGet, "/api/cart/guest/", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Set-Cookie"), transport.GuestSessionCookie+"=")
		assert.Equal(t, "0.00", decodeBody(t, w)["total_price"])
	})

	t.Run("existing session is reused", func(t *testing.T) {
		e := newTestEnv()
		session := uuid.NewString()
		e.carts.On("View", mock.Anything, cart.Owner{SessionKey: session}).Return(&cart.Cart{ID: 1}, nil).Once()

		w := e.do(http.MethodGet, "/api/cart/guest/", "", e.withSession(t, session))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Set-Cookie"))
	})

	t.Run("unsigned session cookie is replaced", func(t *testing.T) {
		e := newTestEnv()
		forged := uuid.NewString()
		e.carts.On("View", mock.Anything, mock.MatchedBy(func(o cart.Owner) bool {
			return o.SessionKey != "" && o.SessionKey != forged
		})).Return(&cart.Cart{ID: 2}, nil).Once()

		w := e.do(http.MethodGet, "/api/cart/guest/", "", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: transport.GuestSessionCookie, Value: forged})
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Set-Cookie"), transport.GuestSessionCookie+"=")
		e.carts.AssertExpectations(t)
	})

	t.Run("update without session", func(t *testing.T) {
		e := newTestEnv()

		w := e.do(http.MethodPatch, "/api/cart/guest/update/4/", `{"quantity": 2}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "guest cart not found", decodeBody(t, w)["error"])
	})

	t.Run("clear without session", func(t *testing.T) {
		e := newTestEnv()

		w := e.do(http.MethodDelete, "/api/cart/guest/clear/", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, cart.MsgCartAlreadyEmpty, decodeBody(t, w)["message"])
	})

	t.Run("remove with session", func(t *testing.T) {
		e := newTestEnv()
		session := uuid.NewString()
		e.carts.On("RemoveItem", mock.Anything, cart.Owner{SessionKey: session}, uint(4)).Return(nil).Once()

		w := e.do(http.MethodDelete, "/api/cart/guest/remove/4/", "", e.withSession(t, session))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, cart.MsgItemRemoved, decodeBody(t, w)["message"])
	})
}

func TestGuestCheckout(t *testing.T) {
	t.Run("without session", func(t *testing.T) {
		e := newTestEnv()

		w := e.do(http.MethodPost, "/api/checkout/guest/", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		e.orders.AssertNotCalled(t, "GuestCheckout", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("places the order", func(t *testing.T) {
		e := newTestEnv()
		session := uuid.NewString()
		placed := &order.Order{
			ID:            15,
			OrderType:     order.TypeGuest,
			GuestEmail:    "guest@example.com",
			TotalAmount:   decimal.RequireFromString("79.80"),
			PaymentStatus: order.PaymentPending,
		}
		e.orders.On("GuestCheckout", mock.Anything, session, mock.AnythingOfType("order.GuestCheckoutInput")).
			Return(placed, nil).Once()

		w := e.do(http.MethodPost, "/api/checkout/guest/",
			`{"first_name": "Jan", "last_name": "Nowak", "email": "guest@example.com", "phone": "600700800"}`,
			e.withSession(t, session))

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, order.MsgOrderPlaced, body["message"])
		assert.Equal(t, true, body["payment_required"])
		assert.Equal(t, float64(15), body["order_id"])
	})
}

func TestOrders(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		e := newTestEnv()
		e.orders.On("Checkout", mock.Anything, uint(7)).Return(nil, order.ErrCartEmpty).Once()

		w := e.do(http.MethodPost, "/api/orders/create/", "", e.as(t, 7, "anna@example.com", user.RoleCustomer))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "cart is empty", decodeBody(t, w)["error"])
	})

	t.Run("foreign order is not found", func(t *testing.T) {
		e := newTestEnv()
		e.orders.On("Get", mock.Anything, uint(7), uint(99)).Return(nil, order.ErrOrderNotFound).Once()

		w := e.do(http.MethodGet, "/api/orders/99/", "", e.as(t, 7, "anna@example.com", user.RoleCustomer))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCreateCheckoutSession(t *testing.T) {
	e := newTestEnv()
	e.payments.On("CreateCheckoutSession", mock.Anything, uint(7), "anna@example.com").
		Return(&payment.Session{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/pay/cs_test_1"}, nil).Once()

	w := e.do(http.MethodPost, "/api/payments/create-checkout-session/", "",
		e.as(t, 7, "anna@example.com", user.RoleCustomer))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", decodeBody(t, w)["url"])
}

func TestWebhookRoute_IsPublic(t *testing.T) {
	e := newTestEnv()

	w := e.do(http.MethodPost, "/api/payments/webhook/", `{}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", decodeBody(t, w)["status"])
}

func TestProducts(t *testing.T) {
	t.Run("filters by genre and format", func(t *testing.T) {
		e := newTestEnv()
		e.products.On("List", mock.Anything, "fantasy", "ebook").
			Return([]*product.Product{{ID: 1, Title: "Wiedźmin", Format: product.FormatEbook, Stock: 3}}, nil).Once()

		w := e.do(http.MethodGet, "/api/products/?genre=fantasy&format=ebook", "")

		require.Equal(t, http.StatusOK, w.Code)
		var list []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		require.Len(t, list, 1)
		assert.Equal(t, true, list[0]["is_in_stock"])
	})

	t.Run("missing product", func(t *testing.T) {
		e := newTestEnv()
		e.products.On("GetByID", mock.Anything, uint(404)).Return(nil, product.ErrProductNotFound).Once()

		w := e.do(http.MethodGet, "/api/products/404/", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestVendorPanel(t *testing.T) {
	companyID := uint(3)
	companyName := "Znak"
	vendorUser := &user.User{ID: 5, Email: "vendor@example.com", Role: user.RoleVendor,
		VendorCompanyID: &companyID, VendorCompanyName: &companyName}
	v := vendorpanel.Vendor{UserID: 5, Email: "vendor@example.com", CompanyID: &companyID, CompanyName: &companyName}

	t.Run("customers are forbidden", func(t *testing.T) {
		e := newTestEnv()

		w := e.do(http.MethodGet, "/api/vendor/dashboard/", "", e.as(t, 7, "anna@example.com", user.RoleCustomer))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("restricted fields", func(t *testing.T) {
		e := newTestEnv()
		e.users.On("GetByID", mock.Anything, uint(5)).Return(vendorUser, nil).Once()
		e.vendor.On("UpdateProduct", mock.Anything, v, uint(1), mock.Anything).
			Return(nil, vendorpanel.ErrFieldsNotAllowed.With("price").
				WithDetails(map[string]any{"allowed_fields": vendorpanel.AllowedFields})).Once()

		w := e.do(http.MethodPatch, "/api/vendor/products/1/", `{"price": "1.00"}`,
			e.as(t, 5, "vendor@example.com", user.RoleVendor))

		assert.Equal(t, http.StatusForbidden, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "you cannot edit the following fields: price", body["error"])
		details := body["details"].(map[string]any)
		assert.Len(t, details["allowed_fields"], len(vendorpanel.AllowedFields))
	})

	t.Run("analytics without company", func(t *testing.T) {
		e := newTestEnv()
		e.users.On("GetByID", mock.Anything, uint(5)).
			Return(&user.User{ID: 5, Email: "vendor@example.com", Role: user.RoleVendor}, nil).Once()
		e.vendor.On("Analytics", mock.Anything, vendorpanel.Vendor{UserID: 5, Email: "vendor@example.com"}).
			Return(nil, vendorpanel.ErrNoCompany).Once()

		w := e.do(http.MethodGet, "/api/vendor/analytics/", "", e.as(t, 5, "vendor@example.com", user.RoleVendor))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("dashboard", func(t *testing.T) {
		e := newTestEnv()
		e.users.On("GetByID", mock.Anything, uint(5)).Return(vendorUser, nil).Once()
		e.vendor.On("Dashboard", mock.Anything, v).Return(&vendorpanel.Dashboard{
			VendorCompany: "Znak", TotalProducts: 4, InStockProducts: 3, OutOfStockProducts: 1,
			Last30Days: vendorpanel.RecentSales{Revenue: "0.00"}, Currency: vendorpanel.Currency,
		}, nil).Once()

		w := e.do(http.MethodGet, "/api/vendor/dashboard/", "", e.as(t, 5, "vendor@example.com", user.RoleVendor))

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(1), body["out_of_stock_products"])
		assert.Equal(t, "PLN", body["currency"])
	})
}

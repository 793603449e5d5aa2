package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookstore-be/internal/auth"
	"bookstore-be/internal/logger"
	"bookstore-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCors(t *testing.T) {
	handler := CORS("http://localhost:3000")(okHandler())

	t.Run("OPTIONS request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/test", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Normal request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuth(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour, time.Hour)
	mw := AuthMiddleware(tokens)

	t.Run("Missing Token", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := utils.GetUserIDFromContext(r.Context())
			assert.False(t, ok)
			w.WriteHeader(http.StatusOK)
		})

		w := httptest.NewRecorder()
		mw(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		w := httptest.NewRecorder()

		mw(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Refresh token is not accepted", func(t *testing.T) {
		pair, err := tokens.GeneratePair(1, "jan@example.com", utils.RoleCustomer)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.Refresh)
		w := httptest.NewRecorder()

		mw(http.NotFoundHandler()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid Token", func(t *testing.T) {
		pair, err := tokens.GeneratePair(1, "jan@example.com", utils.RoleCustomer)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.Access)
		w := httptest.NewRecorder()

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, uint(1), userID)
			assert.Equal(t, utils.RoleCustomer, utils.GetUserRoleFromContext(r.Context()))
			w.WriteHeader(http.StatusOK)
		})

		mw(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(utils.RoleVendor)(okHandler())

	t.Run("Anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/vendor/products/", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Wrong role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/vendor/products/", nil)
		req = req.WithContext(utils.SetUserContext(req.Context(), 3, "c@example.com", utils.RoleCustomer))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Vendor", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/vendor/products/", nil)
		req = req.WithContext(utils.SetUserContext(req.Context(), 3, "v@example.com", utils.RoleVendor))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLoggingMiddleware(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	original := logger.L()
	logger.Set(zap.New(core))
	defer logger.Set(original)

	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/products/9/", nil))

	logs := observed.TakeAll()
	require.Len(t, logs, 1)
	assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
	assert.Equal(t, "/api/products/9/", logs[0].ContextMap()["path"])
	assert.Equal(t, int64(http.StatusNotFound), logs[0].ContextMap()["status"])
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	limiter := NewRateLimiter(ctx)
	handler := limiter.Middleware(okHandler())

	t.Run("Strict tier on login", func(t *testing.T) {
		codes := make([]int, 0, burstStrict+1)
		for i := 0; i < burstStrict+1; i++ {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login/", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}
		assert.Equal(t, http.StatusTooManyRequests, codes[len(codes)-1])
	})

	t.Run("Tiers have separate quotas", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Sweep removes idle visitors", func(t *testing.T) {
		limiter.sweep(time.Now().Add(time.Hour))
		limiter.mu.Lock()
		defer limiter.mu.Unlock()
		assert.Empty(t, limiter.visitors)
	})
}

func TestResolveRateTier(t *testing.T) {
	tests := []struct {
		method, path, tier string
	}{
		{http.MethodPost, "/api/payments/webhook/", "strict"},
		{http.MethodPost, "/api/auth/forgot-password", "strict"},
		{http.MethodPost, "/api/orders/create/", "checkout"},
		{http.MethodGet, "/api/orders/", "general"},
		{http.MethodGet, "/api/auth/login/", "general"},
	}
	for _, tt := range tests {
		_, _, tier := resolveRateTier(httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.tier, tier, tt.path)
	}
}

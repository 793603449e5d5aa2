package webhook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookstore-be/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockEvents struct{ mock.Mock }

func (m *MockEvents) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	return m.Called(payload, signature).Error(0)
}

func TestHandler(t *testing.T) {
	body := `{"id":"evt_1"}`

	t.Run("Success", func(t *testing.T) {
		events := new(MockEvents)
		events.On("HandleWebhook", []byte(body), "t=1,v1=abc").Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook/", strings.NewReader(body))
		req.Header.Set(SignatureHeader, "t=1,v1=abc")
		rec := httptest.NewRecorder()

		NewHandler(events).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"success"}`, rec.Body.String())
	})

	t.Run("Rejected signature is a bad request", func(t *testing.T) {
		events := new(MockEvents)
		events.On("HandleWebhook", []byte(body), "").Return(payment.ErrMissingSignature).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook/", strings.NewReader(body))
		rec := httptest.NewRecorder()

		NewHandler(events).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Unknown payment", func(t *testing.T) {
		events := new(MockEvents)
		events.On("HandleWebhook", []byte(body), "sig").Return(payment.ErrPaymentNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook/", strings.NewReader(body))
		req.Header.Set(SignatureHeader, "sig")
		rec := httptest.NewRecorder()

		NewHandler(events).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

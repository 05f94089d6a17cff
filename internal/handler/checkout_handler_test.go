package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tradestreet-api/internal/model"
	"tradestreet-api/internal/payment"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckoutHandler_CreateSession(t *testing.T) {
	tests := []struct {
		name           string
		mockURL        string
		mockError      error
		expectedStatus int
	}{
		{name: "Success", mockURL: "https://checkout.test/cs_1", expectedStatus: http.StatusOK},
		{name: "Empty cart", mockError: model.ErrCartEmpty, expectedStatus: http.StatusBadRequest},
		{name: "Payments disabled", mockError: model.ErrPaymentsDisabled, expectedStatus: http.StatusBadRequest},
		{name: "Processor failure", mockError: errors.New("stripe: 500"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCheckoutService)
			svc.On("CreateSession", mock.Anything, "user-1", "1 Main St").Return(tt.mockURL, tt.mockError)

			h := NewCheckoutHandler(svc, zerolog.Nop())
			req := asUser(httptest.NewRequest(http.MethodPost, "/create-checkout-session", bytes.NewBufferString(`{"shippingAddress":"1 Main St"}`)), "user-1", model.RoleUser)
			w := httptest.NewRecorder()

			h.CreateSession(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.mockError == nil {
				assert.JSONEq(t, `{"url":"https://checkout.test/cs_1"}`, w.Body.String())
			}
		})
	}
}

func TestCheckoutHandler_PaymentSuccess(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockCheckoutService)
		order := testOrder()
		order.PaymentStatus = model.PaymentCompleted
		intent := &payment.PaymentIntent{ID: "pi_1", Status: "succeeded", Amount: 2000, Currency: "inr"}
		svc.On("ConfirmPayment", mock.Anything, "cs_1").Return(order, intent, nil)

		h := NewCheckoutHandler(svc, zerolog.Nop())
		req := httptest.NewRequest(http.MethodGet, "/payment-success?session_id=cs_1", nil)
		w := httptest.NewRecorder()

		h.PaymentSuccess(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp PaymentSuccessResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Payment successful", resp.Message)
		assert.Equal(t, intent, resp.PaymentIntent)
		assert.Equal(t, model.PaymentCompleted, resp.Order.PaymentStatus)
	})

	tests := []struct {
		name           string
		query          string
		sessionID      string
		mockError      error
		expectedStatus int
	}{
		{name: "Missing session id", query: "", sessionID: "", mockError: model.ErrSessionIDRequired, expectedStatus: http.StatusBadRequest},
		{name: "Intent not found", query: "?session_id=cs_2", sessionID: "cs_2", mockError: model.ErrPaymentIntentMissing, expectedStatus: http.StatusNotFound},
		{name: "User gone", query: "?session_id=cs_3", sessionID: "cs_3", mockError: model.ErrUserNotFound, expectedStatus: http.StatusNotFound},
		{name: "Processor failure", query: "?session_id=cs_4", sessionID: "cs_4", mockError: errors.New("timeout"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCheckoutService)
			svc.On("ConfirmPayment", mock.Anything, tt.sessionID).Return(nil, nil, tt.mockError)

			h := NewCheckoutHandler(svc, zerolog.Nop())
			req := httptest.NewRequest(http.MethodGet, "/payment-success"+tt.query, nil)
			w := httptest.NewRecorder()

			h.PaymentSuccess(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

package handler

import (
	"net/http"

	"tradestreet-api/internal/model"
	"tradestreet-api/internal/payment"
	"tradestreet-api/internal/service"

	"github.com/rs/zerolog"
)

// PaymentSuccessResponse is returned once a checkout session has been turned into an order.
type PaymentSuccessResponse struct {
	Success       bool                   `json:"success"`
	Message       string                 `json:"message"`
	PaymentIntent *payment.PaymentIntent `json:"paymentIntent"`
	Order         *model.Order           `json:"order"`
}

// CheckoutHandler handles hosted card checkout.
type CheckoutHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// CreateSession handles POST /create-checkout-session.
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	var req model.PlaceOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	url, err := h.service.CreateSession(r.Context(), p.ID, req.ShippingAddress)
	if err != nil {
		writeServiceError(w, r, err, "Failed to create checkout session", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.CheckoutSessionResponse{URL: url})
}

// PaymentSuccess handles GET /payment-success?session_id=.
func (h *CheckoutHandler) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")

	order, intent, err := h.service.ConfirmPayment(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, r, err, "Error handling payment success", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, PaymentSuccessResponse{
		Success:       true,
		Message:       "Payment successful",
		PaymentIntent: intent,
		Order:         order,
	})
}

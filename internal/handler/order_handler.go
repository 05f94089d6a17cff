package handler

import (
	"net/http"

	"tradestreet-api/internal/model"
	"tradestreet-api/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order placement and the order status ledger.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Place handles POST /placeorder.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	var req model.PlaceOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), p.ID, req.ShippingAddress)
	if err != nil {
		writeServiceError(w, r, err, "An error occurred during checkout.", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.OrderResponse{Success: true, Message: "Checkout successful", Order: order})
}

// ListMine handles GET /fetchorders.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	orders, err := h.service.ListForUser(r.Context(), p.ID)
	if err != nil {
		writeServiceError(w, r, err, "An error occurred while fetching orders.", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// ListAll handles GET /orderstatus.
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "An error occurred while fetching orders.", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles POST /orderstatus/update.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateOrderStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), req.OrderID, req.NewStatus); err != nil {
		writeServiceError(w, r, err, "An error occurred while updating the order status.", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "Order status updated successfully."})
}

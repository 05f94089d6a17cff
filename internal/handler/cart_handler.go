package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"tradestreet-api/internal/model"
	"tradestreet-api/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles the authenticated cart endpoints.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// itemIDString returns the itemId as text, accepting a JSON string or number.
func itemIDString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		return s, s != ""
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}

	return "", false
}

// displayID parses the itemId of an add request as a product display id.
func displayID(raw json.RawMessage) (int, bool) {
	s, ok := itemIDString(raw)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Add handles POST /addtocarttwo. itemId is the product display id.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	id, ok := displayID(req.ItemID)
	if !ok {
		writeServiceError(w, r, model.ErrInvalidItemID, "", h.logger)
		return
	}

	cart, err := h.service.AddLine(r.Context(), p.ID, id, req.Size)
	if err != nil {
		writeServiceError(w, r, err, "An error occurred while adding the item to the cart.", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.CartResponse{Success: true, Message: "Item added to cart.", Cart: cart})
}

// Remove handles POST /removefromcarttwo. itemId is the product reference
// stored on the cart line.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	productID, ok := itemIDString(req.ItemID)
	if !ok {
		writeServiceError(w, r, model.ErrInvalidItemID, "", h.logger)
		return
	}

	cart, err := h.service.RemoveLine(r.Context(), p.ID, productID, req.Size)
	if err != nil {
		writeServiceError(w, r, err, "An error occurred while removing the item from the cart.", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.CartResponse{Success: true, Message: "Item removed from cart.", Cart: cart})
}

// Get handles POST /getcarttwo and returns the bare line array.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	cart, err := h.service.GetCart(r.Context(), p.ID)
	if err != nil {
		writeServiceError(w, r, err, "An error occurred while fetching the cart.", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

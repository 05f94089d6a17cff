package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tradestreet-api/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testOrder() *model.Order {
	return &model.Order{
		ID:              "order-1",
		UserID:          "user-1",
		Items:           []model.OrderLine{{ProductID: "prod-1", Quantity: 2, Name: "Shirt", NewPrice: 10}},
		TotalAmount:     20,
		ShippingAddress: "1 Main St",
		PaymentStatus:   model.PaymentPending,
		OrderStatus:     model.OrderProcessing,
		CreatedAt:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestOrderHandler_Place(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			body:           `{"shippingAddress":"1 Main St"}`,
			mockReturn:     testOrder(),
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Empty cart",
			body:           `{"shippingAddress":"1 Main St"}`,
			mockError:      model.ErrCartEmpty,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Unknown user",
			body:           `{"shippingAddress":"1 Main St"}`,
			mockError:      model.ErrUserNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Storage failure",
			body:           `{"shippingAddress":"1 Main St"}`,
			mockError:      errors.New("insert failed"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
		},
		{
			name:           "Invalid JSON",
			body:           `not json`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockOrderService)
			if tt.expectService {
				var ret interface{}
				if tt.mockReturn != nil {
					ret = tt.mockReturn
				}
				svc.On("PlaceOrder", mock.Anything, "user-1", "1 Main St").Return(ret, tt.mockError)
			}

			h := NewOrderHandler(svc, zerolog.Nop())
			req := asUser(httptest.NewRequest(http.MethodPost, "/placeorder", bytes.NewBufferString(tt.body)), "user-1", model.RoleUser)
			w := httptest.NewRecorder()

			h.Place(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.mockReturn != nil {
				var resp model.OrderResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.True(t, resp.Success)
				assert.Equal(t, "Checkout successful", resp.Message)
				assert.Equal(t, tt.mockReturn, resp.Order)
			}
			if !tt.expectService {
				svc.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestOrderHandler_ListMine(t *testing.T) {
	svc := new(MockOrderService)
	svc.On("ListForUser", mock.Anything, "user-1").Return([]model.OrderDetails{
		{ID: "order-1", UserID: "user-1", Items: []model.OrderItemDetails{{OrderLine: model.OrderLine{ProductID: "gone", Quantity: 1}}}},
	}, nil)

	h := NewOrderHandler(svc, zerolog.Nop())
	req := asUser(httptest.NewRequest(http.MethodGet, "/fetchorders", nil), "user-1", model.RoleUser)
	w := httptest.NewRecorder()

	h.ListMine(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	items := body[0]["items"].([]interface{})
	assert.Nil(t, items[0].(map[string]interface{})["product"])
}

func TestOrderHandler_ListAll(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("ListAll", mock.Anything).Return([]model.OrderDetails{}, nil)

		h := NewOrderHandler(svc, zerolog.Nop())
		req := asUser(httptest.NewRequest(http.MethodGet, "/orderstatus", nil), "admin-1", model.RoleAdmin)
		w := httptest.NewRecorder()

		h.ListAll(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("Failure", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("ListAll", mock.Anything).Return(nil, errors.New("cursor closed"))

		h := NewOrderHandler(svc, zerolog.Nop())
		req := httptest.NewRequest(http.MethodGet, "/orderstatus", nil)
		w := httptest.NewRecorder()

		h.ListAll(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "An error occurred while fetching orders.")
	})
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		mockError       error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "Success",
			body:            `{"orderId":"order-1","newStatus":"Shipped"}`,
			expectedStatus:  http.StatusOK,
			expectedMessage: "Order status updated successfully.",
		},
		{
			name:            "Missing fields",
			body:            `{"orderId":"order-1","newStatus":"Shipped"}`,
			mockError:       model.ErrOrderStatusRequired,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Order ID and new status are required.",
		},
		{
			name:            "Invalid status",
			body:            `{"orderId":"order-1","newStatus":"Shipped"}`,
			mockError:       model.ErrInvalidOrderStatus,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid status provided.",
		},
		{
			name:            "Unknown order",
			body:            `{"orderId":"order-1","newStatus":"Shipped"}`,
			mockError:       model.ErrOrderNotFound,
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Order not found.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockOrderService)
			svc.On("UpdateStatus", mock.Anything, "order-1", "Shipped").Return(tt.mockError)

			h := NewOrderHandler(svc, zerolog.Nop())
			req := httptest.NewRequest(http.MethodPost, "/orderstatus/update", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			h.UpdateStatus(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedMessage, body["message"])
			assert.Equal(t, tt.mockError == nil, body["success"])
		})
	}
}

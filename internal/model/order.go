package model

import (
	"time"
)

// PaymentStatus tracks whether an order has been paid.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
)

// OrderStatus tracks fulfilment of an order.
type OrderStatus string

const (
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses lists every accepted fulfilment status.
var OrderStatuses = []OrderStatus{OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

// ParseOrderStatus converts s into an OrderStatus, rejecting unknown values.
func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, status := range OrderStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", ErrInvalidOrderStatus
}

// Order is an immutable record of a purchase. Only PaymentStatus and
// OrderStatus change after creation.
type Order struct {
	ID              string        `json:"_id" db:"id" bson:"_id"`
	UserID          string        `json:"userId" db:"user_id" bson:"userId"`
	Items           []OrderLine   `json:"items" db:"items" bson:"items"`
	TotalAmount     float64       `json:"totalAmount" db:"total_amount" bson:"totalAmount"`
	ShippingAddress string        `json:"shippingAddress" db:"shipping_address" bson:"shippingAddress"`
	PaymentStatus   PaymentStatus `json:"paymentStatus" db:"payment_status" bson:"paymentStatus"`
	OrderStatus     OrderStatus   `json:"orderStatus" db:"order_status" bson:"orderStatus"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at" bson:"createdAt"`
}

// OrderLine is the copy of a cart line captured when the order was assembled.
type OrderLine struct {
	ProductID string  `json:"productId" bson:"productId"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Size      string  `json:"size,omitempty" bson:"size,omitempty"`
	Colour    string  `json:"colour,omitempty" bson:"colour,omitempty"`
	Name      string  `json:"name" bson:"name"`
	OldPrice  float64 `json:"old_price" bson:"old_price"`
	NewPrice  float64 `json:"new_price" bson:"new_price"`
}

// OrderLinesFromCart copies every cart line into an order line.
func OrderLinesFromCart(cart Cart) []OrderLine {
	lines := make([]OrderLine, len(cart))
	for i, l := range cart {
		lines[i] = OrderLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Size:      l.Size,
			Colour:    l.Colour,
			Name:      l.Name,
			OldPrice:  l.OldPrice,
			NewPrice:  l.NewPrice,
		}
	}
	return lines
}

// ProductIDs returns the distinct product references in the order.
func (o *Order) ProductIDs() []string {
	seen := make(map[string]struct{}, len(o.Items))
	ids := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

// OrderDetails is an order with its product (and optionally user) references
// resolved for listing.
type OrderDetails struct {
	ID              string             `json:"_id"`
	UserID          string             `json:"userId"`
	User            *UserProfile       `json:"user,omitempty"`
	Items           []OrderItemDetails `json:"items"`
	TotalAmount     float64            `json:"totalAmount"`
	ShippingAddress string             `json:"shippingAddress"`
	PaymentStatus   PaymentStatus      `json:"paymentStatus"`
	OrderStatus     OrderStatus        `json:"orderStatus"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// OrderItemDetails is an order line with the referenced product attached.
// Product is nil when the product has since been removed from the catalogue.
type OrderItemDetails struct {
	OrderLine
	Product *Product `json:"product"`
}

// PlaceOrderRequest is the body of POST /placeorder and
// POST /create-checkout-session.
type PlaceOrderRequest struct {
	ShippingAddress string `json:"shippingAddress"`
}

// OrderResponse is returned after an order has been placed.
type OrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Order   *Order `json:"order"`
}

// UpdateOrderStatusRequest is the body of POST /orderstatus/update.
type UpdateOrderStatusRequest struct {
	OrderID   string `json:"orderId"`
	NewStatus string `json:"newStatus"`
}

// CheckoutSessionResponse carries the hosted payment page URL.
type CheckoutSessionResponse struct {
	URL string `json:"url"`
}

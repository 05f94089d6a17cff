package service

import (
	"context"
	"io"

	"tradestreet-api/internal/model"
	"tradestreet-api/internal/payment"
)

// AuthService registers users and issues session tokens.
type AuthService interface {
	// Signup creates a user and returns a token for it.
	Signup(ctx context.Context, req *model.SignupRequest) (*model.AuthResponse, error)

	// Login verifies credentials and returns a token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
}

// ProductService defines catalogue operations.
type ProductService interface {
	// ListAll retrieves products in display-id order. A limit of 0 returns every product.
	ListAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// NewCollections retrieves the most recently added products.
	NewCollections(ctx context.Context) ([]model.Product, error)

	// PopularInWomen retrieves the featured products of the women category.
	PopularInWomen(ctx context.Context) ([]model.Product, error)

	// Related retrieves a few products of the given category.
	Related(ctx context.Context, category string) ([]model.Product, error)

	// AddProduct stores a new product, uploading any attached images first.
	AddProduct(ctx context.Context, req *model.ProductRequest, uploads []ImageUpload) (*model.Product, error)

	// RemoveProduct deletes a product by display id.
	RemoveProduct(ctx context.Context, displayID int) error

	// UploadImages stores images and returns their public references.
	UploadImages(ctx context.Context, uploads []ImageUpload) ([]model.ProductImage, error)
}

// ImageUpload is an image file received from a client.
type ImageUpload struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// CartService mutates and reads the cart embedded in a user record.
type CartService interface {
	// AddLine adds one unit of the product with the given display id and size.
	AddLine(ctx context.Context, userID string, displayID int, size string) (model.Cart, error)

	// RemoveLine removes one unit of the line keyed by product reference and size.
	RemoveLine(ctx context.Context, userID, productID, size string) (model.Cart, error)

	// GetCart returns the user's cart.
	GetCart(ctx context.Context, userID string) (model.Cart, error)
}

// OrderService places orders and manages their fulfilment status.
type OrderService interface {
	// PlaceOrder turns the user's cart into a pending order and clears the cart.
	PlaceOrder(ctx context.Context, userID, shippingAddress string) (*model.Order, error)

	// ListForUser returns the user's orders with product references resolved.
	ListForUser(ctx context.Context, userID string) ([]model.OrderDetails, error)

	// ListAll returns every order with product and user references resolved.
	ListAll(ctx context.Context) ([]model.OrderDetails, error)

	// UpdateStatus sets the fulfilment status of an order.
	UpdateStatus(ctx context.Context, orderID, newStatus string) error
}

// CheckoutService runs card payments through the hosted checkout page.
type CheckoutService interface {
	// CreateSession starts a hosted checkout for the user's cart and returns its URL.
	CreateSession(ctx context.Context, userID, shippingAddress string) (string, error)

	// ConfirmPayment records a completed order for a finished checkout session.
	ConfirmPayment(ctx context.Context, sessionID string) (*model.Order, *payment.PaymentIntent, error)
}

package handler

import (
	"context"
	"io"
	"net/http"

	"tradestreet-api/internal/auth"
	"tradestreet-api/internal/middleware"
	"tradestreet-api/internal/model"
	"tradestreet-api/internal/payment"
	"tradestreet-api/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, req *model.SignupRequest) (*model.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResponse), args.Error(1)
}

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) ListAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) NewCollections(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) PopularInWomen(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) Related(ctx context.Context, category string) ([]model.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) AddProduct(ctx context.Context, req *model.ProductRequest, uploads []service.ImageUpload) (*model.Product, error) {
	args := m.Called(ctx, req, uploads)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) RemoveProduct(ctx context.Context, displayID int) error {
	args := m.Called(ctx, displayID)
	return args.Error(0)
}

func (m *MockProductService) UploadImages(ctx context.Context, uploads []service.ImageUpload) ([]model.ProductImage, error) {
	args := m.Called(ctx, uploads)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductImage), args.Error(1)
}

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) AddLine(ctx context.Context, userID string, displayID int, size string) (model.Cart, error) {
	args := m.Called(ctx, userID, displayID, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Cart), args.Error(1)
}

func (m *MockCartService) RemoveLine(ctx context.Context, userID, productID, size string) (model.Cart, error) {
	args := m.Called(ctx, userID, productID, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Cart), args.Error(1)
}

func (m *MockCartService) GetCart(ctx context.Context, userID string) (model.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Cart), args.Error(1)
}

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, userID, shippingAddress string) (*model.Order, error) {
	args := m.Called(ctx, userID, shippingAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) ListForUser(ctx context.Context, userID string) ([]model.OrderDetails, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderDetails), args.Error(1)
}

func (m *MockOrderService) ListAll(ctx context.Context) ([]model.OrderDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderDetails), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID, newStatus string) error {
	args := m.Called(ctx, orderID, newStatus)
	return args.Error(0)
}

// MockCheckoutService is a mock implementation of CheckoutService.
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) CreateSession(ctx context.Context, userID, shippingAddress string) (string, error) {
	args := m.Called(ctx, userID, shippingAddress)
	return args.String(0), args.Error(1)
}

func (m *MockCheckoutService) ConfirmPayment(ctx context.Context, sessionID string) (*model.Order, *payment.PaymentIntent, error) {
	args := m.Called(ctx, sessionID)
	var order *model.Order
	if args.Get(0) != nil {
		order = args.Get(0).(*model.Order)
	}
	var intent *payment.PaymentIntent
	if args.Get(1) != nil {
		intent = args.Get(1).(*payment.PaymentIntent)
	}
	return order, intent, args.Error(2)
}

// asUser attaches an authenticated principal to the request.
func asUser(req *http.Request, id string, role model.Role) *http.Request {
	return req.WithContext(middleware.WithPrincipal(req.Context(), auth.Principal{ID: id, Role: role}))
}

// readAll drains an upload body for assertions.
func readAll(r io.Reader) string {
	b, _ := io.ReadAll(r)
	return string(b)
}

package service

import (
	"context"
	"fmt"
	"strings"

	"tradestreet-api/internal/model"
	"tradestreet-api/internal/repository"

	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	assembler   *orderAssembler
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) OrderService {
	logger = logger.With().Str("service", "order").Logger()
	return &orderService{
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		assembler:   newOrderAssembler(orderRepo, userRepo, logger),
		logger:      logger,
	}
}

// PlaceOrder creates a pending order from the user's cart.
func (s *orderService) PlaceOrder(ctx context.Context, userID, shippingAddress string) (*model.Order, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	if user.Cart.IsEmpty() {
		s.logger.Debug().Str("user_id", userID).Msg("cannot place order with empty cart")
		return nil, model.ErrCartEmpty
	}

	if strings.TrimSpace(shippingAddress) == "" {
		return nil, model.ErrShippingAddressRequired
	}

	return s.assembler.assemble(ctx, user, assembly{
		shippingAddress: shippingAddress,
		paymentStatus:   model.PaymentPending,
	})
}

// ListForUser returns the user's orders.
func (s *orderService) ListForUser(ctx context.Context, userID string) ([]model.OrderDetails, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return s.populate(ctx, orders, false)
}

// ListAll returns every order.
func (s *orderService) ListAll(ctx context.Context) ([]model.OrderDetails, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return s.populate(ctx, orders, true)
}

// populate resolves product references, and user references when withUsers is set.
// References that no longer resolve are left nil.
func (s *orderService) populate(ctx context.Context, orders []model.Order, withUsers bool) ([]model.OrderDetails, error) {
	var productIDs, userIDs []string
	seenUsers := make(map[string]struct{})
	seenProducts := make(map[string]struct{})
	for i := range orders {
		for _, id := range orders[i].ProductIDs() {
			if _, ok := seenProducts[id]; !ok {
				seenProducts[id] = struct{}{}
				productIDs = append(productIDs, id)
			}
		}
		if _, ok := seenUsers[orders[i].UserID]; !ok {
			seenUsers[orders[i].UserID] = struct{}{}
			userIDs = append(userIDs, orders[i].UserID)
		}
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve order products: %w", err)
	}
	productByID := make(map[string]*model.Product, len(products))
	for i := range products {
		productByID[products[i].ID] = &products[i]
	}

	userByID := make(map[string]*model.UserProfile)
	if withUsers {
		users, err := s.userRepo.GetByIDs(ctx, userIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve order users: %w", err)
		}
		for i := range users {
			userByID[users[i].ID] = users[i].Profile()
		}
	}

	details := make([]model.OrderDetails, 0, len(orders))
	for _, o := range orders {
		items := make([]model.OrderItemDetails, len(o.Items))
		for i, line := range o.Items {
			items[i] = model.OrderItemDetails{OrderLine: line, Product: productByID[line.ProductID]}
		}
		details = append(details, model.OrderDetails{
			ID:              o.ID,
			UserID:          o.UserID,
			User:            userByID[o.UserID],
			Items:           items,
			TotalAmount:     o.TotalAmount,
			ShippingAddress: o.ShippingAddress,
			PaymentStatus:   o.PaymentStatus,
			OrderStatus:     o.OrderStatus,
			CreatedAt:       o.CreatedAt,
		})
	}

	return details, nil
}

// UpdateStatus sets the fulfilment status of an order. Nothing else on the order changes.
func (s *orderService) UpdateStatus(ctx context.Context, orderID, newStatus string) error {
	if orderID == "" || newStatus == "" {
		return model.ErrOrderStatusRequired
	}

	status, err := model.ParseOrderStatus(newStatus)
	if err != nil {
		s.logger.Debug().Str("status", newStatus).Msg("rejected unknown order status")
		return err
	}

	found, err := s.orderRepo.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if !found {
		return model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("order_id", orderID).
		Str("order_status", string(status)).
		Msg("order status updated")

	return nil
}

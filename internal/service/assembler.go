package service

import (
	"context"
	"fmt"
	"time"

	"tradestreet-api/internal/model"
	"tradestreet-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// assembly carries the caller-specific inputs of an order.
type assembly struct {
	shippingAddress string
	total           *decimal.Decimal // nil computes the total from the cart
	paymentStatus   model.PaymentStatus
}

// orderAssembler turns a user's cart into a persisted order and empties the cart.
// Both direct placement and payment confirmation go through it.
type orderAssembler struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	now       func() time.Time
	newID     func() string
	logger    zerolog.Logger
}

func newOrderAssembler(orderRepo repository.OrderRepository, userRepo repository.UserRepository, logger zerolog.Logger) *orderAssembler {
	return &orderAssembler{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
		logger:    logger,
	}
}

// assemble creates the order and then clears the cart. The two writes are not
// atomic: if clearing fails the order remains and the error is returned.
func (a *orderAssembler) assemble(ctx context.Context, user *model.User, in assembly) (*model.Order, error) {
	cart := user.Cart.Clone()

	total := cart.Total()
	if in.total != nil {
		total = *in.total
	}

	paymentStatus := in.paymentStatus
	if paymentStatus == "" {
		paymentStatus = model.PaymentPending
	}

	order := &model.Order{
		ID:              a.newID(),
		UserID:          user.ID,
		Items:           model.OrderLinesFromCart(cart),
		TotalAmount:     total.InexactFloat64(),
		ShippingAddress: in.shippingAddress,
		PaymentStatus:   paymentStatus,
		OrderStatus:     model.OrderProcessing,
		CreatedAt:       a.now(),
	}

	if err := a.orderRepo.Create(ctx, order); err != nil {
		a.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to persist order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := a.userRepo.SaveCart(ctx, user.ID, model.Cart{}); err != nil {
		a.logger.Error().
			Err(err).
			Str("order_id", order.ID).
			Str("user_id", user.ID).
			Msg("order created but cart was not cleared")
		return nil, fmt.Errorf("failed to clear cart after order %s: %w", order.ID, err)
	}

	a.logger.Info().
		Str("order_id", order.ID).
		Str("user_id", user.ID).
		Int("lines", len(order.Items)).
		Str("total", total.String()).
		Str("payment_status", string(order.PaymentStatus)).
		Msg("order assembled")

	return order, nil
}

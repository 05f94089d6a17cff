package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tradestreet-api/internal/model"
	"tradestreet-api/internal/payment"
	"tradestreet-api/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Checkout session metadata keys.
const (
	metaUserID          = "userId"
	metaShippingAddress = "shippingAddress"
	metaTotalAmount     = "totalAmount"
)

// CheckoutConfig holds the hosted checkout settings.
type CheckoutConfig struct {
	Currency    string
	FrontendURL string
	// RequireSucceeded rejects confirmations whose payment intent has not succeeded.
	RequireSucceeded bool
}

// checkoutService implements CheckoutService.
type checkoutService struct {
	gateway   payment.Gateway
	userRepo  repository.UserRepository
	assembler *orderAssembler
	cfg       CheckoutConfig
	logger    zerolog.Logger
}

// NewCheckoutService creates a new checkout service. A nil gateway disables card payments.
func NewCheckoutService(
	gateway payment.Gateway,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	cfg CheckoutConfig,
	logger zerolog.Logger,
) CheckoutService {
	logger = logger.With().Str("service", "checkout").Logger()
	return &checkoutService{
		gateway:   gateway,
		userRepo:  userRepo,
		assembler: newOrderAssembler(orderRepo, userRepo, logger),
		cfg:       cfg,
		logger:    logger,
	}
}

// CreateSession creates a hosted checkout session for the user's cart. No order is created.
func (s *checkoutService) CreateSession(ctx context.Context, userID, shippingAddress string) (string, error) {
	if s.gateway == nil {
		return "", model.ErrPaymentsDisabled
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return "", model.ErrUserNotFound
	}

	if user.Cart.IsEmpty() {
		return "", model.ErrCartEmpty
	}

	if strings.TrimSpace(shippingAddress) == "" {
		return "", model.ErrShippingAddressRequired
	}

	items := make([]payment.LineItem, len(user.Cart))
	for i, line := range user.Cart {
		metadata := map[string]string{}
		if line.Size != "" {
			metadata["size"] = line.Size
		}
		if line.Colour != "" {
			metadata["colour"] = line.Colour
		}
		items[i] = payment.LineItem{
			Name:       line.Name,
			UnitAmount: payment.ToMinorUnits(line.NewPrice),
			Quantity:   int64(line.Quantity),
			Metadata:   metadata,
		}
	}

	address, err := json.Marshal(shippingAddress)
	if err != nil {
		return "", fmt.Errorf("failed to encode shipping address: %w", err)
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		Currency:   s.cfg.Currency,
		LineItems:  items,
		SuccessURL: s.cfg.FrontendURL + "/orderconfirmation?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.cfg.FrontendURL + "/checkout",
		Metadata: map[string]string{
			metaUserID:          user.ID,
			metaShippingAddress: string(address),
			metaTotalAmount:     user.Cart.Total().String(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("session_id", session.ID).
		Int("line_items", len(items)).
		Msg("checkout session created")

	return session.URL, nil
}

// ConfirmPayment creates a completed order for a finished checkout session.
// The order is built from the user's cart at confirmation time; the total and
// shipping address come from the session metadata.
func (s *checkoutService) ConfirmPayment(ctx context.Context, sessionID string) (*model.Order, *payment.PaymentIntent, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, nil, model.ErrSessionIDRequired
	}

	if s.gateway == nil {
		return nil, nil, model.ErrPaymentsDisabled
	}

	session, err := s.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}
	if session == nil || session.PaymentIntentID == "" {
		s.logger.Warn().Str("session_id", sessionID).Msg("checkout session has no payment intent")
		return nil, nil, model.ErrPaymentIntentMissing
	}

	intent, err := s.gateway.GetPaymentIntent(ctx, session.PaymentIntentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}
	if intent == nil {
		return nil, nil, model.ErrPaymentIntentMissing
	}

	s.logger.Info().
		Str("session_id", sessionID).
		Str("payment_intent_id", intent.ID).
		Str("status", intent.Status).
		Int64("amount", intent.Amount).
		Str("currency", intent.Currency).
		Msg("payment intent retrieved")

	if s.cfg.RequireSucceeded && !intent.Succeeded() {
		return nil, nil, model.ErrPaymentNotSucceeded
	}

	userID := session.Metadata[metaUserID]
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		s.logger.Warn().Str("session_id", sessionID).Str("user_id", userID).Msg("checkout session refers to unknown user")
		return nil, nil, model.ErrUserNotFound
	}

	in := assembly{
		shippingAddress: decodeShippingAddress(session.Metadata[metaShippingAddress]),
		paymentStatus:   model.PaymentCompleted,
	}
	if total, err := decimal.NewFromString(session.Metadata[metaTotalAmount]); err == nil {
		in.total = &total
	} else {
		s.logger.Warn().
			Str("session_id", sessionID).
			Str("total_amount", session.Metadata[metaTotalAmount]).
			Msg("unreadable session total, using cart total")
	}

	order, err := s.assembler.assemble(ctx, user, in)
	if err != nil {
		return nil, nil, err
	}

	return order, intent, nil
}

// decodeShippingAddress reverses the JSON encoding applied when the session was created.
func decodeShippingAddress(raw string) string {
	var address string
	if err := json.Unmarshal([]byte(raw), &address); err != nil {
		return raw
	}
	return address
}

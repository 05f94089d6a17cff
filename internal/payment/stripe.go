package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeGateway implements Gateway on Stripe Checkout.
type StripeGateway struct {
	api    *client.API
	logger zerolog.Logger
}

// NewStripeGateway creates a Stripe-backed gateway. apiBase overrides the
// Stripe API URL (for stripe-mock or tests) and may be empty.
func NewStripeGateway(secretKey, apiBase string, logger zerolog.Logger) *StripeGateway {
	logger = logger.With().Str("component", "stripe").Logger()

	httpClient := &http.Client{Timeout: 30 * time.Second}
	backendConfig := func() *stripe.BackendConfig {
		cfg := &stripe.BackendConfig{
			HTTPClient:        httpClient,
			LeveledLogger:     &leveledLogger{logger: logger},
			MaxNetworkRetries: stripe.Int64(0),
		}
		if apiBase != "" {
			cfg.URL = stripe.String(apiBase)
		}
		return cfg
	}

	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig()),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendConfig()),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendConfig()),
	}

	return &StripeGateway{
		api:    client.New(secretKey, backends),
		logger: logger,
	}
}

// CreateCheckoutSession creates a card payment session for the given line items.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
	}
	params.Context = ctx

	for _, item := range req.LineItems {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(req.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:     stripe.String(item.Name),
					Metadata: item.Metadata,
				},
				UnitAmount: stripe.Int64(item.UnitAmount),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		g.logger.Error().Err(err).Int("line_items", len(req.LineItems)).Msg("failed to create checkout session")
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	g.logger.Info().Str("session_id", s.ID).Msg("checkout session created")

	return toCheckoutSession(s), nil
}

// GetCheckoutSession retrieves a session by id.
func (g *StripeGateway) GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := g.api.CheckoutSessions.Get(id, params)
	if err != nil {
		if isResourceMissing(err) {
			return nil, nil
		}
		g.logger.Error().Err(err).Str("session_id", id).Msg("failed to retrieve checkout session")
		return nil, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}

	return toCheckoutSession(s), nil
}

// GetPaymentIntent retrieves a payment intent by id.
func (g *StripeGateway) GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(id, params)
	if err != nil {
		if isResourceMissing(err) {
			return nil, nil
		}
		g.logger.Error().Err(err).Str("payment_intent_id", id).Msg("failed to retrieve payment intent")
		return nil, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}

	return &PaymentIntent{
		ID:       pi.ID,
		Status:   string(pi.Status),
		Amount:   pi.Amount,
		Currency: string(pi.Currency),
	}, nil
}

func toCheckoutSession(s *stripe.CheckoutSession) *CheckoutSession {
	out := &CheckoutSession{
		ID:       s.ID,
		URL:      s.URL,
		Metadata: s.Metadata,
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}
	return out
}

func isResourceMissing(err error) bool {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return false
	}
	return stripeErr.Code == stripe.ErrorCodeResourceMissing || stripeErr.HTTPStatusCode == http.StatusNotFound
}

// leveledLogger routes stripe-go's client logs through zerolog.
type leveledLogger struct {
	logger zerolog.Logger
}

func (l *leveledLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug().Msgf(format, v...)
}

func (l *leveledLogger) Infof(format string, v ...interface{}) {
	l.logger.Debug().Msgf(format, v...)
}

func (l *leveledLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn().Msgf(format, v...)
}

func (l *leveledLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error().Msgf(format, v...)
}

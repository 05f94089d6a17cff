// Package payment talks to the external card processor that hosts the
// checkout page.
package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// IntentSucceeded is the processor status of a captured payment.
const IntentSucceeded = "succeeded"

// Gateway creates and inspects hosted checkout sessions.
// Lookups return (nil, nil) when the processor does not know the id.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error)
	GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error)
}

// LineItem is one priced entry on the hosted checkout page.
type LineItem struct {
	Name       string
	UnitAmount int64 // minor currency units
	Quantity   int64
	Metadata   map[string]string
}

// CheckoutRequest describes a hosted checkout session to create.
type CheckoutRequest struct {
	Currency   string
	LineItems  []LineItem
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// CheckoutSession is a processor-side checkout session.
type CheckoutSession struct {
	ID              string
	URL             string
	PaymentIntentID string
	Metadata        map[string]string
}

// PaymentIntent is the processor's record of a payment attempt.
type PaymentIntent struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Succeeded reports whether the payment was captured.
func (p *PaymentIntent) Succeeded() bool {
	return p.Status == IntentSucceeded
}

var hundred = decimal.NewFromInt(100)

// ToMinorUnits converts a major-unit price to minor units, rounding half away from zero.
func ToMinorUnits(price float64) int64 {
	return decimal.NewFromFloat(price).Mul(hundred).Round(0).IntPart()
}

package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
)

// Gateway creates a payment intent for an amount in minor units and returns
// its client secret. Kept as an interface so handler tests run without a
// Stripe account.
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error)
}

// StripeGateway is the live Gateway backed by the Stripe API.
type StripeGateway struct {
	key string
}

// NewStripeGateway builds a StripeGateway with the given secret key. The
// key is installed process-wide, which is how the Stripe SDK expects to be
// configured.
func NewStripeGateway(key string) (*StripeGateway, error) {
	if key == "" {
		return nil, fmt.Errorf("stripe secret key is empty")
	}
	stripe.Key = key
	return &StripeGateway{key: key}, nil
}

// CreateIntent creates a card-only payment intent and returns its client
// secret.
func (g *StripeGateway) CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}

// Package stripe adapts the Stripe SDK to the registration service's
// Gateway interface. Declines and transport failures are mapped onto
// distinct sentinel errors so callers can offer retry only where it makes
// sense.
package stripe

import (
	"context"
	"errors"
	"fmt"

	stripeapi "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/aitbenali/medina-journeys/internal/domain/common/errorz"
	"github.com/aitbenali/medina-journeys/internal/domain/service"
)

type Gateway struct {
	api      *client.API
	currency string
}

func NewGateway(apiKey, currency string) *Gateway {
	api := &client.API{}
	api.Init(apiKey, nil)
	return &Gateway{
		api:      api,
		currency: currency,
	}
}

// Charge confirms a payment intent for the given amount in minor units.
func (g *Gateway) Charge(ctx context.Context, amountMinor int64, methodToken string) (*service.ChargeResult, error) {
	params := &stripeapi.PaymentIntentParams{
		Amount:        stripeapi.Int64(amountMinor),
		Currency:      stripeapi.String(g.currency),
		PaymentMethod: stripeapi.String(methodToken),
		Confirm:       stripeapi.Bool(true),
		AutomaticPaymentMethods: &stripeapi.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripeapi.Bool(true),
			AllowRedirects: stripeapi.String("never"),
		},
	}
	params.Context = ctx

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, mapError(err)
	}
	if intent.Status != stripeapi.PaymentIntentStatusSucceeded {
		return nil, fmt.Errorf("%w: intent status %s", errorz.ErrPaymentDeclined, intent.Status)
	}
	return &service.ChargeResult{PaymentID: intent.ID}, nil
}

func (g *Gateway) Refund(ctx context.Context, paymentID string) error {
	params := &stripeapi.RefundParams{
		PaymentIntent: stripeapi.String(paymentID),
	}
	params.Context = ctx

	if _, err := g.api.Refunds.New(params); err != nil {
		return mapError(err)
	}
	return nil
}

// mapError translates SDK errors: card errors are declines (terminal for
// the attempt), everything else is a gateway failure the caller may retry.
func mapError(err error) error {
	var stripeErr *stripeapi.Error
	if errors.As(err, &stripeErr) && stripeErr.Type == stripeapi.ErrorTypeCard {
		return fmt.Errorf("%w: %s", errorz.ErrPaymentDeclined, stripeErr.Msg)
	}
	return fmt.Errorf("%w: %v", errorz.ErrGatewayUnavailable, err)
}

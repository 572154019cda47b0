package payment

import (
	"context"
	"errors"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/refund"
)

// StripeGateway charges through Stripe PaymentIntents. A context
// deadline bounds the call; an expired deadline or a card decline is a
// failed outcome, not an infrastructure error, so the caller can keep
// seats held for a retry.
type StripeGateway struct{}

func NewStripeGateway() *StripeGateway {
	return &StripeGateway{}
}

func (g *StripeGateway) Charge(
	ctx context.Context,
	amount decimal.Decimal,
	currency, paymentMethod string) (*domain.PaymentOutcome, error) {

	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Amount:        stripe.Int64(toCents(amount)),
		Currency:      stripe.String(currency),
		PaymentMethod: stripe.String(paymentMethod),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return &domain.PaymentOutcome{Success: false, FailureReason: "payment timed out"}, nil
		}

		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			return &domain.PaymentOutcome{Success: false, FailureReason: stripeErr.Msg}, nil
		}

		return nil, err
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return &domain.PaymentOutcome{
			Success:       false,
			TransactionID: pi.ID,
			FailureReason: string(pi.Status),
		}, nil
	}

	return &domain.PaymentOutcome{Success: true, TransactionID: pi.ID}, nil
}

func (g *StripeGateway) Refund(ctx context.Context, transactionID string, amount decimal.Decimal) error {
	params := &stripe.RefundParams{
		Params: stripe.Params{
			Context: ctx,
		},
		PaymentIntent: stripe.String(transactionID),
		Amount:        stripe.Int64(toCents(amount)),
	}

	_, err := refund.New(params)

	return err
}

func toCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}

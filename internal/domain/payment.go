package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// PaymentOutcome is the gateway's verdict on a charge attempt. A timeout
// is reported as a failed outcome, not an infrastructure error.
type PaymentOutcome struct {
	Success       bool
	TransactionID string
	FailureReason string
}

// PaymentGateway is the external payment collaborator. Charge must be
// time-bounded by the caller's context.
type PaymentGateway interface {
	Charge(ctx context.Context, amount decimal.Decimal, currency, paymentMethod string) (*PaymentOutcome, error)
	Refund(ctx context.Context, transactionID string, amount decimal.Decimal) error
}

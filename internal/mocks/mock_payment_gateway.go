package mocks

import (
	"context"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var _ domain.PaymentGateway = (*MockPaymentGateway)(nil)

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) Charge(
	ctx context.Context,
	amount decimal.Decimal,
	currency, paymentMethod string) (*domain.PaymentOutcome, error) {

	args := m.Called(ctx, amount, currency, paymentMethod)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.PaymentOutcome), args.Error(1)
}

func (m *MockPaymentGateway) Refund(ctx context.Context, transactionID string, amount decimal.Decimal) error {
	args := m.Called(ctx, transactionID, amount)
	return args.Error(0)
}

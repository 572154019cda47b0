package payment

import (
	"context"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockGateway approves every charge. Used in dev and in the integration
// suite where no real gateway is reachable.
type MockGateway struct{}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (m *MockGateway) Charge(
	ctx context.Context,
	amount decimal.Decimal,
	currency, paymentMethod string) (*domain.PaymentOutcome, error) {

	return &domain.PaymentOutcome{
		Success:       true,
		TransactionID: "mock_" + uuid.New().String(),
	}, nil
}

func (m *MockGateway) Refund(ctx context.Context, transactionID string, amount decimal.Decimal) error {
	return nil
}

package mocks

import (
	"context"
	"time"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/stretchr/testify/mock"
)

var _ domain.SeatInventory = (*MockSeatInventory)(nil)

type MockSeatInventory struct {
	mock.Mock
}

func (m *MockSeatInventory) SeatMap(ctx context.Context, showtimeID int) (*domain.SeatMap, error) {
	args := m.Called(ctx, showtimeID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.SeatMap), args.Error(1)
}

func (m *MockSeatInventory) TryHold(ctx context.Context, showtimeID int, seatIDs []int, sessionID string, ttl time.Duration) error {
	args := m.Called(ctx, showtimeID, seatIDs, sessionID, ttl)
	return args.Error(0)
}

func (m *MockSeatInventory) Release(ctx context.Context, showtimeID int, sessionID string, seatIDs []int) error {
	args := m.Called(ctx, showtimeID, sessionID, seatIDs)
	return args.Error(0)
}

func (m *MockSeatInventory) VerifyHold(ctx context.Context, showtimeID int, sessionID string, seatIDs []int) error {
	args := m.Called(ctx, showtimeID, sessionID, seatIDs)
	return args.Error(0)
}

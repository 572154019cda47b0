package mocks

import (
	"context"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/stretchr/testify/mock"
)

var _ domain.SeatRepository = (*MockSeatRepository)(nil)

type MockSeatRepository struct {
	mock.Mock
}

func (m *MockSeatRepository) GetByShowtime(ctx context.Context, showtimeID int) (*domain.SeatMap, error) {
	args := m.Called(ctx, showtimeID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.SeatMap), args.Error(1)
}

func (m *MockSeatRepository) GetByShowtimeAndIds(ctx context.Context, showtimeID int, seatIDs []int) ([]domain.Seat, error) {
	args := m.Called(ctx, showtimeID, seatIDs)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Seat), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/stretchr/testify/mock"
)

var _ domain.ShowtimeRepository = (*MockShowtimeRepository)(nil)

type MockShowtimeRepository struct {
	mock.Mock
}

func (m *MockShowtimeRepository) GetById(ctx context.Context, id int) (*domain.Showtime, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Showtime), args.Error(1)
}

func (m *MockShowtimeRepository) GetByMovie(ctx context.Context, movieID int) ([]domain.Showtime, error) {
	args := m.Called(ctx, movieID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Showtime), args.Error(1)
}

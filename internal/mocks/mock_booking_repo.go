package mocks

import (
	"context"
	"time"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/stretchr/testify/mock"
)

var _ domain.BookingRepository = (*MockBookingRepository)(nil)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateConfirmed(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) Cancel(ctx context.Context, bookingID int, buyerID string, deadline time.Time) (*domain.CancelledBooking, error) {
	args := m.Called(ctx, bookingID, buyerID, deadline)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.CancelledBooking), args.Error(1)
}

func (m *MockBookingRepository) GetSeatsByShowtime(ctx context.Context, showtimeID int) ([]domain.BookedSeatRef, error) {
	args := m.Called(ctx, showtimeID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.BookedSeatRef), args.Error(1)
}

func (m *MockBookingRepository) GetSummariesByBuyer(ctx context.Context, buyerID string, pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {
	args := m.Called(ctx, buyerID, pagination)

	var summaries []domain.BookingSummary
	if args.Get(0) != nil {
		summaries = args.Get(0).([]domain.BookingSummary)
	}

	var metadata *domain.Metadata
	if args.Get(1) != nil {
		metadata = args.Get(1).(*domain.Metadata)
	}

	return summaries, metadata, args.Error(2)
}

func (m *MockBookingRepository) GetByIdAndBuyer(ctx context.Context, bookingID int, buyerID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, buyerID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Booking), args.Error(1)
}

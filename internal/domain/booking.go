package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is the durable record of a paid seat selection. It is written
// only by the ledger's commit transaction and immutable afterwards except
// for the cancellation transition.
type Booking struct {
	ID          int
	Reference   string
	BuyerID     string
	ShowtimeID  int
	Seats       []BookingSeat
	TotalAmount decimal.Decimal
	PaymentRef  string
	Status      BookingStatus
	CreatedAt   time.Time
}

type BookingSeat struct {
	SeatID int
	Row    string
	Number int
	Type   SeatType
}

// BookedSeatRef ties a booked seat to the booking occupying it, scoped to
// a showtime.
type BookedSeatRef struct {
	BookingID int
	SeatID    int
}

type BookingSummary struct {
	BookingID   int
	Reference   string
	MovieTitle  string
	TheaterName string
	HallName    string
	ShowtimeAt  time.Time
	TotalAmount decimal.Decimal
	Status      BookingStatus
	CreatedAt   time.Time
}

// CancelledBooking carries what the compensation path needs after a
// cancellation transaction commits.
type CancelledBooking struct {
	BookingID  int
	PaymentRef string
	Amount     decimal.Decimal
}

type BookingRepository interface {
	// CreateConfirmed atomically persists the payment row, the booking row
	// and its seats. It fails with ErrSeatUnavailable when another booking
	// already occupies one of the seats for the showtime, and sets the
	// booking's ID and CreatedAt on success.
	CreateConfirmed(ctx context.Context, booking *Booking) error

	// Cancel flips a confirmed booking to cancelled and frees its seats,
	// but only while the showtime starts after the given deadline.
	Cancel(ctx context.Context, bookingID int, buyerID string, deadline time.Time) (*CancelledBooking, error)

	GetSeatsByShowtime(ctx context.Context, showtimeID int) ([]BookedSeatRef, error)
	GetSummariesByBuyer(ctx context.Context, buyerID string, pagination Pagination) ([]BookingSummary, *Metadata, error)
	GetByIdAndBuyer(ctx context.Context, bookingID int, buyerID string) (*Booking, error)
}

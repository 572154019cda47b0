package domain

import (
	"context"
	"fmt"
	"time"
)

type SeatType string

const (
	SeatTypeStandard   SeatType = "STANDARD"
	SeatTypeVIP        SeatType = "VIP"
	SeatTypeAccessible SeatType = "ACCESSIBLE"
)

type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "AVAILABLE"
	SeatStatusHeld      SeatStatus = "HELD"
	SeatStatusBooked    SeatStatus = "BOOKED"
)

type Seat struct {
	ID     int
	Row    string
	Number int
	Type   SeatType
	Status SeatStatus
}

// Label is the buyer-facing seat identity, e.g. "A1".
func (s Seat) Label() string {
	return fmt.Sprintf("%s%d", s.Row, s.Number)
}

// SeatMap is the per-showtime status snapshot. Seats are ordered by
// row then number.
type SeatMap struct {
	ShowtimeID  int
	TheaterName string
	HallName    string
	StartTime   time.Time
	Seats       []Seat
}

type SeatRepository interface {
	GetByShowtime(ctx context.Context, showtimeID int) (*SeatMap, error)
	GetByShowtimeAndIds(ctx context.Context, showtimeID int, seatIDs []int) ([]Seat, error)
}

// SeatInventory is the single writer for seat status transitions of a
// showtime. Implementations must linearize overlapping hold attempts so
// that at most one session ever holds a seat.
type SeatInventory interface {
	SeatMap(ctx context.Context, showtimeID int) (*SeatMap, error)
	TryHold(ctx context.Context, showtimeID int, seatIDs []int, sessionID string, ttl time.Duration) error
	Release(ctx context.Context, showtimeID int, sessionID string, seatIDs []int) error
	VerifyHold(ctx context.Context, showtimeID int, sessionID string, seatIDs []int) error
}

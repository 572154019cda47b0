package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Selection is a buyer's time-boxed hold on a set of seats for one
// showtime. Prices are fixed when the seat is added, not re-read at
// display or commit time.
type Selection struct {
	ShowtimeID int
	Seats      []SelectionSeat
	ExpiresAt  time.Time
}

type SelectionSeat struct {
	SeatID int
	Row    string
	Number int
	Type   SeatType
	Price  decimal.Decimal
}

func NewSelection(showtimeID int, ttl time.Duration) Selection {
	return Selection{
		ShowtimeID: showtimeID,
		Seats:      []SelectionSeat{},
		ExpiresAt:  time.Now().Add(ttl).UTC(),
	}
}

func (s Selection) Contains(seatID int) bool {
	for _, seat := range s.Seats {
		if seat.SeatID == seatID {
			return true
		}
	}

	return false
}

func (s *Selection) Add(seat SelectionSeat) {
	s.Seats = append(s.Seats, seat)
}

func (s *Selection) Remove(seatID int) {
	seats := s.Seats[:0]
	for _, seat := range s.Seats {
		if seat.SeatID != seatID {
			seats = append(seats, seat)
		}
	}

	s.Seats = seats
}

func (s Selection) SeatIDs() []int {
	ids := make([]int, len(s.Seats))
	for i, seat := range s.Seats {
		ids[i] = seat.SeatID
	}

	return ids
}

func (s Selection) Total() decimal.Decimal {
	total := decimal.Zero
	for _, seat := range s.Seats {
		total = total.Add(seat.Price)
	}

	return total
}

func (s Selection) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

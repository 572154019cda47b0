package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Showtime is a read model owned by scheduling; the booking core never
// mutates it.
type Showtime struct {
	ID          int
	MovieID     int
	MovieTitle  string
	TheaterName string
	HallID      int
	HallName    string
	StartTime   time.Time
	BasePrice   decimal.Decimal
}

type ShowtimeRepository interface {
	GetById(ctx context.Context, id int) (*Showtime, error)
	GetByMovie(ctx context.Context, movieID int) ([]Showtime, error)
}

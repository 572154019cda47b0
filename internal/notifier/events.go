package notifier

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/shopspring/decimal"
)

const (
	TopicBookingConfirmed = "BookingConfirmed"
	TopicBookingCancelled = "BookingCancelled"
)

type Header struct {
	ID          string    `json:"id"`
	PublishedAt time.Time `json:"published_at"`
}

func NewHeader() Header {
	return Header{
		ID:          watermill.NewUUID(),
		PublishedAt: time.Now().UTC(),
	}
}

type BookingConfirmed struct {
	Header      Header          `json:"header"`
	BookingID   int             `json:"booking_id"`
	Reference   string          `json:"reference"`
	ShowtimeID  int             `json:"showtime_id"`
	SeatIDs     []int           `json:"seat_ids"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func (e BookingConfirmed) Type() string {
	return TopicBookingConfirmed
}

type BookingCancelled struct {
	Header     Header          `json:"header"`
	BookingID  int             `json:"booking_id"`
	Reference  string          `json:"reference"`
	ShowtimeID int             `json:"showtime_id"`
	Refund     decimal.Decimal `json:"refund"`
}

func (e BookingCancelled) Type() string {
	return TopicBookingCancelled
}

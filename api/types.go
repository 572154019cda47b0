// Package api holds the wire types shared between the HTTP handlers and
// their clients. Field names and JSON tags follow the public API contract.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeatType defines the model for SeatType.
type SeatType string

const (
	STANDARD   SeatType = "STANDARD"
	VIP        SeatType = "VIP"
	ACCESSIBLE SeatType = "ACCESSIBLE"
)

// SeatStatus defines the model for SeatStatus.
type SeatStatus string

const (
	AVAILABLE SeatStatus = "AVAILABLE"
	HELD      SeatStatus = "HELD"
	BOOKED    SeatStatus = "BOOKED"
)

// BookingStatus defines the model for BookingStatus.
type BookingStatus string

const (
	CONFIRMED BookingStatus = "CONFIRMED"
	CANCELLED BookingStatus = "CANCELLED"
)

// MovieStatus defines the model for MovieStatus.
type MovieStatus string

const (
	NOWSHOWING MovieStatus = "NOW_SHOWING"
	COMINGSOON MovieStatus = "COMING_SOON"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type GetMoviesParams struct {
	Page     *int    `validate:"omitempty,min=1"`
	PageSize *int    `validate:"omitempty,min=1,max=50"`
	Term     *string `validate:"omitempty,max=100"`
	Sort     *string `validate:"omitempty,oneof=id title release_date -id -title -release_date"`
}

type MovieSummary struct {
	Id          int         `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	PosterUrl   string      `json:"posterUrl"`
	ReleaseDate time.Time   `json:"releaseDate"`
	Status      MovieStatus `json:"status"`
}

type MovieListResponse struct {
	Movies   []MovieSummary `json:"movies"`
	Metadata Metadata       `json:"metadata"`
}

type ShowtimeSummary struct {
	Id          int             `json:"id"`
	TheaterName string          `json:"theaterName"`
	HallName    string          `json:"hallName"`
	StartTime   time.Time       `json:"startTime"`
	BasePrice   decimal.Decimal `json:"basePrice"`
}

type MovieShowtimesResponse struct {
	MovieId   int               `json:"movieId"`
	Showtimes []ShowtimeSummary `json:"showtimes"`
}

type Seat struct {
	Id     int             `json:"id"`
	Row    string          `json:"row"`
	Number int             `json:"number"`
	Type   SeatType        `json:"type"`
	Status SeatStatus      `json:"status"`
	Price  decimal.Decimal `json:"price"`
}

type SeatRow struct {
	Row   string `json:"row"`
	Seats []Seat `json:"seats"`
}

type SeatMapResponse struct {
	ShowtimeId  int       `json:"showtimeId"`
	TheaterName string    `json:"theaterName"`
	HallName    string    `json:"hallName"`
	StartTime   time.Time `json:"startTime"`
	SeatRows    []SeatRow `json:"seatRows"`
}

type ToggleSeatRequest struct {
	SeatId int `json:"seatId" validate:"required,min=1"`
}

type SelectionSeat struct {
	Id     int             `json:"id"`
	Row    string          `json:"row"`
	Number int             `json:"number"`
	Type   SeatType        `json:"type"`
	Price  decimal.Decimal `json:"price"`
}

type SelectionResponse struct {
	ShowtimeId    int             `json:"showtimeId"`
	Seats         []SelectionSeat `json:"seats"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	HoldExpiresAt time.Time       `json:"holdExpiresAt"`
	MaxSeats      int             `json:"maxSeats"`
}

type CheckoutRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,max=100"`
	Email         string `json:"email" validate:"omitempty,email,max=254"`
}

type BookingSeat struct {
	Row    string   `json:"row"`
	Number int      `json:"number"`
	Type   SeatType `json:"type"`
}

type BookingResponse struct {
	Id          int             `json:"id"`
	Reference   string          `json:"reference"`
	ShowtimeId  int             `json:"showtimeId"`
	Seats       []BookingSeat   `json:"seats"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaymentRef  string          `json:"paymentRef"`
	Status      BookingStatus   `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type BookingSummary struct {
	Id          int             `json:"id"`
	Reference   string          `json:"reference"`
	MovieTitle  string          `json:"movieTitle"`
	TheaterName string          `json:"theaterName"`
	HallName    string          `json:"hallName"`
	Date        time.Time       `json:"date"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      BookingStatus   `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type UserBookingsResponse struct {
	Bookings []BookingSummary `json:"bookings"`
	Metadata Metadata         `json:"metadata"`
}

type GetBookingsParams struct {
	Page     *int `validate:"omitempty,min=1"`
	PageSize *int `validate:"omitempty,min=1,max=50"`
}

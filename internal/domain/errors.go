package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrRecordNotFound        = errors.New("record not found")
	ErrEditConflict          = errors.New("edit conflict")
	ErrSeatUnavailable       = errors.New("seat(s) are no longer available")
	ErrSeatLimitExceeded     = errors.New("seat limit for a single booking exceeded")
	ErrSelectionExpired      = errors.New("seat selection has expired, please select your seats again")
	ErrSelectionNotFound     = errors.New("no active seat selection for this showtime")
	ErrPaymentFailed         = errors.New("payment was declined or timed out")
	ErrBookingNotCancellable = errors.New("booking can no longer be cancelled")
)

// SeatsUnavailableError reports exactly which seats lost the race for a hold.
type SeatsUnavailableError struct {
	SeatIDs []int
}

func (e SeatsUnavailableError) Error() string {
	ids := make([]string, len(e.SeatIDs))
	for i, id := range e.SeatIDs {
		ids[i] = strconv.Itoa(id)
	}

	return fmt.Sprintf("seat(s) %s are no longer available", strings.Join(ids, ", "))
}

func (e SeatsUnavailableError) Unwrap() error {
	return ErrSeatUnavailable
}

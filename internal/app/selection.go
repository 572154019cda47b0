package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cinetick/cinetick/api"
	"github.com/cinetick/cinetick/internal/domain"
	"github.com/redis/go-redis/v9"
)

// StartSelection discards any selection the session already has for the
// showtime and opens a fresh, empty one whose TTL is the hold window.
func (app *Application) StartSelection(w http.ResponseWriter, r *http.Request) {
	showtimeID, err := pathInt(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if _, err := app.showtimeRepo.GetById(r.Context(), showtimeID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	token := app.sessionToken(r)

	prior, err := app.getSelection(r.Context(), token, showtimeID)
	if err != nil && !errors.Is(err, domain.ErrSelectionNotFound) {
		app.serverErrorResponse(w, r, err)
		return
	}

	if prior != nil {
		app.releaseSelectionSeats(r.Context(), token, prior)
	}

	selection := domain.NewSelection(showtimeID, app.config.Booking.HoldTTL)

	err = app.saveSelection(r.Context(), token, selection, app.config.Booking.HoldTTL)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, app.toSelectionResponse(selection), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetSelection(w http.ResponseWriter, r *http.Request) {
	showtimeID, err := pathInt(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	selection, err := app.getSelection(r.Context(), app.sessionToken(r), showtimeID)
	if err != nil {
		app.selectionErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, app.toSelectionResponse(*selection), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// ToggleSeat adds the seat to the selection, or removes it when it is
// already selected. Adding acquires the seat hold first, so the selection
// document never references a seat the session does not hold.
func (app *Application) ToggleSeat(w http.ResponseWriter, r *http.Request) {
	showtimeID, err := pathInt(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.ToggleSeatRequest
	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.validator.Struct(input); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	token := app.sessionToken(r)

	selection, err := app.getSelection(r.Context(), token, showtimeID)
	if err != nil {
		app.selectionErrorResponse(w, r, err)
		return
	}

	if selection.Contains(input.SeatId) {
		err = app.removeSeat(r.Context(), token, selection, input.SeatId)
	} else {
		err = app.addSeat(r.Context(), token, selection, input.SeatId)
	}

	if err != nil {
		var unavailable domain.SeatsUnavailableError

		switch {
		case errors.As(err, &unavailable):
			app.metrics.holdConflicts.Add(r.Context(), 1)
			app.conflictResponse(w, r, unavailable)
		case errors.Is(err, domain.ErrSeatLimitExceeded):
			app.unprocessableEntityResponse(w, r, err)
		case errors.Is(err, domain.ErrRecordNotFound):
			app.badRequestResponse(w, r, fmt.Errorf("seat %d does not belong to showtime %d", input.SeatId, showtimeID))
		case errors.Is(err, domain.ErrSelectionExpired):
			app.goneResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, app.toSelectionResponse(*selection), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelSelection(w http.ResponseWriter, r *http.Request) {
	showtimeID, err := pathInt(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	token := app.sessionToken(r)

	selection, err := app.getSelection(r.Context(), token, showtimeID)
	if err != nil {
		if errors.Is(err, domain.ErrSelectionNotFound) || errors.Is(err, domain.ErrSelectionExpired) {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	app.releaseSelectionSeats(r.Context(), token, selection)

	err = app.redis.Del(r.Context(), selectionKey(token, showtimeID)).Err()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) addSeat(ctx context.Context, token string, selection *domain.Selection, seatID int) error {
	if len(selection.Seats) >= app.config.Booking.MaxSeatsPerBooking {
		return domain.ErrSeatLimitExceeded
	}

	remaining := time.Until(selection.ExpiresAt)
	if remaining <= 0 {
		return domain.ErrSelectionExpired
	}

	seats, err := app.seatRepo.GetByShowtimeAndIds(ctx, selection.ShowtimeID, []int{seatID})
	if err != nil {
		return err
	}
	if len(seats) == 0 {
		return domain.ErrRecordNotFound
	}
	seat := seats[0]

	showtime, err := app.showtimeRepo.GetById(ctx, selection.ShowtimeID)
	if err != nil {
		return err
	}

	price, err := app.pricing.Price(seat.Type, showtime)
	if err != nil {
		return err
	}

	// The hold TTL matches the remaining selection window, so a later
	// toggle never extends a seat hold past the original expiry.
	err = app.inventory.TryHold(ctx, selection.ShowtimeID, []int{seatID}, token, remaining)
	if err != nil {
		return err
	}

	selection.Add(domain.SelectionSeat{
		SeatID: seat.ID,
		Row:    seat.Row,
		Number: seat.Number,
		Type:   seat.Type,
		Price:  price,
	})

	err = app.saveSelection(ctx, token, *selection, redis.KeepTTL)
	if err != nil {
		app.releaseSeats(ctx, selection.ShowtimeID, token, []int{seatID})
		return err
	}

	return nil
}

func (app *Application) removeSeat(ctx context.Context, token string, selection *domain.Selection, seatID int) error {
	err := app.inventory.Release(ctx, selection.ShowtimeID, token, []int{seatID})
	if err != nil {
		return err
	}

	selection.Remove(seatID)

	return app.saveSelection(ctx, token, *selection, redis.KeepTTL)
}

func (app *Application) getSelection(ctx context.Context, token string, showtimeID int) (*domain.Selection, error) {
	data, err := app.redis.Get(ctx, selectionKey(token, showtimeID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSelectionNotFound
		}

		return nil, err
	}

	var selection domain.Selection
	if err := json.Unmarshal(data, &selection); err != nil {
		return nil, err
	}

	if selection.Expired(time.Now()) {
		return nil, domain.ErrSelectionExpired
	}

	return &selection, nil
}

func (app *Application) saveSelection(ctx context.Context, token string, selection domain.Selection, ttl time.Duration) error {
	data, err := json.Marshal(selection)
	if err != nil {
		return err
	}

	return app.redis.Set(ctx, selectionKey(token, selection.ShowtimeID), data, ttl).Err()
}

// releaseSelectionSeats frees all holds of a selection, logging rather than
// failing: an unreleased lock still lapses with its TTL.
func (app *Application) releaseSelectionSeats(ctx context.Context, token string, selection *domain.Selection) {
	app.releaseSeats(ctx, selection.ShowtimeID, token, selection.SeatIDs())
}

func (app *Application) releaseSeats(ctx context.Context, showtimeID int, token string, seatIDs []int) {
	if len(seatIDs) == 0 {
		return
	}

	err := app.inventory.Release(ctx, showtimeID, token, seatIDs)
	if err != nil {
		app.logger.ErrorContext(ctx, "releasing seat holds", "showtimeId", showtimeID, "error", err)
	}
}

func (app *Application) selectionErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrSelectionNotFound):
		app.errorResponse(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrSelectionExpired):
		app.goneResponse(w, r, err)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) toSelectionResponse(selection domain.Selection) api.SelectionResponse {
	seats := make([]api.SelectionSeat, len(selection.Seats))
	for i, seat := range selection.Seats {
		seats[i] = api.SelectionSeat{
			Id:     seat.SeatID,
			Row:    seat.Row,
			Number: seat.Number,
			Type:   api.SeatType(seat.Type),
			Price:  seat.Price,
		}
	}

	return api.SelectionResponse{
		ShowtimeId:    selection.ShowtimeID,
		Seats:         seats,
		TotalPrice:    selection.Total(),
		HoldExpiresAt: selection.ExpiresAt,
		MaxSeats:      app.config.Booking.MaxSeatsPerBooking,
	}
}

package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/cinetick/cinetick/api"
	"github.com/cinetick/cinetick/internal/domain"
	"github.com/cinetick/cinetick/internal/notifier"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const bookingConfirmationTemplate = "booking_confirmation.tmpl"

// Checkout turns the session's selection into a confirmed booking. The
// ordering is fixed: verify the holds, charge, verify the holds again, then
// commit the booking in one transaction. A commit failure after a successful
// charge refunds the charge, so no money is ever taken for seats that were
// not booked.
func (app *Application) Checkout(w http.ResponseWriter, r *http.Request) {
	showtimeID, err := pathInt(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.CheckoutRequest
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
		if errors.Is(err, domain.ErrSelectionNotFound) || errors.Is(err, domain.ErrSelectionExpired) {
			app.goneResponse(w, r, domain.ErrSelectionExpired)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	if len(selection.Seats) == 0 {
		app.unprocessableEntityResponse(w, r, errors.New("selection contains no seats"))
		return
	}

	err = app.inventory.VerifyHold(r.Context(), showtimeID, token, selection.SeatIDs())
	if err != nil {
		if errors.Is(err, domain.ErrSelectionExpired) {
			app.goneResponse(w, r, err)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	total := selection.Total()

	chargeCtx, cancel := context.WithTimeout(r.Context(), app.config.Booking.PaymentTimeout)
	defer cancel()

	outcome, err := app.gateway.Charge(chargeCtx, total, app.config.Booking.Currency, input.PaymentMethod)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if !outcome.Success {
		// Seats stay held until the TTL lapses, so the buyer can retry
		// with another payment method.
		app.metrics.paymentFailures.Add(r.Context(), 1)
		app.contextGetLogger(r).Warn("payment failed",
			"showtimeId", showtimeID, "reason", outcome.FailureReason)
		app.paymentFailedResponse(w, r, domain.ErrPaymentFailed)
		return
	}

	// The gateway call can outlast the hold window. A lapsed hold must not
	// commit, so ownership is checked again before the transaction.
	err = app.inventory.VerifyHold(r.Context(), showtimeID, token, selection.SeatIDs())
	if err != nil {
		app.refundCharge(outcome.TransactionID, total)

		if errors.Is(err, domain.ErrSelectionExpired) {
			app.goneResponse(w, r, err)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	booking := &domain.Booking{
		Reference:   uuid.NewString(),
		BuyerID:     token,
		ShowtimeID:  showtimeID,
		Seats:       toBookingSeats(selection.Seats),
		TotalAmount: total,
		PaymentRef:  outcome.TransactionID,
		Status:      domain.BookingStatusConfirmed,
	}

	err = app.bookingRepo.CreateConfirmed(r.Context(), booking)
	if err != nil {
		app.refundCharge(outcome.TransactionID, total)

		if errors.Is(err, domain.ErrSeatUnavailable) {
			app.conflictResponse(w, r, domain.ErrSeatUnavailable)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	app.metrics.bookingsConfirmed.Add(r.Context(), 1)
	app.metrics.seatsSold.Add(r.Context(), int64(len(booking.Seats)))

	app.releaseSeats(r.Context(), showtimeID, token, selection.SeatIDs())

	err = app.redis.Del(r.Context(), selectionKey(token, showtimeID)).Err()
	if err != nil {
		app.contextGetLogger(r).Error("deleting selection after checkout", "error", err)
	}

	app.notifier.BookingConfirmed(r.Context(), notifier.BookingConfirmed{
		Header:      notifier.NewHeader(),
		BookingID:   booking.ID,
		Reference:   booking.Reference,
		ShowtimeID:  booking.ShowtimeID,
		SeatIDs:     selection.SeatIDs(),
		TotalAmount: booking.TotalAmount,
	})

	if input.Email != "" {
		app.sendBookingConfirmation(input.Email, booking)
	}

	err = app.writeJSON(w, http.StatusCreated, toBookingResponse(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// refundCharge compensates a charge whose booking never committed. It runs
// on a fresh context because the request may already be cancelled.
func (app *Application) refundCharge(transactionID string, amount decimal.Decimal) {
	app.background(func() {
		ctx, cancel := context.WithTimeout(context.Background(), app.config.Booking.PaymentTimeout)
		defer cancel()

		err := app.gateway.Refund(ctx, transactionID, amount)
		if err != nil {
			app.logger.Error("refunding failed charge",
				"transactionId", transactionID, "amount", amount.String(), "error", err)
		}
	})
}

func (app *Application) sendBookingConfirmation(recipient string, booking *domain.Booking) {
	app.background(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		showtime, err := app.showtimeRepo.GetById(ctx, booking.ShowtimeID)
		if err != nil {
			app.logger.Error("loading showtime for confirmation mail", "error", err)
			return
		}

		labels := make([]string, len(booking.Seats))
		for i, seat := range booking.Seats {
			labels[i] = domain.Seat{Row: seat.Row, Number: seat.Number}.Label()
		}

		data := map[string]any{
			"Reference":   booking.Reference,
			"MovieTitle":  showtime.MovieTitle,
			"ShowtimeAt":  showtime.StartTime.Format(time.RFC1123),
			"Seats":       strings.Join(labels, ", "),
			"TotalAmount": booking.TotalAmount.StringFixed(2),
		}

		err = app.mailer.Send(recipient, bookingConfirmationTemplate, data)
		if err != nil {
			app.logger.Error("sending confirmation mail", "reference", booking.Reference, "error", err)
		}
	})
}

func toBookingSeats(seats []domain.SelectionSeat) []domain.BookingSeat {
	bookingSeats := make([]domain.BookingSeat, len(seats))
	for i, seat := range seats {
		bookingSeats[i] = domain.BookingSeat{
			SeatID: seat.SeatID,
			Row:    seat.Row,
			Number: seat.Number,
			Type:   seat.Type,
		}
	}

	return bookingSeats
}

func toBookingResponse(booking *domain.Booking) api.BookingResponse {
	seats := make([]api.BookingSeat, len(booking.Seats))
	for i, seat := range booking.Seats {
		seats[i] = api.BookingSeat{
			Row:    seat.Row,
			Number: seat.Number,
			Type:   api.SeatType(seat.Type),
		}
	}

	return api.BookingResponse{
		Id:          booking.ID,
		Reference:   booking.Reference,
		ShowtimeId:  booking.ShowtimeID,
		Seats:       seats,
		TotalAmount: booking.TotalAmount,
		PaymentRef:  booking.PaymentRef,
		Status:      api.BookingStatus(strings.ToUpper(string(booking.Status))),
		CreatedAt:   booking.CreatedAt,
	}
}

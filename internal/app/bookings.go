package app

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/cinetick/cinetick/api"
	"github.com/cinetick/cinetick/internal/domain"
	"github.com/cinetick/cinetick/internal/notifier"
)

func (app *Application) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	var params api.GetBookingsParams
	if err := errors.Join(
		queryInt(r, "page", &params.Page),
		queryInt(r, "pageSize", &params.PageSize),
	); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	pagination := toPagination(params.Page, params.PageSize)

	summaries, metadata, err := app.bookingRepo.GetSummariesByBuyer(r.Context(), app.sessionToken(r), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	apiSummaries := make([]api.BookingSummary, len(summaries))
	for i, summary := range summaries {
		apiSummaries[i] = api.BookingSummary{
			Id:          summary.BookingID,
			Reference:   summary.Reference,
			MovieTitle:  summary.MovieTitle,
			TheaterName: summary.TheaterName,
			HallName:    summary.HallName,
			Date:        summary.ShowtimeAt,
			TotalAmount: summary.TotalAmount,
			Status:      api.BookingStatus(strings.ToUpper(string(summary.Status))),
			CreatedAt:   summary.CreatedAt,
		}
	}

	resp := api.UserBookingsResponse{
		Bookings: apiSummaries,
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetUserBookingById(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathInt(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	booking, err := app.bookingRepo.GetByIdAndBuyer(r.Context(), bookingID, app.sessionToken(r))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingResponse(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// CancelBooking frees a booking's seats and refunds its payment, but only
// while the showtime start is still further away than the cutoff.
func (app *Application) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathInt(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	deadline := time.Now().Add(app.config.Booking.CancellationCutoff)

	cancelled, err := app.bookingRepo.Cancel(r.Context(), bookingID, app.sessionToken(r), deadline)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrBookingNotCancellable):
			app.conflictResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.metrics.bookingsCancelled.Add(r.Context(), 1)
	app.refundCharge(cancelled.PaymentRef, cancelled.Amount)

	booking, err := app.bookingRepo.GetByIdAndBuyer(r.Context(), bookingID, app.sessionToken(r))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.notifier.BookingCancelled(r.Context(), notifier.BookingCancelled{
		Header:     notifier.NewHeader(),
		BookingID:  booking.ID,
		Reference:  booking.Reference,
		ShowtimeID: booking.ShowtimeID,
		Refund:     cancelled.Amount,
	})

	err = app.writeJSON(w, http.StatusOK, toBookingResponse(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

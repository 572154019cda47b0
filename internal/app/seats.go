package app

import (
	"errors"
	"net/http"

	"github.com/cinetick/cinetick/api"
	"github.com/cinetick/cinetick/internal/domain"
)

func (app *Application) GetSeatMapByShowtime(w http.ResponseWriter, r *http.Request) {
	showtimeID, err := pathInt(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showtime, err := app.showtimeRepo.GetById(r.Context(), showtimeID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	seatMap, err := app.inventory.SeatMap(r.Context(), showtimeID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	resp, err := app.toSeatMapResponse(seatMap, showtime)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) toSeatMapResponse(seatMap *domain.SeatMap, showtime *domain.Showtime) (api.SeatMapResponse, error) {
	seatRows, err := app.toSeatRows(seatMap.Seats, showtime)
	if err != nil {
		return api.SeatMapResponse{}, err
	}

	return api.SeatMapResponse{
		ShowtimeId:  seatMap.ShowtimeID,
		TheaterName: seatMap.TheaterName,
		HallName:    seatMap.HallName,
		StartTime:   seatMap.StartTime,
		SeatRows:    seatRows,
	}, nil
}

func (app *Application) toSeatRows(seats []domain.Seat, showtime *domain.Showtime) ([]api.SeatRow, error) {
	if len(seats) == 0 {
		return nil, nil
	}

	// Seats arrive pre-sorted by row then number, so a single pass suffices.
	var seatRows []api.SeatRow
	currentRow := api.SeatRow{Row: seats[0].Row}

	for _, seat := range seats {
		if seat.Row != currentRow.Row {
			seatRows = append(seatRows, currentRow)
			currentRow = api.SeatRow{Row: seat.Row}
		}

		price, err := app.pricing.Price(seat.Type, showtime)
		if err != nil {
			return nil, err
		}

		currentRow.Seats = append(currentRow.Seats, api.Seat{
			Id:     seat.ID,
			Row:    seat.Row,
			Number: seat.Number,
			Type:   api.SeatType(seat.Type),
			Status: api.SeatStatus(seat.Status),
			Price:  price,
		})
	}

	seatRows = append(seatRows, currentRow)

	return seatRows, nil
}

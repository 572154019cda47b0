package repository

import (
	"context"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) GetByShowtime(ctx context.Context, showtimeID int) (*domain.SeatMap, error) {
	query := `
		SELECT
			t.name AS theater_name,
			h.name AS hall_name,
			sh.start_time,
			se.id AS seat_id,
			se.seat_row,
			se.seat_number,
			se.seat_type
		FROM showtimes sh
		JOIN seats se
			ON sh.hall_id = se.hall_id
		JOIN halls h
			ON sh.hall_id = h.id
		JOIN theaters t
			ON h.theater_id = t.id
		WHERE sh.id = $1
		ORDER BY se.seat_row, se.seat_number
	`

	rows, err := p.db.Query(ctx, query, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seatMap := domain.SeatMap{ShowtimeID: showtimeID}

	for rows.Next() {
		var seat domain.Seat

		err = rows.Scan(
			&seatMap.TheaterName,
			&seatMap.HallName,
			&seatMap.StartTime,
			&seat.ID,
			&seat.Row,
			&seat.Number,
			&seat.Type,
		)
		if err != nil {
			return nil, err
		}

		seat.Status = domain.SeatStatusAvailable
		seatMap.Seats = append(seatMap.Seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(seatMap.Seats) == 0 {
		return nil, domain.ErrRecordNotFound
	}

	return &seatMap, nil
}

func (p *PostgresSeatRepository) GetByShowtimeAndIds(
	ctx context.Context,
	showtimeID int,
	seatIDs []int) ([]domain.Seat, error) {

	query := `
		SELECT se.id, se.seat_row, se.seat_number, se.seat_type
		FROM showtimes sh
		JOIN seats se
			ON sh.hall_id = se.hall_id
		WHERE sh.id = $1 AND se.id = ANY($2)
		ORDER BY se.seat_row, se.seat_number
	`

	rows, err := p.db.Query(ctx, query, showtimeID, seatIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0, len(seatIDs))

	for rows.Next() {
		var seat domain.Seat

		err = rows.Scan(&seat.ID, &seat.Row, &seat.Number, &seat.Type)
		if err != nil {
			return nil, err
		}

		seat.Status = domain.SeatStatusAvailable
		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

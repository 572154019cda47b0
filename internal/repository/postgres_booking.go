package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cinetick/cinetick/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// CreateConfirmed writes the payment, the booking and its seats in one
// transaction. The unique constraint on booking_seats (showtime_id,
// seat_id) is the final arbiter against double-booking: a violation
// rolls everything back and surfaces as ErrSeatUnavailable.
func (p *PostgresBookingRepository) CreateConfirmed(ctx context.Context, booking *domain.Booking) error {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO payments (buyer_id, amount, currency, status, provider_ref, payment_date)
			VALUES ($1, $2, 'USD', 'completed', $3, NOW())
			RETURNING id
		`

		var paymentID int
		err := tx.QueryRow(ctx, query, booking.BuyerID, booking.TotalAmount, booking.PaymentRef).Scan(&paymentID)
		if err != nil {
			return err
		}

		query = `
			INSERT INTO bookings (reference, buyer_id, showtime_id, payment_id, total_amount, status)
			VALUES ($1, $2, $3, $4, $5, 'confirmed')
			RETURNING id, created_at
		`

		err = tx.QueryRow(
			ctx,
			query,
			booking.Reference,
			booking.BuyerID,
			booking.ShowtimeID,
			paymentID,
			booking.TotalAmount).Scan(&booking.ID, &booking.CreatedAt)

		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(booking.Seats))
		for _, seat := range booking.Seats {
			rows = append(rows, []any{
				booking.ID,
				booking.ShowtimeID,
				seat.SeatID,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"booking_seats"},
			[]string{"booking_id", "showtime_id", "seat_id"},
			pgx.CopyFromRows(rows),
		)

		return err
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrSeatUnavailable
		}

		return err
	}

	booking.Status = domain.BookingStatusConfirmed

	return nil
}

// Cancel is only permitted while the showtime starts after the deadline
// (now plus the cancellation cutoff). Freed seats bypass HELD: deleting
// the booking_seats rows makes them AVAILABLE again.
func (p *PostgresBookingRepository) Cancel(
	ctx context.Context,
	bookingID int,
	buyerID string,
	deadline time.Time) (*domain.CancelledBooking, error) {

	var cancelled domain.CancelledBooking

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			SELECT b.status, b.total_amount, p.provider_ref, s.start_time
			FROM bookings b
			JOIN payments p ON b.payment_id = p.id
			JOIN showtimes s ON b.showtime_id = s.id
			WHERE b.id = $1 AND b.buyer_id = $2
			FOR UPDATE OF b
		`

		var (
			status    domain.BookingStatus
			startTime time.Time
		)

		err := tx.QueryRow(ctx, query, bookingID, buyerID).Scan(
			&status,
			&cancelled.Amount,
			&cancelled.PaymentRef,
			&startTime,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		if status != domain.BookingStatusConfirmed || !startTime.After(deadline) {
			return domain.ErrBookingNotCancellable
		}

		_, err = tx.Exec(ctx, `UPDATE bookings SET status = 'cancelled', updated_at = NOW() WHERE id = $1`, bookingID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM booking_seats WHERE booking_id = $1`, bookingID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(
			ctx,
			`UPDATE payments SET status = 'refunded', updated_at = NOW()
			 WHERE id = (SELECT payment_id FROM bookings WHERE id = $1)`,
			bookingID,
		)

		return err
	})

	if err != nil {
		return nil, err
	}

	cancelled.BookingID = bookingID

	return &cancelled, nil
}

func (p *PostgresBookingRepository) GetSeatsByShowtime(
	ctx context.Context,
	showtimeID int) ([]domain.BookedSeatRef, error) {

	query := `
		SELECT bs.booking_id, bs.seat_id
		FROM booking_seats bs
		WHERE bs.showtime_id = $1
	`

	rows, err := p.db.Query(ctx, query, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := make([]domain.BookedSeatRef, 0)

	for rows.Next() {
		var ref domain.BookedSeatRef

		err = rows.Scan(&ref.BookingID, &ref.SeatID)
		if err != nil {
			return nil, err
		}

		refs = append(refs, ref)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return refs, nil
}

func (p *PostgresBookingRepository) GetSummariesByBuyer(
	ctx context.Context,
	buyerID string,
	pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			b.id,
			b.reference,
			m.title,
			t.name,
			h.name,
			s.start_time,
			b.total_amount,
			b.status,
			b.created_at
		FROM bookings b
		JOIN showtimes s ON b.showtime_id = s.id
		JOIN movies m ON s.movie_id = m.id
		JOIN halls h ON s.hall_id = h.id
		JOIN theaters t ON h.theater_id = t.id
		WHERE b.buyer_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, buyerID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	summaries := make([]domain.BookingSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var summary domain.BookingSummary

		err := rows.Scan(
			&totalRecords,
			&summary.BookingID,
			&summary.Reference,
			&summary.MovieTitle,
			&summary.TheaterName,
			&summary.HallName,
			&summary.ShowtimeAt,
			&summary.TotalAmount,
			&summary.Status,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return summaries, metadata, nil
}

func (p *PostgresBookingRepository) GetByIdAndBuyer(
	ctx context.Context,
	bookingID int,
	buyerID string) (*domain.Booking, error) {

	query := `
		SELECT b.id, b.reference, b.buyer_id, b.showtime_id, b.total_amount, p.provider_ref, b.status, b.created_at
		FROM bookings b
		JOIN payments p ON b.payment_id = p.id
		WHERE b.id = $1 AND b.buyer_id = $2
	`

	var booking domain.Booking

	err := p.db.QueryRow(ctx, query, bookingID, buyerID).Scan(
		&booking.ID,
		&booking.Reference,
		&booking.BuyerID,
		&booking.ShowtimeID,
		&booking.TotalAmount,
		&booking.PaymentRef,
		&booking.Status,
		&booking.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	seats, err := p.retrieveBookingSeats(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	booking.Seats = seats

	return &booking, nil
}

func (p *PostgresBookingRepository) retrieveBookingSeats(
	ctx context.Context,
	bookingID int) ([]domain.BookingSeat, error) {

	query := `
		SELECT s.id, s.seat_row, s.seat_number, s.seat_type
		FROM booking_seats bs
		JOIN seats s ON bs.seat_id = s.id
		WHERE bs.booking_id = $1
		ORDER BY s.seat_row, s.seat_number
	`

	rows, err := p.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.BookingSeat, 0)

	for rows.Next() {
		var seat domain.BookingSeat

		err := rows.Scan(&seat.SeatID, &seat.Row, &seat.Number, &seat.Type)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

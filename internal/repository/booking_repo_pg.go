package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Domenick1991/flyflex/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ListFilter narrows the administrative booking listing. Zero values mean
// "no filter".
type ListFilter struct {
	Status   domain.BookingStatus
	BookedOn time.Time
	Airline  string
}

type BookingRepository interface {
	// CreateWithReservation atomically decrements the flight's seat counter
	// and inserts the booking row in one transaction. Returns
	// domain.ErrInsufficientSeats when the conditional decrement matches no
	// row and domain.ErrDuplicateReference when the reference collides, in
	// both cases leaving the inventory untouched.
	CreateWithReservation(ctx context.Context, b *domain.Booking) error

	// CancelWithRelease flips the booking to cancelled and credits the
	// seats back, all-or-nothing. userID > 0 scopes the lookup to the
	// owner. The returned flag is false when the booking was already
	// cancelled and nothing changed.
	CancelWithRelease(ctx context.Context, bookingID, userID int64) (*domain.Booking, bool, error)

	// Confirm moves pending -> confirmed with a compare-and-set. A booking
	// already confirmed is a no-op; a cancelled one is rejected with
	// domain.ErrInvalidTransition.
	Confirm(ctx context.Context, bookingID int64) (*domain.Booking, error)

	GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.BookingDetail, error)
	ListAll(ctx context.Context, f ListFilter) ([]domain.BookingDetail, error)
	CountByStatus(ctx context.Context) (domain.BookingStats, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) CreateWithReservation(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// The seat check and decrement are a single conditional UPDATE so two
	// racing reservations can never both consume the last seats.
	ct, err := tx.Exec(ctx, `UPDATE flights
		SET available_seats = available_seats - $1, updated_at = now()
		WHERE id = $2 AND status = 'active' AND available_seats >= $1`,
		b.Passengers, b.FlightID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrInsufficientSeats
	}

	b.Status = domain.BookingStatusPending
	err = tx.QueryRow(ctx, `INSERT INTO bookings
		(user_id, flight_id, booking_reference, passenger_name, passenger_email,
		 passenger_phone, passengers_count, class_type, total_amount_cents, booking_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		b.UserID, b.FlightID, b.Reference, b.PassengerName, b.PassengerEmail,
		b.PassengerPhone, b.Passengers, b.FareClass, b.TotalAmountCents, b.Status).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		// Rolling back restores the decrement, so a collision never leaks
		// capacity.
		if isUniqueViolation(err) {
			return domain.ErrDuplicateReference
		}
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) CancelWithRelease(ctx context.Context, bookingID, userID int64) (*domain.Booking, bool, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	args := []any{bookingID}
	if userID > 0 {
		query += ` AND user_id = $2`
		args = append(args, userID)
	}
	var b domain.Booking
	if err := scanBooking(tx.QueryRow(ctx, query, args...), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, err
	}

	// Cancelled is terminal in the status machine; repeating a cancel is a
	// no-op rather than an error.
	if !b.Status.CanTransitionTo(domain.BookingStatusCancelled) {
		return &b, false, nil
	}

	// Compare-and-set on the status closes the double-cancel window: of two
	// concurrent cancels only one sees a row here and credits the seats.
	ct, err := tx.Exec(ctx, `UPDATE bookings
		SET booking_status = 'cancelled', updated_at = now()
		WHERE id = $1 AND booking_status IN ('pending', 'confirmed')`, bookingID)
	if err != nil {
		return nil, false, err
	}
	if ct.RowsAffected() == 0 {
		b.Status = domain.BookingStatusCancelled
		return &b, false, nil
	}

	// The credit must not push the counter above capacity; if it would,
	// the inventory is corrupt and the whole transaction is abandoned.
	ct, err = tx.Exec(ctx, `UPDATE flights
		SET available_seats = available_seats + $1, updated_at = now()
		WHERE id = $2 AND available_seats + $1 <= total_seats`,
		b.Passengers, b.FlightID)
	if err != nil {
		return nil, false, err
	}
	if ct.RowsAffected() == 0 {
		return nil, false, domain.ErrIntegrityViolation
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}
	b.Status = domain.BookingStatusCancelled
	return &b, true, nil
}

func (r *PGBookingRepository) Confirm(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	ct, err := r.db.Exec(ctx, `UPDATE bookings
		SET booking_status = 'confirmed', updated_at = now()
		WHERE id = $1 AND booking_status = 'pending'`, bookingID)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 1 {
		return r.GetByID(ctx, bookingID)
	}

	b, err := r.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	switch b.Status {
	case domain.BookingStatusConfirmed:
		return b, nil
	default:
		return nil, domain.ErrInvalidTransition
	}
}

func (r *PGBookingRepository) GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, bookingID)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) ListForUser(ctx context.Context, userID int64) ([]domain.BookingDetail, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingDetailColumns+`
		FROM bookings b
		JOIN flights f ON f.id = b.flight_id
		JOIN airlines a ON a.id = f.airline_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookingDetails(rows)
}

func (r *PGBookingRepository) ListAll(ctx context.Context, f ListFilter) ([]domain.BookingDetail, error) {
	query := `SELECT ` + bookingDetailColumns + `
		FROM bookings b
		JOIN flights f ON f.id = b.flight_id
		JOIN airlines a ON a.id = f.airline_id`

	conds := []string{}
	args := []any{}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, "b.booking_status = $"+strconv.Itoa(len(args)))
	}
	if !f.BookedOn.IsZero() {
		args = append(args, f.BookedOn)
		conds = append(conds, "b.created_at::date = $"+strconv.Itoa(len(args)))
	}
	if f.Airline != "" {
		args = append(args, f.Airline)
		conds = append(conds, "a.name = $"+strconv.Itoa(len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY b.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookingDetails(rows)
}

func (r *PGBookingRepository) CountByStatus(ctx context.Context) (domain.BookingStats, error) {
	rows, err := r.db.Query(ctx, `SELECT booking_status, COUNT(*) FROM bookings GROUP BY booking_status`)
	if err != nil {
		return domain.BookingStats{}, err
	}
	defer rows.Close()

	var stats domain.BookingStats
	for rows.Next() {
		var status domain.BookingStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return domain.BookingStats{}, err
		}
		stats.Total += count
		switch status {
		case domain.BookingStatusPending:
			stats.Pending = count
		case domain.BookingStatusConfirmed:
			stats.Confirmed = count
		case domain.BookingStatusCancelled:
			stats.Cancelled = count
		}
	}
	return stats, rows.Err()
}

const bookingColumns = `id, user_id, flight_id, booking_reference, passenger_name,
	passenger_email, passenger_phone, passengers_count, class_type,
	total_amount_cents, booking_status, created_at, updated_at`

const bookingDetailColumns = `b.id, b.user_id, b.flight_id, b.booking_reference, b.passenger_name,
	b.passenger_email, b.passenger_phone, b.passengers_count, b.class_type,
	b.total_amount_cents, b.booking_status, b.created_at, b.updated_at,
	f.flight_number, f.departure_city, f.arrival_city, f.departure_date,
	f.departure_time, a.name`

func scanBooking(row pgx.Row, b *domain.Booking) error {
	return row.Scan(&b.ID, &b.UserID, &b.FlightID, &b.Reference, &b.PassengerName,
		&b.PassengerEmail, &b.PassengerPhone, &b.Passengers, &b.FareClass,
		&b.TotalAmountCents, &b.Status, &b.CreatedAt, &b.UpdatedAt)
}

func scanBookingDetails(rows pgx.Rows) ([]domain.BookingDetail, error) {
	details := make([]domain.BookingDetail, 0)
	for rows.Next() {
		var d domain.BookingDetail
		if err := rows.Scan(&d.ID, &d.UserID, &d.FlightID, &d.Reference, &d.PassengerName,
			&d.PassengerEmail, &d.PassengerPhone, &d.Passengers, &d.FareClass,
			&d.TotalAmountCents, &d.Status, &d.CreatedAt, &d.UpdatedAt,
			&d.FlightNumber, &d.DepartureCity, &d.ArrivalCity, &d.DepartureDate,
			&d.DepartureTime, &d.AirlineName); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ BookingRepository = (*PGBookingRepository)(nil)

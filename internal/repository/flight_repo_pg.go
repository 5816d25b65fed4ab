package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/flyflex/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SearchQuery is the tolerant first-phase match: case-insensitive
// substring/prefix on both cities, exact date, active flights with enough
// seats left.
type SearchQuery struct {
	DepartureCity string
	ArrivalCity   string
	DepartureDate time.Time
	Passengers    int
}

type FlightRepository interface {
	SearchExact(ctx context.Context, q SearchQuery) ([]domain.Flight, error)
	SearchBroad(ctx context.Context, passengers, limit int) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `f.id, a.name, a.code, f.flight_number, f.departure_city, f.arrival_city,
	f.departure_date, f.departure_time, f.arrival_time, f.price_cents,
	f.total_seats, f.available_seats, f.status, f.created_at, f.updated_at`

func (r *PGFlightRepository) SearchExact(ctx context.Context, q SearchQuery) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+`
		FROM flights f
		JOIN airlines a ON a.id = f.airline_id
		WHERE (f.departure_city ILIKE $1 OR f.departure_city ILIKE $2)
		  AND (f.arrival_city ILIKE $3 OR f.arrival_city ILIKE $4)
		  AND f.departure_date = $5
		  AND f.status = 'active'
		  AND f.available_seats >= $6
		ORDER BY f.departure_time`,
		"%"+q.DepartureCity+"%", q.DepartureCity+"%",
		"%"+q.ArrivalCity+"%", q.ArrivalCity+"%",
		q.DepartureDate, q.Passengers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFlights(rows)
}

// SearchBroad is the fallback when the route/date match comes back empty:
// any active flight with enough seats, nearest departures first, capped.
func (r *PGFlightRepository) SearchBroad(ctx context.Context, passengers, limit int) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+`
		FROM flights f
		JOIN airlines a ON a.id = f.airline_id
		WHERE f.status = 'active' AND f.available_seats >= $1
		ORDER BY f.departure_date, f.departure_time
		LIMIT $2`, passengers, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFlights(rows)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+`
		FROM flights f
		JOIN airlines a ON a.id = f.airline_id
		WHERE f.id = $1`, id)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func scanFlights(rows pgx.Rows) ([]domain.Flight, error) {
	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func scanFlight(row pgx.Row, f *domain.Flight) error {
	return row.Scan(&f.ID, &f.AirlineName, &f.AirlineCode, &f.FlightNumber,
		&f.DepartureCity, &f.ArrivalCity, &f.DepartureDate, &f.DepartureTime,
		&f.ArrivalTime, &f.BasePriceCents, &f.TotalSeats, &f.AvailableSeats,
		&f.Status, &f.CreatedAt, &f.UpdatedAt)
}

var _ FlightRepository = (*PGFlightRepository)(nil)

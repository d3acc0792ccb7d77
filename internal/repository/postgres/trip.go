package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"taxi24/internal/domain"
	"taxi24/internal/repository"
)

const uniqueViolation = "23505"

const tripColumns = `id, driver_id, passenger_id, start_date, end_date, is_active,
	start_latitude, start_longitude, end_latitude, end_longitude, price, price_currency`

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

// Create persists a new trip and assigns its ID. A violation of the
// one-active-trip partial unique indexes maps to ErrDuplicateActiveTrip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (driver_id, passenger_id, start_date, end_date, is_active,
			start_latitude, start_longitude, end_latitude, end_longitude, price, price_currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	var endDate sql.NullTime
	if !trip.EndDate.IsZero() {
		endDate = sql.NullTime{Time: trip.EndDate, Valid: true}
	}

	err := r.q.QueryRowContext(ctx, query,
		trip.DriverID,
		trip.PassengerID,
		trip.StartDate,
		endDate,
		trip.IsActive,
		trip.StartLocation.Latitude,
		trip.StartLocation.Longitude,
		trip.EndLocation.Latitude,
		trip.EndLocation.Longitude,
		trip.Price,
		trip.PriceCurrency,
	).Scan(&trip.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return repository.ErrDuplicateActiveTrip
		}
		return err
	}

	return nil
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// Update updates an existing trip.
func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	query := `
		UPDATE trips
		SET end_date = $1, is_active = $2, price = $3, price_currency = $4
		WHERE id = $5
	`

	var endDate sql.NullTime
	if !trip.EndDate.IsZero() {
		endDate = sql.NullTime{Time: trip.EndDate, Valid: true}
	}

	result, err := r.q.ExecContext(ctx, query,
		endDate,
		trip.IsActive,
		trip.Price,
		trip.PriceCurrency,
		trip.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// FindActiveByParties retrieves an active trip involving the driver or the
// passenger. Returns nil if neither party has one.
func (r *TripRepository) FindActiveByParties(ctx context.Context, driverID, passengerID int64) (*domain.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE is_active AND (driver_id = $1 OR passenger_id = $2)
		LIMIT 1
	`

	trip, err := r.scanOne(r.q.QueryRowContext(ctx, query, driverID, passengerID))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return trip, err
}

// ListActive retrieves active trips ordered by ID with the total record count.
func (r *TripRepository) ListActive(ctx context.Context, page repository.PageRequest) ([]*domain.Trip, int, error) {
	query := `
		SELECT ` + tripColumns + `, count(*) OVER () AS total_records
		FROM trips WHERE is_active ORDER BY id
	`

	var args []any
	if page.Enabled() {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, page.PerPage, page.Offset())
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	var total int
	for rows.Next() {
		var trip domain.Trip
		var endDate sql.NullTime
		if err := rows.Scan(
			&trip.ID,
			&trip.DriverID,
			&trip.PassengerID,
			&trip.StartDate,
			&endDate,
			&trip.IsActive,
			&trip.StartLocation.Latitude,
			&trip.StartLocation.Longitude,
			&trip.EndLocation.Latitude,
			&trip.EndLocation.Longitude,
			&trip.Price,
			&trip.PriceCurrency,
			&total,
		); err != nil {
			return nil, 0, err
		}
		if endDate.Valid {
			trip.EndDate = endDate.Time
		}
		trips = append(trips, &trip)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// A page past the end of the active set yields no rows to carry the
	// window total; the true count still has to be reported.
	if len(trips) == 0 && page.Enabled() {
		if err := r.q.QueryRowContext(ctx, `SELECT count(*) FROM trips WHERE is_active`).Scan(&total); err != nil {
			return nil, 0, err
		}
	}

	return trips, total, nil
}

// GetCompletedByID retrieves a trip by ID only if it has been completed.
func (r *TripRepository) GetCompletedByID(ctx context.Context, id int64) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1 AND NOT is_active`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// CountActiveByDriverID returns the number of active trips for a driver.
func (r *TripRepository) CountActiveByDriverID(ctx context.Context, driverID int64) (int, error) {
	query := `SELECT count(*) FROM trips WHERE driver_id = $1 AND is_active`

	var count int
	if err := r.q.QueryRowContext(ctx, query, driverID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *TripRepository) scanOne(row *sql.Row) (*domain.Trip, error) {
	var trip domain.Trip
	var endDate sql.NullTime

	err := row.Scan(
		&trip.ID,
		&trip.DriverID,
		&trip.PassengerID,
		&trip.StartDate,
		&endDate,
		&trip.IsActive,
		&trip.StartLocation.Latitude,
		&trip.StartLocation.Longitude,
		&trip.EndLocation.Latitude,
		&trip.EndLocation.Longitude,
		&trip.Price,
		&trip.PriceCurrency,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if endDate.Valid {
		trip.EndDate = endDate.Time
	}

	return &trip, nil
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)

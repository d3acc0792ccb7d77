package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taxi24/internal/domain"
	"taxi24/internal/geo"
	"taxi24/internal/repository"
)

// distanceExpr computes the great-circle distance in kilometers between a
// driver row and the search origin using the spherical law of cosines.
// $1 is the origin latitude in radians, $2 the origin longitude in radians.
// The acos argument is clamped so coincident points do not leave its domain.
const distanceExpr = `acos(least(1.0, greatest(-1.0,
	sin(radians(d.latitude)) * sin($1) +
	cos(radians(d.latitude)) * cos($1) * cos(radians(d.longitude) - $2)
))) * 6371`

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// NewDriverRepositoryWithTx creates a driver repository using a transaction.
func NewDriverRepositoryWithTx(tx *sql.Tx) *DriverRepository {
	return &DriverRepository{q: tx}
}

// Create adds a new driver and assigns its ID.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (given_name, family_name, latitude, longitude)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	return r.q.QueryRowContext(ctx, query,
		driver.GivenName,
		driver.FamilyName,
		driver.Location.Latitude,
		driver.Location.Longitude,
	).Scan(&driver.ID)
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id int64) (*domain.Driver, error) {
	query := `SELECT id, given_name, family_name, latitude, longitude FROM drivers WHERE id = $1`

	var driver domain.Driver
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&driver.ID,
		&driver.GivenName,
		&driver.FamilyName,
		&driver.Location.Latitude,
		&driver.Location.Longitude,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &driver, nil
}

// GetAll retrieves drivers ordered by ID with the total record count.
func (r *DriverRepository) GetAll(ctx context.Context, page repository.PageRequest) ([]*domain.Driver, int, error) {
	query := `
		SELECT id, given_name, family_name, latitude, longitude, count(*) OVER () AS total_records
		FROM drivers ORDER BY id
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

	var drivers []*domain.Driver
	var total int
	for rows.Next() {
		var driver domain.Driver
		if err := rows.Scan(
			&driver.ID,
			&driver.GivenName,
			&driver.FamilyName,
			&driver.Location.Latitude,
			&driver.Location.Longitude,
			&total,
		); err != nil {
			return nil, 0, err
		}
		drivers = append(drivers, &driver)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// See Search: an empty page past the end still reports the true count.
	if len(drivers) == 0 && page.Enabled() {
		if err := r.q.QueryRowContext(ctx, `SELECT count(*) FROM drivers`).Scan(&total); err != nil {
			return nil, 0, err
		}
	}

	return drivers, total, nil
}

// Search retrieves drivers by proximity, filtering and ordering inside the
// query. Availability is an aggregate condition over a driver→trips left
// outer join: a driver qualifies when it has no active trip rows at all.
func (r *DriverRepository) Search(ctx context.Context, q repository.DriverSearchQuery) ([]*domain.DriverWithDistance, int, error) {
	args := []any{
		geo.DegreesToRadians(q.Origin.Latitude),
		geo.DegreesToRadians(q.Origin.Longitude),
	}

	body := `
		FROM drivers d`

	if q.AvailableOnly {
		body += `
		LEFT JOIN trips t ON t.driver_id = d.id AND t.is_active`
	}

	if q.MaxDistanceKm > 0 {
		args = append(args, q.MaxDistanceKm)
		body += `
		WHERE ` + distanceExpr + fmt.Sprintf(` <= $%d`, len(args))
	}

	if q.AvailableOnly {
		body += `
		GROUP BY d.id
		HAVING count(t.id) = 0`
	}

	query := `
		SELECT d.id, d.given_name, d.family_name, d.latitude, d.longitude,
		       ` + distanceExpr + ` AS distance_km,
		       count(*) OVER () AS total_records` + body + `
		ORDER BY distance_km ASC, d.id ASC`

	// The distance column keeps the radians parameters referenced even when
	// no WHERE clause uses them.
	countQuery := `
		SELECT count(*) FROM (
			SELECT ` + distanceExpr + ` AS distance_km` + body + `
		) matches`
	countArgs := args

	if q.Page.Enabled() {
		query += fmt.Sprintf(`
		LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
		args = append(args, q.Page.PerPage, q.Page.Offset())
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []*domain.DriverWithDistance
	var total int
	for rows.Next() {
		var rec domain.DriverWithDistance
		if err := rows.Scan(
			&rec.ID,
			&rec.GivenName,
			&rec.FamilyName,
			&rec.Location.Latitude,
			&rec.Location.Longitude,
			&rec.DistanceKm,
			&total,
		); err != nil {
			return nil, 0, err
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// A page past the end of the filtered set yields no rows to carry the
	// window total; the true count still has to be reported.
	if len(records) == 0 && q.Page.Enabled() {
		if err := r.q.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
			return nil, 0, err
		}
	}

	return records, total, nil
}

// FindWithinDistance retrieves drivers within distanceKm of the origin.
// Legacy narrow form: no availability filter, no pagination, store order.
func (r *DriverRepository) FindWithinDistance(ctx context.Context, distanceKm float64, origin domain.Coordinate) ([]*domain.Driver, error) {
	query := `
		SELECT d.id, d.given_name, d.family_name, d.latitude, d.longitude
		FROM drivers d
		WHERE ` + distanceExpr + ` <= $3
		ORDER BY d.id`

	rows, err := r.q.QueryContext(ctx, query,
		geo.DegreesToRadians(origin.Latitude),
		geo.DegreesToRadians(origin.Longitude),
		distanceKm,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*domain.Driver
	for rows.Next() {
		var driver domain.Driver
		if err := rows.Scan(
			&driver.ID,
			&driver.GivenName,
			&driver.FamilyName,
			&driver.Location.Latitude,
			&driver.Location.Longitude,
		); err != nil {
			return nil, err
		}
		drivers = append(drivers, &driver)
	}

	return drivers, rows.Err()
}

// Ensure DriverRepository implements repository.DriverRepository.
var _ repository.DriverRepository = (*DriverRepository)(nil)

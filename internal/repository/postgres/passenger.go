package postgres

import (
	"context"
	"database/sql"
	"errors"

	"taxi24/internal/domain"
	"taxi24/internal/repository"
)

// PassengerRepository is a PostgreSQL implementation of repository.PassengerRepository.
type PassengerRepository struct {
	q Querier
}

// NewPassengerRepository creates a new PostgreSQL passenger repository.
func NewPassengerRepository(db *sql.DB) *PassengerRepository {
	return &PassengerRepository{q: db}
}

// Create adds a new passenger and assigns its ID.
func (r *PassengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	query := `INSERT INTO passengers (given_name, family_name) VALUES ($1, $2) RETURNING id`

	return r.q.QueryRowContext(ctx, query,
		passenger.GivenName,
		passenger.FamilyName,
	).Scan(&passenger.ID)
}

// GetByID retrieves a passenger by ID.
func (r *PassengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	query := `SELECT id, given_name, family_name FROM passengers WHERE id = $1`

	var passenger domain.Passenger
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&passenger.ID,
		&passenger.GivenName,
		&passenger.FamilyName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &passenger, nil
}

// GetAll retrieves passengers ordered by ID with the total record count.
func (r *PassengerRepository) GetAll(ctx context.Context, page repository.PageRequest) ([]*domain.Passenger, int, error) {
	query := `
		SELECT id, given_name, family_name, count(*) OVER () AS total_records
		FROM passengers ORDER BY id
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

	var passengers []*domain.Passenger
	var total int
	for rows.Next() {
		var passenger domain.Passenger
		if err := rows.Scan(
			&passenger.ID,
			&passenger.GivenName,
			&passenger.FamilyName,
			&total,
		); err != nil {
			return nil, 0, err
		}
		passengers = append(passengers, &passenger)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// See driver GetAll: an empty page past the end still reports the true count.
	if len(passengers) == 0 && page.Enabled() {
		if err := r.q.QueryRowContext(ctx, `SELECT count(*) FROM passengers`).Scan(&total); err != nil {
			return nil, 0, err
		}
	}

	return passengers, total, nil
}

// Ensure PassengerRepository implements repository.PassengerRepository.
var _ repository.PassengerRepository = (*PassengerRepository)(nil)

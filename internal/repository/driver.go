package repository

import (
	"context"

	"taxi24/internal/domain"
)

// DriverSearchQuery carries the filters for a proximity search.
type DriverSearchQuery struct {
	Origin domain.Coordinate

	// MaxDistanceKm bounds the search radius. Zero or negative means
	// unbounded: every driver is a candidate, ordered by proximity.
	MaxDistanceKm float64

	// AvailableOnly restricts results to drivers with no active trip.
	AvailableOnly bool

	Page PageRequest
}

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create adds a new driver and assigns its ID.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id int64) (*domain.Driver, error)

	// GetAll retrieves drivers ordered by ID, with the total record count
	// of the unsliced set.
	GetAll(ctx context.Context, page PageRequest) ([]*domain.Driver, int, error)

	// Search retrieves drivers matching the query, ordered by distance from
	// the origin ascending with ties broken by ID ascending, together with
	// the total record count of the filtered pre-pagination set. Distance
	// and availability are evaluated inside the query, not in memory.
	Search(ctx context.Context, q DriverSearchQuery) ([]*domain.DriverWithDistance, int, error)

	// FindWithinDistance retrieves drivers within distanceKm of the origin.
	// Narrow legacy form: no availability filter, no pagination, store order.
	FindWithinDistance(ctx context.Context, distanceKm float64, origin domain.Coordinate) ([]*domain.Driver, error)
}

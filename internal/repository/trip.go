package repository

import (
	"context"

	"taxi24/internal/domain"
)

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip and assigns its ID. Returns
	// ErrDuplicateActiveTrip if an active-trip uniqueness index rejects it.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id int64) (*domain.Trip, error)

	// Update updates an existing trip.
	Update(ctx context.Context, trip *domain.Trip) error

	// FindActiveByParties retrieves a trip that is active and involves the
	// given driver or the given passenger. Returns nil if neither party has
	// an active trip.
	FindActiveByParties(ctx context.Context, driverID, passengerID int64) (*domain.Trip, error)

	// ListActive retrieves active trips ordered by ID, with the total record
	// count of the unsliced set.
	ListActive(ctx context.Context, page PageRequest) ([]*domain.Trip, int, error)

	// GetCompletedByID retrieves a trip by ID only if it has been completed.
	// Returns ErrNotFound for a missing or still-active trip.
	GetCompletedByID(ctx context.Context, id int64) (*domain.Trip, error)

	// CountActiveByDriverID returns the number of active trips for a driver.
	CountActiveByDriverID(ctx context.Context, driverID int64) (int, error)
}

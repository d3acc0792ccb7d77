package repository

import (
	"context"

	"taxi24/internal/domain"
)

// PassengerRepository defines the persistence operations for passengers.
type PassengerRepository interface {
	// Create adds a new passenger and assigns its ID.
	Create(ctx context.Context, passenger *domain.Passenger) error

	// GetByID retrieves a passenger by ID.
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)

	// GetAll retrieves passengers ordered by ID, with the total record count
	// of the unsliced set.
	GetAll(ctx context.Context, page PageRequest) ([]*domain.Passenger, int, error)
}

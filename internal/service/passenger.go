package service

import (
	"context"

	"taxi24/internal/domain"
	"taxi24/internal/repository"
)

// PassengerService handles passenger registration and lookup.
type PassengerService struct {
	passengerRepo repository.PassengerRepository
}

// NewPassengerService creates a new PassengerService.
func NewPassengerService(passengerRepo repository.PassengerRepository) *PassengerService {
	return &PassengerService{passengerRepo: passengerRepo}
}

// RegisterPassengerRequest contains the parameters for registering a passenger.
type RegisterPassengerRequest struct {
	GivenName  string
	FamilyName string
}

// Register registers a new passenger.
func (s *PassengerService) Register(ctx context.Context, req RegisterPassengerRequest) (*domain.Passenger, error) {
	if req.GivenName == "" || req.FamilyName == "" {
		return nil, ErrInvalidName
	}

	passenger := &domain.Passenger{
		GivenName:  req.GivenName,
		FamilyName: req.FamilyName,
	}

	if err := s.passengerRepo.Create(ctx, passenger); err != nil {
		return nil, err
	}

	return passenger, nil
}

// Get retrieves a passenger by ID.
func (s *PassengerService) Get(ctx context.Context, passengerID int64) (*domain.Passenger, error) {
	if passengerID < 1 {
		return nil, ErrInvalidPassengerID
	}

	return s.passengerRepo.GetByID(ctx, passengerID)
}

// List retrieves passengers with the common pagination contract.
func (s *PassengerService) List(ctx context.Context, page repository.PageRequest) ([]*domain.Passenger, int, error) {
	if err := validatePage(page); err != nil {
		return nil, 0, err
	}

	return s.passengerRepo.GetAll(ctx, page)
}

package service

import (
	"context"

	"taxi24/internal/domain"
	"taxi24/internal/repository"
)

// DriverService handles driver registration, lookup, and proximity search.
type DriverService struct {
	driverRepo repository.DriverRepository
	tripRepo   repository.TripRepository
}

// NewDriverService creates a new DriverService.
func NewDriverService(driverRepo repository.DriverRepository, tripRepo repository.TripRepository) *DriverService {
	return &DriverService{
		driverRepo: driverRepo,
		tripRepo:   tripRepo,
	}
}

// RegisterDriverRequest contains the parameters for registering a driver.
type RegisterDriverRequest struct {
	GivenName  string
	FamilyName string
	Location   domain.Coordinate
}

// Register registers a new driver at its current location.
func (s *DriverService) Register(ctx context.Context, req RegisterDriverRequest) (*domain.Driver, error) {
	if req.GivenName == "" || req.FamilyName == "" {
		return nil, ErrInvalidName
	}

	if err := req.Location.Validate(); err != nil {
		return nil, ErrInvalidLocation
	}

	driver := &domain.Driver{
		GivenName:  req.GivenName,
		FamilyName: req.FamilyName,
		Location:   req.Location,
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}

	return driver, nil
}

// Get retrieves a driver by ID.
func (s *DriverService) Get(ctx context.Context, driverID int64) (*domain.Driver, error) {
	if driverID < 1 {
		return nil, ErrInvalidDriverID
	}

	return s.driverRepo.GetByID(ctx, driverID)
}

// List retrieves drivers with the common pagination contract.
func (s *DriverService) List(ctx context.Context, page repository.PageRequest) ([]*domain.Driver, int, error) {
	if err := validatePage(page); err != nil {
		return nil, 0, err
	}

	return s.driverRepo.GetAll(ctx, page)
}

// SearchRequest contains the parameters for a proximity search.
type SearchRequest struct {
	Origin domain.Coordinate

	// MaxDistanceKm bounds the search; zero means unbounded.
	MaxDistanceKm float64

	// AvailableOnly restricts results to drivers with no active trip.
	AvailableOnly bool

	Page repository.PageRequest
}

// SearchResult is a page of drivers ordered by distance from the origin.
type SearchResult struct {
	Records      []*domain.DriverWithDistance
	TotalRecords int
}

// Search finds drivers near an origin, ordered by distance ascending with
// ties broken by driver ID. Filtering, ordering, and the availability
// aggregate all run in the repository query.
func (s *DriverService) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	if err := req.Origin.Validate(); err != nil {
		return nil, ErrInvalidLocation
	}

	if req.MaxDistanceKm < 0 {
		return nil, ErrInvalidDistance
	}

	if err := validatePage(req.Page); err != nil {
		return nil, err
	}

	records, total, err := s.driverRepo.Search(ctx, repository.DriverSearchQuery{
		Origin:        req.Origin,
		MaxDistanceKm: req.MaxDistanceKm,
		AvailableOnly: req.AvailableOnly,
		Page:          req.Page,
	})
	if err != nil {
		return nil, err
	}

	return &SearchResult{Records: records, TotalRecords: total}, nil
}

// FindWithinDistance retrieves drivers within distanceKm of the origin.
// Deprecated narrower form of Search: no availability filter, no pagination,
// results in store order.
func (s *DriverService) FindWithinDistance(ctx context.Context, distanceKm float64, origin domain.Coordinate) ([]*domain.Driver, error) {
	if distanceKm <= 0 {
		return nil, ErrInvalidDistance
	}

	if err := origin.Validate(); err != nil {
		return nil, ErrInvalidLocation
	}

	return s.driverRepo.FindWithinDistance(ctx, distanceKm, origin)
}

// IsAvailable reports whether the driver has no active trip. Drivers with no
// trips at all are always available.
func (s *DriverService) IsAvailable(ctx context.Context, driverID int64) (bool, error) {
	if driverID < 1 {
		return false, ErrInvalidDriverID
	}

	if _, err := s.driverRepo.GetByID(ctx, driverID); err != nil {
		return false, err
	}

	active, err := s.tripRepo.CountActiveByDriverID(ctx, driverID)
	if err != nil {
		return false, err
	}

	return active == 0, nil
}

// validatePage rejects explicitly supplied page parameters below 1. The zero
// value means "parameter absent"; a missing half of the pair disables
// pagination rather than failing.
func validatePage(page repository.PageRequest) error {
	if page.Page < 0 || page.PerPage < 0 {
		return ErrInvalidPagination
	}
	return nil
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"taxi24/internal/billing"
	"taxi24/internal/domain"
	"taxi24/internal/geo"
	"taxi24/internal/redis"
	"taxi24/internal/repository"
	"taxi24/internal/repository/postgres"
)

const tripPartyLockTTL = 10 * time.Second

// TripService governs the trip lifecycle: creation with the active-trip
// conflict check, completion, active listing, and bill retrieval.
type TripService struct {
	db            *sql.DB
	tripRepo      repository.TripRepository
	driverRepo    repository.DriverRepository
	passengerRepo repository.PassengerRepository
	lockStore     redis.TripLockStoreInterface
	renderer      billing.Renderer
	now           func() time.Time
}

// NewTripService creates a new TripService. The db handle scopes the
// conflict-check-then-insert sequence to one transaction; lockStore
// serializes concurrent creations for the same parties before the check.
// Both may be nil, in which case the injected tripRepo is used directly and
// the uniqueness indexes remain the only concurrency guard. A nil now
// defaults to time.Now.
func NewTripService(
	db *sql.DB,
	tripRepo repository.TripRepository,
	driverRepo repository.DriverRepository,
	passengerRepo repository.PassengerRepository,
	lockStore redis.TripLockStoreInterface,
	renderer billing.Renderer,
	now func() time.Time,
) *TripService {
	if now == nil {
		now = time.Now
	}
	return &TripService{
		db:            db,
		tripRepo:      tripRepo,
		driverRepo:    driverRepo,
		passengerRepo: passengerRepo,
		lockStore:     lockStore,
		renderer:      renderer,
		now:           now,
	}
}

// CreateTripRequest contains the parameters for creating a trip.
type CreateTripRequest struct {
	DriverID      int64
	PassengerID   int64
	StartLocation domain.Coordinate
	EndLocation   domain.Coordinate
	Price         float64
}

// Create creates a new active trip. Fails with ErrActiveTripExists when the
// driver or the passenger already has an active trip; a single check covers
// both parties.
func (s *TripService) Create(ctx context.Context, req CreateTripRequest) (*domain.Trip, error) {
	if req.DriverID < 1 {
		return nil, ErrInvalidDriverID
	}
	if req.PassengerID < 1 {
		return nil, ErrInvalidPassengerID
	}
	if err := req.StartLocation.Validate(); err != nil {
		return nil, ErrInvalidLocation
	}
	if err := req.EndLocation.Validate(); err != nil {
		return nil, ErrInvalidLocation
	}
	if req.Price < 0 {
		return nil, ErrInvalidPrice
	}

	// Both parties must exist before any locking happens.
	if _, err := s.driverRepo.GetByID(ctx, req.DriverID); err != nil {
		return nil, err
	}
	if _, err := s.passengerRepo.GetByID(ctx, req.PassengerID); err != nil {
		return nil, err
	}

	if s.lockStore != nil {
		locked, err := s.lockStore.AcquireTripPartyLocks(ctx, req.DriverID, req.PassengerID, tripPartyLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrTripCreationContended
		}
		defer func() {
			// Detached from the request context: a client disconnect must not
			// leave the party locks held for their full TTL.
			releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = s.lockStore.ReleaseTripPartyLocks(releaseCtx, req.DriverID, req.PassengerID)
		}()
	}

	trip := &domain.Trip{
		DriverID:      req.DriverID,
		PassengerID:   req.PassengerID,
		StartLocation: req.StartLocation,
		EndLocation:   req.EndLocation,
		StartDate:     s.now(),
		IsActive:      true,
		Price:         req.Price,
		PriceCurrency: domain.PriceCurrency,
	}

	if err := s.checkAndInsert(ctx, trip); err != nil {
		return nil, err
	}

	return trip, nil
}

// checkAndInsert runs the conflict check and the insert against the same
// repository, transaction-scoped when a db handle is present.
func (s *TripService) checkAndInsert(ctx context.Context, trip *domain.Trip) error {
	if s.db == nil {
		return createTrip(ctx, s.tripRepo, trip)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = createTrip(ctx, postgres.NewTripRepositoryWithTx(tx), trip); err != nil {
		return err
	}

	err = tx.Commit()
	return err
}

func createTrip(ctx context.Context, tripRepo repository.TripRepository, trip *domain.Trip) error {
	existing, err := tripRepo.FindActiveByParties(ctx, trip.DriverID, trip.PassengerID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrActiveTripExists
	}

	if err := tripRepo.Create(ctx, trip); err != nil {
		if errors.Is(err, repository.ErrDuplicateActiveTrip) {
			return ErrActiveTripExists
		}
		return err
	}

	return nil
}

// Complete marks an active trip completed, setting its end date and clearing
// the active flag. Completing an already-completed trip fails with
// ErrTripAlreadyCompleted. Returns the trip enriched with party names and the
// derived endpoint distance for billing.
func (s *TripService) Complete(ctx context.Context, tripID int64) (*domain.CompletedTrip, error) {
	if tripID < 1 {
		return nil, ErrInvalidTripID
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if !trip.IsActive {
		return nil, ErrTripAlreadyCompleted
	}

	trip.EndDate = s.now()
	trip.IsActive = false

	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	return s.enrich(ctx, trip)
}

// ListActive retrieves active trips with the common pagination contract.
func (s *TripService) ListActive(ctx context.Context, page repository.PageRequest) ([]*domain.Trip, int, error) {
	if err := validatePage(page); err != nil {
		return nil, 0, err
	}

	return s.tripRepo.ListActive(ctx, page)
}

// TripBill is the rendered bill for a completed trip.
type TripBill struct {
	Trip     *domain.CompletedTrip
	FileName string
	Content  []byte
}

// GetBill retrieves a completed trip and renders its bill. An active or
// missing trip fails with the repository's not-found error: billing is only
// defined for completed trips.
func (s *TripService) GetBill(ctx context.Context, tripID int64) (*TripBill, error) {
	if tripID < 1 {
		return nil, ErrInvalidTripID
	}

	trip, err := s.tripRepo.GetCompletedByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	completed, err := s.enrich(ctx, trip)
	if err != nil {
		return nil, err
	}

	content, err := s.renderer.Render(completed)
	if err != nil {
		return nil, err
	}

	return &TripBill{
		Trip:     completed,
		FileName: fmt.Sprintf("taxi24-viaje-%d-factura.pdf", trip.ID),
		Content:  content,
	}, nil
}

// enrich resolves party names and computes the trip's endpoint distance.
func (s *TripService) enrich(ctx context.Context, trip *domain.Trip) (*domain.CompletedTrip, error) {
	driver, err := s.driverRepo.GetByID(ctx, trip.DriverID)
	if err != nil {
		return nil, err
	}

	passenger, err := s.passengerRepo.GetByID(ctx, trip.PassengerID)
	if err != nil {
		return nil, err
	}

	return &domain.CompletedTrip{
		Trip:               *trip,
		DriverGivenName:    driver.GivenName,
		PassengerGivenName: passenger.GivenName,
		DistanceKm:         geo.GreatCircleDistanceKm(trip.StartLocation, trip.EndLocation),
	}, nil
}

package tests

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"taxi24/internal/domain"
	"taxi24/internal/geo"
	"taxi24/internal/redis"
	"taxi24/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is an in-memory implementation of DriverRepository.
// Search replicates the relational contract: distance filter, availability
// aggregate over the trip store, distance-then-id ordering, pagination.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers map[int64]*domain.Driver
	nextID  int64
	trips   *MockTripRepository

	// Counters for verification
	CreateCallCount int32
	SearchCallCount int32

	// Error injection
	CreateError error
	SearchError error
}

// NewMockDriverRepository creates a new mock driver repository. The trip
// repository backs the availability predicate in Search.
func NewMockDriverRepository(trips *MockTripRepository) *MockDriverRepository {
	return &MockDriverRepository{
		drivers: make(map[int64]*domain.Driver),
		trips:   trips,
	}
}

// AddDriver adds a driver with a fixed ID to the mock repository.
func (m *MockDriverRepository) AddDriver(driver *domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
	if driver.ID > m.nextID {
		m.nextID = driver.ID
	}
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	driver.ID = m.nextID
	copy := *driver
	m.drivers[driver.ID] = &copy
	return nil
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id int64) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *driver
	return &copy, nil
}

func (m *MockDriverRepository) GetAll(ctx context.Context, page repository.PageRequest) ([]*domain.Driver, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.sortedDriversLocked()
	total := len(all)
	all = slicePage(all, page)

	result := make([]*domain.Driver, 0, len(all))
	for _, d := range all {
		copy := *d
		result = append(result, &copy)
	}
	return result, total, nil
}

func (m *MockDriverRepository) Search(ctx context.Context, q repository.DriverSearchQuery) ([]*domain.DriverWithDistance, int, error) {
	atomic.AddInt32(&m.SearchCallCount, 1)
	if m.SearchError != nil {
		return nil, 0, m.SearchError
	}

	m.mu.RLock()
	candidates := m.sortedDriversLocked()
	m.mu.RUnlock()

	var matched []*domain.DriverWithDistance
	for _, d := range candidates {
		if q.AvailableOnly {
			active, err := m.trips.CountActiveByDriverID(ctx, d.ID)
			if err != nil {
				return nil, 0, err
			}
			if active > 0 {
				continue
			}
		}

		distance := geo.GreatCircleDistanceKm(q.Origin, d.Location)
		if q.MaxDistanceKm > 0 && distance > q.MaxDistanceKm {
			continue
		}

		matched = append(matched, &domain.DriverWithDistance{Driver: *d, DistanceKm: distance})
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].DistanceKm != matched[j].DistanceKm {
			return matched[i].DistanceKm < matched[j].DistanceKm
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	return slicePage(matched, q.Page), total, nil
}

func (m *MockDriverRepository) FindWithinDistance(ctx context.Context, distanceKm float64, origin domain.Coordinate) ([]*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*domain.Driver
	for _, d := range m.sortedDriversLocked() {
		if geo.GreatCircleDistanceKm(origin, d.Location) <= distanceKm {
			copy := *d
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockDriverRepository) sortedDriversLocked() []*domain.Driver {
	all := make([]*domain.Driver, 0, len(m.drivers))
	for _, d := range m.drivers {
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// ──────────────────────────────────────────────
// MOCK PASSENGER REPOSITORY
// ──────────────────────────────────────────────

// MockPassengerRepository is an in-memory implementation of PassengerRepository.
type MockPassengerRepository struct {
	mu         sync.RWMutex
	passengers map[int64]*domain.Passenger
	nextID     int64
}

// NewMockPassengerRepository creates a new mock passenger repository.
func NewMockPassengerRepository() *MockPassengerRepository {
	return &MockPassengerRepository{passengers: make(map[int64]*domain.Passenger)}
}

// AddPassenger adds a passenger with a fixed ID to the mock repository.
func (m *MockPassengerRepository) AddPassenger(passenger *domain.Passenger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.passengers[passenger.ID] = passenger
	if passenger.ID > m.nextID {
		m.nextID = passenger.ID
	}
}

func (m *MockPassengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	passenger.ID = m.nextID
	copy := *passenger
	m.passengers[passenger.ID] = &copy
	return nil
}

func (m *MockPassengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	passenger, ok := m.passengers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *passenger
	return &copy, nil
}

func (m *MockPassengerRepository) GetAll(ctx context.Context, page repository.PageRequest) ([]*domain.Passenger, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*domain.Passenger, 0, len(m.passengers))
	for _, p := range m.passengers {
		copy := *p
		all = append(all, &copy)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := len(all)
	return slicePage(all, page), total, nil
}

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is an in-memory implementation of TripRepository.
// Create emulates the partial unique indexes: a second active trip for the
// same driver or passenger is rejected.
type MockTripRepository struct {
	mu     sync.RWMutex
	trips  map[int64]*domain.Trip
	nextID int64

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{trips: make(map[int64]*domain.Trip)}
}

// AddTrip adds a trip with a fixed ID to the mock repository.
func (m *MockTripRepository) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
	if trip.ID > m.nextID {
		m.nextID = trip.ID
	}
}

// GetTrip returns a trip for test assertions.
func (m *MockTripRepository) GetTrip(id int64) *domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trips[id]
}

// CountTrips returns the number of stored trips.
func (m *MockTripRepository) CountTrips() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips)
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if trip.IsActive {
		for _, t := range m.trips {
			if t.IsActive && (t.DriverID == trip.DriverID || t.PassengerID == trip.PassengerID) {
				return repository.ErrDuplicateActiveTrip
			}
		}
	}

	m.nextID++
	trip.ID = m.nextID
	copy := *trip
	m.trips[trip.ID] = &copy
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *trip
	return &copy, nil
}

func (m *MockTripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[trip.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *trip
	m.trips[trip.ID] = &copy
	return nil
}

func (m *MockTripRepository) FindActiveByParties(ctx context.Context, driverID, passengerID int64) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.trips {
		if t.IsActive && (t.DriverID == driverID || t.PassengerID == passengerID) {
			copy := *t
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockTripRepository) ListActive(ctx context.Context, page repository.PageRequest) ([]*domain.Trip, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var active []*domain.Trip
	for _, t := range m.trips {
		if t.IsActive {
			copy := *t
			active = append(active, &copy)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })

	total := len(active)
	return slicePage(active, page), total, nil
}

func (m *MockTripRepository) GetCompletedByID(ctx context.Context, id int64) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok || trip.IsActive {
		return nil, repository.ErrNotFound
	}
	copy := *trip
	return &copy, nil
}

func (m *MockTripRepository) CountActiveByDriverID(ctx context.Context, driverID int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, t := range m.trips {
		if t.IsActive && t.DriverID == driverID {
			count++
		}
	}
	return count, nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory implementation of the trip-party lock store.
type MockLockStore struct {
	mu    sync.Mutex
	held  map[int64]bool
	pheld map[int64]bool

	AcquireCallCount int32
	ReleaseCallCount int32

	// ReleaseContextErr records ctx.Err() of the last release call, so tests
	// can assert releases survive a cancelled request context.
	ReleaseContextErr error

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		held:  make(map[int64]bool),
		pheld: make(map[int64]bool),
	}
}

func (m *MockLockStore) AcquireTripPartyLocks(ctx context.Context, driverID, passengerID int64, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[driverID] || m.pheld[passengerID] {
		return false, nil
	}
	m.held[driverID] = true
	m.pheld[passengerID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseTripPartyLocks(ctx context.Context, driverID, passengerID int64) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReleaseContextErr = ctx.Err()
	delete(m.held, driverID)
	delete(m.pheld, passengerID)
	return nil
}

// Ensure mocks satisfy the interfaces they stand in for.
var (
	_ repository.DriverRepository    = (*MockDriverRepository)(nil)
	_ repository.PassengerRepository = (*MockPassengerRepository)(nil)
	_ repository.TripRepository      = (*MockTripRepository)(nil)
	_ redis.TripLockStoreInterface   = (*MockLockStore)(nil)
)

// slicePage applies the common pagination contract to a full result set.
func slicePage[T any](records []T, page repository.PageRequest) []T {
	if !page.Enabled() {
		return records
	}
	start := page.Offset()
	if start >= len(records) {
		return nil
	}
	end := start + page.PerPage
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

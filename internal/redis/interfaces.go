package redis

import (
	"context"
	"time"
)

// TripLockStoreInterface defines the interface for trip-creation locking.
type TripLockStoreInterface interface {
	AcquireTripPartyLocks(ctx context.Context, driverID, passengerID int64, ttl time.Duration) (bool, error)
	ReleaseTripPartyLocks(ctx context.Context, driverID, passengerID int64) error
}

// Ensure concrete types implement interfaces.
var _ TripLockStoreInterface = (*LockStore)(nil)

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireTripPartyLocks attempts to lock both parties of a trip creation so
// that concurrent creations for the same driver or passenger serialize before
// the conflict check runs. Returns true only if both locks were acquired; a
// partial acquisition is rolled back.
func (s *LockStore) AcquireTripPartyLocks(ctx context.Context, driverID, passengerID int64, ttl time.Duration) (bool, error) {
	driverKey := fmt.Sprintf("lock:trip:driver:%d", driverID)
	passengerKey := fmt.Sprintf("lock:trip:passenger:%d", passengerID)

	ok, err := s.client.SetNX(ctx, driverKey, "1", ttl).Result()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	ok, err = s.client.SetNX(ctx, passengerKey, "1", ttl).Result()
	if err != nil || !ok {
		_ = s.client.Del(ctx, driverKey).Err()
		return false, err
	}

	return true, nil
}

// ReleaseTripPartyLocks releases both party locks.
func (s *LockStore) ReleaseTripPartyLocks(ctx context.Context, driverID, passengerID int64) error {
	driverKey := fmt.Sprintf("lock:trip:driver:%d", driverID)
	passengerKey := fmt.Sprintf("lock:trip:passenger:%d", passengerID)

	return s.client.Del(ctx, driverKey, passengerKey).Err()
}

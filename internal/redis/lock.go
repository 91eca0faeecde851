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

// AcquireSettlementLock attempts to acquire the settlement lock for a
// transaction id, so concurrent status polls observing the same terminal
// status don't all run the settlement. Best effort only: correctness comes
// from the conditional payment insert, not from this lock.
// Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireSettlementLock(ctx context.Context, transactionID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:settlement:%s", transactionID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseSettlementLock releases the settlement lock for a transaction id.
func (s *LockStore) ReleaseSettlementLock(ctx context.Context, transactionID string) error {
	key := fmt.Sprintf("lock:settlement:%s", transactionID)

	return s.client.Del(ctx, key).Err()
}

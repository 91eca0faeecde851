package redis

import (
	"context"
	"time"
)

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireSettlementLock(ctx context.Context, transactionID string, ttl time.Duration) (bool, error)
	ReleaseSettlementLock(ctx context.Context, transactionID string) error
}

// CacheStoreInterface defines the interface for the unread-count cache.
type CacheStoreInterface interface {
	GetUnreadCount(ctx context.Context, userID string) (int, bool, error)
	SetUnreadCount(ctx context.Context, userID string, count int) error
	InvalidateUnreadCount(ctx context.Context, userID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ LockStoreInterface  = (*LockStore)(nil)
	_ CacheStoreInterface = (*CacheStore)(nil)
)

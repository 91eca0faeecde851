package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles small hot-path caches in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// UnreadCountTTL bounds staleness of the unread-notification badge.
const UnreadCountTTL = 30 * time.Second

const unreadCountPrefix = "cache:unread:"

// GetUnreadCount returns the cached unread-notification count for a user.
// The second return value reports a cache hit.
func (s *CacheStore) GetUnreadCount(ctx context.Context, userID string) (int, bool, error) {
	data, err := s.client.Get(ctx, unreadCountPrefix+userID).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, false, nil
		}
		return 0, false, err
	}

	count, err := strconv.Atoi(data)
	if err != nil {
		return 0, false, nil
	}

	return count, true, nil
}

// SetUnreadCount caches the unread-notification count for a user.
func (s *CacheStore) SetUnreadCount(ctx context.Context, userID string, count int) error {
	return s.client.Set(ctx, unreadCountPrefix+userID, strconv.Itoa(count), UnreadCountTTL).Err()
}

// InvalidateUnreadCount drops the cached count after a new notification.
func (s *CacheStore) InvalidateUnreadCount(ctx context.Context, userID string) error {
	return s.client.Del(ctx, unreadCountPrefix+userID).Err()
}

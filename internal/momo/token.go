package momo

import (
	"context"
	"sync"
)

// TokenCache holds at most one live access token. The gateway never reports
// token TTLs, so a cached token is treated as good until a call using it
// fails with an auth error, at which point the caller invalidates and the
// next Get re-authenticates. Concurrent callers may race to refresh; the
// worst case is one extra authenticate call.
type TokenCache struct {
	mu           sync.Mutex
	token        string
	authenticate func(ctx context.Context) (string, error)
}

// NewTokenCache creates a TokenCache backed by the given authenticate func.
func NewTokenCache(authenticate func(ctx context.Context) (string, error)) *TokenCache {
	return &TokenCache{authenticate: authenticate}
}

// Get returns the cached token, authenticating first if none is cached.
func (c *TokenCache) Get(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" {
		return c.token, nil
	}

	token, err := c.authenticate(ctx)
	if err != nil {
		return "", err
	}

	c.token = token
	return token, nil
}

// Invalidate clears the cached token.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

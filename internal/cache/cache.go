package cache

import (
	"context"
	"errors"
	"time"
)

// Cache errors
var (
	ErrKeyNotFound      = errors.New("cache key not found")
	ErrCacheUnavailable = errors.New("cache backend unavailable")
)

// Cache defines the generic cache interface for all cache implementations
type Cache interface {
	// Get retrieves a value from cache by key
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from cache by key
	Delete(ctx context.Context, key string) error

	// DeletePattern removes all keys matching the given glob pattern
	DeletePattern(ctx context.Context, pattern string) error

	// Close closes the cache connection
	Close() error
}

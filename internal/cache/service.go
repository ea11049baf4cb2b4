package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"blogapi/internal/pkg/log"
	platformconfig "blogapi/internal/platform/config"
)

// Service provides JSON-value caching on top of a Cache backend. A nil
// *Service is valid and disables caching, so read paths can call it
// unconditionally.
type Service struct {
	cache      Cache
	prefix     string
	defaultTTL time.Duration
}

// NewService creates a cache service for the configured backend. When caching
// is disabled (or the redis backend is unreachable) it returns nil and the
// callers fall through to the store.
func NewService(cfg platformconfig.CacheConfig) *Service {
	if !cfg.Enabled {
		return nil
	}

	var backend Cache
	switch cfg.Backend {
	case "redis":
		redisCache, err := NewRedisCache(cfg.Redis)
		if err != nil {
			log.Warn("cache disabled, redis backend unavailable: %v", err)
			return nil
		}
		backend = redisCache
	default:
		backend = NewMemoryCache()
	}

	return &Service{
		cache:      backend,
		prefix:     cfg.Prefix,
		defaultTTL: cfg.TTL,
	}
}

// IsEnabled reports whether the service has a live backend
func (s *Service) IsEnabled() bool {
	return s != nil && s.cache != nil
}

// GetCached unmarshals the cached value under key into out. Returns
// ErrKeyNotFound on a miss.
func (s *Service) GetCached(ctx context.Context, key string, out interface{}) error {
	if !s.IsEnabled() {
		return ErrKeyNotFound
	}

	data, err := s.cache.Get(ctx, s.prefix+key)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode cached value: %w", err)
	}
	return nil
}

// CacheData marshals value and stores it under key with the given TTL
// (defaultTTL when ttl is zero).
func (s *Service) CacheData(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.IsEnabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for cache: %w", err)
	}

	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	return s.cache.Set(ctx, s.prefix+key, data, ttl)
}

// Invalidate removes one key
func (s *Service) Invalidate(ctx context.Context, key string) error {
	if !s.IsEnabled() {
		return nil
	}
	return s.cache.Delete(ctx, s.prefix+key)
}

// InvalidatePattern removes all keys matching the glob pattern
func (s *Service) InvalidatePattern(ctx context.Context, pattern string) error {
	if !s.IsEnabled() {
		return nil
	}
	return s.cache.DeletePattern(ctx, s.prefix+pattern)
}

// IsMiss reports whether err is a cache miss rather than a backend failure
func IsMiss(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

// Close shuts the backend down
func (s *Service) Close() error {
	if !s.IsEnabled() {
		return nil
	}
	return s.cache.Close()
}

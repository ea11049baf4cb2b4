package cache

import (
	"context"
	"path"
	"sync"
	"time"
)

// memoryItem is a value plus its expiry deadline
type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache implements Cache with an in-process map. Suitable for a single
// server instance or for tests; multi-instance deployments should use the
// redis backend so invalidation reaches every process.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryItem
}

// NewMemoryCache creates a new in-memory cache instance
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items: make(map[string]memoryItem),
	}
}

// Get retrieves a value from the memory cache
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrKeyNotFound
	}
	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return nil, ErrKeyNotFound
	}

	return item.value, nil
}

// Set stores a value in the memory cache with TTL
func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	m.items[key] = memoryItem{value: value, expiresAt: expiresAt}
	m.mu.Unlock()
	return nil
}

// Delete removes a value from the memory cache
func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

// DeletePattern removes all keys matching the given glob pattern
func (m *MemoryCache) DeletePattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.items {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.items, key)
		}
	}
	return nil
}

// Close releases the cache contents
func (m *MemoryCache) Close() error {
	m.mu.Lock()
	m.items = make(map[string]memoryItem)
	m.mu.Unlock()
	return nil
}

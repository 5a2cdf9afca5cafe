package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryProvider is an in-process Provider with per-entry TTL. Expired
// entries are dropped lazily on read.
type MemoryProvider struct {
	mu   sync.RWMutex
	data map[string]entry
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryProvider creates an empty in-memory cache.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{data: make(map[string]entry)}
}

// Get retrieves a cached value if present and not expired.
func (p *MemoryProvider) Get(_ context.Context, key string) ([]byte, error) {
	p.mu.RLock()
	it, ok := p.data[key]
	p.mu.RUnlock()

	if !ok {
		return nil, ErrCacheMiss
	}
	if !it.expiresAt.IsZero() && time.Now().After(it.expiresAt) {
		p.mu.Lock()
		delete(p.data, key)
		p.mu.Unlock()
		return nil, ErrCacheMiss
	}
	return it.value, nil
}

// Set stores a copy of the value with an optional TTL; ttl <= 0 means the
// entry never expires.
func (p *MemoryProvider) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	var expires time.Time
	if ttl > 0 {
		expires = time.Now().Add(ttl)
	}

	stored := append([]byte(nil), value...)

	p.mu.Lock()
	p.data[key] = entry{value: stored, expiresAt: expires}
	p.mu.Unlock()
	return nil
}

// Del removes an entry.
func (p *MemoryProvider) Del(_ context.Context, key string) error {
	p.mu.Lock()
	delete(p.data, key)
	p.mu.Unlock()
	return nil
}

// Close releases the map.
func (p *MemoryProvider) Close() error {
	p.mu.Lock()
	p.data = make(map[string]entry)
	p.mu.Unlock()
	return nil
}

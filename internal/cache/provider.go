// Package cache holds the optional explanation cache. Explanations are a
// deterministic function of the raw line, so serving a stored result for an
// identical line is always correct.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Provider is the storage contract the analyzer depends on. A ttl of zero
// means the entry does not expire.
type Provider interface {
	// Get returns the stored bytes for key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key for the given ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Del removes key. Deleting an absent key is not an error.
	Del(ctx context.Context, key string) error
	// Close releases any backend resources.
	Close() error
}

// NoopProvider satisfies Provider without storing anything. It is the
// default backend when caching is disabled.
type NoopProvider struct{}

func (NoopProvider) Get(context.Context, string) ([]byte, error) {
	return nil, ErrCacheMiss
}

func (NoopProvider) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (NoopProvider) Del(context.Context, string) error { return nil }

func (NoopProvider) Close() error { return nil }

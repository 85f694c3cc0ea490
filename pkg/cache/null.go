package cache

import (
	"context"
	"time"
)

// NullCache backs --no-cache and the "none" backend. Every lookup misses,
// so each conversion parses and encodes its input again.
type NullCache struct{}

// NewNullCache returns the cache used when encoded outputs must not be kept.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get reports a miss for every key.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards data.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}

// Clear reports that no entries were removed.
func (c *NullCache) Clear(ctx context.Context) (int, error) {
	return 0, nil
}

var (
	_ Cache   = (*NullCache)(nil)
	_ Clearer = (*NullCache)(nil)
)

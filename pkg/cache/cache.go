// Package cache stores encoded conversion outputs so repeated conversions of
// the same input can skip parsing and encoding.
//
// Three backends implement [Cache]:
//   - [FileCache]: JSON entries under a local directory, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by `graphbin serve` and
//     teams sharing one cache
//   - [NullCache]: never stores anything (--no-cache)
//
// Keys are produced by a [Keyer] from the SHA-256 of the input bytes and every
// option that changes the output, including [CodecVersion]. A key therefore
// never needs explicit invalidation: changing the input or the encoder yields
// a new key, and TTLs reclaim stale entries.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss as (nil, false, nil); an error means the backend itself
// failed. Implementations are safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

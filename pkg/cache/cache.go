// Package cache stores rendered artifacts keyed by composition content.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// for a shared server deployment, [SQLiteCache] for a single-file store,
// and [NullCache] when caching is disabled. Keys come from a [Keyer] so the
// key scheme stays in one place.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
// Implementations are safe for concurrent use.
type Cache interface {
	// Get returns the stored value. A missing or expired key is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// TTLArtifact is how long rendered artifacts stay cached. Artifacts are
// pure functions of their key, so this only bounds disk usage.
const TTLArtifact = 7 * 24 * time.Hour

package cache

import (
	"context"
	"time"
)

// Cache is the caching port. Implementations may be backed by Redis,
// Memcached or an in-memory map; callers only see this interface.
type Cache interface {
	// Get retrieves a value by key. A missing key is not an error: it
	// returns found == false with a nil error. The error is reserved
	// for backend failures.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores a value under key with the given TTL.
	// A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks if the cache backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend connection.
	Close() error
}

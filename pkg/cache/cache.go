// Package cache provides pluggable storage for solve results, so repeated
// runs of the same scenario skip the search entirely. Backends cover local
// CLI usage (file), shared deployments (redis) and disabled caching (null).
package cache

import (
	"context"
	"time"
)

// Cache is the backend interface. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl keeps the entry until it is deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

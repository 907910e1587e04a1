// Package cache provides content-addressed caching for rendered
// artifacts. Backends share a single interface so the pipeline can run
// against a local file store, a Redis instance, or nothing at all.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long cached artifacts stay valid unless a backend
// is configured otherwise.
const DefaultTTL = 7 * 24 * time.Hour

// Cache stores rendered artifacts keyed by content hash.
type Cache interface {
	// Get returns the cached data for key. The second return value
	// reports whether the key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means DefaultTTL.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys for pipeline artifacts.
type Keyer interface {
	// ArtifactKey returns the key for a rendered artifact, given the
	// hash of the resolved encode request and the output format.
	ArtifactKey(requestHash, format string) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a Keyer without a scope prefix.
func NewDefaultKeyer() *DefaultKeyer { return &DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (k *DefaultKeyer) ArtifactKey(requestHash, format string) string {
	return hashKey("artifact", requestHash, format)
}

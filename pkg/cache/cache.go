// Package cache stores rendered diagram artifacts.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for multi-instance servers
//   - [NullCache]: never stores anything, used when caching is disabled
//
// Keys are produced by a [Keyer]. The default keyer hashes the canonical
// diagram document together with every option that changes the output, so
// two renders share an entry only when their bytes would be identical.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiration.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// DocumentKey identifies a diagram document independent of output options.
	DocumentKey(level string, document []byte) string

	// ArtifactKey identifies a rendered artifact of a document.
	ArtifactKey(documentHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds every render option that affects artifact bytes.
type ArtifactKeyOpts struct {
	Level  string  `json:"level"`
	Format string  `json:"format"`
	DPI    int     `json:"dpi"`
	Scale  float64 `json:"scale"`
	Font   string  `json:"font"`
}

// DefaultKeyer produces keys of the form "<kind>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DocumentKey hashes the level and canonical document bytes.
func (DefaultKeyer) DocumentKey(level string, document []byte) string {
	return hashKey("doc", level, Hash(document))
}

// ArtifactKey hashes the document hash and the render options.
func (DefaultKeyer) ArtifactKey(documentHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", documentHash, opts)
}

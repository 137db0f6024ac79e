// Package cache provides the caching layer for synthesized networks and
// rendered artifacts.
//
// Two kinds of entries are cached:
//   - Networks, keyed by the hash of the permutation they realize
//   - Artifacts (JSON, text, DOT, SVG, PNG), keyed by network hash and format
//
// Backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for the
// HTTP service, and [NullCache] when caching is disabled. Key construction is
// separated into [Keyer] so deployments can namespace keys with [ScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry kind. Networks are a pure function of
// their permutation and never go stale; the TTL only bounds disk usage.
const (
	TTLNetwork  = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get returns (nil, false, nil) on a miss. A ttl of zero or less stores the
// entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// NetworkKey returns the key of the network realizing the permutation
	// with the given hash.
	NetworkKey(permHash string) string

	// ArtifactKey returns the key of a rendered artifact.
	ArtifactKey(networkHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds the render options that affect artifact output.
type ArtifactKeyOpts struct {
	Format    string   `json:"format"`
	Labels    []string `json:"labels,omitempty"`
	Sentinels bool     `json:"sentinels,omitempty"`
}

// DefaultKeyer generates unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key builder.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// NetworkKey implements Keyer.
func (DefaultKeyer) NetworkKey(permHash string) string {
	return "network:" + permHash
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(networkHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", networkHash, opts)
}

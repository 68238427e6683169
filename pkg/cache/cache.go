// Package cache provides pluggable caching for rendered chart artifacts
// and fetched HTTP responses.
//
// Four implementations cover the deployment spectrum: [MemoryCache] for
// tests and short-lived processes, [FileCache] for the CLI, [RedisCache]
// for the API server, and [NullCache] to disable caching entirely.
//
// A [Keyer] turns chart content and render options into stable cache keys,
// and [ScopedKeyer] prefixes keys for multi-tenant isolation.
package cache

import (
	"context"
	"time"
)

// Default TTLs for the cached data classes.
const (
	// DefaultArtifactTTL applies to rendered chart artifacts. Artifacts
	// are keyed on content and options, so they only go stale when the
	// backend's output format changes.
	DefaultArtifactTTL = 24 * time.Hour

	// DefaultHTTPTTL applies to fetched chart images.
	DefaultHTTPTTL = time.Hour
)

// Cache is the storage interface shared by all cache backends.
//
// Get reports (nil, false, nil) on a miss; errors are reserved for real
// storage failures. A ttl of 0 stores the entry without expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ArtifactKeyOpts carries the render parameters that affect artifact
// identity. Two renders with equal chart hashes and equal opts produce the
// same bytes, so they may share a cache entry.
type ArtifactKeyOpts struct {
	Backend  string `json:"backend"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Encoding string `json:"encoding,omitempty"`
	Output   string `json:"output,omitempty"`
}

// Keyer generates cache keys for the different data classes.
type Keyer interface {
	// HTTPKey generates a key for a cached HTTP response.
	HTTPKey(namespace, key string) string

	// ChartKey generates a key for a stored chart definition, from the
	// hash of its canonical encoding.
	ChartKey(definitionHash string) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(chartHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard Keyer implementation. Keys embed a SHA-256
// hash of their inputs, so arbitrary chart names and option values cannot
// produce unsafe or colliding keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// ChartKey generates a key for chart definition caching.
func (k *DefaultKeyer) ChartKey(definitionHash string) string {
	return hashKey("chart", definitionHash)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(chartHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", chartHash, opts)
}

// Package cache stores analysis results between requests.
//
// Three implementations share the [Cache] interface:
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per key under a directory (CLI, single host)
//   - [RedisCache]: shared cache for server deployments
//
// Keys are built by a [Keyer] so that callers never format them by hand.
// A [ScopedKeyer] prefixes every key, which lets several deployments share
// one Redis database.
package cache

import (
	"context"
	"strings"
	"time"
)

// TTLAnalysis is how long an article's keywords stay cached. News pages
// change during the day, so this is deliberately short.
const TTLAnalysis = 6 * time.Hour

// Cache is a byte-oriented key-value store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); an error means the backend failed,
// not that the key is absent.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// AnalysisKey identifies the keywords of one article URL.
	AnalysisKey(url string) string
}

// DefaultKeyer hashes normalized URLs into "analysis:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// AnalysisKey ignores surrounding whitespace and a trailing slash so that
// "https://bbc.com/" and "https://bbc.com" share an entry.
func (DefaultKeyer) AnalysisKey(url string) string {
	u := strings.TrimSuffix(strings.TrimSpace(url), "/")
	return hashKey("analysis", u)
}

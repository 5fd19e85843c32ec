// Package cache stores rendered artifacts between runs.
//
// Rendering through Graphviz dominates the cost of a run, so the pipeline
// keys every artifact by a hash of its DOT text and render options and looks
// it up before invoking the layout engine. Three backends exist:
//   - [FileCache]: one JSON file per entry under the user cache directory
//   - [RedisCache]: a shared Redis instance, for teams rendering the same dumps
//   - [NullCache]: never stores anything (--no-cache)
//
// Keys are produced by a [Keyer]; [NewScopedKeyer] prefixes them so several
// projects can share one Redis database.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long rendered artifacts are kept.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiration.
//
// Get reports a miss with ok == false and a nil error. Errors are reserved
// for backend failures; callers treat them as misses.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

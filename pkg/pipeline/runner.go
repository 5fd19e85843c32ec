package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/parallelstacks/pkg/cache"
	"github.com/matzehuels/parallelstacks/pkg/observability"
)

// Runner executes the pipeline with caching.
//
// The Runner holds no per-run state; multiple goroutines can use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.DefaultTTL,
	}
}

// Execute runs the complete pipeline.
//
// Input errors are returned with a nil Result. If rendering fails, the
// Result is returned together with the error, with DOT and Layout set and
// Artifacts holding every format rendered before the failure.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := r.Logger.With("run", result.RunID[:8])

	layoutStart := time.Now()
	entry, hit, err := r.layoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.DOT = entry.DOT
	result.Layout = entry.Layout
	result.Stats = entry.Stats
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = hit

	logger.Info("merged stacks",
		"stacks", result.Stats.Stacks,
		"nodes", result.Stats.Nodes,
		"blocks", result.Stats.Blocks,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	renderHit := true
	for _, format := range opts.Formats {
		switch format {
		case FormatDOT:
			result.Artifacts[format] = []byte(result.DOT)
			continue
		case FormatJSON:
			result.Artifacts[format] = result.Layout
			continue
		}

		data, hit, err := r.renderWithCacheInfo(ctx, result.DOT, format, opts)
		if err != nil {
			result.Stats.RenderTime = time.Since(renderStart)
			return result, fmt.Errorf("render %s: %w", format, err)
		}
		renderHit = renderHit && hit
		result.Artifacts[format] = data
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// layoutWithCacheInfo parses, merges and linearizes opts.Input, or loads the
// result of an earlier run with the same input and options.
func (r *Runner) layoutWithCacheInfo(ctx context.Context, opts Options) (layoutEntry, bool, error) {
	key := r.Keyer.LayoutKey(cache.HashString(opts.Input), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, ok := r.lookup(ctx, "layout", key); ok {
			var entry layoutEntry
			if err := json.Unmarshal(data, &entry); err == nil {
				return entry, true, nil
			}
		}
	}

	b, err := Parse(ctx, opts)
	if err != nil {
		return layoutEntry{}, false, err
	}
	entry, err := Merge(ctx, b, opts.DepthLimit).layout(ctx, opts)
	if err != nil {
		return layoutEntry{}, false, err
	}

	if data, err := json.Marshal(entry); err == nil {
		r.store(ctx, "layout", key, data)
	}
	return entry, false, nil
}

// renderWithCacheInfo renders one image format, or loads it from cache.
func (r *Runner) renderWithCacheInfo(ctx context.Context, dot, format string, opts Options) ([]byte, bool, error) {
	key := r.Keyer.ArtifactKey(cache.HashString(dot), opts.ArtifactKeyOpts(format))

	if !opts.Refresh {
		if data, ok := r.lookup(ctx, "artifact", key); ok {
			return data, true, nil
		}
	}

	data, err := Render(ctx, dot, format, opts.Scale)
	if err != nil {
		return nil, false, err
	}
	r.store(ctx, "artifact", key, data)
	return data, false, nil
}

// lookup reads from the cache. Backend failures count as misses.
func (r *Runner) lookup(ctx context.Context, keyType, key string) ([]byte, bool) {
	hooks := observability.Cache()
	data, hit, err := r.Cache.Get(ctx, key)
	switch {
	case err != nil:
		hooks.OnCacheError(ctx, keyType, err)
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
		return nil, false
	case !hit:
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	hooks.OnCacheHit(ctx, keyType)
	return data, true
}

// store writes to the cache. Backend failures are logged and ignored.
func (r *Runner) store(ctx context.Context, keyType, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		observability.Cache().OnCacheError(ctx, keyType, err)
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

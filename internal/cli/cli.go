// Package cli implements the parallelstacks command-line interface.
//
// # Commands
//
//   - render: merge stacks and write DOT, SVG, PNG, PDF or layout JSON
//   - tree: print the merged tree, or its blocks as tables
//   - browse: explore the merged tree interactively
//   - cache: inspect and clear the render cache
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands log to stderr through charmbracelet/log. --verbose (-v)
// switches to debug level, which also logs pipeline stage timings.
package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/parallelstacks/internal/config"
	"github.com/matzehuels/parallelstacks/pkg/cache"
	"github.com/matzehuels/parallelstacks/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "parallelstacks"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	// configPath overrides the global config file (--config).
	configPath string

	// stdin is read when the input is "-"; tests replace it.
	stdin io.Reader
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		stdin:  os.Stdin,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the global and project configuration files.
func (c *CLI) loadConfig() error {
	global := c.configPath
	if global == "" {
		global = config.DefaultGlobalPath()
	}
	wd, _ := os.Getwd()
	cfg, err := config.Load(global, config.DefaultProjectPath(config.FindProjectRoot(wd)))
	if err != nil {
		return err
	}
	c.Config = cfg
	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil && cfg.Log.Level != "" {
		c.SetLogLevel(lvl)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.openCache(ctx, noCache || c.Config.CacheDisabled())
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.Config.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, c.Config.Cache.Prefix)
	}
	r := pipeline.NewRunner(ch, keyer, c.Logger)
	if ttl, _ := c.Config.Cache.TTLDuration(); ttl > 0 {
		r.TTL = ttl
	}
	return r, nil
}

// openCache returns the Redis cache when configured, else the file cache.
// An unreachable Redis server falls back to the file cache with a warning.
func (c *CLI) openCache(ctx context.Context, disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	if url := c.Config.Cache.RedisURL; url != "" {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		rc, err := cache.NewRedisCache(pingCtx, cache.RedisConfig{URL: url})
		if err == nil {
			c.Logger.Debug("using redis cache", "url", url)
			return rc, nil
		}
		c.Logger.Warn("redis cache unavailable, using file cache", "err", err)
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the configured cache directory or the per-user default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

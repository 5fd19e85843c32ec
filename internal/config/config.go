// Package config loads parallelstacks settings from TOML files.
//
// Two files are read and merged, later values winning:
//
//  1. the global file, $XDG_CONFIG_HOME/parallelstacks/config.toml
//  2. the project file, .parallelstacks.toml in the project root
//
// Command-line flags override both. Missing files are not an error.
//
//	[render]
//	from = "goroutine"
//	noun = "Goroutine"
//	font_size = 24
//
//	[cache]
//	redis_url = "redis://cache.internal:6379/2"
//	prefix = "team-a:"
//	ttl = "72h"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/parallelstacks/pkg/errors"
	pkgio "github.com/matzehuels/parallelstacks/pkg/io"
)

// ProjectFile is the name of the per-project configuration file.
const ProjectFile = ".parallelstacks.toml"

// RenderConfig holds the defaults of the render, tree and browse commands.
type RenderConfig struct {
	From     string  `toml:"from,omitempty"`
	Format   string  `toml:"format,omitempty"`
	Noun     string  `toml:"noun,omitempty"`
	FontSize int     `toml:"font_size,omitempty"`
	Depth    int     `toml:"depth,omitempty"`
	Scale    float64 `toml:"scale,omitempty"`
}

// CacheConfig selects and tunes the layout and artifact cache.
type CacheConfig struct {
	Disabled *bool  `toml:"disabled,omitempty"`
	Dir      string `toml:"dir,omitempty"`
	RedisURL string `toml:"redis_url,omitempty"`
	Prefix   string `toml:"prefix,omitempty"`
	TTL      string `toml:"ttl,omitempty"`
}

// LogConfig sets the default log level.
type LogConfig struct {
	Level string `toml:"level,omitempty"`
}

// Config is the merged global and project configuration.
type Config struct {
	Render RenderConfig `toml:"render,omitempty"`
	Cache  CacheConfig  `toml:"cache,omitempty"`
	Log    LogConfig    `toml:"log,omitempty"`
}

// DefaultGlobalPath returns the global config file path, or "" when no
// config directory can be determined.
func DefaultGlobalPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(dir) == "" {
		return ""
	}
	return filepath.Join(dir, "parallelstacks", "config.toml")
}

// DefaultProjectPath returns the project file path under root.
func DefaultProjectPath(root string) string {
	root = strings.TrimSpace(root)
	if root == "" {
		return ""
	}
	return filepath.Join(root, ProjectFile)
}

// Load reads and merges the global and project files. Empty paths are skipped.
func Load(globalPath, projectPath string) (Config, error) {
	cfg := Config{}
	if strings.TrimSpace(globalPath) != "" {
		c, err := loadOne(globalPath)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load global config %s", globalPath)
		}
		cfg = merge(cfg, c)
	}
	if strings.TrimSpace(projectPath) != "" {
		c, err := loadOne(projectPath)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load project config %s", projectPath)
		}
		cfg = merge(cfg, c)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadOne(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return Config{}, nil
	}
	var cfg Config
	md, err := toml.Decode(string(raw), &cfg)
	if err != nil {
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return cfg, nil
}

func merge(a, b Config) Config {
	return Config{
		Render: mergeRender(a.Render, b.Render),
		Cache:  mergeCache(a.Cache, b.Cache),
		Log:    mergeLog(a.Log, b.Log),
	}
}

func mergeRender(a, b RenderConfig) RenderConfig {
	out := a
	if b.From != "" {
		out.From = b.From
	}
	if b.Format != "" {
		out.Format = b.Format
	}
	if b.Noun != "" {
		out.Noun = b.Noun
	}
	if b.FontSize != 0 {
		out.FontSize = b.FontSize
	}
	if b.Depth != 0 {
		out.Depth = b.Depth
	}
	if b.Scale != 0 {
		out.Scale = b.Scale
	}
	return out
}

func mergeCache(a, b CacheConfig) CacheConfig {
	out := a
	if b.Disabled != nil {
		out.Disabled = b.Disabled
	}
	if b.Dir != "" {
		out.Dir = b.Dir
	}
	if b.RedisURL != "" {
		out.RedisURL = b.RedisURL
	}
	if b.Prefix != "" {
		out.Prefix = b.Prefix
	}
	if b.TTL != "" {
		out.TTL = b.TTL
	}
	return out
}

func mergeLog(a, b LogConfig) LogConfig {
	out := a
	if b.Level != "" {
		out.Level = b.Level
	}
	return out
}

// Validate checks values that flags would otherwise reject later.
func (c Config) Validate() error {
	if c.Render.From != "" {
		if _, err := pkgio.ParseFormat(c.Render.From); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.from")
		}
	}
	if c.Render.FontSize != 0 {
		if err := errors.ValidateFontSize(c.Render.FontSize); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.font_size")
		}
	}
	if err := errors.ValidateDepthLimit(c.Render.Depth); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.depth")
	}
	if c.Render.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.scale cannot be negative")
	}
	if c.Cache.RedisURL != "" {
		if err := errors.ValidateRedisURL(c.Cache.RedisURL); err != nil {
			return err
		}
	}
	if _, err := c.Cache.TTLDuration(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}

// CacheDisabled reports whether the config turns the cache off.
func (c Config) CacheDisabled() bool {
	return c.Cache.Disabled != nil && *c.Cache.Disabled
}

// TTLDuration parses TTL. An empty TTL returns zero, meaning the default.
func (c CacheConfig) TTLDuration() (time.Duration, error) {
	if c.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "cache.ttl: invalid duration %q", c.TTL)
	}
	return d, nil
}

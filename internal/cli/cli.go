// Package cli implements the graphbin command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphbin/pkg/cache"
	"github.com/matzehuels/graphbin/pkg/config"
	"github.com/matzehuels/graphbin/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "graphbin"

	// redisKeyPrefix namespaces graphbin's entries in a shared Redis database.
	redisKeyPrefix = appName + ":"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any command runs; until then it holds the
	// built-in defaults.
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the file named by --config, or the default location.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	store, keyer := c.newCache(ctx, noCache)
	return pipeline.NewRunner(store, keyer, c.Logger)
}

// newCache opens the configured cache backend. A backend that cannot be
// opened degrades to no caching with a warning; conversions never fail
// because of the cache.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, c.redisConfig())
		if err != nil {
			c.Logger.Warn("Redis cache unavailable, continuing without cache", "addr", c.Config.Cache.RedisAddr, "err", err)
			return cache.NewNullCache(), nil
		}
		return rc, cache.NewScopedKeyer(nil, redisKeyPrefix)
	case config.BackendNone:
		return cache.NewNullCache(), nil
	}

	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("File cache unavailable, continuing without cache", "dir", dir, "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

func (c *CLI) redisConfig() cache.RedisConfig {
	return cache.RedisConfig{
		Addr:   c.Config.Cache.RedisAddr,
		DB:     c.Config.Cache.RedisDB,
		Prefix: redisKeyPrefix,
	}
}

// outputFlags are the flags shared by commands that write graph files.
type outputFlags struct {
	outputDir string
	emit      []string
	verify    bool
	refresh   bool
	noCache   bool
}

// outputOptions layers flags over the loaded configuration.
func (c *CLI) outputOptions(f outputFlags, outs []pipeline.Output) pipeline.OutputOptions {
	dir := f.outputDir
	if dir == "" {
		dir = c.Config.OutputDir
	}
	return pipeline.OutputOptions{
		OutputDir:     dir,
		Outputs:       outs,
		Verify:        f.verify,
		Refresh:       f.refresh,
		CacheTTL:      c.Config.Cache.TTL,
		MaxCacheEntry: c.Config.Cache.MaxEntryBytes,
		Logger:        c.Logger,
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/graphbin/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Package config loads graphbin's TOML configuration file.
//
// The file is optional. Values are layered: built-in defaults, then the file,
// then environment variables, then command-line flags (applied by the CLI).
//
//	output_dir = "data"
//
//	[cache]
//	backend = "file"          # file, redis or none
//	ttl = "168h"
//	max_entry_bytes = 67108864
//	redis_addr = "localhost:6379"
//	redis_db = 0
//
//	[generate]
//	nodes = 10000
//	attach = 10
//	seed = 42
//
//	[serve]
//	addr = ":8080"
//	max_body_bytes = 67108864
//	max_generate_nodes = 1000000
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	pkgerrors "github.com/matzehuels/graphbin/pkg/errors"
)

const appName = "graphbin"

// Environment variables that override file values.
const (
	EnvOutputDir = "GRAPHBIN_OUTPUT_DIR"
	EnvRedisAddr = "GRAPHBIN_REDIS_ADDR"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full graphbin configuration.
type Config struct {
	OutputDir string   `toml:"output_dir"`
	Cache     Cache    `toml:"cache"`
	Generate  Generate `toml:"generate"`
	Serve     Serve    `toml:"serve"`
}

// Cache configures the conversion cache.
type Cache struct {
	Backend       string        `toml:"backend"`
	TTL           time.Duration `toml:"ttl"`
	MaxEntryBytes int           `toml:"max_entry_bytes"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisDB       int           `toml:"redis_db"`
}

// Generate holds generator defaults.
type Generate struct {
	Nodes  int    `toml:"nodes"`
	Attach int    `toml:"attach"`
	Seed   uint64 `toml:"seed"`
}

// Serve configures the HTTP service.
type Serve struct {
	Addr             string `toml:"addr"`
	MaxBodyBytes     int64  `toml:"max_body_bytes"`
	MaxGenerateNodes int    `toml:"max_generate_nodes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OutputDir: "data",
		Cache: Cache{
			Backend:       BackendFile,
			TTL:           7 * 24 * time.Hour,
			MaxEntryBytes: 64 << 20,
			RedisAddr:     "localhost:6379",
		},
		Generate: Generate{
			Nodes:  10000,
			Attach: 10,
			Seed:   42,
		},
		Serve: Serve{
			Addr:             ":8080",
			MaxBodyBytes:     64 << 20,
			MaxGenerateNodes: 1_000_000,
		},
	}
}

// Path returns the default configuration file location:
// $XDG_CONFIG_HOME/graphbin/config.toml, falling back to ~/.config.
func Path() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the configuration at path on top of [Default] and applies
// environment overrides. An empty path means [Path]; a missing file at the
// default location is not an error, a missing explicit path is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, pkgerrors.Wrap(pkgerrors.ErrCodeInternal, err, "locate config file")
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := Parse(data, &cfg); err != nil {
			return cfg, pkgerrors.Wrap(pkgerrors.GetCode(err), err, "load %s", path)
		}
	case os.IsNotExist(err) && !explicit:
	case os.IsNotExist(err):
		return cfg, pkgerrors.Wrap(pkgerrors.ErrCodeFileNotFound, err, "config file %s", path)
	default:
		return cfg, pkgerrors.Wrap(pkgerrors.ErrCodeIO, err, "read %s", path)
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// Parse decodes TOML data into cfg, keeping values the data does not set.
// Unknown keys are rejected so typos do not go unnoticed.
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Cache.RedisAddr = v
	}
}

// Validate rejects values no command could use.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return pkgerrors.New(pkgerrors.ErrCodeInvalidInput,
			"cache.backend must be %q, %q or %q, got %q", BackendFile, BackendRedis, BackendNone, c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	if c.Cache.MaxEntryBytes < 0 {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "cache.max_entry_bytes must not be negative")
	}
	if c.Generate.Nodes < 0 || c.Generate.Attach < 0 {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "generate.nodes and generate.attach must not be negative")
	}
	if c.Serve.MaxBodyBytes <= 0 || c.Serve.MaxGenerateNodes <= 0 {
		return pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "serve limits must be positive")
	}
	return nil
}

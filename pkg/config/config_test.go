package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	pkgerrors "github.com/matzehuels/graphbin/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
	if cfg.OutputDir != "data" || cfg.Cache.Backend != BackendFile {
		t.Errorf("Default() = %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvOutputDir, "")
	t.Setenv(EnvRedisAddr, "")
	path := writeConfig(t, `
output_dir = "out"

[cache]
backend = "redis"
ttl = "2h"

[generate]
seed = 7
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("OutputDir = %q, want out", cfg.OutputDir)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.TTL != 2*time.Hour {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Generate.Seed != 7 {
		t.Errorf("Generate.Seed = %d, want 7", cfg.Generate.Seed)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Generate.Nodes != 10000 || cfg.Serve.Addr != ":8080" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "output_dir = \"from-file\"\n")
	t.Setenv(EnvOutputDir, "from-env")
	t.Setenv(EnvRedisAddr, "redis:6380")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputDir != "from-env" || cfg.Cache.RedisAddr != "redis:6380" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvOutputDir, "")
	if _, err := Load(""); err != nil {
		t.Errorf("Load(\"\") with no file: %v", err)
	}
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !pkgerrors.Is(err, pkgerrors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "output_dir = \n"},
		{"unknown key", "outptu_dir = \"x\"\n"},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n"},
		{"bad ttl", "[cache]\nttl = \"soon\"\n"},
		{"negative ttl", "[cache]\nttl = \"-1h\"\n"},
		{"zero body limit", "[serve]\nmax_body_bytes = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !pkgerrors.Is(err, pkgerrors.ErrCodeInvalidInput) {
				t.Errorf("Load() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	got, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", appName, "config.toml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

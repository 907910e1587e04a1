package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Ecc != "medium" {
		t.Errorf("Ecc = %q, want medium", cfg.Ecc)
	}
	if cfg.Mode != "auto" {
		t.Errorf("Mode = %q, want auto", cfg.Mode)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("Cache.Backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	oldXdg := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", t.TempDir())
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CONFIG_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_CONFIG_HOME")
		}
	}()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Ecc != "medium" || cfg.Cache.Backend != BackendFile {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("explicit missing path should fail")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
ecc = "high"
formats = ["svg", "png"]
output_dir = "/tmp/codes"

[server]
addr = ":9090"

[cache]
backend = "redis"
redis_addr = "localhost:6379"
scope = "prod"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Ecc != "high" {
		t.Errorf("Ecc = %q, want high", cfg.Ecc)
	}
	// Unset keys keep their defaults.
	if cfg.Mode != "auto" {
		t.Errorf("Mode = %q, want auto", cfg.Mode)
	}
	if len(cfg.Formats) != 2 || cfg.Formats[1] != "png" {
		t.Errorf("Formats = %v, want [svg png]", cfg.Formats)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("Cache = %+v, want redis backend", cfg.Cache)
	}
	if cfg.Cache.Scope != "prod" {
		t.Errorf("Cache.Scope = %q, want prod", cfg.Cache.Scope)
	}
}

func TestLoadRejectsBadBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"memcached\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("unknown backend should fail")
	}
}

func TestLoadRedisRequiresAddr(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"redis\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("redis backend without address should fail")
	}
}

func TestDefaultPathXDG(t *testing.T) {
	oldXdg := os.Getenv("XDG_CONFIG_HOME")
	os.Setenv("XDG_CONFIG_HOME", "/custom/config")
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CONFIG_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_CONFIG_HOME")
		}
	}()

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error = %v", err)
	}
	want := filepath.Join("/custom/config", "qrsmith", "config.toml")
	if path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}

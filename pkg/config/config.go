// Package config loads qrsmith settings from an optional TOML file.
// Flags always override file values; the file only shifts defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/qrsmith/pkg/errors"
)

// appName is the directory name under the XDG config root.
const appName = "qrsmith"

// Cache backend names accepted in the config file.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config holds file-backed defaults for the CLI and server.
type Config struct {
	// Encode defaults.
	Ecc  string `toml:"ecc"`
	Mode string `toml:"mode"`

	// Formats is the default output format list for encode runs.
	Formats []string `toml:"formats"`

	// OutputDir is where encode writes artifacts when --output names a
	// bare filename.
	OutputDir string `toml:"output_dir"`

	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig selects and configures the artifact cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	Scope     string `toml:"scope"`
}

// Default returns the built-in configuration used when no file exists.
func Default() Config {
	return Config{
		Ecc:     "medium",
		Mode:    "auto",
		Formats: []string{"svg"},
		Server:  ServerConfig{Addr: ":8080"},
		Cache:   CacheConfig{Backend: BackendFile},
	}
}

// DefaultPath returns the config file location following the XDG standard
// (~/.config/qrsmith/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at path, or the default location when path
// is empty. A missing file is not an error; the built-in defaults apply.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "loading config file %s", path)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone, "":
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid cache backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache backend redis requires redis_addr")
	}
	return nil
}

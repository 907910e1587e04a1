// Package cli implements the qrsmith command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrsmith/pkg/buildinfo"
	"github.com/matzehuels/qrsmith/pkg/cache"
	"github.com/matzehuels/qrsmith/pkg/config"
	"github.com/matzehuels/qrsmith/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "qrsmith"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag value; empty means the default
	// XDG location.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:     "qrsmith",
		Short:   "Qrsmith encodes text into QR code images",
		Long:    `Qrsmith is a CLI tool and server for encoding text into QR code symbols, with SVG, PNG, PDF, and JSON metadata output.`,
		Version: buildinfo.Version,
		// The entry point prints the returned error once; cobra must not
		// repeat it.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.config/qrsmith/config.toml)")

	// Register all subcommands
	root.AddCommand(c.encodeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file named by --config, or the defaults.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	backend, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if cfg.Cache.Scope != "" {
		keyer = cache.NewScopedKeyer(cfg.Cache.Scope, nil)
	}
	return pipeline.NewRunner(backend, keyer, c.Logger), nil
}

// newCache builds the cache backend selected by the config. Backend
// failures degrade to no caching rather than aborting the command.
func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Cache.Backend == config.BackendNone {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.Backend == config.BackendRedis {
		return cache.NewRedisCache(ctx, cache.RedisOptions{Addr: cfg.Cache.RedisAddr})
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/qrsmith/).
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

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string, cfg config.Config) []string {
	if s == "" {
		if len(cfg.Formats) > 0 {
			return cfg.Formats
		}
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

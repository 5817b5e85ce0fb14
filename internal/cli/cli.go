package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/springboard/pkg/cache"
	"github.com/matzehuels/springboard/pkg/config"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "springboard"

	formatSVG  = "svg"
	formatPNG  = "png"
	formatJSON = "json"
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

	stats *engineStats
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level engine and cache
// events are logged too.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		c.installDebugHooks()
	}
}

// =============================================================================
// Board flags
// =============================================================================

// boardFlags are the flags shared by every command that builds a board.
// Flags that are set override the config file.
type boardFlags struct {
	configPath string
	items      int
	width      float64
	height     float64
	diameter   float64
	padding    float64
	factor     float64
}

func (f *boardFlags) register(cmd *cobra.Command) {
	def := config.Default()
	fs := cmd.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "", "config file (default ./"+config.DefaultFile+" when present)")
	fs.IntVarP(&f.items, "items", "n", def.Grid.Items, "number of items")
	fs.Float64Var(&f.width, "width", def.Viewport.Width, "viewport width in points")
	fs.Float64Var(&f.height, "height", def.Viewport.Height, "viewport height in points")
	fs.Float64Var(&f.diameter, "diameter", def.Grid.Diameter, "item diameter in points")
	fs.Float64Var(&f.padding, "padding", def.Grid.Padding, "padding between items in points")
	fs.Float64Var(&f.factor, "transform-factor", def.Effect.TransformFactor, "edge distortion strength, 0 disables it")
	_ = cmd.RegisterFlagCompletionFunc("config", completeTOML)
}

// load reads the config file and applies the flags the user set.
func (f *boardFlags) load(cmd *cobra.Command, logger *log.Logger) (config.Config, error) {
	cfg, err := config.LoadOrDefault(f.configPath, logger)
	if err != nil {
		return config.Config{}, err
	}
	fs := cmd.Flags()
	if fs.Changed("items") {
		cfg.Grid.Items = f.items
	}
	if fs.Changed("width") {
		cfg.Viewport.Width = f.width
	}
	if fs.Changed("height") {
		cfg.Viewport.Height = f.height
	}
	if fs.Changed("diameter") {
		cfg.Grid.Diameter = f.diameter
	}
	if fs.Changed("padding") {
		cfg.Grid.Padding = f.padding
	}
	if fs.Changed("transform-factor") {
		cfg.Effect.TransformFactor = f.factor
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// =============================================================================
// Cache
// =============================================================================

// newCache picks the artifact cache: none with noCache, redis when an
// address is configured, the file cache otherwise. Cache setup failures fall
// back to no cache.
func newCache(ctx context.Context, cfg config.Config, noCache bool, logger *log.Logger) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	if addr := cfg.RedisAddr(); addr != "" {
		rc, err := cache.NewRedisCache(ctx, addr)
		if err == nil {
			logger.Debug("using redis cache", "addr", addr)
			return cache.Instrument(rc)
		}
		logger.Warn("redis unavailable, caching disabled", "err", err)
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Warn("file cache unavailable, caching disabled", "err", err)
		return cache.NewNullCache()
	}
	return cache.Instrument(fc)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/springboard/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}

// Package config loads springboard settings from a TOML file.
//
// A file may set any subset of the keys; missing keys keep their defaults.
// Unknown keys are rejected so that typos do not pass silently.
//
//	[grid]
//	items = 41
//	diameter = 68
//	padding = 48
//
//	[viewport]
//	width = 320
//	height = 320
//	insets = { top = 0, left = 0, bottom = 0, right = 0 }
//
//	[effect]
//	minimum_item_scaling = 0.5
//	transform_factor = 1.0
//
//	[zoom]
//	minimum_interaction = 0.4
//
//	[cache]
//	redis = "localhost:6379"
//	ttl = "24h"
package config

import (
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/springboard/pkg/cache"
	"github.com/matzehuels/springboard/pkg/errors"
	"github.com/matzehuels/springboard/pkg/geom"
	"github.com/matzehuels/springboard/pkg/springboard"
	"github.com/matzehuels/springboard/pkg/springboard/distort"
	"github.com/matzehuels/springboard/pkg/viewport"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "springboard.toml"

// RedisEnv names the environment variable that supplies the redis address
// when the file and flags leave it empty.
const RedisEnv = "SPRINGBOARD_REDIS_ADDR"

// Config is the complete configuration.
type Config struct {
	Grid     Grid     `toml:"grid" json:"grid"`
	Viewport Viewport `toml:"viewport" json:"viewport"`
	Effect   Effect   `toml:"effect" json:"effect"`
	Zoom     Zoom     `toml:"zoom" json:"zoom"`
	Cache    Cache    `toml:"cache" json:"-"`
}

// Grid sets the item count and cell geometry.
type Grid struct {
	Items    int     `toml:"items" json:"items"`
	Diameter float64 `toml:"diameter" json:"diameter"`
	Padding  float64 `toml:"padding" json:"padding"`
}

// Viewport sets the simulated screen.
type Viewport struct {
	Width            float64     `toml:"width" json:"width"`
	Height           float64     `toml:"height" json:"height"`
	Insets           geom.Insets `toml:"insets" json:"insets"`
	DecelerationRate float64     `toml:"deceleration_rate" json:"deceleration_rate"`
	FPS              int         `toml:"fps" json:"fps"`
}

// Effect tunes the edge distortion.
type Effect struct {
	MinimumItemScaling float64 `toml:"minimum_item_scaling" json:"minimum_item_scaling"`
	TransformFactor    float64 `toml:"transform_factor" json:"transform_factor"`
	ReferenceSize      float64 `toml:"reference_size" json:"reference_size"`
}

// Zoom sets the zoom thresholds.
type Zoom struct {
	MinimumInteraction float64 `toml:"minimum_interaction" json:"minimum_interaction"`
	Maximum            float64 `toml:"maximum" json:"maximum"`
}

// Cache selects the artifact cache backend.
type Cache struct {
	Redis string   `toml:"redis"`
	TTL   Duration `toml:"ttl"`

	// Prefix namespaces keys when several servers share one backend.
	Prefix string `toml:"prefix"`
}

// Duration is a time.Duration written as a string ("90s", "24h").
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Default returns the built-in configuration: a 41-item board on a 320×320
// watch screen.
func Default() Config {
	return Config{
		Grid: Grid{
			Items:    41,
			Diameter: springboard.DefaultItemDiameter,
			Padding:  springboard.DefaultItemPadding,
		},
		Viewport: Viewport{
			Width:            320,
			Height:           320,
			DecelerationRate: viewport.DefaultDecelerationRate,
			FPS:              viewport.DefaultFPS,
		},
		Effect: Effect{
			MinimumItemScaling: springboard.DefaultMinimumItemScaling,
			TransformFactor:    springboard.DefaultTransformFactor,
			ReferenceSize:      distort.DefaultReferenceSize,
		},
		Zoom: Zoom{
			MinimumInteraction: springboard.DefaultMinimumZoomLevelInteraction,
			Maximum:            viewport.DefaultMaximumZoomScale,
		},
		Cache: Cache{TTL: Duration{24 * time.Hour}},
	}
}

// Load reads path on top of the defaults and validates the result.
func Load(path string) (Config, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Config{}, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// LoadOrDefault loads path when it is set, or DefaultFile when it exists in
// the working directory, or returns the defaults.
func LoadOrDefault(path string, logger *log.Logger) (Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return Default(), nil
		}
		path = DefaultFile
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, err
	}
	logger.Debug("loaded config", "path", path)
	return cfg, nil
}

// Decode reads TOML from r on top of the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field and returns the first INVALID_CONFIG error.
func (c Config) Validate() error {
	if c.Grid.Items < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "grid.items must not be negative, got %d", c.Grid.Items)
	}
	if c.Viewport.FPS < 1 || c.Viewport.FPS > 240 {
		return errors.New(errors.ErrCodeInvalidConfig, "viewport.fps must be between 1 and 240, got %d", c.Viewport.FPS)
	}

	in := c.Viewport.Insets
	checks := []error{
		errors.ValidatePositive("grid.diameter", c.Grid.Diameter),
		errors.ValidateRange("grid.padding", c.Grid.Padding, 0, 1e4),
		errors.ValidatePositive("viewport.width", c.Viewport.Width),
		errors.ValidatePositive("viewport.height", c.Viewport.Height),
		errors.ValidateRange("viewport.insets.top", in.Top, 0, c.Viewport.Height),
		errors.ValidateRange("viewport.insets.bottom", in.Bottom, 0, c.Viewport.Height),
		errors.ValidateRange("viewport.insets.left", in.Left, 0, c.Viewport.Width),
		errors.ValidateRange("viewport.insets.right", in.Right, 0, c.Viewport.Width),
		errors.ValidateRange("viewport.deceleration_rate", c.Viewport.DecelerationRate, 0.5, 0.9999),
		errors.ValidateRange("effect.minimum_item_scaling", c.Effect.MinimumItemScaling, 0, 1),
		errors.ValidateRange("effect.transform_factor", c.Effect.TransformFactor, 0, 1),
		errors.ValidatePositive("effect.reference_size", c.Effect.ReferenceSize),
		errors.ValidateRange("zoom.minimum_interaction", c.Zoom.MinimumInteraction, 0, 10),
		errors.ValidatePositive("zoom.maximum", c.Zoom.Maximum),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// RedisAddr returns the configured redis address, falling back to RedisEnv.
func (c Config) RedisAddr() string {
	if c.Cache.Redis != "" {
		return c.Cache.Redis
	}
	return os.Getenv(RedisEnv)
}

// Hash identifies the board this config produces. Cache settings do not
// take part.
func (c Config) Hash() string { return cache.HashJSON(c) }

// ViewportSize returns the configured screen size.
func (c Config) ViewportSize() geom.Size {
	return geom.Sz(c.Viewport.Width, c.Viewport.Height)
}

// SpringboardOptions returns the engine options this config selects.
func (c Config) SpringboardOptions(logger *log.Logger) []springboard.Option {
	opts := []springboard.Option{
		springboard.WithItemDiameter(c.Grid.Diameter),
		springboard.WithItemPadding(c.Grid.Padding),
		springboard.WithMinimumItemScaling(c.Effect.MinimumItemScaling),
		springboard.WithTransformFactor(c.Effect.TransformFactor),
		springboard.WithReferenceSize(c.Effect.ReferenceSize),
		springboard.WithMinimumZoomLevelInteraction(c.Zoom.MinimumInteraction),
	}
	if logger != nil {
		opts = append(opts, springboard.WithLogger(logger))
	}
	return opts
}

// ViewportOptions returns the simulated viewport options this config selects.
func (c Config) ViewportOptions() []viewport.Option {
	return []viewport.Option{
		viewport.WithInsets(c.Viewport.Insets),
		viewport.WithDecelerationRate(c.Viewport.DecelerationRate),
		viewport.WithFrameRate(c.Viewport.FPS),
		viewport.WithMaximumZoomScale(c.Zoom.Maximum),
	}
}

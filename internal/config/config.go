package config

import (
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"lifepanel/internal/core"
	"lifepanel/pkg/life"
)

// Config represents the application settings. Values come from defaults, an
// optional YAML file and command-line flags, in that order of precedence.
type Config struct {
	Width      int           `mapstructure:"width"`
	Height     int           `mapstructure:"height"`
	LiveChance float64       `mapstructure:"live_chance"`
	Interval   time.Duration `mapstructure:"interval"`
	Seed       int64         `mapstructure:"seed"`
	Workers    int           `mapstructure:"workers"`

	// Pattern names a registered pattern to start from; empty or "random"
	// randomizes the board. PatternFile takes precedence when set.
	Pattern     string `mapstructure:"pattern"`
	PatternFile string `mapstructure:"pattern_file"`

	Scale int `mapstructure:"scale"`

	Addr      string        `mapstructure:"addr"`
	RedisAddr string        `mapstructure:"redis_addr"`
	BoardTTL  time.Duration `mapstructure:"board_ttl"`

	LogLevel string `mapstructure:"log_level"`
}

// Default returns a Config populated with the board defaults.
func Default() Config {
	return Config{
		Width:      life.Width,
		Height:     life.Height,
		LiveChance: life.LiveChance,
		Interval:   core.DefaultInterval,
		Seed:       time.Now().UnixNano(),
		Workers:    1,
		Pattern:    "random",
		Scale:      24,
		Addr:       ":8080",
		LogLevel:   "info",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "board width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "board height in cells")
	fs.Float64Var(&c.LiveChance, "live-chance", c.LiveChance, "probability that a generated cell is alive")
	fs.DurationVar(&c.Interval, "interval", c.Interval, "time between generations while running")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for generated placements")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines used per step")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "initial pattern name, or random")
	fs.StringVar(&c.PatternFile, "pattern-file", c.PatternFile, "initial pattern in plaintext (.cells) form")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell in the desktop window")
	fs.StringVar(&c.Addr, "addr", c.Addr, "HTTP listen address")
	fs.StringVar(&c.RedisAddr, "redis-addr", c.RedisAddr, "Redis address for saved boards; empty keeps them in memory")
	fs.DurationVar(&c.BoardTTL, "board-ttl", c.BoardTTL, "expiry for boards saved in Redis; 0 keeps them")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
}

// Load decodes the YAML file at path over c. Unknown keys are rejected.
func (c *Config) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return errors.Wrapf(err, "parse config %s", path)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			numberToMillisecondsHookFunc(),
		),
	})
	if err != nil {
		return errors.Wrap(err, "config decoder")
	}
	if err := dec.Decode(raw); err != nil {
		return errors.Wrapf(err, "decode config %s", path)
	}
	return nil
}

// numberToMillisecondsHookFunc reads bare YAML numbers for duration keys as
// milliseconds, so "interval: 400" means 400ms.
func numberToMillisecondsHookFunc() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case int:
			return time.Duration(v) * time.Millisecond, nil
		case int64:
			return time.Duration(v) * time.Millisecond, nil
		case uint64:
			return time.Duration(v) * time.Millisecond, nil
		case float64:
			return time.Duration(v * float64(time.Millisecond)), nil
		}
		return data, nil
	}
}

// Resolve applies the YAML file at path (if any) to c and then re-applies
// every flag that was set explicitly on fs, so flags win over the file.
func (c *Config) Resolve(fs *pflag.FlagSet, path string) error {
	if path != "" {
		changed := map[string]string{}
		fs.Visit(func(f *pflag.Flag) {
			if f.Changed {
				changed[f.Name] = f.Value.String()
			}
		})
		if err := c.Load(path); err != nil {
			return err
		}
		for name, value := range changed {
			if err := fs.Set(name, value); err != nil {
				return errors.Wrapf(err, "reapply flag --%s", name)
			}
		}
	}
	return c.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Errorf("board size must be positive, got %dx%d", c.Width, c.Height)
	case c.LiveChance < 0 || c.LiveChance > 1:
		return errors.Errorf("live chance must be within [0,1], got %g", c.LiveChance)
	case c.Interval <= 0:
		return errors.Errorf("interval must be positive, got %s", c.Interval)
	case c.Workers <= 0:
		return errors.Errorf("workers must be positive, got %d", c.Workers)
	case c.Scale <= 0:
		return errors.Errorf("scale must be positive, got %d", c.Scale)
	case c.BoardTTL < 0:
		return errors.Errorf("board ttl must not be negative, got %s", c.BoardTTL)
	}
	return nil
}

// Life returns the engine configuration.
func (c Config) Life() life.Config {
	return life.FromMap(map[string]string{
		"w":           strconv.Itoa(c.Width),
		"h":           strconv.Itoa(c.Height),
		"live_chance": strconv.FormatFloat(c.LiveChance, 'g', -1, 64),
		"workers":     strconv.Itoa(c.Workers),
	})
}

// InitialGrid returns the configured starting board, or nil when the board
// should be randomized.
func (c Config) InitialGrid() (*life.Grid, error) {
	if c.PatternFile != "" {
		f, err := os.Open(c.PatternFile)
		if err != nil {
			return nil, errors.Wrap(err, "open pattern file")
		}
		defer f.Close()
		p, err := life.Parse(f)
		if err != nil {
			return nil, errors.Wrapf(err, "pattern file %s", c.PatternFile)
		}
		return life.Centered(p, c.Width, c.Height), nil
	}
	if c.Pattern == "" || c.Pattern == "random" {
		return nil, nil
	}
	p, ok := life.LookupPattern(c.Pattern)
	if !ok {
		return nil, errors.Errorf("unknown pattern %q", c.Pattern)
	}
	return life.Centered(p, c.Width, c.Height), nil
}

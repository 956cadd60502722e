package life

import "strconv"

const (
	// Width is the default number of columns.
	Width = 30
	// Height is the default number of rows.
	Height = 15
	// LiveChance is the default probability that a randomized cell starts alive.
	LiveChance = 0.5
)

// Config holds parameters for the Life engine.
type Config struct {
	Width      int
	Height     int
	LiveChance float64
	// Workers is the number of goroutines used by Engine.Step. Values below 2
	// step sequentially.
	Workers int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: Width, Height: Height, LiveChance: LiveChance, Workers: 1}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["live_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.LiveChance = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Workers = parsed
		}
	}
	return c
}

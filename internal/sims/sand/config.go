package sand

import "strconv"

// Config controls the dimensions and optional random fill of a sand grid.
type Config struct {
	Width  int
	Height int

	Seed int64
	// Scatter is the fraction of Empty cells Reset turns into Sand.
	Scatter float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Width: 20, Height: 30, Seed: 1337}
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
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
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["scatter"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Scatter = parsed
		}
	}
	return c
}

package ising

import (
	"math"
	"strconv"
)

// Config controls the interactive Ising simulation.
type Config struct {
	Size     int
	Beta     float64
	Coupling float64
	Seed     int64
	// Sweeps is the number of N² proposal sweeps applied per Step.
	Sweeps int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Size: 128, Beta: 0.44, Coupling: 1, Seed: 42, Sweeps: 1}
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["n"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Size = parsed
		}
	}
	if v, ok := cfg["beta"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && !math.IsInf(parsed, 0) {
			c.Beta = parsed
		}
	}
	if v, ok := cfg["j"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(parsed) && !math.IsInf(parsed, 0) {
			c.Coupling = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["sweeps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Sweeps = parsed
		}
	}
	return c
}

// Package config handles walkmesh configuration loading and management.
package config

import "github.com/Faultbox/walkmesh/pkg/collider"

// Config holds all walkmesh settings.
type Config struct {
	Collider   collider.Config  `yaml:"collider" toml:"collider"`
	Simulation SimulationConfig `yaml:"simulation" toml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
}

// SimulationConfig holds frame loop settings for scenario runs.
type SimulationConfig struct {
	DeltaMax float64 `yaml:"delta_max" toml:"delta_max"` // upper bound on a tick's delta, seconds
	TickRate int     `yaml:"tick_rate" toml:"tick_rate"` // ticks per simulated second
	Ticks    int     `yaml:"ticks" toml:"ticks"`         // 0 runs until the scenario's inputs end
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Collider: collider.DefaultConfig(),
		Simulation: SimulationConfig{
			DeltaMax: 0.1,
			TickRate: 60,
			Ticks:    0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Delta returns the fixed delta for one simulated tick.
func (s SimulationConfig) Delta() float64 {
	if s.TickRate <= 0 {
		return s.DeltaMax
	}
	return min(1/float64(s.TickRate), s.DeltaMax)
}

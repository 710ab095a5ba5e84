package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/Faultbox/walkmesh/pkg/encoding"
)

// ErrInvalid is returned when a loaded config fails validation.
var ErrInvalid = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the collider cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Collider.System.MaxPlanesPerMesh <= 0:
		return fmt.Errorf("%w: max_planes_per_mesh must be positive", ErrInvalid)
	case c.Collider.System.CacheRadius < 0:
		return fmt.Errorf("%w: cache_radius must not be negative", ErrInvalid)
	case c.Collider.Object.MaxVelocity <= 0:
		return fmt.Errorf("%w: max_velocity must be positive", ErrInvalid)
	case c.Simulation.DeltaMax <= 0:
		return fmt.Errorf("%w: delta_max must be positive", ErrInvalid)
	}
	return nil
}

var configNames = []string{"walkmesh.yaml", "walkmesh.yml", "walkmesh.toml"}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	for _, dir := range []string{".", ConfigDir()} {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Walkmesh")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Walkmesh")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "walkmesh")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "walkmesh")
	}
}

// loadFromFile loads config from a YAML or TOML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	return encoding.ReadFile(path, cfg)
}

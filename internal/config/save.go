package config

import (
	"path/filepath"

	"github.com/Faultbox/walkmesh/pkg/encoding"
)

// Save writes the config to the user's config directory as YAML.
func (c *Config) Save() error {
	return c.SaveTo(filepath.Join(ConfigDir(), "walkmesh.yaml"))
}

// SaveTo writes the config to a specific path. The extension picks the format.
func (c *Config) SaveTo(path string) error {
	return encoding.WriteFile(path, c)
}

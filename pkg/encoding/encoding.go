// Package encoding reads and writes the YAML and TOML documents used for
// configuration, scene descriptions and scenarios.
package encoding

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a document encoding.
type Format int

const (
	FormatUnknown Format = iota
	FormatYAML
	FormatTOML
)

// ErrUnsupportedFormat is returned for file extensions other than
// .yaml, .yml and .toml.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// String returns a human-readable format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// FormatOf infers the format from a file extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatUnknown
	}
}

// Unmarshal decodes data into v, merging with values already present in v.
func Unmarshal(data []byte, format Format, v any) error {
	switch format {
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	case FormatTOML:
		return toml.Unmarshal(data, v)
	default:
		return ErrUnsupportedFormat
	}
}

// Marshal encodes v in the given format.
func Marshal(v any, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(v)
	case FormatTOML:
		return toml.Marshal(v)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ReadFile decodes the file at path into v, choosing the decoder by extension.
func ReadFile(path string, v any) error {
	format := FormatOf(path)
	if format == FormatUnknown {
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return Unmarshal(data, format, v)
}

// WriteFile encodes v into path, creating parent directories as needed.
func WriteFile(path string, v any) error {
	format := FormatOf(path)
	if format == FormatUnknown {
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	data, err := Marshal(v, format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

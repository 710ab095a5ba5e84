package encoding

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type doc struct {
	Name  string  `yaml:"name" toml:"name"`
	Speed float64 `yaml:"speed" toml:"speed"`
	Tags  []int   `yaml:"tags" toml:"tags"`
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"scene.yaml", FormatYAML},
		{"scene.YML", FormatYAML},
		{"dir/config.toml", FormatTOML},
		{"scene.json", FormatUnknown},
		{"noext", FormatUnknown},
	}

	for _, tt := range tests {
		if got := FormatOf(tt.path); got != tt.want {
			t.Errorf("FormatOf(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestRoundTripFiles(t *testing.T) {
	dir := t.TempDir()
	in := doc{Name: "ramp", Speed: 2.5, Tags: []int{1, 2}}

	for _, name := range []string{"out.yaml", "out.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "nested", name)
			if err := WriteFile(path, in); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}

			var out doc
			if err := ReadFile(path, &out); err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			if out.Name != in.Name || out.Speed != in.Speed || len(out.Tags) != 2 {
				t.Errorf("ReadFile() = %+v, want %+v", out, in)
			}
		})
	}
}

func TestUnmarshalMerges(t *testing.T) {
	out := doc{Name: "keep", Speed: 1}
	if err := Unmarshal([]byte("speed = 4.0\n"), FormatTOML, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if out.Name != "keep" || out.Speed != 4 {
		t.Errorf("Unmarshal() = %+v, want name kept and speed 4", out)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	var out doc
	if err := ReadFile(path, &out); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ReadFile() error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := Marshal(out, FormatUnknown); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Marshal() error = %v, want ErrUnsupportedFormat", err)
	}
}

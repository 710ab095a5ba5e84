package scene

import (
	"errors"
	"fmt"

	"github.com/Faultbox/walkmesh/pkg/encoding"
	"github.com/Faultbox/walkmesh/pkg/math"
)

var (
	ErrUnknownShape  = errors.New("unknown shape")
	ErrInvalidVector = errors.New("vector must have 3 components")
	ErrEmptyNode     = errors.New("node has no shape, geometry or children")
)

// Description is the on-disk form of a scene.
type Description struct {
	Name  string     `yaml:"name" toml:"name"`
	Nodes []NodeSpec `yaml:"nodes" toml:"nodes"`
}

// NodeSpec describes one node. Exactly one of Shape, Geometry or Children
// should be set. Floor is only read on top-level nodes and applies to every
// mesh beneath them.
type NodeSpec struct {
	Name     string     `yaml:"name" toml:"name"`
	Floor    bool       `yaml:"floor,omitempty" toml:"floor,omitempty"`
	Shape    string     `yaml:"shape,omitempty" toml:"shape,omitempty"`
	Size     []float64  `yaml:"size,omitempty" toml:"size,omitempty"`
	Segments []int      `yaml:"segments,omitempty" toml:"segments,omitempty"`
	Position []float64  `yaml:"position,omitempty" toml:"position,omitempty"`
	Rotation *Euler     `yaml:"rotation,omitempty" toml:"rotation,omitempty"`
	Scale    []float64  `yaml:"scale,omitempty" toml:"scale,omitempty"`
	Geometry *Geometry  `yaml:"geometry,omitempty" toml:"geometry,omitempty"`
	Children []NodeSpec `yaml:"children,omitempty" toml:"children,omitempty"`
}

// Entry is a built top-level node and its floor flag.
type Entry struct {
	Node  Node
	Floor bool
}

// LoadFile reads a scene description from a YAML or TOML file.
func LoadFile(path string) (*Description, error) {
	var d Description
	if err := encoding.ReadFile(path, &d); err != nil {
		return nil, fmt.Errorf("loading scene %s: %w", path, err)
	}
	return &d, nil
}

// Build turns every top-level node spec into a scene node.
func (d *Description) Build() ([]Entry, error) {
	entries := make([]Entry, 0, len(d.Nodes))
	for i, spec := range d.Nodes {
		node, err := spec.Build()
		if err != nil {
			return nil, fmt.Errorf("node %d (%s): %w", i, spec.Name, err)
		}
		entries = append(entries, Entry{Node: node, Floor: spec.Floor})
	}
	return entries, nil
}

// Build turns the spec into a *Mesh or *Group.
func (s NodeSpec) Build() (Node, error) {
	if len(s.Children) > 0 {
		group := NewGroup(s.Name)
		for i, child := range s.Children {
			node, err := child.Build()
			if err != nil {
				return nil, fmt.Errorf("child %d (%s): %w", i, child.Name, err)
			}
			group.Add(node)
		}
		return group, nil
	}

	tf, err := s.transform()
	if err != nil {
		return nil, err
	}

	if s.Geometry != nil {
		return NewMesh(s.Name, s.Geometry, tf), nil
	}

	size := math.V3(1, 1, 1)
	if len(s.Size) > 0 {
		if size, err = vec3(s.Size); err != nil {
			return nil, fmt.Errorf("size: %w", err)
		}
	}

	switch s.Shape {
	case "box":
		return NewBox(s.Name, size, tf), nil
	case "ramp":
		return NewRamp(s.Name, size.X, size.Y, size.Z, tf), nil
	case "plane":
		return NewPlane(s.Name, size.X, size.Z, tf), nil
	case "grid":
		segX, segZ := 1, 1
		if len(s.Segments) == 2 {
			segX, segZ = s.Segments[0], s.Segments[1]
		}
		return NewGrid(s.Name, size.X, size.Z, segX, segZ, tf), nil
	case "":
		return nil, ErrEmptyNode
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, s.Shape)
	}
}

func (s NodeSpec) transform() (Transform, error) {
	tf := Identity()
	var err error
	if len(s.Position) > 0 {
		if tf.Position, err = vec3(s.Position); err != nil {
			return tf, fmt.Errorf("position: %w", err)
		}
	}
	if len(s.Scale) > 0 {
		if tf.Scale, err = vec3(s.Scale); err != nil {
			return tf, fmt.Errorf("scale: %w", err)
		}
	}
	if s.Rotation != nil {
		if err := s.Rotation.Validate(); err != nil {
			return tf, err
		}
		tf.Rotation = *s.Rotation
	}
	return tf, nil
}

func vec3(values []float64) (math.Vec3, error) {
	if len(values) != 3 {
		return math.Vec3{}, fmt.Errorf("%w: got %d", ErrInvalidVector, len(values))
	}
	return math.V3(values[0], values[1], values[2]), nil
}

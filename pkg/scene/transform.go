package scene

import (
	"errors"
	"fmt"

	"github.com/Faultbox/walkmesh/pkg/math"
)

// DefaultOrder is the Euler rotation order used when none is given.
const DefaultOrder = "XYZ"

// ErrInvalidOrder is returned for rotation orders that are not a
// permutation of "XYZ".
var ErrInvalidOrder = errors.New("invalid euler rotation order")

// Euler is a rotation in radians about X, Y and Z, composed in Order.
type Euler struct {
	X     float64 `yaml:"x" toml:"x"`
	Y     float64 `yaml:"y" toml:"y"`
	Z     float64 `yaml:"z" toml:"z"`
	Order string  `yaml:"order,omitempty" toml:"order,omitempty"`
}

// AxisOrder returns Order, or DefaultOrder when unset.
func (e Euler) AxisOrder() string {
	if e.Order == "" {
		return DefaultOrder
	}
	return e.Order
}

// IsZero reports whether all three angles are zero.
func (e Euler) IsZero() bool {
	return e.X == 0 && e.Y == 0 && e.Z == 0
}

// Angle returns the angle for axis 'X', 'Y' or 'Z'.
func (e Euler) Angle(axis byte) float64 {
	switch axis {
	case 'X':
		return e.X
	case 'Y':
		return e.Y
	default:
		return e.Z
	}
}

// Validate checks the rotation order.
func (e Euler) Validate() error {
	order := e.AxisOrder()
	if len(order) != 3 {
		return fmt.Errorf("%w: %q", ErrInvalidOrder, order)
	}
	seen := map[byte]bool{}
	for i := 0; i < 3; i++ {
		c := order[i]
		if (c != 'X' && c != 'Y' && c != 'Z') || seen[c] {
			return fmt.Errorf("%w: %q", ErrInvalidOrder, order)
		}
		seen[c] = true
	}
	return nil
}

// Transform places a mesh in the world.
type Transform struct {
	Position math.Vec3
	Rotation Euler
	Scale    math.Vec3
}

// Identity returns a transform with no translation, rotation or scaling.
func Identity() Transform {
	return Transform{
		Rotation: Euler{Order: DefaultOrder},
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// At returns an identity transform translated to (x, y, z).
func At(x, y, z float64) Transform {
	tf := Identity()
	tf.Position = math.Vec3{X: x, Y: y, Z: z}
	return tf
}

// WithRotation returns a copy of t with the rotation replaced.
func (t Transform) WithRotation(r Euler) Transform {
	t.Rotation = r
	return t
}

// WithScale returns a copy of t with the scale replaced.
func (t Transform) WithScale(s math.Vec3) Transform {
	t.Scale = s
	return t
}

package collider

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/walkmesh/pkg/math"
	"github.com/Faultbox/walkmesh/pkg/scene"
)

var worldAxes = map[byte]mgl64.Vec3{
	'X': {1, 0, 0},
	'Y': {0, 1, 0},
	'Z': {0, 0, 1},
}

// Transformer moves points between world space and a mesh's baked frame.
// Rotation and scale are baked into planes once; translation is applied
// per query.
type Transformer struct {
	position math.Vec3
	rotation scene.Euler
	scale    math.Vec3

	defaultPosition bool
	defaultRotation bool
	defaultScale    bool
}

// NewTransformer copies tf and records which parts are identity.
func NewTransformer(tf scene.Transform) *Transformer {
	t := &Transformer{
		position: tf.Position,
		rotation: tf.Rotation,
		scale:    tf.Scale,
	}
	t.checkDefault()
	return t
}

func (t *Transformer) checkDefault() {
	t.defaultPosition = t.position.Equal(math.Vec3{})
	t.defaultRotation = t.rotation.IsZero()
	t.defaultScale = t.scale.Equal(math.V3(1, 1, 1))
}

// ToLocal moves a world point into the mesh frame.
func (t *Transformer) ToLocal(p math.Vec3) math.Vec3 {
	return p.Sub(t.position)
}

// ToWorld moves a mesh-frame point back to world space.
func (t *Transformer) ToWorld(p math.Vec3) math.Vec3 {
	return p.Add(t.position)
}

// ToWorldY moves a mesh-frame height back to world space.
func (t *Transformer) ToWorldY(y float64) float64 {
	return y + t.position.Y
}

// Position returns the current translation.
func (t *Transformer) Position() math.Vec3 {
	return t.position
}

// SetPosition replaces the translation.
func (t *Transformer) SetPosition(p math.Vec3) {
	t.position = p
	t.defaultPosition = p.Equal(math.Vec3{})
}

// IsDefaultPosition reports whether the translation is zero.
func (t *Transformer) IsDefaultPosition() bool { return t.defaultPosition }

// IsDefaultRotation reports whether every Euler angle is zero.
func (t *Transformer) IsDefaultRotation() bool { return t.defaultRotation }

// IsDefaultScale reports whether the scale is (1, 1, 1).
func (t *Transformer) IsDefaultScale() bool { return t.defaultScale }

// BakeRotation rotates the plane's vertices and vertex normals about the
// world axes, walking the Euler order from last to first, and returns the
// rebuilt plane.
func (t *Transformer) BakeRotation(pl Plane) Plane {
	verts := [6]math.Vec3{pl.P1, pl.P2, pl.P3, pl.N1, pl.N2, pl.N3}

	order := t.rotation.AxisOrder()
	for i := len(order) - 1; i >= 0; i-- {
		axis, ok := worldAxes[order[i]]
		if !ok {
			continue
		}
		angle := t.rotation.Angle(order[i])
		if angle == 0 {
			continue
		}
		q := mgl64.QuatRotate(angle, axis)
		for k := range verts {
			verts[k] = fromMgl(q.Rotate(toMgl(verts[k])))
		}
	}

	return NewPlane(verts[0], verts[1], verts[2], verts[3], verts[4], verts[5], pl.settings)
}

// BakeScale scales the plane's vertices, leaving vertex normals alone, and
// returns the rebuilt plane.
func (t *Transformer) BakeScale(pl Plane) Plane {
	return NewPlane(
		pl.P1.Mul(t.scale), pl.P2.Mul(t.scale), pl.P3.Mul(t.scale),
		pl.N1, pl.N2, pl.N3,
		pl.settings,
	)
}

func toMgl(v math.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

package collider

import "github.com/Faultbox/walkmesh/pkg/math"

// Box is a mesh's world bounding box. The bounds are computed once from
// untranslated points and follow the mesh's translation.
type Box struct {
	local    AABB
	bounds   AABB
	position math.Vec3
}

// NewBox bounds the given untranslated points.
func NewBox(points []math.Vec3) Box {
	b := NewAABB(points...)
	return Box{local: b, bounds: b}
}

// SetPosition moves the box to translation p. Repeating the current
// position is a no-op.
func (b *Box) SetPosition(p math.Vec3) {
	if b.position.Equal(p) {
		return
	}
	b.bounds = b.bounds.Translate(p.Sub(b.position))
	b.position = p
}

// Position returns the tracked translation.
func (b Box) Position() math.Vec3 { return b.position }

// Bounds returns the translated box.
func (b Box) Bounds() AABB { return b.bounds }

// Local returns the untranslated box.
func (b Box) Local() AABB { return b.local }

// Min returns the lower corner of the translated box.
func (b Box) Min() math.Vec3 { return b.bounds.Min }

// Max returns the upper corner of the translated box.
func (b Box) Max() math.Vec3 { return b.bounds.Max }

// ContainsPoint reports whether p lies inside the translated box.
func (b Box) ContainsPoint(p math.Vec3) bool {
	return b.bounds.ContainsPoint(p)
}

// ContainsPointXZ reports whether p lies inside the translated box,
// ignoring Y.
func (b Box) ContainsPointXZ(p math.Vec3) bool {
	return b.bounds.ContainsPointXZ(p)
}

// IsCeilingAbove reports whether the top of the box is at or above y.
func (b Box) IsCeilingAbove(y float64) bool {
	return y <= b.bounds.Max.Y
}

// DistanceTo returns the distance from the box centre to p.
func (b Box) DistanceTo(p math.Vec3) float64 {
	return b.bounds.Centre().Distance(p)
}

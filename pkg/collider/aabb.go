package collider

import (
	stdmath "math"

	"github.com/Faultbox/walkmesh/pkg/math"
)

// AABB is an axis-aligned bounding box. The zero value is a degenerate
// box at the origin; use NewAABB to bound a set of points.
type AABB struct {
	Min, Max math.Vec3
}

// NewAABB returns the smallest box containing all points. With no points
// the box is empty (Min above Max) and contains nothing.
func NewAABB(points ...math.Vec3) AABB {
	inf := stdmath.Inf(1)
	b := AABB{
		Min: math.V3(inf, inf, inf),
		Max: math.V3(-inf, -inf, -inf),
	}
	for _, p := range points {
		b.Min = math.V3(stdmath.Min(b.Min.X, p.X), stdmath.Min(b.Min.Y, p.Y), stdmath.Min(b.Min.Z, p.Z))
		b.Max = math.V3(stdmath.Max(b.Max.X, p.X), stdmath.Max(b.Max.Y, p.Y), stdmath.Max(b.Max.Z, p.Z))
	}
	return b
}

// IsEmpty reports whether the box bounds no points.
func (b AABB) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// ContainsPoint reports whether p lies inside or on the box.
func (b AABB) ContainsPoint(p math.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ContainsPointXZ reports whether p lies inside the box, ignoring Y.
func (b AABB) ContainsPointXZ(p math.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ContainsBox reports whether other lies entirely inside b.
func (b AABB) ContainsBox(other AABB) bool {
	return b.Min.X <= other.Min.X && other.Max.X <= b.Max.X &&
		b.Min.Y <= other.Min.Y && other.Max.Y <= b.Max.Y &&
		b.Min.Z <= other.Min.Z && other.Max.Z <= b.Max.Z
}

// Intersects reports whether the boxes overlap or touch.
func (b AABB) Intersects(other AABB) bool {
	return !(other.Max.X < b.Min.X || other.Min.X > b.Max.X ||
		other.Max.Y < b.Min.Y || other.Min.Y > b.Max.Y ||
		other.Max.Z < b.Min.Z || other.Min.Z > b.Max.Z)
}

// ExpandByScalar grows the box by s on every side.
func (b AABB) ExpandByScalar(s float64) AABB {
	d := math.V3(s, s, s)
	return AABB{Min: b.Min.Sub(d), Max: b.Max.Add(d)}
}

// Translate moves the box by offset.
func (b AABB) Translate(offset math.Vec3) AABB {
	return AABB{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// Centre returns the box midpoint.
func (b AABB) Centre() math.Vec3 {
	return math.Average(b.Min, b.Max)
}

// Size returns the box extent on each axis.
func (b AABB) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

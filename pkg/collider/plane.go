package collider

import (
	stdmath "math"

	"github.com/Faultbox/walkmesh/pkg/math"
)

// segmentPadding expands segment bounds in intersection broad-phases.
const segmentPadding = 0.05

// Edge holds precomputed data for one triangle edge.
type Edge struct {
	Centre math.Vec3 // midpoint
	Vec    math.Vec3 // direction, end minus start
	Vec2   math.Vec2 // Vec projected onto XZ
	Norm2  math.Vec2 // outward normal of Vec2 on XZ
}

// Plane is one triangle of a collision mesh together with its derived
// plane equation. Planes are immutable; baking produces a new Plane.
type Plane struct {
	P1, P2, P3 math.Vec3
	N1, N2, N3 math.Vec3 // vertex normals, used only to orient Normal

	Edges    [3]Edge
	Normal   math.Vec3
	Position math.Vec3 // centroid
	D        float64   // Normal·X + D = 0 on the plane
	Box      AABB

	settings PlaneSettings
}

// NewPlane builds a plane from three vertices and their normals.
//
// The face normal comes from the triangle's winding and is flipped only
// when all three vertex normals disagree with it. Mixed vertex normals
// leave the winding normal in place.
func NewPlane(p1, p2, p3, n1, n2, n3 math.Vec3, settings PlaneSettings) Plane {
	pl := Plane{
		P1: p1, P2: p2, P3: p3,
		N1: n1, N2: n2, N3: n3,
		settings: settings,
	}

	pl.Edges[0] = newEdge(p1, p2)
	pl.Edges[1] = newEdge(p2, p3)
	pl.Edges[2] = newEdge(p3, p1)

	// XZ winding decides which side of each edge is outside.
	if pl.Edges[0].Vec2.X*pl.Edges[1].Vec2.Y-pl.Edges[0].Vec2.Y*pl.Edges[1].Vec2.X > 0 {
		for i := range pl.Edges {
			pl.Edges[i].Norm2 = pl.Edges[i].Norm2.Scale(-1)
		}
	}

	pl.Normal = pl.Edges[2].Vec.Cross(pl.Edges[0].Vec).Normalize()
	if pl.Normal.Dot(n1) < 0 && pl.Normal.Dot(n2) < 0 && pl.Normal.Dot(n3) < 0 {
		pl.Normal = pl.Normal.Negate()
	}

	pl.Position = math.Centroid(p1, p2, p3)
	pl.D = -pl.Normal.Dot(pl.Position)
	pl.Box = NewAABB(p1, p2, p3)

	return pl
}

func newEdge(from, to math.Vec3) Edge {
	vec := to.Sub(from)
	return Edge{
		Centre: math.Average(from, to),
		Vec:    vec,
		Vec2:   vec.XZ(),
		Norm2:  vec.XZ().Perp(),
	}
}

// Settings returns the tolerances the plane was built with.
func (pl *Plane) Settings() PlaneSettings {
	return pl.settings
}

// Vertices returns the three corners.
func (pl *Plane) Vertices() [3]math.Vec3 {
	return [3]math.Vec3{pl.P1, pl.P2, pl.P3}
}

// Y solves the plane equation for the height at (x, z). It reports false
// for vertical planes.
func (pl *Plane) Y(x, z float64) (float64, bool) {
	if pl.Normal.Y == 0 {
		return 0, false
	}
	return (pl.Normal.X*x + pl.Normal.Z*z + pl.D) / -pl.Normal.Y, true
}

// IsPointAboveOrEqual reports whether p is above the surface or within
// DotThreshold of it.
func (pl *Plane) IsPointAboveOrEqual(p math.Vec3) bool {
	return p.Sub(pl.Position).Dot(pl.Normal) >= -pl.settings.DotThreshold
}

// IsPointBelowOrEqual reports whether p is below the surface or within
// DotThreshold of it. Points inside the threshold band are both above
// and below.
func (pl *Plane) IsPointBelowOrEqual(p math.Vec3) bool {
	return p.Sub(pl.Position).Dot(pl.Normal) <= pl.settings.DotThreshold
}

// IsPlaneAbove reports whether every vertex of other is above or on pl.
func (pl *Plane) IsPlaneAbove(other *Plane) bool {
	return pl.IsPointAboveOrEqual(other.P1) &&
		pl.IsPointAboveOrEqual(other.P2) &&
		pl.IsPointAboveOrEqual(other.P3)
}

// ContainsBox reports whether the plane's bounds enclose b.
func (pl *Plane) ContainsBox(b AABB) bool {
	return pl.Box.ContainsBox(b)
}

// IntersectsBox reports whether the plane's bounds overlap b.
func (pl *Plane) IntersectsBox(b AABB) bool {
	return pl.Box.Intersects(b)
}

// ContainsPoint2D reports whether p's XZ lies within the plane's bounds.
func (pl *Plane) ContainsPoint2D(p math.Vec3) bool {
	return pl.Box.ContainsPointXZ(p)
}

// ProjectedTriangleContainsPoint2D reports whether p's XZ lies inside the
// triangle projected onto XZ.
func (pl *Plane) ProjectedTriangleContainsPoint2D(p math.Vec3) bool {
	for i := range pl.Edges {
		e := &pl.Edges[i]
		rel := math.Vec2{X: p.X - e.Centre.X, Y: p.Z - e.Centre.Z}
		if rel.Dot(e.Norm2) >= pl.settings.DotThreshold {
			return false
		}
	}
	return true
}

// DistanceToPlane returns the unsigned distance from p to the infinite plane.
func (pl *Plane) DistanceToPlane(p math.Vec3) float64 {
	return stdmath.Abs(pl.Normal.Dot(p) + pl.D)
}

// Projected returns the orthogonal projection of p onto the infinite plane.
func (pl *Plane) Projected(p math.Vec3) math.Vec3 {
	dist := pl.Normal.Dot(p.Sub(pl.P1))
	return p.Sub(pl.Normal.Scale(dist))
}

// Intersect returns where the segment p1-p2 crosses the plane. It reports
// false for near-parallel segments and for crossings outside the
// triangle's bounds or the padded segment bounds.
func (pl *Plane) Intersect(p1, p2 math.Vec3) (math.Vec3, bool) {
	vec := p2.Sub(p1)
	if stdmath.Abs(pl.Normal.Dot(vec.Normalize())) <= pl.settings.DotThreshold {
		return math.Vec3{}, false
	}

	denom := pl.Normal.Dot(vec)
	if denom == 0 {
		return math.Vec3{}, false
	}
	numPart := pl.Normal.Dot(p1) + pl.D
	point := p1.Sub(vec.Scale(numPart / denom))

	if !pl.Box.ContainsPoint(point) {
		return math.Vec3{}, false
	}
	if !NewAABB(p1, p2).ExpandByScalar(segmentPadding).ContainsPoint(point) {
		return math.Vec3{}, false
	}
	return point, true
}

// NormalIntersect returns where the line through p along the plane normal
// meets the plane. A plane without a normal returns p.
func (pl *Plane) NormalIntersect(p math.Vec3) math.Vec3 {
	denom := pl.Normal.Dot(pl.Normal)
	if denom == 0 {
		return p
	}
	numPart := pl.Normal.Dot(p) + pl.D
	return p.Sub(pl.Normal.Scale(numPart / denom))
}

// NormalIntersect2D moves p horizontally along the plane normal's XZ
// direction until it meets the infinite plane, keeping p's Y. It reports
// false for horizontal planes.
func (pl *Plane) NormalIntersect2D(p math.Vec3) (math.Vec3, bool) {
	denom := pl.Normal.X*pl.Normal.X + pl.Normal.Z*pl.Normal.Z
	if denom == 0 {
		return math.Vec3{}, false
	}
	numPart := pl.Normal.Dot(p) + pl.D
	return math.Vec3{
		X: p.X - pl.Normal.X*numPart/denom,
		Y: p.Y,
		Z: p.Z - pl.Normal.Z*numPart/denom,
	}, true
}

// PerpendicularNormals returns the horizontal directions to the right and
// left of the plane normal.
func (pl *Plane) PerpendicularNormals() (right, left math.Vec3) {
	right = math.Vec3{X: -pl.Normal.Z, Y: 0, Z: pl.Normal.X}
	left = math.Vec3{X: pl.Normal.Z, Y: 0, Z: -pl.Normal.X}
	return right, left
}

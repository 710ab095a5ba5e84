package collider

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/Faultbox/walkmesh/pkg/math"
	"github.com/Faultbox/walkmesh/pkg/scene"
)

var (
	// ErrMissingGeometry is returned when a scene mesh carries no geometry.
	ErrMissingGeometry = errors.New("mesh has no geometry")
	// ErrMalformedGeometry wraps geometry validation failures.
	ErrMalformedGeometry = errors.New("malformed mesh geometry")
)

// Ceiling is the highest surface at or above a point inside a mesh.
type Ceiling struct {
	Y     float64
	Plane *Plane
}

// Intersection is a point where a query segment meets a mesh plane.
type Intersection struct {
	Point    math.Vec3
	Plane    *Plane
	Distance float64
}

// Mesh is a collision body: a set of planes with rotation and scale baked
// in, positioned in the world by a translation.
//
// A Mesh never changes shape or position once built, so queries may run
// on it without locking. Moving produces a new Mesh sharing the planes.
// Only the enabled flag is mutable.
type Mesh struct {
	id      string
	name    string
	isFloor bool
	enabled atomic.Bool

	planes    []Plane
	box       Box
	transform *Transformer
}

// NewMesh builds a collision mesh from a scene mesh.
func NewMesh(src *scene.Mesh, params MeshParams, settings PlaneSettings) (*Mesh, error) {
	if src == nil || src.Geometry == nil {
		return nil, ErrMissingGeometry
	}
	if err := src.Geometry.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedGeometry, src.Name, err)
	}
	if err := src.Transform.Rotation.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", src.Name, err)
	}

	m := &Mesh{
		id:        src.ID,
		name:      src.Name,
		isFloor:   params.IsFloor,
		transform: NewTransformer(src.Transform),
	}
	m.enabled.Store(!params.Disabled)

	m.generatePlanes(src.Geometry, settings)
	m.conformPlanes()

	return m, nil
}

func (m *Mesh) generatePlanes(geo *scene.Geometry, settings PlaneSettings) {
	m.planes = make([]Plane, 0, geo.TriangleCount())
	for i := 0; i < geo.TriangleCount(); i++ {
		v, n := geo.Triangle(i)
		m.planes = append(m.planes, NewPlane(v[0], v[1], v[2], n[0], n[1], n[2], settings))
	}
}

// conformPlanes bakes scale then rotation into the planes and rebuilds
// the bounding box.
func (m *Mesh) conformPlanes() {
	if !m.transform.IsDefaultScale() {
		for i := range m.planes {
			m.planes[i] = m.transform.BakeScale(m.planes[i])
		}
	}
	if !m.transform.IsDefaultRotation() {
		for i := range m.planes {
			m.planes[i] = m.transform.BakeRotation(m.planes[i])
		}
	}

	points := make([]math.Vec3, 0, len(m.planes)*3)
	for i := range m.planes {
		points = append(points, m.planes[i].P1, m.planes[i].P2, m.planes[i].P3)
	}
	m.box = NewBox(points)
	m.box.SetPosition(m.transform.Position())
}

// ID returns the source mesh identifier.
func (m *Mesh) ID() string { return m.id }

// Name returns the source mesh name.
func (m *Mesh) Name() string { return m.name }

// IsFloor reports whether the mesh is walkable ground.
func (m *Mesh) IsFloor() bool { return m.isFloor }

// PlaneCount returns the number of triangles.
func (m *Mesh) PlaneCount() int { return len(m.planes) }

// Planes returns the baked planes. The slice must not be modified.
func (m *Mesh) Planes() []Plane { return m.planes }

// Box returns a copy of the mesh bounds.
func (m *Mesh) Box() Box { return m.box }

// Position returns the mesh translation.
func (m *Mesh) Position() math.Vec3 { return m.transform.Position() }

// WithPosition returns a copy of the mesh translated to p. The receiver
// is left untouched, so callers still holding it keep a consistent view.
func (m *Mesh) WithPosition(p math.Vec3) *Mesh {
	tr := *m.transform
	tr.SetPosition(p)

	moved := &Mesh{
		id:        m.id,
		name:      m.name,
		isFloor:   m.isFloor,
		planes:    m.planes,
		box:       m.box,
		transform: &tr,
	}
	moved.enabled.Store(m.Enabled())
	moved.box.SetPosition(p)
	return moved
}

// Enable turns collisions on.
func (m *Mesh) Enable() { m.enabled.Store(true) }

// Disable turns collisions off. A disabled mesh collides with nothing.
func (m *Mesh) Disable() { m.enabled.Store(false) }

// Enabled reports whether the mesh takes part in collisions.
func (m *Mesh) Enabled() bool { return m.enabled.Load() }

// Collides reports whether point lies inside the mesh.
//
// A first pass culls, for every plane the point is below, each other plane
// lying entirely above it. The point is inside when it is below or on
// every plane that survives.
func (m *Mesh) Collides(point math.Vec3) bool {
	if !m.Enabled() || !m.box.ContainsPoint(point) {
		return false
	}

	p := m.transform.ToLocal(point)
	culled := make([]bool, len(m.planes))

	for i := range m.planes {
		if culled[i] || !m.planes[i].IsPointBelowOrEqual(p) {
			continue
		}
		for j := range m.planes {
			if j != i && !culled[j] && m.planes[i].IsPlaneAbove(&m.planes[j]) {
				culled[j] = true
			}
		}
	}

	for i := range m.planes {
		if !culled[i] && !m.planes[i].IsPointBelowOrEqual(p) {
			return false
		}
	}
	return true
}

// CeilingPlane returns the highest plane directly above or at point whose
// underside the point is on.
func (m *Mesh) CeilingPlane(point math.Vec3) (Ceiling, bool) {
	p := m.transform.ToLocal(point)

	var best Ceiling
	found := false
	for i := range m.planes {
		pl := &m.planes[i]
		if !pl.ContainsPoint2D(p) || !pl.ProjectedTriangleContainsPoint2D(p) || !pl.IsPointBelowOrEqual(p) {
			continue
		}
		y, ok := pl.Y(p.X, p.Z)
		if !ok || y < p.Y {
			continue
		}
		if !found || y > best.Y {
			best = Ceiling{Y: y, Plane: pl}
			found = true
		}
	}

	if !found {
		return Ceiling{}, false
	}
	best.Y = m.transform.ToWorldY(best.Y)
	return best, true
}

// IntersectPlane returns the plane crossing segment p1-p2 nearest to p1.
func (m *Mesh) IntersectPlane(p1, p2 math.Vec3) (Intersection, bool) {
	tp1 := m.transform.ToLocal(p1)
	tp2 := m.transform.ToLocal(p2)
	box := NewAABB(tp1, tp2)

	var best Intersection
	found := false
	for i := range m.planes {
		pl := &m.planes[i]
		if !pl.IntersectsBox(box) && !pl.ContainsBox(box) {
			continue
		}
		point, ok := pl.Intersect(tp1, tp2)
		if !ok {
			continue
		}
		if d := tp1.Distance(point); !found || d < best.Distance {
			best = Intersection{Point: point, Plane: pl, Distance: d}
			found = true
		}
	}

	if !found {
		return Intersection{}, false
	}
	best.Point = m.transform.ToWorld(best.Point)
	return best, true
}

// IntersectPlane2D returns the horizontal push-out point nearest to p2
// among planes near segment p1-p2.
func (m *Mesh) IntersectPlane2D(p1, p2 math.Vec3) (Intersection, bool) {
	tp1 := m.transform.ToLocal(p1)
	tp2 := m.transform.ToLocal(p2)
	box := NewAABB(tp1, tp2).ExpandByScalar(segmentPadding)

	var best Intersection
	found := false
	for i := range m.planes {
		pl := &m.planes[i]
		if !pl.IntersectsBox(box) && !pl.ContainsBox(box) {
			continue
		}
		point, ok := pl.NormalIntersect2D(tp2)
		if !ok {
			continue
		}
		if d := tp2.Distance(point); !found || d < best.Distance {
			best = Intersection{Point: point, Plane: pl, Distance: d}
			found = true
		}
	}

	if !found {
		return Intersection{}, false
	}
	best.Point = m.transform.ToWorld(best.Point)
	return best, true
}

// Projected projects a world point onto one of the mesh's planes.
func (m *Mesh) Projected(point math.Vec3, pl *Plane) math.Vec3 {
	return m.transform.ToWorld(pl.Projected(m.transform.ToLocal(point)))
}

// DistanceTo returns the distance from the mesh's box centre to point.
func (m *Mesh) DistanceTo(point math.Vec3) float64 {
	return m.box.DistanceTo(point)
}

// InsideFloorBounds reports whether point is within the mesh footprint
// and not above its top.
func (m *Mesh) InsideFloorBounds(point math.Vec3) bool {
	if !m.Enabled() {
		return false
	}
	p := m.transform.ToLocal(point)
	local := m.box.Local()
	return local.ContainsPointXZ(p) && p.Y <= local.Max.Y
}

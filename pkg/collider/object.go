package collider

import "github.com/Faultbox/walkmesh/pkg/math"

// overhangNormalY marks planes struck from below, such as a low ceiling
// hit while jumping.
const overhangNormalY = -0.5

// ceilingJumpDamping scales upward motion after hitting an overhang.
const ceilingJumpDamping = 0.75

// Object is a moving point that collides against a System. Position and
// Motion are live state owned by the caller's controller.
type Object struct {
	Position math.Vec3
	Motion   math.Vec3

	settings Settings
	system   *System
	falling  bool
}

// NewObject creates an unbound object at the origin.
func NewObject(settings Settings) *Object {
	return &Object{settings: settings}
}

// Bind attaches the object to a system. A nil system makes the object
// inert.
func (o *Object) Bind(s *System) { o.system = s }

// System returns the bound system.
func (o *Object) System() *System { return o.system }

// Settings returns the movement settings.
func (o *Object) Settings() Settings { return o.settings }

// SetSettings replaces the movement settings.
func (o *Object) SetSettings(s Settings) { o.settings = s }

// Collide advances the object by delta seconds: integrate motion and
// gravity, resolve slopes, steps and walls, clamp to the floor, commit.
func (o *Object) Collide(delta float64) {
	if o.system == nil {
		return
	}

	p := o.Position.Add(o.Motion.Scale(delta))
	if o.settings.Noclip {
		o.Position = p
		return
	}

	o.falling = o.Motion.Y < 0
	o.Motion.Y = max(o.Motion.Y-o.settings.Gravity*delta, -o.settings.MaxVelocity)

	if collisions := o.system.Collisions(p); len(collisions) > 0 {
		var stepped, extruded bool
		if p, stepped = o.StepUpSlopes(p, collisions); stepped {
			collisions = o.system.Collisions(p)
		}
		if p, extruded = o.ExtrudeFrom(p, collisions); extruded {
			p, _ = o.StepUpSlopes(p, o.system.Collisions(p))
		}
	} else if o.Motion.Y < 0 && !o.falling {
		probe := p.WithY(p.Y - o.settings.SnapDown)
		if c, ok := o.system.CeilingPlane(probe); ok {
			p, _ = o.StepDownSlope(p, c)
		}
	}

	if floor := o.system.Floor(p); p.Y < floor {
		o.Motion.Y = 0
		p.Y = floor
	}

	o.Position = p
}

// walkable reports whether a ceiling can be stood on from the current
// position: shallow enough and within step height.
func (o *Object) walkable(c Ceiling) bool {
	return c.Plane.Normal.Y >= o.settings.MinSlope && c.Y-o.Position.Y <= o.settings.SnapUp
}

// StepUpSlopes lifts point onto the highest walkable ceiling among meshes
// and reports whether it moved. A point already on its ceiling has landed:
// vertical motion is stopped but no step is reported.
func (o *Object) StepUpSlopes(point math.Vec3, meshes []*Mesh) (math.Vec3, bool) {
	stepped := false
	for _, m := range meshes {
		c, ok := m.CeilingPlane(point)
		if !ok || !o.walkable(c) {
			continue
		}
		switch {
		case c.Y > point.Y:
			point.Y = c.Y
			o.Motion.Y = 0
			stepped = true
		case c.Y == point.Y:
			o.Motion.Y = 0
		}
	}
	return point, stepped
}

// StepDownSlope snaps point down onto a walkable ceiling found below it.
func (o *Object) StepDownSlope(point math.Vec3, c Ceiling) (math.Vec3, bool) {
	if c.Plane == nil || c.Plane.Normal.Y < o.settings.MinSlope {
		return point, false
	}
	point.Y = c.Y
	o.Motion.Y = 0
	return point, true
}

// ValidCollisions counts the meshes at point that block movement: their
// ceiling is too steep to walk or too high to step onto.
func (o *Object) ValidCollisions(point math.Vec3, meshes []*Mesh) int {
	hits := 0
	for _, m := range meshes {
		if c, ok := m.CeilingPlane(point); ok && !o.walkable(c) {
			hits++
		}
	}
	return hits
}

// ExtrudeFrom pushes point out of the first blocking mesh along the path
// from the current position and reports whether it was pushed.
//
// When more than one blocking mesh remains after the push the object is
// treated as cornered and keeps its previous XZ. This catches two-wall
// corners only; concave pockets bounded by more faces are not resolved
// and simply stop horizontal motion.
func (o *Object) ExtrudeFrom(point math.Vec3, meshes []*Mesh) (math.Vec3, bool) {
	var blocking *Mesh
	for _, m := range meshes {
		if c, ok := m.CeilingPlane(point); ok && !o.walkable(c) {
			blocking = m
			break
		}
	}
	if blocking == nil {
		return point, false
	}

	hit, ok := blocking.IntersectPlane2D(o.Position, point)
	if !ok {
		return o.holdXZ(point), false
	}

	if hit.Plane.Normal.Y < overhangNormalY {
		proj := blocking.Projected(point, hit.Plane)
		if o.ValidCollisions(proj, o.system.Collisions(proj)) > 1 {
			return o.holdXZ(point), false
		}
		if o.Motion.Y > 0 {
			o.Motion.Y *= ceilingJumpDamping
		}
		return proj, true
	}

	point.X, point.Z = hit.Point.X, hit.Point.Z
	if o.ValidCollisions(point, o.system.Collisions(point)) > 1 {
		return o.holdXZ(point), false
	}
	return point, true
}

func (o *Object) holdXZ(point math.Vec3) math.Vec3 {
	point.X, point.Z = o.Position.X, o.Position.Z
	return point
}

package scene

import "github.com/Faultbox/walkmesh/pkg/math"

// builder accumulates a flat (non-indexed) triangle buffer.
type builder struct {
	positions []float64
	normals   []float64
}

func (b *builder) vertex(p, n math.Vec3) {
	b.positions = append(b.positions, p.X, p.Y, p.Z)
	b.normals = append(b.normals, n.X, n.Y, n.Z)
}

// tri appends a triangle wound counter-clockwise around n.
func (b *builder) tri(p1, p2, p3, n math.Vec3) {
	if p2.Sub(p1).Cross(p3.Sub(p1)).Dot(n) < 0 {
		p2, p3 = p3, p2
	}
	b.vertex(p1, n)
	b.vertex(p2, n)
	b.vertex(p3, n)
}

// quad appends two triangles for four corners given in cyclic order.
func (b *builder) quad(p1, p2, p3, p4, n math.Vec3) {
	if p2.Sub(p1).Cross(p3.Sub(p1)).Dot(n) < 0 {
		p2, p4 = p4, p2
	}
	b.tri(p1, p2, p3, n)
	b.tri(p1, p3, p4, n)
}

func (b *builder) geometry() *Geometry {
	return &Geometry{Positions: b.positions, Normals: b.normals}
}

// BoxGeometry returns a closed box of the given size centred on the origin.
func BoxGeometry(size math.Vec3) *Geometry {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	v := math.V3
	var b builder

	b.quad(v(hx, -hy, -hz), v(hx, hy, -hz), v(hx, hy, hz), v(hx, -hy, hz), v(1, 0, 0))
	b.quad(v(-hx, -hy, -hz), v(-hx, -hy, hz), v(-hx, hy, hz), v(-hx, hy, -hz), v(-1, 0, 0))
	b.quad(v(-hx, hy, -hz), v(-hx, hy, hz), v(hx, hy, hz), v(hx, hy, -hz), v(0, 1, 0))
	b.quad(v(-hx, -hy, -hz), v(hx, -hy, -hz), v(hx, -hy, hz), v(-hx, -hy, hz), v(0, -1, 0))
	b.quad(v(-hx, -hy, hz), v(hx, -hy, hz), v(hx, hy, hz), v(-hx, hy, hz), v(0, 0, 1))
	b.quad(v(-hx, -hy, -hz), v(-hx, hy, -hz), v(hx, hy, -hz), v(hx, -hy, -hz), v(0, 0, -1))

	return b.geometry()
}

// RampGeometry returns a closed wedge occupying x in [0, length],
// y in [0, height] and z in [-depth/2, depth/2]. The sloped face rises
// along +X and the tall end is a vertical face at x = length.
func RampGeometry(length, height, depth float64) *Geometry {
	hz := depth / 2
	v := math.V3
	slope := v(-height, length, 0).Normalize()
	var b builder

	b.quad(v(0, 0, -hz), v(length, 0, -hz), v(length, 0, hz), v(0, 0, hz), v(0, -1, 0))
	b.quad(v(0, 0, -hz), v(0, 0, hz), v(length, height, hz), v(length, height, -hz), slope)
	b.quad(v(length, 0, -hz), v(length, height, -hz), v(length, height, hz), v(length, 0, hz), v(1, 0, 0))
	b.tri(v(0, 0, -hz), v(length, height, -hz), v(length, 0, -hz), v(0, 0, -1))
	b.tri(v(0, 0, hz), v(length, 0, hz), v(length, height, hz), v(0, 0, 1))

	return b.geometry()
}

// GridGeometry returns an indexed, upward-facing flat grid at y = 0 centred
// on the origin, split into segX by segZ cells of two triangles each.
func GridGeometry(width, depth float64, segX, segZ int) *Geometry {
	if segX < 1 {
		segX = 1
	}
	if segZ < 1 {
		segZ = 1
	}

	geo := &Geometry{}
	for j := 0; j <= segZ; j++ {
		z := -depth/2 + depth*float64(j)/float64(segZ)
		for i := 0; i <= segX; i++ {
			x := -width/2 + width*float64(i)/float64(segX)
			geo.Positions = append(geo.Positions, x, 0, z)
			geo.Normals = append(geo.Normals, 0, 1, 0)
		}
	}

	row := uint32(segX + 1)
	for j := 0; j < segZ; j++ {
		for i := 0; i < segX; i++ {
			v00 := uint32(j)*row + uint32(i)
			v10 := v00 + 1
			v01 := v00 + row
			v11 := v01 + 1
			geo.Index = append(geo.Index, v00, v01, v11, v00, v11, v10)
		}
	}
	return geo
}

// NewBox creates a box mesh centred on the transform's position.
func NewBox(name string, size math.Vec3, tf Transform) *Mesh {
	return NewMesh(name, BoxGeometry(size), tf)
}

// NewRamp creates a wedge mesh; see RampGeometry.
func NewRamp(name string, length, height, depth float64, tf Transform) *Mesh {
	return NewMesh(name, RampGeometry(length, height, depth), tf)
}

// NewPlane creates a single-cell upward-facing plane at y = 0.
func NewPlane(name string, width, depth float64, tf Transform) *Mesh {
	return NewMesh(name, GridGeometry(width, depth, 1, 1), tf)
}

// NewGrid creates a segmented upward-facing plane at y = 0.
func NewGrid(name string, width, depth float64, segX, segZ int, tf Transform) *Mesh {
	return NewMesh(name, GridGeometry(width, depth, segX, segZ), tf)
}

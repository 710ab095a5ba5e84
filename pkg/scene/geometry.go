package scene

import (
	"errors"
	"fmt"

	"github.com/Faultbox/walkmesh/pkg/math"
)

var (
	ErrNoPositions     = errors.New("geometry has no positions")
	ErrNormalsMismatch = errors.New("normal buffer does not match position buffer")
	ErrNotTriangulated = errors.New("geometry is not triangulated")
	ErrIndexOutOfRange = errors.New("index references a missing vertex")
)

// Geometry is a triangle buffer. Positions and Normals hold xyz triples per
// vertex. When Index is empty every nine position values form one triangle;
// otherwise every three indices do.
type Geometry struct {
	Positions []float64 `yaml:"positions" toml:"positions"`
	Normals   []float64 `yaml:"normals" toml:"normals"`
	Index     []uint32  `yaml:"index,omitempty" toml:"index,omitempty"`
}

// Indexed reports whether triangles are read through Index.
func (g *Geometry) Indexed() bool {
	return len(g.Index) > 0
}

// VertexCount returns the number of vertices in the position buffer.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// TriangleCount returns the number of triangles described by the buffers.
func (g *Geometry) TriangleCount() int {
	if g.Indexed() {
		return len(g.Index) / 3
	}
	return len(g.Positions) / 9
}

// Validate checks that the buffers describe whole triangles.
func (g *Geometry) Validate() error {
	if len(g.Positions) == 0 {
		return ErrNoPositions
	}
	if len(g.Positions)%3 != 0 {
		return fmt.Errorf("%w: %d position values", ErrNotTriangulated, len(g.Positions))
	}
	if len(g.Normals) != len(g.Positions) {
		return fmt.Errorf("%w: %d normals for %d positions", ErrNormalsMismatch, len(g.Normals), len(g.Positions))
	}

	if !g.Indexed() {
		if len(g.Positions)%9 != 0 {
			return fmt.Errorf("%w: %d vertices", ErrNotTriangulated, g.VertexCount())
		}
		return nil
	}

	if len(g.Index)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrNotTriangulated, len(g.Index))
	}
	n := uint32(g.VertexCount())
	for i, idx := range g.Index {
		if idx >= n {
			return fmt.Errorf("%w: index[%d]=%d, %d vertices", ErrIndexOutOfRange, i, idx, n)
		}
	}
	return nil
}

// Triangle returns the vertices and vertex normals of triangle i.
// The geometry must be valid.
func (g *Geometry) Triangle(i int) (verts [3]math.Vec3, norms [3]math.Vec3) {
	for k := 0; k < 3; k++ {
		v := i*3 + k
		if g.Indexed() {
			v = int(g.Index[i*3+k])
		}
		verts[k] = g.vec(g.Positions, v)
		norms[k] = g.vec(g.Normals, v)
	}
	return verts, norms
}

// Points returns every vertex position.
func (g *Geometry) Points() []math.Vec3 {
	points := make([]math.Vec3, 0, g.VertexCount())
	for v := 0; v < g.VertexCount(); v++ {
		points = append(points, g.vec(g.Positions, v))
	}
	return points
}

func (g *Geometry) vec(buf []float64, v int) math.Vec3 {
	return math.Vec3{X: buf[v*3], Y: buf[v*3+1], Z: buf[v*3+2]}
}

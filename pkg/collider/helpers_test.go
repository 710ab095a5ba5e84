package collider

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/walkmesh/pkg/math"
	"github.com/Faultbox/walkmesh/pkg/scene"
)

// prismGeometry extrudes a counter-clockwise XY polygon along Z from z0
// to z1. tris triangulates the polygon by vertex index.
func prismGeometry(poly [][2]float64, tris [][3]int, z0, z1 float64) *scene.Geometry {
	geo := &scene.Geometry{}
	add := func(p, n math.Vec3) {
		geo.Positions = append(geo.Positions, p.X, p.Y, p.Z)
		geo.Normals = append(geo.Normals, n.X, n.Y, n.Z)
	}
	vert := func(i int, z float64) math.Vec3 {
		return math.V3(poly[i][0], poly[i][1], z)
	}

	for _, t := range tris {
		front, back := math.V3(0, 0, 1), math.V3(0, 0, -1)
		add(vert(t[0], z1), front)
		add(vert(t[1], z1), front)
		add(vert(t[2], z1), front)
		add(vert(t[0], z0), back)
		add(vert(t[2], z0), back)
		add(vert(t[1], z0), back)
	}

	for i := range poly {
		j := (i + 1) % len(poly)
		dx, dy := poly[j][0]-poly[i][0], poly[j][1]-poly[i][1]
		n := math.V3(dy, -dx, 0).Normalize()
		a, b, c, d := vert(i, z0), vert(j, z0), vert(j, z1), vert(i, z1)
		add(a, n)
		add(b, n)
		add(c, n)
		add(a, n)
		add(c, n)
		add(d, n)
	}
	return geo
}

// lPrism is the union of [0,2]x[0,1] and [0,1]x[1,2] in XY, z in [0,1].
// The notch [1,2]x[1,2] is outside the solid.
func lPrism() *scene.Mesh {
	poly := [][2]float64{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}}
	tris := [][3]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}, {0, 4, 5}}
	return scene.NewMesh("l-prism", prismGeometry(poly, tris, 0, 1), scene.Identity())
}

// wallBox returns a box spanning the given X and Z ranges and y in [-1, 3].
func wallBox(name string, x0, x1, z0, z1 float64) *scene.Mesh {
	size := math.V3(x1-x0, 4, z1-z0)
	return scene.NewBox(name, size, scene.At((x0+x1)/2, 1, (z0+z1)/2))
}

func newTestMesh(t *testing.T, src *scene.Mesh, params MeshParams) *Mesh {
	t.Helper()
	m, err := NewMesh(src, params, DefaultPlaneSettings())
	require.NoError(t, err)
	return m
}

func newTestSystem(t *testing.T, nodes ...scene.Node) *System {
	t.Helper()
	s := NewSystem(DefaultConfig())
	for _, n := range nodes {
		require.NoError(t, s.Add(n, MeshParams{}))
	}
	return s
}

package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/walkmesh/pkg/math"
)

// windingAgrees reports whether every triangle's right-hand normal points
// the same way as its vertex normals.
func windingAgrees(geo *Geometry) bool {
	for i := 0; i < geo.TriangleCount(); i++ {
		v, n := geo.Triangle(i)
		face := v[1].Sub(v[0]).Cross(v[2].Sub(v[0]))
		if face.Dot(n[0]) <= 0 {
			return false
		}
	}
	return true
}

func TestPrimitiveGeometry(t *testing.T) {
	tests := []struct {
		name      string
		geo       *Geometry
		triangles int
	}{
		{"box", BoxGeometry(math.V3(1, 2, 3)), 12},
		{"ramp", RampGeometry(2, 1, 4), 8},
		{"grid", GridGeometry(4, 4, 3, 2), 12},
		{"plane", GridGeometry(4, 4, 1, 1), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.geo.Validate())
			assert.Equal(t, tt.triangles, tt.geo.TriangleCount())
			assert.True(t, windingAgrees(tt.geo), "triangles must wind around their normals")
		})
	}
}

func TestRampSlopeNormal(t *testing.T) {
	geo := RampGeometry(2, 2, 2)
	found := false
	for i := 0; i < geo.TriangleCount(); i++ {
		_, n := geo.Triangle(i)
		if n[0].X < 0 && n[0].Y > 0 {
			found = true
			assert.InDelta(t, -0.7071, n[0].X, 1e-4)
			assert.InDelta(t, 0.7071, n[0].Y, 1e-4)
		}
	}
	assert.True(t, found, "ramp should have a sloped face")
}

func TestGridClampsSegments(t *testing.T) {
	geo := GridGeometry(1, 1, 0, -3)
	assert.Equal(t, 2, geo.TriangleCount())
}

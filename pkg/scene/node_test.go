package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/walkmesh/pkg/math"
)

func TestFlattenPreservesOrder(t *testing.T) {
	a := NewBox("a", math.V3(1, 1, 1), Identity())
	b := NewBox("b", math.V3(1, 1, 1), Identity())
	c := NewBox("c", math.V3(1, 1, 1), Identity())
	d := NewBox("d", math.V3(1, 1, 1), Identity())

	root := NewGroup("root",
		a,
		NewGroup("inner", b, NewGroup("deep", c)),
		NewGroup("empty"),
		d,
	)

	var names []string
	for _, m := range Flatten(root) {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, names)
}

func TestFlattenSingleMesh(t *testing.T) {
	m := NewPlane("floor", 2, 2, Identity())
	assert.Equal(t, []*Mesh{m}, Flatten(m))
}

func TestFlattenNil(t *testing.T) {
	var g *Group
	assert.Empty(t, Flatten(g))
	assert.Empty(t, Flatten(nil))
}

func TestNewMeshUniqueIDs(t *testing.T) {
	a := NewMesh("a", nil, Identity())
	b := NewMesh("a", nil, Identity())
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEmpty(t, a.ID)
}

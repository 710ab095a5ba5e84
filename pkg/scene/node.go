// Package scene describes the renderable geometry handed to the collider:
// triangle meshes with a transform, grouped into hierarchies.
package scene

import (
	"fmt"
	"sync/atomic"
)

// Node is either a *Mesh or a *Group.
type Node interface {
	NodeName() string
	isNode()
}

// Mesh is a triangle buffer placed in the world by a transform.
type Mesh struct {
	ID        string
	Name      string
	Geometry  *Geometry
	Transform Transform
}

// Group holds child nodes. Groups carry no transform of their own.
type Group struct {
	Name     string
	Children []Node
}

var meshSeq atomic.Uint64

// NewMesh creates a mesh with a process-unique ID.
func NewMesh(name string, geo *Geometry, tf Transform) *Mesh {
	return &Mesh{
		ID:        fmt.Sprintf("mesh-%d", meshSeq.Add(1)),
		Name:      name,
		Geometry:  geo,
		Transform: tf,
	}
}

// NewGroup creates a group with the given children.
func NewGroup(name string, children ...Node) *Group {
	return &Group{Name: name, Children: children}
}

// NodeName returns the mesh name.
func (m *Mesh) NodeName() string { return m.Name }

// NodeName returns the group name.
func (g *Group) NodeName() string { return g.Name }

func (*Mesh) isNode()  {}
func (*Group) isNode() {}

// Add appends children to the group.
func (g *Group) Add(children ...Node) {
	g.Children = append(g.Children, children...)
}

// Walk calls fn for every mesh under n, depth-first in encounter order.
func Walk(n Node, fn func(*Mesh)) {
	switch v := n.(type) {
	case *Mesh:
		if v != nil {
			fn(v)
		}
	case *Group:
		if v == nil {
			return
		}
		for _, child := range v.Children {
			Walk(child, fn)
		}
	}
}

// Flatten returns every mesh under n, depth-first in encounter order.
func Flatten(n Node) []*Mesh {
	var meshes []*Mesh
	Walk(n, func(m *Mesh) {
		meshes = append(meshes, m)
	})
	return meshes
}

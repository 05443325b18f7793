// Package scene holds the mutable 3D scene graph the direction engine
// operates on. Construction happens host-side (see internal/data); the
// executors only resolve names and mutate transforms/materials.
//
// No locking: all mutation flows through the engine's sequential dispatch.
package scene

// Material is the surface description animation commands touch.
// Lit marks a standard shaded material; color animation requires it.
type Material struct {
	Color       Color
	Opacity     float64
	Transparent bool
	Lit         bool
	Emissive    Color
}

// NewMaterial returns an opaque, lit, white material.
func NewMaterial() *Material {
	return &Material{
		Color:   Color{1, 1, 1},
		Opacity: 1,
		Lit:     true,
	}
}

// Node is one object in the scene graph. Names are not required to be
// unique; lookup returns the first depth-first match.
type Node struct {
	Name     string
	Position Vec3
	Rotation Vec3 // euler radians
	Scale    Vec3
	Material *Material
	IsMesh   bool

	Children []*Node
	parent   *Node
}

// NewNode creates an empty (non-mesh) node with unit scale.
func NewNode(name string) *Node {
	return &Node{
		Name:  name,
		Scale: Vec3{1, 1, 1},
	}
}

// NewMesh creates a mesh node with a default material.
func NewMesh(name string) *Node {
	n := NewNode(name)
	n.IsMesh = true
	n.Material = NewMaterial()
	return n
}

// AddChild attaches a child and records its parent link.
func (n *Node) AddChild(child *Node) *Node {
	child.parent = n
	n.Children = append(n.Children, child)
	return child
}

// Parent returns the parent node, nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// FindByName resolves a name by exact-match depth-first search, the
// receiver included. First match wins; duplicate names are the caller's
// responsibility. Returns nil when absent.
func (n *Node) FindByName(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.FindByName(name); found != nil {
			return found
		}
	}
	return nil
}

// WorldPosition sums translations up the parent chain. Parent rotations
// and scales are not composed — the engine's commands only ever move
// whole objects, so plain translation stacking is what focus/explode need.
func (n *Node) WorldPosition() Vec3 {
	pos := n.Position
	for p := n.parent; p != nil; p = p.parent {
		pos = pos.Add(p.Position)
	}
	return pos
}

// EachMesh walks the subtree depth-first and calls fn for every mesh node.
func (n *Node) EachMesh(fn func(*Node)) {
	if n.IsMesh {
		fn(n)
	}
	for _, c := range n.Children {
		c.EachMesh(fn)
	}
}

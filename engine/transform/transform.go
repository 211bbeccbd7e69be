package transform

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/entity"
)

type node struct {
	local  mgl32.Mat4
	parent entity.Entity
}

// manager is the implementation of the Manager interface.
type manager struct {
	nodes map[entity.Entity]*node
}

// Manager owns the transform component of each entity: a local matrix and an optional
// parent. World matrices are composed on demand as parent world × local.
// Not safe for concurrent use.
type Manager interface {
	// Create attaches a transform component to e. An existing component is replaced.
	//
	// Parameters:
	//   - e: the entity
	//   - local: the local transform
	//   - parent: the parent entity, or entity.Null for a root
	Create(e entity.Entity, local mgl32.Mat4, parent entity.Entity)

	// Destroy detaches the transform component from e. Children keep their local
	// transforms and become roots.
	//
	// Parameters:
	//   - e: the entity
	//
	// Returns:
	//   - bool: true if a component was removed
	Destroy(e entity.Entity) bool

	// Has reports whether e has a transform component.
	Has(e entity.Entity) bool

	// Transform returns the local transform of e, or identity if e has no component.
	//
	// Parameters:
	//   - e: the entity
	//
	// Returns:
	//   - mgl32.Mat4: the local transform
	Transform(e entity.Entity) mgl32.Mat4

	// SetTransform replaces the local transform of e. Entities without a component get a
	// root component.
	//
	// Parameters:
	//   - e: the entity
	//   - local: the new local transform
	SetTransform(e entity.Entity, local mgl32.Mat4)

	// WorldTransform composes the world transform of e from its ancestors.
	//
	// Parameters:
	//   - e: the entity
	//
	// Returns:
	//   - mgl32.Mat4: the world transform
	WorldTransform(e entity.Entity) mgl32.Mat4

	// Parent returns the parent of e, or entity.Null.
	Parent(e entity.Entity) entity.Entity
}

var _ Manager = &manager{}

// NewManager creates an empty transform manager.
//
// Returns:
//   - Manager: the new manager
func NewManager() Manager {
	return &manager{
		nodes: make(map[entity.Entity]*node),
	}
}

func (m *manager) Create(e entity.Entity, local mgl32.Mat4, parent entity.Entity) {
	m.nodes[e] = &node{local: local, parent: parent}
}

func (m *manager) Destroy(e entity.Entity) bool {
	if _, ok := m.nodes[e]; !ok {
		return false
	}
	delete(m.nodes, e)
	for _, n := range m.nodes {
		if n.parent == e {
			n.parent = entity.Null
		}
	}
	return true
}

func (m *manager) Has(e entity.Entity) bool {
	_, ok := m.nodes[e]
	return ok
}

func (m *manager) Transform(e entity.Entity) mgl32.Mat4 {
	if n, ok := m.nodes[e]; ok {
		return n.local
	}
	return mgl32.Ident4()
}

func (m *manager) SetTransform(e entity.Entity, local mgl32.Mat4) {
	if n, ok := m.nodes[e]; ok {
		n.local = local
		return
	}
	m.nodes[e] = &node{local: local}
}

func (m *manager) WorldTransform(e entity.Entity) mgl32.Mat4 {
	world := mgl32.Ident4()
	// depth bounded by the node count so a parent cycle cannot loop forever
	for depth := 0; depth <= len(m.nodes); depth++ {
		n, ok := m.nodes[e]
		if !ok {
			break
		}
		world = n.local.Mul4(world)
		if n.parent.IsNull() {
			break
		}
		e = n.parent
	}
	return world
}

func (m *manager) Parent(e entity.Entity) entity.Entity {
	if n, ok := m.nodes[e]; ok {
		return n.parent
	}
	return entity.Null
}

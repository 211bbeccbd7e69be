package renderable

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/entity"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/material"
)

// Instance is the registry handle of a renderable component. The zero value means the
// entity has no renderable component.
type Instance uint32

// Primitive is one draw of a renderable: a geometry range and the material bound to it.
type Primitive struct {
	Geometry   uint32 // uploaded geometry id, 0 if the geometry lives with the mesh loader
	IndexCount int
	Material   material.Instance
}

type component struct {
	entity         entity.Entity
	primitives     []Primitive
	bounds         geometry.BoundingBox
	castShadows    bool
	receiveShadows bool
	culling        bool
}

// manager is the implementation of the Manager interface.
type manager struct {
	next       Instance
	byEntity   map[entity.Entity]Instance
	components map[Instance]*component
}

// Manager is the renderable registry: it maps entities to renderable components and owns
// the per-primitive material slots and shadow flags of each component.
// Not safe for concurrent use; the sandbox runs single-threaded.
type Manager interface {
	// Create attaches a renderable component to e. Creating a component for an entity that
	// already has one replaces it.
	//
	// Parameters:
	//   - e: the entity
	//   - options: variadic list of RenderableBuilderOption functions
	//
	// Returns:
	//   - Instance: the component handle
	Create(e entity.Entity, options ...RenderableBuilderOption) Instance

	// Destroy detaches the renderable component from e.
	//
	// Parameters:
	//   - e: the entity
	//
	// Returns:
	//   - bool: true if a component was removed
	Destroy(e entity.Entity) bool

	// Instance looks up the component attached to e.
	//
	// Parameters:
	//   - e: the entity
	//
	// Returns:
	//   - Instance: the component handle, or 0
	//   - bool: false if e has no renderable component
	Instance(e entity.Entity) (Instance, bool)

	// PrimitiveCount returns the number of primitives of a component.
	//
	// Parameters:
	//   - i: the component handle
	//
	// Returns:
	//   - int: the primitive count
	PrimitiveCount(i Instance) int

	// Primitive returns a copy of one primitive.
	//
	// Parameters:
	//   - i: the component handle
	//   - index: the primitive index
	//
	// Returns:
	//   - Primitive: the primitive
	Primitive(i Instance, index int) Primitive

	// MaterialInstanceAt returns the material bound to a primitive.
	//
	// Parameters:
	//   - i: the component handle
	//   - index: the primitive index
	//
	// Returns:
	//   - material.Instance: the bound material, or nil
	MaterialInstanceAt(i Instance, index int) material.Instance

	// SetMaterialInstanceAt binds a material to a primitive, replacing the previous binding.
	//
	// Parameters:
	//   - i: the component handle
	//   - index: the primitive index
	//   - mi: the material instance
	SetMaterialInstanceAt(i Instance, index int, mi material.Instance)

	// CastShadows reports whether the component casts shadows.
	CastShadows(i Instance) bool

	// SetCastShadows sets whether the component casts shadows.
	//
	// Parameters:
	//   - i: the component handle
	//   - enabled: true to cast shadows
	SetCastShadows(i Instance, enabled bool)

	// ReceiveShadows reports whether the component receives shadows.
	ReceiveShadows(i Instance) bool

	// SetReceiveShadows sets whether the component receives shadows.
	//
	// Parameters:
	//   - i: the component handle
	//   - enabled: true to receive shadows
	SetReceiveShadows(i Instance, enabled bool)

	// Culling reports whether frustum culling is enabled for the component.
	Culling(i Instance) bool

	// Bounds returns the local-space bounding box of the component.
	Bounds(i Instance) geometry.BoundingBox

	// Count returns the number of live components.
	Count() int
}

var _ Manager = &manager{}

// NewManager creates an empty renderable registry.
//
// Returns:
//   - Manager: the new registry
func NewManager() Manager {
	return &manager{
		byEntity:   make(map[entity.Entity]Instance),
		components: make(map[Instance]*component),
	}
}

func (m *manager) Create(e entity.Entity, options ...RenderableBuilderOption) Instance {
	if old, ok := m.byEntity[e]; ok {
		delete(m.components, old)
	}
	c := &component{
		entity:         e,
		castShadows:    false,
		receiveShadows: true,
		culling:        true,
	}
	for _, opt := range options {
		opt(c)
	}

	m.next++
	m.byEntity[e] = m.next
	m.components[m.next] = c
	return m.next
}

func (m *manager) Destroy(e entity.Entity) bool {
	i, ok := m.byEntity[e]
	if !ok {
		return false
	}
	delete(m.byEntity, e)
	delete(m.components, i)
	return true
}

func (m *manager) Instance(e entity.Entity) (Instance, bool) {
	i, ok := m.byEntity[e]
	return i, ok
}

func (m *manager) PrimitiveCount(i Instance) int {
	return len(m.get(i).primitives)
}

func (m *manager) Primitive(i Instance, index int) Primitive {
	return m.get(i).primitives[index]
}

func (m *manager) MaterialInstanceAt(i Instance, index int) material.Instance {
	return m.get(i).primitives[index].Material
}

func (m *manager) SetMaterialInstanceAt(i Instance, index int, mi material.Instance) {
	m.get(i).primitives[index].Material = mi
}

func (m *manager) CastShadows(i Instance) bool {
	return m.get(i).castShadows
}

func (m *manager) SetCastShadows(i Instance, enabled bool) {
	m.get(i).castShadows = enabled
}

func (m *manager) ReceiveShadows(i Instance) bool {
	return m.get(i).receiveShadows
}

func (m *manager) SetReceiveShadows(i Instance, enabled bool) {
	m.get(i).receiveShadows = enabled
}

func (m *manager) Culling(i Instance) bool {
	return m.get(i).culling
}

func (m *manager) Bounds(i Instance) geometry.BoundingBox {
	return m.get(i).bounds
}

func (m *manager) Count() int {
	return len(m.components)
}

func (m *manager) get(i Instance) *component {
	c, ok := m.components[i]
	if !ok {
		panic(fmt.Sprintf("renderable: unknown instance %d", i))
	}
	return c
}

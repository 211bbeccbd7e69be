package loader

import (
	"github.com/Carmen-Shannon/oxy-sandbox/engine/entity"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/material"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderable"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/transform"
)

// MeshSet holds everything created while loading a batch of mesh files: the renderable
// entities (the shared root first, then one entity per mesh node) and the per-mesh-part
// material instances keyed by source material name.
//
// The two halves are released separately so callers can interleave them with other
// teardown steps: DestroyMaterials releases the mesh-part instances, Release destroys
// the entities and their components.
type MeshSet struct {
	entities   entity.Manager
	registry   renderable.Manager
	transforms transform.Manager
	uploader   Uploader

	renderables []entity.Entity
	geometry    []uint32
	materials   map[string]material.Instance
	order       []string
	primitives  int
	released    bool
}

func newMeshSet(entities entity.Manager, registry renderable.Manager, transforms transform.Manager, uploader Uploader) *MeshSet {
	return &MeshSet{
		entities:   entities,
		registry:   registry,
		transforms: transforms,
		uploader:   uploader,
		materials:  make(map[string]material.Instance),
	}
}

// Renderables returns the loaded entities. Index 0 is the root every mesh node is
// parented to; it has a transform but no primitives.
//
// Returns:
//   - []entity.Entity: a copy of the entity list
func (m *MeshSet) Renderables() []entity.Entity {
	return append([]entity.Entity(nil), m.renderables...)
}

// Root returns the shared root entity, or entity.Null for an empty set.
func (m *MeshSet) Root() entity.Entity {
	if len(m.renderables) == 0 {
		return entity.Null
	}
	return m.renderables[0]
}

// MaterialInstance returns the mesh-part instance created for a source material.
//
// Parameters:
//   - name: the source material name
//
// Returns:
//   - material.Instance: the instance
//   - bool: false if no material of that name was loaded
func (m *MeshSet) MaterialInstance(name string) (material.Instance, bool) {
	mi, ok := m.materials[name]
	return mi, ok
}

// MaterialNames returns the source material names in load order.
func (m *MeshSet) MaterialNames() []string {
	return append([]string(nil), m.order...)
}

// GeometryCount returns the number of uploaded primitive geometries the set still owns.
func (m *MeshSet) GeometryCount() int {
	return len(m.geometry)
}

// PrimitiveCount returns the total number of primitives across all renderables.
func (m *MeshSet) PrimitiveCount() int {
	return m.primitives
}

// DestroyMaterials releases every mesh-part material instance. Instances already
// destroyed are skipped.
//
// Returns:
//   - int: the number of instances released by this call
func (m *MeshSet) DestroyMaterials() int {
	n := 0
	for _, name := range m.order {
		if m.materials[name].Destroy() {
			n++
		}
	}
	return n
}

// Release destroys the renderable, transform and entity of every loaded entity, children
// before the root, then releases every uploaded geometry in reverse upload order.
// Calling it again has no effect.
//
// Returns:
//   - int: the number of entities destroyed by this call
func (m *MeshSet) Release() int {
	if m.released {
		return 0
	}
	m.released = true
	n := 0
	for i := len(m.renderables) - 1; i >= 0; i-- {
		e := m.renderables[i]
		m.registry.Destroy(e)
		m.transforms.Destroy(e)
		if m.entities.Destroy(e) {
			n++
		}
	}
	for i := len(m.geometry) - 1; i >= 0; i-- {
		m.uploader.ReleaseGeometry(m.geometry[i])
	}
	m.geometry = nil
	return n
}

// addGeometry records an uploaded geometry id. Id 0 means nothing was uploaded.
func (m *MeshSet) addGeometry(id uint32) {
	if id == 0 || m.uploader == nil {
		return
	}
	m.geometry = append(m.geometry, id)
}

func (m *MeshSet) addMaterial(name string, mi material.Instance) {
	if _, ok := m.materials[name]; ok {
		return
	}
	m.materials[name] = mi
	m.order = append(m.order, name)
}

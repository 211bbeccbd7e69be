package entity

import "fmt"

// Entity is an opaque handle identifying a scene object. The zero value is never
// issued by a Manager and means "no entity".
type Entity uint32

// Null is the invalid entity handle.
const Null Entity = 0

// IsNull reports whether e is the invalid handle.
func (e Entity) IsNull() bool {
	return e == Null
}

func (e Entity) String() string {
	return fmt.Sprintf("entity(%d)", uint32(e))
}

// manager is the implementation of the Manager interface.
type manager struct {
	next  Entity
	alive map[Entity]struct{}
}

// Manager issues and retires entity handles. Handles are never reused within a
// Manager's lifetime, so a destroyed handle can never alias a newer entity.
// Not safe for concurrent use; the sandbox runs single-threaded.
type Manager interface {
	// Create issues a new entity handle.
	//
	// Returns:
	//   - Entity: the new handle (never Null)
	Create() Entity

	// Destroy retires an entity handle. Destroying a handle that is not alive is a no-op.
	//
	// Parameters:
	//   - e: the entity to retire
	//
	// Returns:
	//   - bool: true if the entity was alive and is now destroyed
	Destroy(e Entity) bool

	// Alive reports whether e was issued by this manager and not yet destroyed.
	//
	// Parameters:
	//   - e: the entity to check
	//
	// Returns:
	//   - bool: true if alive
	Alive(e Entity) bool

	// Count returns the number of live entities.
	//
	// Returns:
	//   - int: live entity count
	Count() int
}

var _ Manager = &manager{}

// NewManager creates an empty entity manager.
//
// Returns:
//   - Manager: the new manager
func NewManager() Manager {
	return &manager{
		alive: make(map[Entity]struct{}),
	}
}

func (m *manager) Create() Entity {
	m.next++
	m.alive[m.next] = struct{}{}
	return m.next
}

func (m *manager) Destroy(e Entity) bool {
	if _, ok := m.alive[e]; !ok {
		return false
	}
	delete(m.alive, e)
	return true
}

func (m *manager) Alive(e Entity) bool {
	_, ok := m.alive[e]
	return ok
}

func (m *manager) Count() int {
	return len(m.alive)
}

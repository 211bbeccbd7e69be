package scene

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/entity"
)

// scene is the implementation of the Scene interface.
type scene struct {
	mu        sync.RWMutex
	name      string
	order     []entity.Entity
	members   map[entity.Entity]int
	mutations uint64
	logger    *zap.Logger
}

// Scene is the set of entities submitted for rendering. It only tracks membership;
// the entities themselves are owned elsewhere.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// AddEntity adds an entity to the scene. Adding an entity that is already a member
	// leaves membership unchanged.
	//
	// Parameters:
	//   - e: the entity to add
	AddEntity(e entity.Entity)

	// Remove removes an entity from the scene. Removing a non-member is a no-op.
	//
	// Parameters:
	//   - e: the entity to remove
	Remove(e entity.Entity)

	// Contains reports whether e is a member of the scene.
	//
	// Parameters:
	//   - e: the entity to check
	//
	// Returns:
	//   - bool: true if e is in the scene
	Contains(e entity.Entity) bool

	// Count returns the number of member entities.
	//
	// Returns:
	//   - int: the member count
	Count() int

	// Entities returns the member entities in the order they were added.
	//
	// Returns:
	//   - []entity.Entity: a copy of the member list
	Entities() []entity.Entity

	// Mutations returns the number of AddEntity and Remove calls the scene has received,
	// whether or not they changed membership.
	//
	// Returns:
	//   - uint64: the mutation call count
	Mutations() uint64
}

var _ Scene = &scene{}

// NewScene creates an empty Scene configured with the provided options.
//
// Parameters:
//   - options: variadic list of SceneBuilderOption functions
//
// Returns:
//   - Scene: the new scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		name:    "main",
		members: make(map[entity.Entity]int),
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) AddEntity(e entity.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mutations++
	if _, ok := s.members[e]; ok {
		return
	}
	s.members[e] = len(s.order)
	s.order = append(s.order, e)
	s.logger.Debug("entity added", zap.Stringer("entity", e), zap.Int("count", len(s.order)))
}

func (s *scene) Remove(e entity.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mutations++
	idx, ok := s.members[e]
	if !ok {
		return
	}
	delete(s.members, e)
	s.order = append(s.order[:idx], s.order[idx+1:]...)
	for i := idx; i < len(s.order); i++ {
		s.members[s.order[i]] = i
	}
	s.logger.Debug("entity removed", zap.Stringer("entity", e), zap.Int("count", len(s.order)))
}

func (s *scene) Contains(e entity.Entity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.members[e]
	return ok
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *scene) Entities() []entity.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Entity, len(s.order))
	copy(out, s.order)
	return out
}

func (s *scene) Mutations() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mutations
}

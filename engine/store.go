package engine

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/hollowpine/strata/core"
)

// Store is a generic container for a specific component type T.
// Uses the sparse set pattern: a map for O(1) lookup keyed by entity,
// plus a dense entity slice for iteration. Removal swap-compacts the
// dense slice, so iteration order reflects store insertion with
// swap-remove holes, not entity creation order.
type Store[T any] struct {
	mu         sync.RWMutex
	world      *World
	components map[core.Entity]T
	entities   []core.Entity
}

// StoreFor returns the world's store for component type T, registering
// it on first use. Systems cache the returned pointer at construction;
// it stays valid for the life of the world.
func StoreFor[T any](w *World) *Store[T] {
	var zero T
	t := reflect.TypeOf(zero)

	if existing, ok := w.lookupStore(t); ok {
		return existing.(*Store[T])
	}

	s := &Store[T]{
		world:      w,
		components: make(map[core.Entity]T),
		entities:   make([]core.Entity, 0, 64),
	}
	w.registerStore(t, s)

	// Another goroutine may have registered first; return the winner.
	winner, _ := w.lookupStore(t)
	return winner.(*Store[T])
}

// Add attaches a component to a live entity. One instance per type per
// entity: a second Add fails with core.ErrDuplicateComponent, and a dead
// or stale handle fails with core.ErrUnknownEntity.
func (s *Store[T]) Add(e core.Entity, val T) error {
	if !s.world.Alive(e) {
		return fmt.Errorf("add %T: %w", val, core.ErrUnknownEntity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.components[e]; exists {
		return fmt.Errorf("add %T: %w", val, core.ErrDuplicateComponent)
	}
	s.components[e] = val
	s.entities = append(s.entities, e)
	return nil
}

// Set inserts or updates a component for a live entity.
func (s *Store[T]) Set(e core.Entity, val T) error {
	if !s.world.Alive(e) {
		return fmt.Errorf("set %T: %w", val, core.ErrUnknownEntity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.components[e]; !exists {
		s.entities = append(s.entities, e)
	}
	s.components[e] = val
	return nil
}

// Get retrieves the component for an entity. Dead or stale handles
// report not-found; they can never observe a recycled slot's data.
func (s *Store[T]) Get(e core.Entity) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.components[e]
	return val, ok
}

// Has reports whether the entity owns this component type.
func (s *Store[T]) Has(e core.Entity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.components[e]
	return ok
}

// Remove detaches the component from an entity. Removing an absent
// component is a no-op.
func (s *Store[T]) Remove(e core.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.components[e]; !exists {
		return
	}
	delete(s.components, e)
	for i, entity := range s.entities {
		if entity == e {
			s.entities[i] = s.entities[len(s.entities)-1]
			s.entities = s.entities[:len(s.entities)-1]
			break
		}
	}
}

// All returns a copy of the entities owning this component type.
func (s *Store[T]) All() []core.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]core.Entity, len(s.entities))
	copy(result, s.entities)
	return result
}

// Count returns the number of entities with this component.
func (s *Store[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// Clear removes every component from the store.
func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.components = make(map[core.Entity]T)
	s.entities = s.entities[:0]
}

// AnyStore adapter methods (type-erased lifecycle surface).

func (s *Store[T]) RemoveComponent(e core.Entity) { s.Remove(e) }

func (s *Store[T]) HasComponent(e core.Entity) bool { return s.Has(e) }

func (s *Store[T]) CountEntity() int { return s.Count() }

func (s *Store[T]) ClearAllComponent() { s.Clear() }

func (s *Store[T]) AllEntity() []core.Entity { return s.All() }

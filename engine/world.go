package engine

import (
	"reflect"
	"sync"

	"github.com/hollowpine/strata/core"
	"github.com/hollowpine/strata/event"
)

// World contains all entities and their components using typed stores.
// Entities are generation-tagged slot handles; stale handles are detected
// on every access and never alias a recycled slot.
type World struct {
	mu sync.RWMutex

	slots    []slot
	freeList []uint32
	alive    int

	stores   map[reflect.Type]AnyStore
	storeSeq []AnyStore // registration order, for cascade removal

	// Global singletons (time, input, config) shared with systems
	Resources *ResourceStore

	events  *event.Queue
	tick    int64
	systems []System
}

// slot tracks one entity index. The generation increments on destroy so
// handles into the old incarnation fail liveness checks.
type slot struct {
	generation uint32
	alive      bool
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:    make(map[reflect.Type]AnyStore),
		Resources: NewResourceStore(),
	}
}

// SetEventQueue wires the queue that receives entity lifecycle events.
// Optional; a world without a queue simply does not publish.
func (w *World) SetEventQueue(q *event.Queue) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = q
}

// CreateEntity allocates a fresh entity handle. Freed slots are reused
// with a bumped generation.
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.alive++
	if n := len(w.freeList); n > 0 {
		idx := w.freeList[n-1]
		w.freeList = w.freeList[:n-1]
		w.slots[idx].alive = true
		return core.Entity{Index: idx, Generation: w.slots[idx].generation}
	}

	w.slots = append(w.slots, slot{generation: 1, alive: true})
	return core.Entity{Index: uint32(len(w.slots) - 1), Generation: 1}
}

// Alive reports whether the handle refers to a live entity.
func (w *World) Alive(e core.Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.aliveLocked(e)
}

func (w *World) aliveLocked(e core.Entity) bool {
	if int(e.Index) >= len(w.slots) {
		return false
	}
	s := w.slots[e.Index]
	return s.alive && s.generation == e.Generation
}

// DestroyEntity removes the entity and cascades removal of all its
// components. Destroying a dead or stale handle is an idempotent no-op;
// the return value reports whether anything was destroyed.
func (w *World) DestroyEntity(e core.Entity) bool {
	w.mu.Lock()
	if !w.aliveLocked(e) {
		w.mu.Unlock()
		return false
	}
	w.slots[e.Index].alive = false
	w.slots[e.Index].generation++
	w.freeList = append(w.freeList, e.Index)
	w.alive--
	stores := w.storeSeq
	q := w.events
	tick := w.tick
	w.mu.Unlock()

	for _, s := range stores {
		s.RemoveComponent(e)
	}

	if q != nil {
		q.Push(event.Event{
			Type:    event.TypeEntityDestroyed,
			Tick:    tick,
			Payload: event.DestroyedPayload{Entity: e},
		})
	}
	return true
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.alive
}

// Clear destroys all entities and components. Slot generations survive
// so handles from before the clear stay stale.
func (w *World) Clear() {
	w.mu.Lock()
	for i := range w.slots {
		if w.slots[i].alive {
			w.slots[i].alive = false
			w.slots[i].generation++
			w.freeList = append(w.freeList, uint32(i))
		}
	}
	w.alive = 0
	stores := w.storeSeq
	w.mu.Unlock()

	for _, s := range stores {
		s.ClearAllComponent()
	}
}

// AddSystem registers a system, keeping the list sorted by priority.
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, system)

	// Sort by priority (bubble sort, small N)
	for i := 0; i < len(w.systems)-1; i++ {
		for j := 0; j < len(w.systems)-i-1; j++ {
			if w.systems[j].Priority() > w.systems[j+1].Priority() {
				w.systems[j], w.systems[j+1] = w.systems[j+1], w.systems[j]
			}
		}
	}
}

// Update runs all systems in priority order for one fixed step.
// The first system error aborts the pass and propagates to the loop.
func (w *World) Update(dt float64) error {
	w.mu.RLock()
	systems := make([]System, len(w.systems))
	copy(systems, w.systems)
	w.mu.RUnlock()

	for _, system := range systems {
		if err := system.Update(w, dt); err != nil {
			return err
		}
	}

	w.mu.Lock()
	w.tick++
	w.mu.Unlock()
	return nil
}

// Tick returns the number of completed fixed updates.
func (w *World) Tick() int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tick
}

// PushEvent emits an engine event stamped with the current tick.
// No-op when no queue is wired.
func (w *World) PushEvent(t event.Type, payload any) {
	w.mu.RLock()
	q := w.events
	tick := w.tick
	w.mu.RUnlock()

	if q == nil {
		return
	}
	q.Push(event.Event{Type: t, Tick: tick, Payload: payload})
}

func (w *World) registerStore(t reflect.Type, s AnyStore) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, exists := w.stores[t]; exists {
		return
	}
	w.stores[t] = s
	w.storeSeq = append(w.storeSeq, s)
}

func (w *World) lookupStore(t reflect.Type) (AnyStore, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s, ok := w.stores[t]
	return s, ok
}

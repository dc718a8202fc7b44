package physics

import (
	"fmt"
	"sync/atomic"

	"github.com/hollowpine/strata/core"
	"github.com/hollowpine/strata/event"
	"github.com/hollowpine/strata/status"
	"github.com/hollowpine/strata/vmath"
)

// World owns physics bodies and advances them with Step. It holds
// non-owning entity references; body lifecycle follows AddBody and
// RemoveBody, entity lifecycle stays with the ECS world.
//
// Step order per tick: gravity and friction, velocity clamp, position
// integration, full grid rebuild, broad-phase candidate pairs via the
// grid, narrow phase, resolution. The grid is never read mid-rebuild,
// and step order over bodies is insertion order for determinism.
type World struct {
	config Config
	bodies []*Body
	byID   map[core.Entity]*Body
	grid   *SpatialGrid
	nextID uint64

	events *event.Queue

	// Scratch buffers reused across steps
	candidates []*Body
	contacts   []Contact

	// Cached metric pointers (nil when no registry wired)
	statSteps    *atomic.Int64
	statBodies   *atomic.Int64
	statContacts *atomic.Int64
}

// Option customizes world construction.
type Option func(*World)

// WithEventQueue publishes a ContactPayload event per resolved pair.
func WithEventQueue(q *event.Queue) Option {
	return func(w *World) { w.events = q }
}

// WithStatus publishes physics counters into the registry.
func WithStatus(reg *status.Registry) Option {
	return func(w *World) {
		w.statSteps = reg.Ints.Get("physics.steps")
		w.statBodies = reg.Ints.Get("physics.bodies")
		w.statContacts = reg.Ints.Get("physics.contacts")
	}
}

// NewWorld creates a physics world with the given configuration.
func NewWorld(config Config, opts ...Option) (*World, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	w := &World{
		config: config,
		byID:   make(map[core.Entity]*Body),
		grid:   NewSpatialGrid(config.CellSize),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// AddBody registers a body. A second body for the same entity replaces
// the first.
func (w *World) AddBody(b *Body) {
	if existing, ok := w.byID[b.Entity]; ok {
		w.removeFromSlice(existing)
	}
	w.nextID++
	b.id = w.nextID
	w.bodies = append(w.bodies, b)
	w.byID[b.Entity] = b
}

// RemoveBody unregisters the body owned by the entity.
// Removing an absent body is a no-op.
func (w *World) RemoveBody(e core.Entity) {
	b, ok := w.byID[e]
	if !ok {
		return
	}
	delete(w.byID, e)
	w.removeFromSlice(b)
}

func (w *World) removeFromSlice(b *Body) {
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return
		}
	}
}

// Body returns the body owned by the entity.
func (w *World) Body(e core.Entity) (*Body, bool) {
	b, ok := w.byID[e]
	return b, ok
}

// BodyCount returns the number of registered bodies.
func (w *World) BodyCount() int {
	return len(w.bodies)
}

// Grid exposes the broad-phase grid for diagnostics and tooling.
func (w *World) Grid() *SpatialGrid {
	return w.grid
}

// Step advances the simulation by dt seconds.
//
// A body with non-finite position or velocity is a programming error:
// the step fails fast with core.ErrNonFinite before touching the grid,
// so corrupted coordinates never poison broad-phase state.
func (w *World) Step(dt float64) error {
	for _, b := range w.bodies {
		if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
			return fmt.Errorf("entity %d/%d pos=%v vel=%v: %w",
				b.Entity.Index, b.Entity.Generation, b.Position, b.Velocity, core.ErrNonFinite)
		}
	}

	// Integrate
	for _, b := range w.bodies {
		if b.Static {
			continue
		}

		if b.OnGround {
			// Horizontal friction while supported
			damp := 1 - b.Friction*dt
			if damp < 0 {
				damp = 0
			}
			b.Velocity.X *= damp
		} else {
			b.Velocity.Y += w.config.Gravity * b.GravityScale * dt
		}

		b.Velocity = b.Velocity.Clamp(w.config.MaxVelocity)
		b.Position = b.Position.Add(b.Velocity.Scale(dt))

		// Grounded is re-earned from contacts below
		b.OnGround = false
	}

	// Broad phase: rebuild completely before any query reads the grid
	w.grid.Clear()
	for _, b := range w.bodies {
		w.grid.Insert(b, b.Bounds())
	}

	// Narrow phase: candidates from the grid, each pair tested once
	// (id ordering dedupes A-B vs B-A)
	w.contacts = w.contacts[:0]
	for _, a := range w.bodies {
		w.candidates = w.grid.Query(a.Bounds(), w.candidates[:0])
		for _, b := range w.candidates {
			if b.id <= a.id {
				continue
			}
			if !a.CollidesWith(b) {
				continue
			}
			if c, ok := collide(a, b); ok {
				w.contacts = append(w.contacts, c)
			}
		}
	}

	for _, c := range w.contacts {
		resolve(c)
		if w.events != nil {
			w.events.Push(event.Event{
				Type: event.TypeContact,
				Payload: event.ContactPayload{
					A:           c.A.Entity,
					B:           c.B.Entity,
					Normal:      c.Normal,
					Penetration: c.Penetration,
				},
			})
		}
	}

	if w.statSteps != nil {
		w.statSteps.Add(1)
		w.statBodies.Store(int64(len(w.bodies)))
		w.statContacts.Add(int64(len(w.contacts)))
	}
	return nil
}

// Contacts returns the contacts resolved by the most recent Step.
// The slice is reused across steps; callers copy if they retain it.
func (w *World) Contacts() []Contact {
	return w.contacts
}

// QueryBounds returns broad-phase candidates overlapping bounds, based
// on the grid state from the most recent Step.
func (w *World) QueryBounds(bounds vmath.Rect) []*Body {
	out := w.grid.Query(bounds, nil)
	// Grid cells are coarse; filter to actual bounds overlap
	filtered := out[:0]
	for _, b := range out {
		if b.Bounds().Intersects(bounds) {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

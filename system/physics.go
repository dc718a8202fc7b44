// Package system holds the engine's built-in ECS systems.
package system

import (
	"github.com/hollowpine/strata/component"
	"github.com/hollowpine/strata/core"
	"github.com/hollowpine/strata/engine"
	"github.com/hollowpine/strata/physics"
)

// System priorities; lower runs first. Gameplay systems slot between
// input and physics.
const (
	PriorityInput    = 0
	PriorityGameplay = 50
	PriorityPhysics  = 100
)

// PhysicsSystem bridges ECS components and the physics world. Each
// fixed tick it mirrors Transform+Collider+Body entities into physics
// bodies, steps the simulation, and writes the results back. Velocity
// is optional; bodies without one are moved only by collisions.
type PhysicsSystem struct {
	physicsWorld *physics.World

	transforms *engine.Store[component.Transform]
	velocities *engine.Store[component.Velocity]
	colliders  *engine.Store[component.Collider]
	bodies     *engine.Store[component.Body]

	tracked map[core.Entity]*physics.Body
}

// NewPhysicsSystem creates the bridge system. Store pointers are cached
// once here to avoid per-tick map lookups.
func NewPhysicsSystem(w *engine.World, pw *physics.World) *PhysicsSystem {
	return &PhysicsSystem{
		physicsWorld: pw,
		transforms:   engine.StoreFor[component.Transform](w),
		velocities:   engine.StoreFor[component.Velocity](w),
		colliders:    engine.StoreFor[component.Collider](w),
		bodies:       engine.StoreFor[component.Body](w),
		tracked:      make(map[core.Entity]*physics.Body),
	}
}

// Priority places physics after gameplay systems.
func (s *PhysicsSystem) Priority() int { return PriorityPhysics }

// PhysicsWorld exposes the owned world for raycasts and region queries.
func (s *PhysicsSystem) PhysicsWorld() *physics.World {
	return s.physicsWorld
}

// Update syncs components in, steps the physics world once, and syncs
// results out. A physics error (non-finite state) aborts the tick and
// propagates to the game loop.
func (s *PhysicsSystem) Update(w *engine.World, dt float64) error {
	entities := w.Query().
		With(s.transforms).
		With(s.colliders).
		With(s.bodies).
		Execute()

	seen := make(map[core.Entity]struct{}, len(entities))
	for _, e := range entities {
		seen[e] = struct{}{}

		tf, _ := s.transforms.Get(e)
		col, _ := s.colliders.Get(e)
		bd, _ := s.bodies.Get(e)

		b, ok := s.tracked[e]
		if !ok {
			b = &physics.Body{Entity: e}
			s.tracked[e] = b
			s.physicsWorld.AddBody(b)
		}

		b.Shape = physics.Shape(col.Kind)
		b.Size = col.Size
		b.Radius = col.Radius
		b.Group = col.Group
		b.Mask = col.Mask
		b.Position = tf.Position
		b.GravityScale = bd.GravityScale
		b.Restitution = bd.Restitution
		b.Friction = bd.Friction
		b.Static = bd.Static
		b.OnGround = bd.OnGround

		if vel, ok := s.velocities.Get(e); ok {
			b.Velocity = vel.Linear
		} else {
			b.Velocity = b.Velocity.Scale(0)
		}
	}

	// Drop bodies whose entity was destroyed or lost a required component
	for e, b := range s.tracked {
		if _, ok := seen[e]; !ok {
			s.physicsWorld.RemoveBody(b.Entity)
			delete(s.tracked, e)
		}
	}

	if err := s.physicsWorld.Step(dt); err != nil {
		return err
	}

	// Write results back
	for _, e := range entities {
		b := s.tracked[e]

		tf, _ := s.transforms.Get(e)
		tf.Position = b.Position
		_ = s.transforms.Set(e, tf)

		if _, ok := s.velocities.Get(e); ok {
			_ = s.velocities.Set(e, component.Velocity{Linear: b.Velocity})
		}

		bd, _ := s.bodies.Get(e)
		if bd.OnGround != b.OnGround {
			bd.OnGround = b.OnGround
			_ = s.bodies.Set(e, bd)
		}
	}
	return nil
}

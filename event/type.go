package event

import (
	"github.com/hollowpine/strata/core"
	"github.com/hollowpine/strata/vmath"
)

// Type identifies the kind of an engine event.
type Type uint8

const (
	TypeNone Type = iota

	// TypeContact is published by the physics world for each resolved
	// collision pair during a step.
	TypeContact

	// TypeEntityDestroyed is published by the ECS world when an entity
	// is destroyed, so collaborators can drop stale handles.
	TypeEntityDestroyed
)

// Event is a single engine event. Payload types are documented per Type.
type Event struct {
	Type    Type
	Tick    int64
	Payload any
}

// ContactPayload carries one resolved collision.
// Normal points from B into A; Penetration is the pre-resolution overlap
// along the separation axis.
type ContactPayload struct {
	A, B        core.Entity
	Normal      vmath.Vec2
	Penetration float64
}

// DestroyedPayload carries the handle of a destroyed entity.
type DestroyedPayload struct {
	Entity core.Entity
}

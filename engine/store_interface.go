package engine

import (
	"github.com/hollowpine/strata/core"
)

// AnyStore provides type-erased operations for lifecycle management.
// World manages all registered stores uniformly through it, so entity
// destruction cascades without knowing concrete component types.
type AnyStore interface {
	// RemoveComponent deletes a component from an entity
	RemoveComponent(e core.Entity)

	// HasComponent checks if an entity has this component
	HasComponent(e core.Entity) bool

	// CountEntity returns the number of entities with this component
	CountEntity() int

	// ClearAllComponent removes all components from this store
	ClearAllComponent()
}

// QueryableStore extends AnyStore with enumeration, which the query
// builder needs to intersect component sets efficiently.
type QueryableStore interface {
	AnyStore

	// AllEntity returns all entities that have this component type
	AllEntity() []core.Entity
}

package engine

import (
	"sort"

	"github.com/hollowpine/strata/core"
)

// QueryBuilder finds entities owning components in every listed store.
// Results are computed fresh on each Execute from current store state;
// nothing is cached across structural changes. Iteration order follows
// the smallest store's dense slice (swap-remove order, not creation
// order).
type QueryBuilder struct {
	world    *World
	stores   []QueryableStore
	executed bool
	results  []core.Entity
}

// Query starts a new query. Chain With for each required component
// store, then Execute.
//
// Example:
//
//	entities := world.Query().
//	    With(transforms).
//	    With(velocities).
//	    Execute()
func (w *World) Query() *QueryBuilder {
	return &QueryBuilder{
		world:  w,
		stores: make([]QueryableStore, 0, 4),
	}
}

// With adds a component store to the filter. Entities must have
// components in ALL added stores. Panics if called after Execute.
func (qb *QueryBuilder) With(store QueryableStore) *QueryBuilder {
	if qb.executed {
		panic("query already executed - cannot modify after Execute()")
	}
	qb.stores = append(qb.stores, store)
	return qb
}

// Execute runs the query. Stores are intersected smallest-first to
// minimize Has checks. Repeated Execute on the same builder returns the
// cached result; build a new query for fresh state.
func (qb *QueryBuilder) Execute() []core.Entity {
	if qb.executed {
		return qb.results
	}
	qb.executed = true

	if len(qb.stores) == 0 {
		qb.results = make([]core.Entity, 0)
		return qb.results
	}

	if len(qb.stores) == 1 {
		qb.results = qb.stores[0].AllEntity()
		return qb.results
	}

	sort.Slice(qb.stores, func(i, j int) bool {
		return qb.stores[i].CountEntity() < qb.stores[j].CountEntity()
	})

	candidates := qb.stores[0].AllEntity()

	for i := 1; i < len(qb.stores); i++ {
		store := qb.stores[i]
		filtered := candidates[:0] // reuse underlying array
		for _, e := range candidates {
			if store.HasComponent(e) {
				filtered = append(filtered, e)
			}
		}
		candidates = filtered

		if len(candidates) == 0 {
			break
		}
	}

	qb.results = candidates
	return qb.results
}

package engine

import (
	"reflect"
	"sync"
)

// ResourceStore is a thread-safe container for global singletons (time,
// input source, configuration). Systems reach shared data through it
// without coupling to whoever constructed the world.
type ResourceStore struct {
	mu        sync.RWMutex
	resources map[reflect.Type]any
}

// NewResourceStore creates an empty resource store.
func NewResourceStore() *ResourceStore {
	return &ResourceStore{
		resources: make(map[reflect.Type]any),
	}
}

// AddResource registers or replaces a resource. Keyed by the static
// type T, so interface-typed resources round-trip; use a pointer or
// interface type when systems should observe mutations.
func AddResource[T any](rs *ResourceStore, resource T) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.resources[typeOf[T]()] = resource
}

// GetResource retrieves the resource of type T, or the zero value and
// false when absent.
func GetResource[T any](rs *ResourceStore) (T, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	val, ok := rs.resources[typeOf[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return val.(T), true
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// MustGetResource retrieves a resource or panics if missing. For core
// resources that must exist once the world is wired.
func MustGetResource[T any](rs *ResourceStore) T {
	res, ok := GetResource[T](rs)
	if !ok {
		panic("missing required resource: " + typeOf[T]().String())
	}
	return res
}

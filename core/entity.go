package core

// Entity is a generation-tagged handle to a world slot.
// The generation detects stale handles after a slot is recycled:
// a destroyed entity's handle never compares equal to the handle
// of a later entity occupying the same slot.
type Entity struct {
	Index      uint32
	Generation uint32
}

// NilEntity is the zero handle. It is never alive.
var NilEntity = Entity{}

// IsNil reports whether the handle is the zero handle.
func (e Entity) IsNil() bool {
	return e == NilEntity
}

// ID packs the handle into a single comparable integer.
// Used for stable pair ordering in broad-phase dedup.
func (e Entity) ID() uint64 {
	return uint64(e.Generation)<<32 | uint64(e.Index)
}

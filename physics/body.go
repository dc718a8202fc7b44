package physics

import (
	"github.com/hollowpine/strata/core"
	"github.com/hollowpine/strata/vmath"
)

// Shape selects a body's collision geometry.
type Shape uint8

const (
	// ShapeRect is an AABB anchored at Position (top-left corner)
	ShapeRect Shape = iota
	// ShapeCircle is a circle centered at Position
	ShapeCircle
)

// Body is one physics-enabled object. The world holds a non-owning
// reference to the entity; entity lifetime is the ECS world's concern.
// Bodies are in one of two states each step: Airborne or Grounded,
// re-evaluated from contact normals every step.
type Body struct {
	// Entity is the owning ECS handle, opaque to physics
	Entity core.Entity

	Shape  Shape
	Size   vmath.Vec2 // rect extent, ignored for circles
	Radius float64    // circle radius, ignored for rects

	Position vmath.Vec2
	Velocity vmath.Vec2

	// GravityScale multiplies world gravity; 0 floats
	GravityScale float64

	// Restitution is bounce energy retention in [0,1]
	Restitution float64

	// Friction is per-second horizontal damping while grounded
	Friction float64

	// Static bodies are immovable and skip integration
	Static bool

	// Group is what the body is; Mask is what it collides with
	Group, Mask uint32

	// OnGround is true while an upward contact normal supports the
	// body; cleared at the start of every step
	OnGround bool

	// id is the insertion sequence, used for stable pair ordering
	id uint64

	// queryStamp marks the body as seen during a grid query
	queryStamp uint64
}

// Bounds returns the body's current AABB.
func (b *Body) Bounds() vmath.Rect {
	if b.Shape == ShapeCircle {
		return vmath.Circle{Center: b.Position, Radius: b.Radius}.Bounds()
	}
	return vmath.Rect{X: b.Position.X, Y: b.Position.Y, W: b.Size.X, H: b.Size.Y}
}

// CollidesWith reports whether group/mask filtering allows the pair to
// interact: each body's group must intersect the other's mask.
func (b *Body) CollidesWith(o *Body) bool {
	return b.Group&o.Mask != 0 && o.Group&b.Mask != 0
}

package component

import "github.com/hollowpine/strata/vmath"

// ShapeKind selects the collider geometry.
type ShapeKind uint8

const (
	// ShapeRect is an AABB anchored at Transform.Position (top-left)
	ShapeRect ShapeKind = iota
	// ShapeCircle is a circle centered at Transform.Position
	ShapeCircle
)

// Collision group bits. Games define their own; these cover the common
// platformer split.
const (
	GroupDefault uint32 = 1 << iota
	GroupPlayer
	GroupEnemy
	GroupTerrain
	GroupProjectile
)

// GroupAll matches every group.
const GroupAll uint32 = 0xFFFFFFFF

// Collider describes an entity's collision shape and filtering.
// Group is what the body is; Mask is what it collides with. Two bodies
// interact only if each one's group intersects the other's mask.
type Collider struct {
	Kind   ShapeKind
	Size   vmath.Vec2 // rect extent, ignored for circles
	Radius float64    // circle radius, ignored for rects
	Group  uint32
	Mask   uint32
}

// Bounds returns the collider's AABB for a given world position.
func (c Collider) Bounds(pos vmath.Vec2) vmath.Rect {
	if c.Kind == ShapeCircle {
		return vmath.Circle{Center: pos, Radius: c.Radius}.Bounds()
	}
	return vmath.Rect{X: pos.X, Y: pos.Y, W: c.Size.X, H: c.Size.Y}
}

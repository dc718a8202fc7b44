// Package component holds the engine's standard plain-data components.
// Components carry no behavior; systems operate on them through the
// world's typed stores.
package component

import "github.com/hollowpine/strata/vmath"

// Transform places an entity in world space.
type Transform struct {
	Position vmath.Vec2
	Rotation float64 // radians
}

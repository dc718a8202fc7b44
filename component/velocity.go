package component

import "github.com/hollowpine/strata/vmath"

// Velocity is linear velocity in world units per second.
type Velocity struct {
	Linear vmath.Vec2
}

package physics

import (
	"github.com/hollowpine/strata/vmath"
)

// Contact is one resolved overlap between two bodies.
// Normal points from B toward A: displacing A along Normal by
// Penetration separates the pair.
type Contact struct {
	A, B        *Body
	Normal      vmath.Vec2
	Penetration float64
}

// collide runs the narrow-phase test for a candidate pair. The returned
// contact's normal pushes a away from b.
func collide(a, b *Body) (Contact, bool) {
	switch {
	case a.Shape == ShapeRect && b.Shape == ShapeRect:
		return collideRectRect(a, b)
	case a.Shape == ShapeCircle && b.Shape == ShapeCircle:
		return collideCircleCircle(a, b)
	case a.Shape == ShapeCircle:
		return collideCircleRect(a, b)
	default:
		c, ok := collideCircleRect(b, a)
		if ok {
			c.A, c.B = a, b
			c.Normal = c.Normal.Scale(-1)
		}
		return c, ok
	}
}

// collideRectRect resolves along the axis of minimum penetration
// (standard AABB minimum translation vector). Ties prefer the vertical
// axis so platform landings never flicker into sideways pushes.
//
// Exact touch counts as a zero-penetration contact. A body resolved
// flush against a surface keeps its contact on the next step, so
// grounding stays stable while at rest.
func collideRectRect(a, b *Body) (Contact, bool) {
	ra, rb := a.Bounds(), b.Bounds()
	overlapX, overlapY := ra.OverlapExtents(rb)
	if overlapX < 0 || overlapY < 0 {
		return Contact{}, false
	}

	var normal vmath.Vec2
	var pen float64
	if overlapY <= overlapX {
		pen = overlapY
		if ra.Center().Y < rb.Center().Y {
			normal = vmath.Vec2{X: 0, Y: -1} // a above b, push a up
		} else {
			normal = vmath.Vec2{X: 0, Y: 1}
		}
	} else {
		pen = overlapX
		if ra.Center().X < rb.Center().X {
			normal = vmath.Vec2{X: -1, Y: 0}
		} else {
			normal = vmath.Vec2{X: 1, Y: 0}
		}
	}

	return Contact{A: a, B: b, Normal: normal, Penetration: pen}, true
}

// collideCircleCircle uses center distance against summed radii.
// Coincident centers take a fixed upward normal rather than failing.
func collideCircleCircle(a, b *Body) (Contact, bool) {
	delta := a.Position.Sub(b.Position)
	rsum := a.Radius + b.Radius
	distSq := delta.MagnitudeSq()
	if distSq > rsum*rsum {
		return Contact{}, false
	}

	dist := delta.Magnitude()
	normal := vmath.Vec2{X: 0, Y: -1}
	if dist > 0 {
		normal = delta.Scale(1 / dist)
	}

	return Contact{A: a, B: b, Normal: normal, Penetration: rsum - dist}, true
}

// collideCircleRect tests circle a against rect b via the closest point
// on the rect. A center inside the rect falls back to the center-to-
// center direction.
func collideCircleRect(a, b *Body) (Contact, bool) {
	rb := b.Bounds()
	closest := vmath.ClosestPointOnRect(rb, a.Position)
	delta := a.Position.Sub(closest)
	distSq := delta.MagnitudeSq()
	if distSq > a.Radius*a.Radius {
		return Contact{}, false
	}

	dist := delta.Magnitude()
	var normal vmath.Vec2
	var pen float64
	if dist > 0 {
		normal = delta.Scale(1 / dist)
		pen = a.Radius - dist
	} else {
		// Center inside the rect
		normal = a.Position.Sub(rb.Center()).Normalize()
		if normal == (vmath.Vec2{}) {
			normal = vmath.Vec2{X: 0, Y: -1}
		}
		pen = a.Radius
	}

	return Contact{A: a, B: b, Normal: normal, Penetration: pen}, true
}

// resolve separates the pair and adjusts velocity along the contact
// normal. The non-static body is displaced the full penetration; when
// both are dynamic, A takes the displacement. Restitution reflects the
// normal velocity component with energy loss; zero restitution kills it.
// An upward normal grounds the supported body for this step.
func resolve(c Contact) {
	switch {
	case !c.A.Static:
		c.A.Position = c.A.Position.Add(c.Normal.Scale(c.Penetration))
		applyContactVelocity(c.A, c.Normal)
	case !c.B.Static:
		c.B.Position = c.B.Position.Add(c.Normal.Scale(-c.Penetration))
		applyContactVelocity(c.B, c.Normal.Scale(-1))
	default:
		return // both static, nothing to move
	}

	// Grounding from contact direction: normal pointing up into A means
	// A rests on B; normal pointing down into A means B rests on A.
	// A bouncing body is not grounded, it is leaving the surface.
	if c.Normal.Y < 0 && !c.A.Static && c.A.Restitution == 0 {
		c.A.OnGround = true
	}
	if c.Normal.Y > 0 && !c.B.Static && c.B.Restitution == 0 {
		c.B.OnGround = true
	}
}

// applyContactVelocity removes (or reflects, with restitution) the
// velocity component moving the body into the contact.
func applyContactVelocity(b *Body, normal vmath.Vec2) {
	vn := b.Velocity.Dot(normal)
	if vn >= 0 {
		return // already separating
	}
	b.Velocity = b.Velocity.Sub(normal.Scale(vn * (1 + b.Restitution)))
}

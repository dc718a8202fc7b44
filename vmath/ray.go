package vmath

import "math"

// RayRect performs a slab-method intersection of a ray against an AABB.
// dir need not be normalized; t is in units of dir length.
// Returns the entry distance t, the surface normal at entry, and whether
// the ray hits within [0, maxT]. A ray starting inside the rect reports
// t=0 with a normal opposing the ray direction.
func RayRect(origin, dir Vec2, r Rect, maxT float64) (t float64, normal Vec2, ok bool) {
	tMin := 0.0
	tMax := maxT
	normal = Vec2{}

	// X slab
	if dir.X == 0 {
		if origin.X < r.X || origin.X > r.X+r.W {
			return 0, Vec2{}, false
		}
	} else {
		inv := 1 / dir.X
		t1 := (r.X - origin.X) * inv
		t2 := (r.X + r.W - origin.X) * inv
		n := Vec2{-1, 0}
		if t1 > t2 {
			t1, t2 = t2, t1
			n = Vec2{1, 0}
		}
		if t1 > tMin {
			tMin = t1
			normal = n
		}
		tMax = min(tMax, t2)
		if tMin > tMax {
			return 0, Vec2{}, false
		}
	}

	// Y slab
	if dir.Y == 0 {
		if origin.Y < r.Y || origin.Y > r.Y+r.H {
			return 0, Vec2{}, false
		}
	} else {
		inv := 1 / dir.Y
		t1 := (r.Y - origin.Y) * inv
		t2 := (r.Y + r.H - origin.Y) * inv
		n := Vec2{0, -1}
		if t1 > t2 {
			t1, t2 = t2, t1
			n = Vec2{0, 1}
		}
		if t1 > tMin {
			tMin = t1
			normal = n
		}
		tMax = min(tMax, t2)
		if tMin > tMax {
			return 0, Vec2{}, false
		}
	}

	if normal == (Vec2{}) {
		// Origin inside the box
		normal = dir.Scale(-1).Normalize()
	}
	return tMin, normal, true
}

// RayCircle intersects a ray against a circle by solving the quadratic
// |origin + t*dir - center|² = radius². Returns the nearest non-negative
// t within maxT and the outward normal at the hit point.
func RayCircle(origin, dir Vec2, c Circle, maxT float64) (t float64, normal Vec2, ok bool) {
	m := origin.Sub(c.Center)
	a := dir.Dot(dir)
	if a == 0 {
		return 0, Vec2{}, false
	}
	b := m.Dot(dir)
	cc := m.Dot(m) - c.Radius*c.Radius

	disc := b*b - a*cc
	if disc < 0 {
		return 0, Vec2{}, false
	}

	sq := math.Sqrt(disc)
	t = (-b - sq) / a
	if t < 0 {
		// Origin inside the circle; take the exit point
		t = (-b + sq) / a
	}
	if t < 0 || t > maxT {
		return 0, Vec2{}, false
	}

	hit := origin.Add(dir.Scale(t))
	normal = hit.Sub(c.Center).Normalize()
	if normal == (Vec2{}) {
		normal = Vec2{0, -1}
	}
	return t, normal, true
}

package vmath

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// R is shorthand for constructing a Rect.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.W/2, r.Y + r.H/2}
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Intersects reports whether two rectangles overlap.
// Touching edges do not count as overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X &&
		r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// OverlapExtents returns the penetration along each axis for two
// overlapping rectangles. Both values are positive when Intersects
// is true; callers pick the smaller axis as the separation axis.
func (r Rect) OverlapExtents(o Rect) (overlapX, overlapY float64) {
	overlapX = min(r.X+r.W, o.X+o.W) - max(r.X, o.X)
	overlapY = min(r.Y+r.H, o.Y+o.H) - max(r.Y, o.Y)
	return overlapX, overlapY
}

// Translated returns the rectangle moved by d.
func (r Rect) Translated(d Vec2) Rect {
	return Rect{r.X + d.X, r.Y + d.Y, r.W, r.H}
}

// Circle is a circle described by its center and radius.
type Circle struct {
	Center Vec2
	Radius float64
}

// Bounds returns the tight AABB around the circle.
func (c Circle) Bounds() Rect {
	return Rect{c.Center.X - c.Radius, c.Center.Y - c.Radius, c.Radius * 2, c.Radius * 2}
}

// IntersectsCircle reports whether two circles overlap.
func (c Circle) IntersectsCircle(o Circle) bool {
	rsum := c.Radius + o.Radius
	return c.Center.Sub(o.Center).MagnitudeSq() < rsum*rsum
}

// ClosestPointOnRect returns the point on (or in) the rectangle nearest
// to p. Used for rect-circle narrow phase.
func ClosestPointOnRect(r Rect, p Vec2) Vec2 {
	return Vec2{
		X: clampf(p.X, r.X, r.X+r.W),
		Y: clampf(p.Y, r.Y, r.Y+r.H),
	}
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

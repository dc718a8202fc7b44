package vmath

import "math"

// Vec2 is an immutable 2D vector. Every operation returns a new value;
// there is no shared mutable state.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o component-wise.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o component-wise.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v multiplied by scalar k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{v.X * k, v.Y * k}
}

// Magnitude returns the vector length sqrt(x² + y²).
func (v Vec2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// MagnitudeSq returns squared magnitude without the sqrt.
// Prefer for comparisons on hot paths.
func (v Vec2) MagnitudeSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns the unit vector in the direction of v, zero-safe:
// the zero vector normalizes to the zero vector, never NaN.
func (v Vec2) Normalize() Vec2 {
	mag := v.Magnitude()
	if mag == 0 {
		return Vec2{}
	}
	return Vec2{v.X / mag, v.Y / mag}
}

// Clamp limits the vector to maxMag while preserving direction.
// Returns the vector unchanged if its magnitude is within maxMag.
func (v Vec2) Clamp(maxMag float64) Vec2 {
	mag := v.Magnitude()
	if mag <= maxMag || mag == 0 {
		return v
	}
	return v.Scale(maxMag / mag)
}

// Dot returns v·o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Distance returns the Euclidean distance between v and o.
func (v Vec2) Distance(o Vec2) float64 {
	return v.Sub(o).Magnitude()
}

// Lerp returns the linear interpolation from v toward o at t in [0,1].
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Reflect returns v reflected off a surface with the given unit normal:
// v' = v - 2*dot(v, n)*n.
func (v Vec2) Reflect(normal Vec2) Vec2 {
	d := 2 * v.Dot(normal)
	return Vec2{v.X - d*normal.X, v.Y - d*normal.Y}
}

// Perpendicular returns v rotated 90° counter-clockwise.
func (v Vec2) Perpendicular() Vec2 {
	return Vec2{-v.Y, v.X}
}

// IsFinite reports whether both components are finite (no NaN/Inf).
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

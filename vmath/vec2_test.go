package vmath

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestAddCommutative(t *testing.T) {
	pairs := [][2]Vec2{
		{V(1, 2), V(3, 4)},
		{V(-5, 0.5), V(0.25, -9)},
		{V(0, 0), V(7, 7)},
	}
	for _, p := range pairs {
		ab := p[0].Add(p[1])
		ba := p[1].Add(p[0])
		if ab != ba {
			t.Errorf("Add not commutative: %v + %v gave %v and %v", p[0], p[1], ab, ba)
		}
	}
}

func TestSub(t *testing.T) {
	result := V(3, 4).Sub(V(1, 2))
	if result != V(2, 2) {
		t.Errorf("Expected (2, 2), got %v", result)
	}
}

func TestScaleMagnitude(t *testing.T) {
	// |k*v| == |k| * |v| for finite k
	v := V(3, 4)
	for _, k := range []float64{2, -2, 0.5, 0, -7.25} {
		got := v.Scale(k).Magnitude()
		want := math.Abs(k) * v.Magnitude()
		if !almostEqual(got, want) {
			t.Errorf("Scale(%v): magnitude %v, want %v", k, got, want)
		}
	}
}

func TestMagnitude(t *testing.T) {
	if mag := V(3, 4).Magnitude(); mag != 5 {
		t.Errorf("Expected magnitude 5, got %v", mag)
	}
	if mag := V(0, 0).Magnitude(); mag != 0 {
		t.Errorf("Expected zero magnitude, got %v", mag)
	}
}

func TestNormalize(t *testing.T) {
	vs := []Vec2{V(3, 4), V(-1, 0), V(0.001, -0.002), V(1e6, 1e6)}
	for _, v := range vs {
		n := v.Normalize()
		if !almostEqual(n.Magnitude(), 1) {
			t.Errorf("Normalize(%v): magnitude %v, want 1", v, n.Magnitude())
		}
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	// Documented policy: the zero vector normalizes to the zero vector
	n := V(0, 0).Normalize()
	if n != (Vec2{}) {
		t.Errorf("Expected zero vector, got %v", n)
	}
	if math.IsNaN(n.X) || math.IsNaN(n.Y) {
		t.Error("Normalize of zero vector produced NaN")
	}
}

func TestClamp(t *testing.T) {
	// Above the limit: scaled to exactly maxMag
	clamped := V(3, 4).Clamp(2.5)
	if !almostEqual(clamped.Magnitude(), 2.5) {
		t.Errorf("Expected magnitude 2.5, got %v", clamped.Magnitude())
	}

	// Within the limit: unchanged
	v := V(1, 0)
	if got := v.Clamp(2); got != v {
		t.Errorf("Expected %v unchanged, got %v", v, got)
	}

	// Zero vector: unchanged, no division by zero
	if got := V(0, 0).Clamp(5); got != (Vec2{}) {
		t.Errorf("Expected zero vector, got %v", got)
	}
}

func TestDot(t *testing.T) {
	if d := V(1, 2).Dot(V(3, 4)); d != 11 {
		t.Errorf("Expected 11, got %v", d)
	}
	// Perpendicular vectors
	if d := V(1, 0).Dot(V(0, 1)); d != 0 {
		t.Errorf("Expected 0, got %v", d)
	}
}

func TestReflect(t *testing.T) {
	// Falling straight down onto a floor (normal up)
	r := V(0, 10).Reflect(V(0, -1))
	if r != V(0, -10) {
		t.Errorf("Expected (0, -10), got %v", r)
	}
}

func TestLerp(t *testing.T) {
	a, b := V(0, 0), V(10, 20)
	if got := a.Lerp(b, 0.5); got != V(5, 10) {
		t.Errorf("Expected (5, 10), got %v", got)
	}
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Expected %v, got %v", a, got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Expected %v, got %v", b, got)
	}
}

func TestIsFinite(t *testing.T) {
	if !V(1, 2).IsFinite() {
		t.Error("Expected finite")
	}
	for _, v := range []Vec2{
		{math.NaN(), 0},
		{0, math.Inf(1)},
		{math.Inf(-1), math.NaN()},
	} {
		if v.IsFinite() {
			t.Errorf("Expected %v non-finite", v)
		}
	}
}

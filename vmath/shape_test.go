package vmath

import "testing"

func TestRectIntersects(t *testing.T) {
	a := R(0, 0, 10, 10)

	cases := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlapping", R(5, 5, 10, 10), true},
		{"contained", R(2, 2, 4, 4), true},
		{"separate", R(20, 20, 5, 5), false},
		{"touching edge", R(10, 0, 5, 5), false},
		{"touching corner", R(10, 10, 5, 5), false},
	}
	for _, c := range cases {
		if got := a.Intersects(c.b); got != c.want {
			t.Errorf("%s: Intersects = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestRectOverlapExtents(t *testing.T) {
	a := R(0, 0, 10, 10)
	b := R(8, 5, 10, 10)
	ox, oy := a.OverlapExtents(b)
	if ox != 2 || oy != 5 {
		t.Errorf("Expected overlap (2, 5), got (%v, %v)", ox, oy)
	}
}

func TestRectContains(t *testing.T) {
	r := R(0, 0, 10, 10)
	if !r.Contains(V(5, 5)) {
		t.Error("Expected center contained")
	}
	if r.Contains(V(10, 10)) {
		t.Error("Max corner is exclusive")
	}
	if !r.Contains(V(0, 0)) {
		t.Error("Min corner is inclusive")
	}
}

func TestCircleBounds(t *testing.T) {
	c := Circle{Center: V(5, 5), Radius: 3}
	b := c.Bounds()
	if b != R(2, 2, 6, 6) {
		t.Errorf("Expected (2,2,6,6), got %v", b)
	}
}

func TestClosestPointOnRect(t *testing.T) {
	r := R(0, 0, 10, 10)

	// Point to the right of the rect clamps to the right edge
	if got := ClosestPointOnRect(r, V(15, 5)); got != V(10, 5) {
		t.Errorf("Expected (10, 5), got %v", got)
	}
	// Point inside stays put
	if got := ClosestPointOnRect(r, V(3, 4)); got != V(3, 4) {
		t.Errorf("Expected (3, 4), got %v", got)
	}
}

func TestRayRect(t *testing.T) {
	r := R(10, 0, 10, 10)

	// Ray pointing at the left face
	tHit, normal, ok := RayRect(V(0, 5), V(1, 0), r, 100)
	if !ok {
		t.Fatal("Expected hit")
	}
	if tHit != 10 {
		t.Errorf("Expected t=10, got %v", tHit)
	}
	if normal != V(-1, 0) {
		t.Errorf("Expected normal (-1, 0), got %v", normal)
	}

	// Ray pointing away
	if _, _, ok := RayRect(V(0, 5), V(-1, 0), r, 100); ok {
		t.Error("Expected miss")
	}

	// Out of range
	if _, _, ok := RayRect(V(0, 5), V(1, 0), r, 5); ok {
		t.Error("Expected miss beyond maxT")
	}

	// Parallel to slab, outside it
	if _, _, ok := RayRect(V(0, 20), V(1, 0), r, 100); ok {
		t.Error("Expected miss for parallel ray outside slab")
	}
}

func TestRayCircle(t *testing.T) {
	c := Circle{Center: V(10, 0), Radius: 2}

	tHit, normal, ok := RayCircle(V(0, 0), V(1, 0), c, 100)
	if !ok {
		t.Fatal("Expected hit")
	}
	if !almostEqual(tHit, 8) {
		t.Errorf("Expected t=8, got %v", tHit)
	}
	if !almostEqual(normal.X, -1) || !almostEqual(normal.Y, 0) {
		t.Errorf("Expected normal (-1, 0), got %v", normal)
	}

	if _, _, ok := RayCircle(V(0, 10), V(1, 0), c, 100); ok {
		t.Error("Expected miss")
	}
}

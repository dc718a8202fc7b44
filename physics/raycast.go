package physics

import (
	"math"

	"github.com/hollowpine/strata/core"
	"github.com/hollowpine/strata/vmath"
)

// RayHit describes the nearest intersection found by Raycast.
type RayHit struct {
	Entity   core.Entity
	Body     *Body
	Point    vmath.Vec2
	Normal   vmath.Vec2
	Distance float64
}

// Raycast walks the broad-phase grid cells along the ray (supercover
// DDA) and closed-form intersects each candidate body, returning the
// nearest hit within maxDist. Only bodies whose group intersects mask
// are considered. The grid reflects the most recent Step.
//
// direction need not be normalized; a zero direction never hits.
func (w *World) Raycast(origin, direction vmath.Vec2, maxDist float64, mask uint32) (RayHit, bool) {
	dir := direction.Normalize()
	if dir == (vmath.Vec2{}) || maxDist <= 0 {
		return RayHit{}, false
	}

	best := RayHit{Distance: math.Inf(1)}
	found := false

	test := func(b *Body) {
		if b.Group&mask == 0 {
			return
		}

		var t float64
		var n vmath.Vec2
		var ok bool
		if b.Shape == ShapeCircle {
			t, n, ok = vmath.RayCircle(origin, dir, vmath.Circle{Center: b.Position, Radius: b.Radius}, maxDist)
		} else {
			t, n, ok = vmath.RayRect(origin, dir, b.Bounds(), maxDist)
		}
		if ok && t < best.Distance {
			best = RayHit{
				Entity:   b.Entity,
				Body:     b,
				Point:    origin.Add(dir.Scale(t)),
				Normal:   n,
				Distance: t,
			}
			found = true
		}
	}

	// Supercover DDA over grid cells from origin to origin+dir*maxDist
	cs := w.grid.cellSize
	x := int(math.Floor(origin.X / cs))
	y := int(math.Floor(origin.Y / cs))

	stepX, stepY := 1, 1
	if dir.X < 0 {
		stepX = -1
	}
	if dir.Y < 0 {
		stepY = -1
	}

	tDeltaX, tDeltaY := math.Inf(1), math.Inf(1)
	tMaxX, tMaxY := math.Inf(1), math.Inf(1)
	if dir.X != 0 {
		tDeltaX = cs / math.Abs(dir.X)
		var boundary float64
		if stepX > 0 {
			boundary = float64(x+1) * cs
		} else {
			boundary = float64(x) * cs
		}
		tMaxX = (boundary - origin.X) / dir.X
	}
	if dir.Y != 0 {
		tDeltaY = cs / math.Abs(dir.Y)
		var boundary float64
		if stepY > 0 {
			boundary = float64(y+1) * cs
		} else {
			boundary = float64(y) * cs
		}
		tMaxY = (boundary - origin.Y) / dir.Y
	}

	// Stamp-based dedup: a body spanning several cells is tested once
	w.grid.stamp++
	stamp := w.grid.stamp

	cellEntry := 0.0
	for cellEntry <= maxDist {
		for _, b := range w.grid.cells[CellKey{x, y}] {
			if b.queryStamp == stamp {
				continue
			}
			b.queryStamp = stamp
			test(b)
		}

		// Past the nearest confirmed hit, later cells cannot beat it
		if found && cellEntry > best.Distance {
			break
		}

		if tMaxX < tMaxY {
			cellEntry = tMaxX
			x += stepX
			tMaxX += tDeltaX
		} else {
			cellEntry = tMaxY
			y += stepY
			tMaxY += tDeltaY
		}
	}

	if !found {
		return RayHit{}, false
	}
	return best, true
}

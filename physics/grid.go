package physics

import (
	"math"

	"github.com/hollowpine/strata/vmath"
)

// CellKey addresses one grid cell: floor(position / cellSize) per axis.
type CellKey struct {
	X, Y int
}

// SpatialGrid is a uniform hash grid used as the collision broad phase.
// A body spanning multiple cells registers in all of them; queries
// deduplicate through per-query visit stamps, so no allocation is
// needed for the seen-set. Rebuilt from scratch once per step.
type SpatialGrid struct {
	cellSize float64
	cells    map[CellKey][]*Body
	stamp    uint64
}

// NewSpatialGrid creates a grid with the given cell size.
func NewSpatialGrid(cellSize float64) *SpatialGrid {
	return &SpatialGrid{
		cellSize: cellSize,
		cells:    make(map[CellKey][]*Body, 256),
	}
}

// cellRange returns the inclusive cell index range overlapped by bounds.
func (g *SpatialGrid) cellRange(bounds vmath.Rect) (minX, minY, maxX, maxY int) {
	minX = int(math.Floor(bounds.X / g.cellSize))
	minY = int(math.Floor(bounds.Y / g.cellSize))
	maxX = int(math.Floor((bounds.X + bounds.W) / g.cellSize))
	maxY = int(math.Floor((bounds.Y + bounds.H) / g.cellSize))
	return minX, minY, maxX, maxY
}

// Insert registers the body in every cell its bounds overlap,
// inclusive of partial overlap at cell edges.
func (g *SpatialGrid) Insert(b *Body, bounds vmath.Rect) {
	minX, minY, maxX, maxY := g.cellRange(bounds)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			key := CellKey{x, y}
			g.cells[key] = append(g.cells[key], b)
		}
	}
}

// Query appends to out every body registered in any cell overlapping
// bounds, each body at most once, and returns the extended slice.
// Results are broad-phase candidates; callers narrow-phase them.
func (g *SpatialGrid) Query(bounds vmath.Rect, out []*Body) []*Body {
	g.stamp++
	minX, minY, maxX, maxY := g.cellRange(bounds)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			for _, b := range g.cells[CellKey{x, y}] {
				if b.queryStamp == g.stamp {
					continue
				}
				b.queryStamp = g.stamp
				out = append(out, b)
			}
		}
	}
	return out
}

// QueryCell appends the bodies registered in a single cell.
func (g *SpatialGrid) QueryCell(key CellKey, out []*Body) []*Body {
	return append(out, g.cells[key]...)
}

// Clear empties all cells. Idempotent; cell capacity is retained to
// avoid reallocation on the rebuild that follows each step.
func (g *SpatialGrid) Clear() {
	for key := range g.cells {
		g.cells[key] = g.cells[key][:0]
	}
}

// CellSize returns the configured cell edge length.
func (g *SpatialGrid) CellSize() float64 {
	return g.cellSize
}

// CellCount returns the number of materialized cells, for telemetry.
func (g *SpatialGrid) CellCount() int {
	return len(g.cells)
}

package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection on a
// bounded playfield. Items are inserted by the center of their box and
// identified by index; queries visit the 3x3 cell neighborhood.
//
// Cell size must be >= the largest center-to-center distance at which two
// boxes can still overlap on either axis (half the sum of their extents),
// so that every potential overlap lies within the neighborhood.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of items whose center falls within the cell.
// The slice is reused between ticks (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a grid covering a width×height playfield.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Clear removes all items without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds the item with the given index at the center of box.
func (g *SpatialGrid) Insert(box Rect, index int) {
	cx, cy := box.Center()
	col, row := g.posToCell(cx, cy)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood
// around the center of box. Cells past the playfield edge are skipped.
// If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryAround(box Rect, fn func(index int) bool) {
	cx, cy := box.Center()
	col, row := g.posToCell(cx, cy)

	for r := max(row-1, 0); r <= min(row+1, g.rows-1); r++ {
		rowOffset := r * g.cols
		for c := max(col-1, 0); c <= min(col+1, g.cols-1); c++ {
			for _, itemIdx := range g.cells[rowOffset+c].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// posToCell converts playfield coordinates to grid cell coordinates.
// Positions off the playfield clamp to the nearest edge cell.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor(x * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor(y * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}

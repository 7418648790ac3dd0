package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection on a
// bounded field. Items are inserted by position and index, then candidates
// near a point are found with a 3x3 neighborhood lookup.
//
// Cell size must be >= the largest sum of radii of any colliding pair so that
// every overlap is found within the neighborhood. Positions outside the field
// are clamped to the border cells, which only adds candidates.
type SpatialGrid struct {
	invCellSize float64
	cols        int
	rows        int
	cells       [][]int // Item indices per cell, reused between frames
}

// NewSpatialGrid creates a grid covering a w×h field.
func NewSpatialGrid(w, h, cellSize float64) *SpatialGrid {
	cols := max(1, int(math.Ceil(w/cellSize)))
	rows := max(1, int(math.Ceil(h/cellSize)))
	return &SpatialGrid{
		invCellSize: 1 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([][]int, cols*rows),
	}
}

// Clear removes all items without releasing cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds the item index at (x, y).
func (g *SpatialGrid) Insert(x, y float64, index int) {
	col, row := g.cell(x, y)
	i := row*g.cols + col
	g.cells[i] = append(g.cells[i], index)
}

// QueryAround calls fn for each item in the 3x3 neighborhood of (x, y).
// Iteration stops early when fn returns true.
func (g *SpatialGrid) QueryAround(x, y float64, fn func(index int) bool) {
	col, row := g.cell(x, y)
	for r := max(row-1, 0); r <= min(row+1, g.rows-1); r++ {
		for c := max(col-1, 0); c <= min(col+1, g.cols-1); c++ {
			for _, idx := range g.cells[r*g.cols+c] {
				if fn(idx) {
					return
				}
			}
		}
	}
}

func (g *SpatialGrid) cell(x, y float64) (col, row int) {
	col = min(max(int(math.Floor(x*g.invCellSize)), 0), g.cols-1)
	row = min(max(int(math.Floor(y*g.invCellSize)), 0), g.rows-1)
	return col, row
}

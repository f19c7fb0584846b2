package collision

import "strings"

// Grid is a dense boolean occupancy matrix, one cell per level tile, true
// meaning impassable. It is never mutated after Build returns it.
type Grid struct {
	rows, cols int
	cells      []bool
}

// Rows returns the grid height in tiles.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the grid width in tiles.
func (g *Grid) Cols() int { return g.cols }

// At returns the cell at row, col. Out-of-range indices report false.
func (g *Grid) At(row, col int) bool {
	if !g.inBounds(row, col) {
		return false
	}
	return g.cells[row*g.cols+col]
}

// SolidCount returns the number of impassable cells.
func (g *Grid) SolidCount() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// String renders the grid one row per line, '#' for solid and '.' for free.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols + 1))
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			if g.cells[row*g.cols+col] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

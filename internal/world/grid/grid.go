// Package grid holds the static occupancy map the renderer casts against.
package grid

import "fmt"

// Cell is the occupancy tag of one map tile.
type Cell uint8

const (
	Open Cell = iota
	Wall
)

// String returns a short name for the cell.
func (c Cell) String() string {
	if c == Wall {
		return "wall"
	}
	return "open"
}

// Grid is a square, write-once map of cells. The tile size is chosen so the
// grid exactly covers the vertical extent of the screen.
type Grid struct {
	cells    [][]Cell // [row][col]
	size     int
	tileSize float64
}

// New builds a grid from a 0/1 layout. The layout must be square and its
// outer border must be solid, because rays that leave the map are clamped
// onto the border instead of being stopped.
func New(layout [][]int, screenHeight int) (*Grid, error) {
	if err := validateLayout(layout); err != nil {
		return nil, err
	}
	if screenHeight <= 0 {
		return nil, fmt.Errorf("invalid screen height: %d", screenHeight)
	}

	n := len(layout)
	cells := make([][]Cell, n)
	for row, values := range layout {
		cells[row] = make([]Cell, n)
		for col, v := range values {
			if v == 1 {
				cells[row][col] = Wall
			}
		}
	}

	return &Grid{
		cells:    cells,
		size:     n,
		tileSize: float64(screenHeight / n),
	}, nil
}

// validateLayout checks dimensions, values and the solid border
func validateLayout(layout [][]int) error {
	n := len(layout)
	if n == 0 {
		return fmt.Errorf("layout is empty")
	}

	for row, values := range layout {
		if len(values) != n {
			return fmt.Errorf("layout is not square: row %d has %d cells, expected %d", row, len(values), n)
		}
		for col, v := range values {
			if v != 0 && v != 1 {
				return fmt.Errorf("invalid cell value %d at (%d, %d)", v, row, col)
			}
			onBorder := row == 0 || col == 0 || row == n-1 || col == n-1
			if onBorder && v != 1 {
				return fmt.Errorf("border cell (%d, %d) must be a wall", row, col)
			}
		}
	}

	return nil
}

// Size returns the number of rows (and columns).
func (g *Grid) Size() int {
	return g.size
}

// TileSize returns the world units per cell.
func (g *Grid) TileSize() float64 {
	return g.tileSize
}

// CellAt returns the cell at row, col. Both indices must be in [0, Size()).
func (g *Grid) CellAt(row, col int) Cell {
	return g.cells[row][col]
}

// Clamp forces an index into [0, Size()-1].
func (g *Grid) Clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i > g.size-1 {
		return g.size - 1
	}
	return i
}

// CellAtWorld maps a world point to its clamped cell.
func (g *Grid) CellAtWorld(x, y float64) (row, col int, cell Cell) {
	row = g.Clamp(int(y / g.tileSize))
	col = g.Clamp(int(x / g.tileSize))
	return row, col, g.cells[row][col]
}

// CanMoveTo reports whether a viewer may stand at the world point. Points
// outside the grid are never walkable.
func (g *Grid) CanMoveTo(x, y float64) bool {
	if x < 0 || y < 0 {
		return false
	}
	row := int(y / g.tileSize)
	col := int(x / g.tileSize)
	if row >= g.size || col >= g.size {
		return false
	}
	return g.cells[row][col] == Open
}

// Layout returns a copy of the grid as 0/1 values.
func (g *Grid) Layout() [][]int {
	layout := make([][]int, g.size)
	for row := range g.cells {
		layout[row] = make([]int, g.size)
		for col, c := range g.cells[row] {
			if c == Wall {
				layout[row][col] = 1
			}
		}
	}
	return layout
}

// DefaultLayout returns the built-in 10x10 map.
func DefaultLayout() [][]int {
	return [][]int{
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 0, 1, 1, 0, 1},
		{1, 0, 0, 0, 0, 0, 0, 1, 0, 1},
		{1, 0, 0, 0, 0, 0, 1, 1, 0, 1},
		{1, 0, 0, 0, 0, 0, 0, 1, 0, 1},
		{1, 0, 0, 0, 1, 1, 1, 1, 0, 1},
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 1},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	}
}

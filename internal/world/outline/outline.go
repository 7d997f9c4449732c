// Package outline traces the exposed faces of wall regions in a grid. The
// projector draws them over the map overlay so wall shapes read clearly at
// small tile sizes.
package outline

import "chosenoffset.com/corridor/internal/world/grid"

// Edge says which side of its wall cells a segment borders.
type Edge uint8

const (
	Top Edge = iota
	Right
	Bottom
	Left
)

// Point is a world position.
type Point struct {
	X, Y float64
}

// Cell is a grid coordinate.
type Cell struct {
	Row, Col int
}

// Segment is a straight run of wall face between a wall and an open cell.
type Segment struct {
	A, B  Point
	Edge  Edge
	Cells []Cell // Wall cells the segment runs along
}

// Extract returns the merged wall faces of every contiguous wall region.
// Faces on the outside of the grid are not exposed and are skipped.
func Extract(g *grid.Grid) []Segment {
	var segments []Segment
	for _, region := range wallRegions(g) {
		segments = append(segments, perimeter(g, region)...)
	}
	return mergeColinear(segments)
}

// wallRegions flood fills the grid into 4-connected wall regions
func wallRegions(g *grid.Grid) [][]Cell {
	n := g.Size()
	visited := make(map[Cell]bool)
	var regions [][]Cell

	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			c := Cell{Row: row, Col: col}
			if visited[c] || g.CellAt(row, col) != grid.Wall {
				continue
			}
			regions = append(regions, floodFill(g, c, visited))
		}
	}

	return regions
}

func floodFill(g *grid.Grid, start Cell, visited map[Cell]bool) []Cell {
	n := g.Size()
	var region []Cell
	queue := []Cell{start}
	visited[start] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		region = append(region, current)

		neighbors := []Cell{
			{Row: current.Row - 1, Col: current.Col},
			{Row: current.Row, Col: current.Col + 1},
			{Row: current.Row + 1, Col: current.Col},
			{Row: current.Row, Col: current.Col - 1},
		}
		for _, nb := range neighbors {
			if nb.Row < 0 || nb.Row >= n || nb.Col < 0 || nb.Col >= n {
				continue
			}
			if visited[nb] || g.CellAt(nb.Row, nb.Col) != grid.Wall {
				continue
			}
			visited[nb] = true
			queue = append(queue, nb)
		}
	}

	return region
}

// perimeter emits one unit segment per wall face that borders an open cell
func perimeter(g *grid.Grid, region []Cell) []Segment {
	tile := g.TileSize()
	var segments []Segment

	for _, c := range region {
		left := float64(c.Col) * tile
		top := float64(c.Row) * tile
		right, bottom := left+tile, top+tile
		cells := []Cell{c}

		if isOpen(g, c.Row-1, c.Col) {
			segments = append(segments, Segment{A: Point{left, top}, B: Point{right, top}, Edge: Top, Cells: cells})
		}
		if isOpen(g, c.Row, c.Col+1) {
			segments = append(segments, Segment{A: Point{right, top}, B: Point{right, bottom}, Edge: Right, Cells: cells})
		}
		if isOpen(g, c.Row+1, c.Col) {
			segments = append(segments, Segment{A: Point{left, bottom}, B: Point{right, bottom}, Edge: Bottom, Cells: cells})
		}
		if isOpen(g, c.Row, c.Col-1) {
			segments = append(segments, Segment{A: Point{left, top}, B: Point{left, bottom}, Edge: Left, Cells: cells})
		}
	}

	return segments
}

// isOpen reports an in-bounds open cell
func isOpen(g *grid.Grid, row, col int) bool {
	n := g.Size()
	if row < 0 || row >= n || col < 0 || col >= n {
		return false
	}
	return g.CellAt(row, col) == grid.Open
}

// mergeColinear joins touching segments that share an edge and a line.
// Horizontal segments run A to B along +X, vertical ones along +Y.
func mergeColinear(segments []Segment) []Segment {
	merged := make([]bool, len(segments))
	var result []Segment

	for i := range segments {
		if merged[i] {
			continue
		}
		current := segments[i]
		merged[i] = true

		for extended := true; extended; {
			extended = false
			for j := range segments {
				if merged[j] || !canMerge(current, segments[j]) {
					continue
				}
				current = merge(current, segments[j])
				merged[j] = true
				extended = true
			}
		}

		result = append(result, current)
	}

	return result
}

const epsilon = 0.001

func canMerge(a, b Segment) bool {
	if a.Edge != b.Edge {
		return false
	}

	switch a.Edge {
	case Top, Bottom:
		if abs(a.A.Y-b.A.Y) > epsilon {
			return false
		}
		return abs(a.B.X-b.A.X) < epsilon || abs(a.A.X-b.B.X) < epsilon
	default:
		if abs(a.A.X-b.A.X) > epsilon {
			return false
		}
		return abs(a.B.Y-b.A.Y) < epsilon || abs(a.A.Y-b.B.Y) < epsilon
	}
}

func merge(a, b Segment) Segment {
	result := a
	switch a.Edge {
	case Top, Bottom:
		result.A.X = min(a.A.X, b.A.X)
		result.B.X = max(a.B.X, b.B.X)
	default:
		result.A.Y = min(a.A.Y, b.A.Y)
		result.B.Y = max(a.B.Y, b.B.Y)
	}
	result.Cells = append(append([]Cell(nil), a.Cells...), b.Cells...)
	return result
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

package raycast

import (
	"math"

	"chosenoffset.com/corridor/internal/core/viewer"
	"chosenoffset.com/corridor/internal/world/grid"
	"chosenoffset.com/corridor/internal/world/outline"
)

// parallelEpsilon is the smallest cross product treated as non-parallel.
const parallelEpsilon = 1e-10

// Segments intersects each ray with the grid's merged wall faces instead of
// walking cells. Distances are exact like DDA's.
type Segments struct {
	faces []outline.Segment
}

// NewSegments traces the wall faces of g once.
func NewSegments(g *grid.Grid) *Segments {
	return &Segments{faces: outline.Extract(g)}
}

// Trace implements Tracer.
func (s *Segments) Trace(v viewer.Viewer, g *grid.Grid, p Params, ray int) WallSlice {
	angle := p.RayAngle(v.Angle, ray)
	slice := WallSlice{Ray: ray, Angle: angle, ScreenX: p.ColumnX(ray)}

	// Faces only exist between open and wall cells, so a viewer standing in
	// a wall (or clamped onto the border) sees it at distance zero
	row, col, cell := g.CellAtWorld(v.X, v.Y)
	if cell == grid.Wall {
		return p.hit(slice, v, 0, v.X, v.Y, row, col)
	}

	dx, dy := viewer.Direction(angle)
	origin := outline.Point{X: v.X, Y: v.Y}

	best := math.Inf(1)
	var bestFace outline.Segment
	for _, face := range s.faces {
		if !facing(face, dx, dy) {
			continue
		}
		if t, ok := intersect(origin, dx, dy, face); ok && t < best {
			best = t
			bestFace = face
		}
	}

	if best >= p.MaxDistance {
		return p.miss(slice, v, g)
	}

	x, y := v.X+dx*best, v.Y+dy*best
	row, col = wallCell(g, bestFace, x, y)
	return p.hit(slice, v, best, x, y, row, col)
}

// facing reports whether a ray travelling along (dx, dy) approaches the face
// from its open side. Faces point out of the wall.
func facing(face outline.Segment, dx, dy float64) bool {
	switch face.Edge {
	case outline.Top:
		return dy > 0
	case outline.Bottom:
		return dy < 0
	case outline.Left:
		return dx > 0
	default:
		return dx < 0
	}
}

// intersect returns the ray parameter where origin + t*(dx, dy) crosses the
// face, if it does so ahead of the origin.
func intersect(origin outline.Point, dx, dy float64, face outline.Segment) (float64, bool) {
	segDX := face.B.X - face.A.X
	segDY := face.B.Y - face.A.Y

	denominator := segDX*dy - segDY*dx
	if math.Abs(denominator) < parallelEpsilon {
		return 0, false
	}

	diffX := face.A.X - origin.X
	diffY := face.A.Y - origin.Y

	u := (dx*diffY - dy*diffX) / denominator
	t := (segDX*diffY - segDY*diffX) / denominator

	if u >= 0 && u <= 1 && t >= 0 {
		return t, true
	}
	return 0, false
}

// wallCell finds the wall cell behind a face at the given point on it
func wallCell(g *grid.Grid, face outline.Segment, x, y float64) (row, col int) {
	tile := g.TileSize()
	switch face.Edge {
	case outline.Top:
		row = int(math.Round(y / tile))
		col = alongFace(x, face.A.X, face.B.X, tile)
	case outline.Bottom:
		row = int(math.Round(y/tile)) - 1
		col = alongFace(x, face.A.X, face.B.X, tile)
	case outline.Left:
		col = int(math.Round(x / tile))
		row = alongFace(y, face.A.Y, face.B.Y, tile)
	case outline.Right:
		col = int(math.Round(x/tile)) - 1
		row = alongFace(y, face.A.Y, face.B.Y, tile)
	}
	return g.Clamp(row), g.Clamp(col)
}

// alongFace maps a coordinate on a face to a cell index, keeping the far
// endpoint inside the face's last cell
func alongFace(v, lo, hi, tile float64) int {
	i := int(math.Floor(v / tile))
	if last := int(math.Round(hi/tile)) - 1; i > last {
		i = last
	}
	if first := int(math.Round(lo / tile)); i < first {
		i = first
	}
	return i
}

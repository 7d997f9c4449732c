package raycast

import (
	"math"

	"chosenoffset.com/corridor/internal/core/viewer"
	"chosenoffset.com/corridor/internal/world/grid"
)

// DDA walks the grid cell by cell and reports the exact distance to the
// first wall face. Cells outside the map are clamped onto the border, the
// same policy March uses.
type DDA struct{}

// Trace implements Tracer.
func (DDA) Trace(v viewer.Viewer, g *grid.Grid, p Params, ray int) WallSlice {
	angle := p.RayAngle(v.Angle, ray)
	s := WallSlice{Ray: ray, Angle: angle, ScreenX: p.ColumnX(ray)}

	tileSize := g.TileSize()
	dx, dy := viewer.Direction(angle)

	// Work in tile units
	px, py := v.X/tileSize, v.Y/tileSize
	mapX, mapY := int(math.Floor(px)), int(math.Floor(py))

	row, col := g.Clamp(mapY), g.Clamp(mapX)
	if g.CellAt(row, col) == grid.Wall {
		return p.hit(s, v, 0, v.X, v.Y, row, col)
	}

	stepX, sideX, deltaX := axisStep(px, mapX, dx)
	stepY, sideY, deltaY := axisStep(py, mapY, dy)

	for {
		var t float64
		if sideX < sideY {
			t = sideX
			sideX += deltaX
			mapX += stepX
		} else {
			t = sideY
			sideY += deltaY
			mapY += stepY
		}

		distance := t * tileSize
		if distance >= p.MaxDistance {
			return p.miss(s, v, g)
		}

		row, col := g.Clamp(mapY), g.Clamp(mapX)
		if g.CellAt(row, col) == grid.Wall {
			return p.hit(s, v, distance, v.X+dx*distance, v.Y+dy*distance, row, col)
		}
	}
}

// axisStep returns the cell step, the ray parameter of the first boundary
// crossing and the parameter between crossings for one axis.
func axisStep(pos float64, cell int, dir float64) (step int, side, delta float64) {
	if dir == 0 {
		return 0, math.Inf(1), math.Inf(1)
	}
	delta = math.Abs(1 / dir)
	if dir < 0 {
		return -1, (pos - float64(cell)) * delta, delta
	}
	return 1, (float64(cell) + 1 - pos) * delta, delta
}

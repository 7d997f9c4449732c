package raycast

import (
	"chosenoffset.com/corridor/internal/core/viewer"
	"chosenoffset.com/corridor/internal/world/grid"
)

// March steps along the ray one world unit at a time and stops at the first
// wall cell. Sample points outside the map are clamped onto the border.
type March struct{}

// Trace implements Tracer.
func (March) Trace(v viewer.Viewer, g *grid.Grid, p Params, ray int) WallSlice {
	angle := p.RayAngle(v.Angle, ray)
	s := WallSlice{Ray: ray, Angle: angle, ScreenX: p.ColumnX(ray)}

	dx, dy := viewer.Direction(angle)
	steps := int(p.MaxDistance)
	for d := 0; d < steps; d++ {
		x := v.X + dx*float64(d)
		y := v.Y + dy*float64(d)
		row, col, cell := g.CellAtWorld(x, y)
		if cell == grid.Wall {
			return p.hit(s, v, float64(d), x, y, row, col)
		}
	}

	return p.miss(s, v, g)
}

package game

import (
	"chosenoffset.com/corridor/internal/render"
)

// Draw casts the rays for the current pose and projects them.
func (g *Game) Draw(screen render.Image) {
	g.Slices = g.Caster.Cast(g.Viewer, g.GameMap.Grid)
	g.Projector.Draw(screen, g.Viewer, g.Slices)
}

// Package projector draws a frame of wall slices: the sky and floor, the
// debug map with its rays, the shaded wall columns and the viewer marker.
package projector

import (
	"fmt"
	"image/color"

	"chosenoffset.com/corridor/internal/config"
	"chosenoffset.com/corridor/internal/core/raycast"
	"chosenoffset.com/corridor/internal/core/viewer"
	"chosenoffset.com/corridor/internal/render"
	"chosenoffset.com/corridor/internal/world/grid"
	"chosenoffset.com/corridor/internal/world/outline"
)

// Palette
var (
	ColorBackground = color.RGBA{0, 0, 0, 255}
	ColorWallTile   = color.RGBA{50, 50, 50, 255}
	ColorOpenTile   = color.RGBA{40, 20, 20, 255}
	ColorSky        = color.RGBA{80, 130, 200, 255}
	ColorFloor      = color.RGBA{40, 20, 20, 255}
	ColorRay        = color.RGBA{255, 255, 255, 255}
	ColorHitCell    = color.RGBA{255, 255, 255, 255}
	ColorViewer     = color.RGBA{80, 130, 200, 255}
	ColorShadow     = color.RGBA{0, 0, 0, 255}
	ColorHUD        = color.RGBA{255, 255, 255, 255}
	ColorOutline    = color.RGBA{140, 140, 140, 255}
)

const (
	viewerRadius = 10
	shadowOffset = 3
	hitCellInset = 10
	outlineWidth = 2
)

// Options toggles the debug layers.
type Options struct {
	ShowMap     bool
	ShowRays    bool
	ShowHUD     bool
	ShowOutline bool // Wall faces over the map, only with ShowMap
}

// OptionsFrom maps the overlay config onto projector options.
func OptionsFrom(o config.OverlayConfig) Options {
	return Options{
		ShowMap:     o.Map,
		ShowRays:    o.Rays,
		ShowHUD:     o.HUD,
		ShowOutline: o.Outline,
	}
}

// Projector draws frames for one grid and parameter set.
type Projector struct {
	renderer render.Renderer
	params   raycast.Params
	grid     *grid.Grid
	outline  []outline.Segment
	Options  Options
}

// New creates a projector. The wall outline is traced once here since the
// grid never changes.
func New(r render.Renderer, p raycast.Params, g *grid.Grid, opts Options) *Projector {
	return &Projector{
		renderer: r,
		params:   p,
		grid:     g,
		outline:  outline.Extract(g),
		Options:  opts,
	}
}

// Draw renders one frame from the slices RayCaster produced for v.
func (p *Projector) Draw(dst render.Image, v viewer.Viewer, slices []raycast.WallSlice) {
	dst.Fill(ColorBackground)

	if p.Options.ShowMap {
		p.drawMap(dst)
		if p.Options.ShowOutline {
			p.drawOutline(dst)
		}
	}
	p.drawBackground(dst)
	if p.Options.ShowRays {
		p.drawRays(dst, v, slices)
	}
	p.drawSlices(dst, slices)
	p.drawViewer(dst, v)
	if p.Options.ShowHUD {
		p.drawHUD(dst, v)
	}
}

func (p *Projector) drawMap(dst render.Image) {
	tile := float32(int(p.grid.TileSize()))
	for row := 0; row < p.grid.Size(); row++ {
		for col := 0; col < p.grid.Size(); col++ {
			clr := ColorOpenTile
			if p.grid.CellAt(row, col) == grid.Wall {
				clr = ColorWallTile
			}
			p.renderer.FillRect(dst, float32(col)*tile, float32(row)*tile, tile, tile, clr)
		}
	}
}

func (p *Projector) drawOutline(dst render.Image) {
	for _, seg := range p.outline {
		p.renderer.StrokeLine(dst,
			float32(seg.A.X), float32(seg.A.Y),
			float32(seg.B.X), float32(seg.B.Y),
			outlineWidth, ColorOutline)
	}
}

// drawBackground paints the sky and floor halves of the 3D viewport
func (p *Projector) drawBackground(dst render.Image) {
	w := float32(p.params.ScreenWidth)
	h := float32(p.params.ScreenHeight)
	p.renderer.FillRect(dst, w/2, 0, w/2, h/2, ColorSky)
	p.renderer.FillRect(dst, w/2, h/2, w/2, h/2, ColorFloor)
}

func (p *Projector) drawRays(dst render.Image, v viewer.Viewer, slices []raycast.WallSlice) {
	tile := float32(int(p.grid.TileSize()))
	for _, s := range slices {
		if !s.Hit {
			continue
		}
		p.renderer.FillRect(dst,
			float32(s.Col)*tile+hitCellInset,
			float32(s.Row)*tile+hitCellInset,
			tile-2*hitCellInset,
			tile-2*hitCellInset,
			ColorHitCell)
		p.renderer.StrokeLine(dst, float32(v.X), float32(v.Y), float32(s.HitX), float32(s.HitY), 1, ColorRay)
	}
}

func (p *Projector) drawSlices(dst render.Image, slices []raycast.WallSlice) {
	for _, s := range slices {
		if !s.Hit || s.Height <= 0 {
			continue
		}
		p.renderer.FillRect(dst,
			float32(s.ScreenX),
			float32(s.Top),
			float32(p.params.ColumnScale),
			float32(s.Height),
			Gray(s.Shade))
	}
}

// drawViewer draws the marker with its drop shadow
func (p *Projector) drawViewer(dst render.Image, v viewer.Viewer) {
	x, y := float32(int(v.X)), float32(int(v.Y))
	p.renderer.FillCircle(dst, x+shadowOffset, y+shadowOffset, viewerRadius, ColorShadow)
	p.renderer.FillCircle(dst, x, y, viewerRadius, ColorViewer)
}

func (p *Projector) drawHUD(dst render.Image, v viewer.Viewer) {
	text := fmt.Sprintf("x=%.0f y=%.0f heading=%.2f", v.X, v.Y, v.Heading())
	p.renderer.DrawText(dst, text, int(p.params.ScreenWidth/2)+8, 8, ColorHUD)
}

// Gray returns an opaque gray with all three channels set to shade.
func Gray(shade uint8) color.RGBA {
	return color.RGBA{shade, shade, shade, 255}
}

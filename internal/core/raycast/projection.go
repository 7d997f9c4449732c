package raycast

import (
	"math"

	"chosenoffset.com/corridor/internal/config"
)

// Params are the screen and projection constants a Caster needs. They are
// derived once from the config and the grid's tile size.
type Params struct {
	ScreenWidth  float64
	ScreenHeight float64

	FOV         float64
	Rays        int
	AngleStep   float64 // FOV / Rays
	ColumnScale float64 // ScreenHeight / Rays
	MaxDistance float64 // World units

	HeightScale float64 // K
	Epsilon     float64
	ShadeMax    float64
	Fog         float64
}

// NewParams derives the cast parameters for a grid with the given tile size.
func NewParams(cfg *config.Config, tileSize float64) Params {
	return Params{
		ScreenWidth:  float64(cfg.Screen.Width),
		ScreenHeight: float64(cfg.Screen.Height),
		FOV:          cfg.Camera.FOV,
		Rays:         cfg.Camera.Rays,
		AngleStep:    cfg.AngleStep(),
		ColumnScale:  cfg.ColumnScale(),
		MaxDistance:  cfg.Camera.MaxDistanceTiles * tileSize,
		HeightScale:  cfg.Camera.HeightScale,
		Epsilon:      cfg.Camera.Epsilon,
		ShadeMax:     cfg.Camera.ShadeMax,
		Fog:          cfg.Camera.Fog,
	}
}

// RayAngle returns the absolute angle of ray i for a viewer heading.
func (p Params) RayAngle(heading float64, i int) float64 {
	return heading - p.FOV/2 + float64(i)*p.AngleStep
}

// Depth removes fisheye distortion by projecting the slant distance onto
// the viewer's forward axis.
func Depth(distance, heading, rayAngle float64) float64 {
	return distance * math.Cos(heading-rayAngle)
}

// Shade maps a raw distance to a gray level in [0, ShadeMax].
func (p Params) Shade(distance float64) uint8 {
	return uint8(math.Round(p.ShadeMax / (1 + distance*distance*p.Fog)))
}

// ProjectHeight converts a perpendicular depth to a slice height, capped at
// the screen height.
func (p Params) ProjectHeight(depth float64) float64 {
	return math.Min(p.ScreenHeight, p.HeightScale/(depth+p.Epsilon))
}

// Top centers a slice of the given height on the horizon.
func (p Params) Top(height float64) float64 {
	return p.ScreenHeight/2 - height/2
}

// ColumnX is the left edge of ray i in the right half of the screen.
func (p Params) ColumnX(i int) float64 {
	return p.ScreenWidth/2 + float64(i)*p.ColumnScale
}

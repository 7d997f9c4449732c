// Package raycast turns a viewer pose and a grid into one wall slice per
// screen column.
package raycast

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"chosenoffset.com/corridor/internal/config"
	"chosenoffset.com/corridor/internal/core/viewer"
	"chosenoffset.com/corridor/internal/world/grid"
)

// Tracer walks a single ray. Implementations must be pure so rays can be
// traced in any order.
type Tracer interface {
	Trace(v viewer.Viewer, g *grid.Grid, p Params, ray int) WallSlice
}

// Caster produces the wall slices for a frame.
type Caster struct {
	params  Params
	tracer  Tracer
	workers int
}

// New creates a caster. Workers <= 1 traces every ray on the calling
// goroutine.
func New(p Params, t Tracer, workers int) *Caster {
	return &Caster{params: p, tracer: t, workers: workers}
}

// NewFromConfig builds the caster the config asks for.
func NewFromConfig(cfg *config.Config, g *grid.Grid) (*Caster, error) {
	t, err := TracerFor(cfg.Camera.Strategy, g)
	if err != nil {
		return nil, err
	}
	return New(NewParams(cfg, g.TileSize()), t, cfg.Camera.Workers), nil
}

// TracerFor returns the tracer registered under a strategy name. Tracers
// that precompute geometry are built for g.
func TracerFor(strategy string, g *grid.Grid) (Tracer, error) {
	switch strategy {
	case config.StrategyMarch, "":
		return March{}, nil
	case config.StrategyDDA:
		return DDA{}, nil
	case config.StrategySegment:
		return NewSegments(g), nil
	default:
		return nil, fmt.Errorf("unknown ray casting strategy %q", strategy)
	}
}

// Params returns the parameters the caster was built with.
func (c *Caster) Params() Params {
	return c.params
}

// Cast returns exactly Params.Rays slices ordered by ray index.
func (c *Caster) Cast(v viewer.Viewer, g *grid.Grid) []WallSlice {
	n := c.params.Rays
	slices := make([]WallSlice, n)

	if c.workers <= 1 {
		for i := range slices {
			slices[i] = c.tracer.Trace(v, g, c.params, i)
		}
		return slices
	}

	// Each worker owns a contiguous block of indices
	chunk := (n + c.workers - 1) / c.workers
	var eg errgroup.Group
	eg.SetLimit(c.workers)
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		eg.Go(func() error {
			for i := start; i < end; i++ {
				slices[i] = c.tracer.Trace(v, g, c.params, i)
			}
			return nil
		})
	}
	_ = eg.Wait() // tracers never fail

	return slices
}

// hit fills in the projected quantities for a ray that struck a wall.
func (p Params) hit(s WallSlice, v viewer.Viewer, distance, x, y float64, row, col int) WallSlice {
	s.Hit = true
	s.HitX, s.HitY = x, y
	s.Row, s.Col = row, col
	s.Distance = distance
	s.Depth = Depth(distance, v.Angle, s.Angle)
	s.Shade = p.Shade(distance)
	s.Height = p.ProjectHeight(s.Depth)
	s.Top = p.Top(s.Height)
	return s
}

// miss builds the sentinel for a ray that ran out of distance: zero height,
// zero shade, end point at MaxDistance.
func (p Params) miss(s WallSlice, v viewer.Viewer, g *grid.Grid) WallSlice {
	dx, dy := viewer.Direction(s.Angle)
	s.Hit = false
	s.HitX = v.X + dx*p.MaxDistance
	s.HitY = v.Y + dy*p.MaxDistance
	s.Row, s.Col, _ = g.CellAtWorld(s.HitX, s.HitY)
	s.Distance = p.MaxDistance
	s.Depth = p.MaxDistance
	s.Height = 0
	s.Top = p.ScreenHeight / 2
	return s
}

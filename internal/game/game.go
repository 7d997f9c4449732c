// Package game wires input, the viewer, the ray caster and the projector
// into the per-frame Update/Draw loop every host engine drives.
package game

import (
	"log"

	"chosenoffset.com/corridor/internal/config"
	"chosenoffset.com/corridor/internal/core/raycast"
	"chosenoffset.com/corridor/internal/core/viewer"
	"chosenoffset.com/corridor/internal/render"
	"chosenoffset.com/corridor/internal/render/projector"
	"chosenoffset.com/corridor/internal/world/maploader"
)

// turnKeyPixels is the pointer travel one frame of a held arrow key stands for.
const turnKeyPixels = 6

// Game holds all per-session state.
type Game struct {
	Config    *config.Config
	GameMap   *maploader.Map
	Viewer    viewer.Viewer
	Policy    viewer.MovePolicy
	Caster    *raycast.Caster
	Projector *projector.Projector
	Renderer  render.Renderer
	InputMgr  render.InputManager

	// Slices from the most recent Draw
	Slices []raycast.WallSlice

	prevPointerX  int
	pointerPrimed bool

	// Debug
	FrameCount int
}

// New creates a game for one viewer on the given map.
func New(cfg *config.Config, gameMap *maploader.Map, r render.Renderer, input render.InputManager) (*Game, error) {
	caster, err := raycast.NewFromConfig(cfg, gameMap.Grid)
	if err != nil {
		return nil, err
	}

	var policy viewer.MovePolicy = viewer.FreeMovement{}
	if cfg.Movement.Collide {
		policy = gameMap.Grid
	}

	proj := projector.New(r, caster.Params(), gameMap.Grid, projector.OptionsFrom(cfg.Overlay))

	return &Game{
		Config:    cfg,
		GameMap:   gameMap,
		Viewer:    gameMap.SpawnViewer(),
		Policy:    policy,
		Caster:    caster,
		Projector: proj,
		Renderer:  r,
		InputMgr:  input,
	}, nil
}

// Update handles one frame of input.
func (g *Game) Update() error {
	if g.InputMgr.CloseRequested() {
		log.Printf("Close requested after %d frames", g.FrameCount)
		return render.ErrTerminated
	}

	// Tab toggles the debug map and rays together
	if g.InputMgr.IsKeyJustPressed(render.KeyTab) {
		show := !g.Projector.Options.ShowMap
		g.Projector.Options.ShowMap = show
		g.Projector.Options.ShowRays = show
	}

	g.Viewer.Step(g.readIntent(), viewer.Movement{
		Speed:        g.Config.Movement.Speed,
		StrafeOffset: g.Config.Movement.StrafeOffset,
		Sensitivity:  g.Config.Movement.Sensitivity,
	}, g.Policy)

	g.FrameCount++
	return nil
}

// readIntent samples the movement keys and the pointer travel since last frame.
func (g *Game) readIntent() viewer.Intent {
	in := g.InputMgr
	intent := viewer.Intent{
		Forward:     in.IsKeyPressed(render.KeyW) || in.IsKeyPressed(render.KeyUp),
		Back:        in.IsKeyPressed(render.KeyS) || in.IsKeyPressed(render.KeyDown),
		StrafeLeft:  in.IsKeyPressed(render.KeyA),
		StrafeRight: in.IsKeyPressed(render.KeyD),
	}

	x, _ := in.CursorPosition()
	if !g.pointerPrimed {
		g.prevPointerX = x
		g.pointerPrimed = true
	}
	intent.PointerDX = float64(x - g.prevPointerX)
	g.prevPointerX = x

	if in.IsKeyPressed(render.KeyLeft) {
		intent.PointerDX -= turnKeyPixels
	}
	if in.IsKeyPressed(render.KeyRight) {
		intent.PointerDX += turnKeyPixels
	}

	return intent
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Config.Screen.Width, g.Config.Screen.Height
}

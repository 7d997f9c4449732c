// Package terminal hosts the renderer in a text terminal: frames are drawn
// by the raster package and shown as half-block cells.
package terminal

import (
	"context"
	"image/color"
	"log"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/corridor/internal/render"
	"chosenoffset.com/corridor/internal/render/raster"
)

// pointerScale converts a mouse column into pointer pixels so one cell of
// mouse travel turns about as much as a few pixels would in a window.
const pointerScale = 8

// Engine implements render.Engine on a tcell screen.
type Engine struct {
	screen tcell.Screen
	input  *KeyState
	tps    int
	width  int
	height int
	title  string
}

// NewEngine initializes the terminal. Call RunGame to take it over; the
// screen is restored when RunGame returns.
func NewEngine(tps int) (*Engine, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return newEngine(screen, tps), nil
}

func newEngine(screen tcell.Screen, tps int) *Engine {
	return &Engine{
		screen: screen,
		input:  NewKeyState(DefaultHold),
		tps:    tps,
	}
}

// Input returns the input manager fed by this terminal.
func (e *Engine) Input() render.InputManager {
	return e.input
}

// SetWindowSize sets the logical frame size handed to the game's Layout.
func (e *Engine) SetWindowSize(width, height int) {
	e.width, e.height = width, height
}

// SetWindowTitle records the title; it is shown on the last terminal row.
func (e *Engine) SetWindowTitle(title string) {
	e.title = title
}

// SetCursorCaptured enables mouse reporting so pointer motion can turn the viewer.
func (e *Engine) SetCursorCaptured(captured bool) {
	if captured {
		e.screen.EnableMouse(tcell.MouseMotionEvents)
	} else {
		e.screen.DisableMouse()
	}
}

// RunGame runs the frame loop until the game terminates.
func (e *Engine) RunGame(game render.Game) error {
	defer e.screen.Fini()
	e.screen.HideCursor()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go e.pollEvents()

	return raster.Run(ctx, game, e.width, e.height, e.tps, e.present)
}

// pollEvents forwards terminal events to the key state until the screen is finalized
func (e *Engine) pollEvents() {
	for {
		ev := e.screen.PollEvent()
		if ev == nil {
			return
		}
		e.handleEvent(ev)
	}
}

func (e *Engine) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			e.input.RequestClose()
		case tcell.KeyUp:
			e.input.Press(render.KeyUp)
		case tcell.KeyDown:
			e.input.Press(render.KeyDown)
		case tcell.KeyLeft:
			e.input.Press(render.KeyLeft)
		case tcell.KeyRight:
			e.input.Press(render.KeyRight)
		case tcell.KeyTab:
			e.input.Press(render.KeyTab)
		case tcell.KeyRune:
			ParseInput([]byte(string(ev.Rune())), e.input)
		}
	case *tcell.EventMouse:
		x, _ := ev.Position()
		e.input.SetPointer(x * pointerScale)
	case *tcell.EventResize:
		e.screen.Sync()
	}
}

// present draws the frame as half blocks, leaving the last row for the title
func (e *Engine) present(frame *raster.Image) error {
	cols, rows := e.screen.Size()
	if e.title != "" {
		rows--
	}

	Downsample(frame.RGBA(), cols, rows, func(col, row int, top, bottom color.RGBA) {
		style := tcell.StyleDefault.
			Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
			Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
		e.screen.SetContent(col, row, HalfBlock, nil, style)
	})

	if e.title != "" {
		for i, r := range []rune(e.title) {
			if i >= cols {
				break
			}
			e.screen.SetContent(i, rows, r, nil, tcell.StyleDefault)
		}
	}

	e.screen.Show()
	return nil
}

// Close restores the terminal without running a game, for startup failures.
func (e *Engine) Close() {
	e.screen.Fini()
	log.Println("terminal restored")
}

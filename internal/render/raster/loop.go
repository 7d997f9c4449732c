package raster

import (
	"context"
	"errors"
	"time"

	"chosenoffset.com/corridor/internal/render"
)

// PresentFunc hands a finished frame to an output device.
type PresentFunc func(frame *Image) error

// Run drives a game at tps frames per second, drawing each frame into a
// raster image and presenting it. It returns nil when the game terminates
// or ctx is cancelled.
func Run(ctx context.Context, game render.Game, width, height, tps int, present PresentFunc) error {
	w, h := game.Layout(width, height)
	frame := NewImage(w, h)

	ticker := time.NewTicker(time.Second / time.Duration(max(tps, 1)))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if err := game.Update(); err != nil {
			if errors.Is(err, render.ErrTerminated) {
				return nil
			}
			return err
		}

		frame.Clear()
		game.Draw(frame)

		if err := present(frame); err != nil {
			return err
		}
	}
}

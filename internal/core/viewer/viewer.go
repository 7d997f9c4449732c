// Package viewer holds the first-person pose and its per-frame movement.
package viewer

import "math"

// Viewer is a position in world units and an unbounded heading in radians.
// Angle 0 looks along +Y (down the map's rows).
type Viewer struct {
	X, Y  float64
	Angle float64
}

// Direction returns the unit vector for a heading.
func Direction(angle float64) (dx, dy float64) {
	return -math.Sin(angle), math.Cos(angle)
}

// Heading returns Angle wrapped to [0, 2π) for display.
func (v Viewer) Heading() float64 {
	h := math.Mod(v.Angle, 2*math.Pi)
	if h < 0 {
		h += 2 * math.Pi
	}
	return h
}

// Intent is one frame of movement input.
type Intent struct {
	Forward, Back           bool
	StrafeLeft, StrafeRight bool
	PointerDX               float64 // Horizontal pointer travel since last frame, in pixels
}

// Movement holds the constants Step needs.
type Movement struct {
	Speed        float64
	StrafeOffset float64
	Sensitivity  float64
}

// MovePolicy decides whether the viewer may stand at a world point.
type MovePolicy interface {
	CanMoveTo(x, y float64) bool
}

// FreeMovement lets the viewer walk through walls.
type FreeMovement struct{}

// CanMoveTo always allows the move.
func (FreeMovement) CanMoveTo(x, y float64) bool {
	return true
}

// Step applies one frame of intent. Back beats Forward and StrafeLeft beats
// StrafeRight when both are held. A blocked move slides along whichever axis
// the policy still allows.
func (v *Viewer) Step(in Intent, m Movement, policy MovePolicy) {
	var mx, my float64

	if in.Back {
		dx, dy := Direction(v.Angle)
		mx, my = -dx*m.Speed, -dy*m.Speed
	} else if in.Forward {
		dx, dy := Direction(v.Angle)
		mx, my = dx*m.Speed, dy*m.Speed
	}

	if in.StrafeLeft {
		dx, dy := Direction(v.Angle - m.StrafeOffset)
		mx, my = mx-dx*m.Speed, my-dy*m.Speed
	} else if in.StrafeRight {
		dx, dy := Direction(v.Angle - m.StrafeOffset)
		mx, my = mx+dx*m.Speed, my+dy*m.Speed
	}

	if mx != 0 || my != 0 {
		v.move(mx, my, policy)
	}

	v.Angle += in.PointerDX / m.Sensitivity
}

func (v *Viewer) move(mx, my float64, policy MovePolicy) {
	if policy == nil {
		policy = FreeMovement{}
	}

	if policy.CanMoveTo(v.X+mx, v.Y+my) {
		v.X += mx
		v.Y += my
		return
	}

	// Slide along the free axis
	if policy.CanMoveTo(v.X+mx, v.Y) {
		v.X += mx
	} else if policy.CanMoveTo(v.X, v.Y+my) {
		v.Y += my
	}
}

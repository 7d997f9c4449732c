package raycast

import (
	"math"
	"reflect"
	"testing"

	"chosenoffset.com/corridor/internal/config"
	"chosenoffset.com/corridor/internal/core/viewer"
	"chosenoffset.com/corridor/internal/world/grid"
)

// testConfig returns a config with an exact angle step: ray Rays/2 points
// straight along the viewer's heading.
func testConfig(width, height int) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Screen.Width = width
	cfg.Screen.Height = height
	cfg.Camera.FOV = 1.0
	cfg.Camera.Rays = 4
	return cfg
}

var allStrategies = []string{config.StrategyMarch, config.StrategyDDA, config.StrategySegment}

func mustGrid(t *testing.T, layout [][]int, screenHeight int) *grid.Grid {
	t.Helper()
	g, err := grid.New(layout, screenHeight)
	if err != nil {
		t.Fatalf("Failed to build grid: %v", err)
	}
	return g
}

// openRoom returns an n x n layout with a solid border and an open interior.
func openRoom(n int) [][]int {
	layout := make([][]int, n)
	for row := range layout {
		layout[row] = make([]int, n)
		for col := range layout[row] {
			if row == 0 || col == 0 || row == n-1 || col == n-1 {
				layout[row][col] = 1
			}
		}
	}
	return layout
}

func TestSmallRoomForwardRay(t *testing.T) {
	g := mustGrid(t, openRoom(3), 300) // tile size 100
	cfg := testConfig(600, 300)

	tests := []struct {
		name     string
		tracer   Tracer
		pose     viewer.Viewer
		distance float64
	}{
		// From the cell center the wall face is half a tile away
		{"march from center", March{}, viewer.Viewer{X: 150, Y: 150}, 50},
		{"dda from center", DDA{}, viewer.Viewer{X: 150, Y: 150}, 50},
		{"segment from center", NewSegments(g), viewer.Viewer{X: 150, Y: 150}, 50},
		// From the cell's upper edge it is a full tile away
		{"march from edge", March{}, viewer.Viewer{X: 150, Y: 100}, 100},
		{"dda from edge", DDA{}, viewer.Viewer{X: 150, Y: 100}, 100},
		{"segment from edge", NewSegments(g), viewer.Viewer{X: 150, Y: 100}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(NewParams(cfg, g.TileSize()), tt.tracer, 1)
			slices := c.Cast(tt.pose, g)

			forward := slices[2]
			if forward.Angle != 0 {
				t.Fatalf("Expected forward ray angle 0, got %v", forward.Angle)
			}
			if !forward.Hit {
				t.Fatal("Expected forward ray to hit")
			}
			if forward.Row != 2 || forward.Col != 1 {
				t.Errorf("Expected hit cell (2, 1), got (%d, %d)", forward.Row, forward.Col)
			}
			if math.Abs(forward.Distance-tt.distance) > 1 {
				t.Errorf("Expected distance %v (±1), got %v", tt.distance, forward.Distance)
			}
			if forward.Depth != forward.Distance {
				t.Errorf("Expected depth %v to equal distance %v on the forward ray", forward.Depth, forward.Distance)
			}
		})
	}
}

func TestCastReturnsOneSlicePerRay(t *testing.T) {
	g := mustGrid(t, grid.DefaultLayout(), 500)
	cfg := config.DefaultConfig()

	poses := []viewer.Viewer{
		{X: 200, Y: 200, Angle: 0},
		{X: 75, Y: 420, Angle: 2.5},
		{X: 260, Y: 180, Angle: -17.3},
		{X: -400, Y: 900, Angle: 1},  // outside the map
		{X: 325, Y: 175, Angle: 1e4}, // inside a wall
	}

	for _, strategy := range allStrategies {
		cfg.Camera.Strategy = strategy
		c, err := NewFromConfig(cfg, g)
		if err != nil {
			t.Fatalf("Failed to create caster: %v", err)
		}
		for _, pose := range poses {
			slices := c.Cast(pose, g)
			if len(slices) != cfg.Camera.Rays {
				t.Fatalf("%s: expected %d slices, got %d", strategy, cfg.Camera.Rays, len(slices))
			}
			for i, s := range slices {
				if s.Ray != i {
					t.Errorf("%s: slice %d has ray index %d", strategy, i, s.Ray)
				}
			}
		}
	}
}

func TestCastIsDeterministic(t *testing.T) {
	g := mustGrid(t, grid.DefaultLayout(), 500)
	cfg := config.DefaultConfig()
	pose := viewer.Viewer{X: 231.7, Y: 188.2, Angle: 0.83}

	serial := New(NewParams(cfg, g.TileSize()), March{}, 1)
	first := serial.Cast(pose, g)
	second := serial.Cast(pose, g)
	if !reflect.DeepEqual(first, second) {
		t.Error("Expected repeated casts to be identical")
	}

	parallel := New(NewParams(cfg, g.TileSize()), March{}, 4)
	if got := parallel.Cast(pose, g); !reflect.DeepEqual(first, got) {
		t.Error("Expected parallel cast to match serial cast")
	}

	// Uneven split: 250 rays over 3 workers
	parallel = New(NewParams(cfg, g.TileSize()), March{}, 3)
	if got := parallel.Cast(pose, g); !reflect.DeepEqual(first, got) {
		t.Error("Expected uneven parallel cast to match serial cast")
	}
}

func TestShadeIsNonIncreasing(t *testing.T) {
	p := NewParams(config.DefaultConfig(), 50)

	if got := p.Shade(0); got != 150 {
		t.Errorf("Expected shade 150 at distance 0, got %d", got)
	}

	prev := p.Shade(0)
	for d := 1; d <= 5000; d++ {
		s := p.Shade(float64(d))
		if s > prev {
			t.Fatalf("Shade increased from %d to %d at distance %d", prev, s, d)
		}
		prev = s
	}
}

func TestProjectHeightIsClampedAndPositive(t *testing.T) {
	p := NewParams(config.DefaultConfig(), 50)

	if got := p.ProjectHeight(0); got != p.ScreenHeight {
		t.Errorf("Expected height %v at depth 0, got %v", p.ScreenHeight, got)
	}

	for _, depth := range []float64{1e-6, 0.5, 1, 10, 42, 100, 499, 1e3, 1e6} {
		h := p.ProjectHeight(depth)
		if h <= 0 {
			t.Errorf("Expected positive height at depth %v, got %v", depth, h)
		}
		if h > p.ScreenHeight {
			t.Errorf("Height %v at depth %v exceeds screen height", h, depth)
		}
	}
}

func TestDepthOnForwardAxis(t *testing.T) {
	for _, angle := range []float64{0, 1.2, -3.5, 100} {
		if got := Depth(123, angle, angle); got != 123 {
			t.Errorf("Expected depth 123 on the forward axis at %v, got %v", angle, got)
		}
	}
}

func TestCastStaysInsideGrid(t *testing.T) {
	g := mustGrid(t, grid.DefaultLayout(), 500)
	cfg := config.DefaultConfig()
	limit := float64(g.Size()) * math.Sqrt2 * g.TileSize()

	poses := []viewer.Viewer{
		{X: 200, Y: 200},
		{X: 425, Y: 75},
		{X: -1e4, Y: -1e4}, // far outside
		{X: 1e4, Y: 250},
	}

	for _, strategy := range allStrategies {
		cfg.Camera.Strategy = strategy
		c, err := NewFromConfig(cfg, g)
		if err != nil {
			t.Fatalf("Failed to create caster: %v", err)
		}

		for _, pose := range poses {
			for turn := 0; turn < 16; turn++ {
				pose.Angle = float64(turn) * math.Pi / 8
				for _, s := range c.Cast(pose, g) {
					if s.Row < 0 || s.Row >= g.Size() || s.Col < 0 || s.Col >= g.Size() {
						t.Fatalf("%s: cell (%d, %d) outside grid", strategy, s.Row, s.Col)
					}
					if !s.Hit {
						t.Fatalf("%s: ray %d from (%v, %v) angle %v missed a walled grid",
							strategy, s.Ray, pose.X, pose.Y, pose.Angle)
					}
					if s.Distance > limit {
						t.Errorf("%s: distance %v exceeds %v", strategy, s.Distance, limit)
					}
				}
			}
		}
	}
}

func TestFartherWallIsShorter(t *testing.T) {
	g := mustGrid(t, openRoom(12), 600) // tile size 50, far wall face at y=550
	cfg := testConfig(1200, 600)
	c := New(NewParams(cfg, g.TileSize()), March{}, 1)

	far := c.Cast(viewer.Viewer{X: 275, Y: 550 - 5*50}, g)[2]
	near := c.Cast(viewer.Viewer{X: 275, Y: 550 - 2*50}, g)[2]

	if !far.Hit || !near.Hit {
		t.Fatal("Expected both rays to hit the far wall")
	}
	if far.Height >= near.Height {
		t.Errorf("Expected wall 5 tiles away (%v) to be shorter than 2 tiles away (%v)", far.Height, near.Height)
	}
	if far.Top <= near.Top {
		t.Errorf("Expected the farther slice to start lower: %v vs %v", far.Top, near.Top)
	}
}

func TestRotationShiftsRayAngles(t *testing.T) {
	g := mustGrid(t, grid.DefaultLayout(), 500)
	cfg := config.DefaultConfig()
	p := NewParams(cfg, g.TileSize())
	c := New(p, March{}, 1)

	pose := viewer.Viewer{X: 200, Y: 200, Angle: 0.4}
	before := c.Cast(pose, g)
	pose.Angle += p.AngleStep
	after := c.Cast(pose, g)

	const tolerance = 1e-12
	for i := 0; i < len(before)-1; i++ {
		if math.Abs(after[i].Angle-before[i+1].Angle) > tolerance {
			t.Fatalf("Ray %d: expected angle %v, got %v", i, before[i+1].Angle, after[i].Angle)
		}
		spacing := after[i+1].Angle - after[i].Angle
		if math.Abs(spacing-p.AngleStep) > tolerance {
			t.Fatalf("Ray %d: spacing %v, expected %v", i, spacing, p.AngleStep)
		}
	}
}

func TestMarchAndDDAAgreeOnAxisRays(t *testing.T) {
	g := mustGrid(t, grid.DefaultLayout(), 500)
	cfg := config.DefaultConfig()
	cfg.Camera.FOV = 1.0
	cfg.Camera.Rays = 2 // ray 1 runs along the heading
	p := NewParams(cfg, g.TileSize())

	march := New(p, March{}, 1)
	dda := New(p, DDA{}, 1)

	for _, pos := range [][2]float64{{215, 205}, {75, 75}, {420, 130}, {110, 390}} {
		for quarter := 0; quarter < 4; quarter++ {
			pose := viewer.Viewer{X: pos[0], Y: pos[1], Angle: float64(quarter) * math.Pi / 2}
			m := march.Cast(pose, g)[1]
			d := dda.Cast(pose, g)[1]

			if m.Row != d.Row || m.Col != d.Col {
				t.Errorf("Pose %+v: march hit (%d, %d), dda hit (%d, %d)", pose, m.Row, m.Col, d.Row, d.Col)
			}
			if diff := m.Distance - d.Distance; diff < -1e-9 || diff > 1+1e-9 {
				t.Errorf("Pose %+v: march distance %v, dda distance %v", pose, m.Distance, d.Distance)
			}
		}
	}
}

func TestMissReturnsSentinel(t *testing.T) {
	g := mustGrid(t, openRoom(3), 300)
	cfg := testConfig(600, 300)
	cfg.Camera.MaxDistanceTiles = 0.2 // 20 world units, the wall is 50 away

	for _, tracer := range []Tracer{March{}, DDA{}, NewSegments(g)} {
		c := New(NewParams(cfg, g.TileSize()), tracer, 1)
		s := c.Cast(viewer.Viewer{X: 150, Y: 150}, g)[2]

		if s.Hit {
			t.Fatalf("%T: expected a miss", tracer)
		}
		if s.Height != 0 || s.Shade != 0 {
			t.Errorf("%T: expected zero height and shade, got %v and %d", tracer, s.Height, s.Shade)
		}
		if s.Distance != 20 || s.Depth != 20 {
			t.Errorf("%T: expected distance and depth 20, got %v and %v", tracer, s.Distance, s.Depth)
		}
		if math.Abs(s.HitY-170) > 1e-9 {
			t.Errorf("%T: expected end point y=170, got %v", tracer, s.HitY)
		}
	}
}

func TestSegmentsMatchDDA(t *testing.T) {
	g := mustGrid(t, grid.DefaultLayout(), 500)
	cfg := config.DefaultConfig()
	cfg.Camera.FOV = 1.0
	cfg.Camera.Rays = 2
	p := NewParams(cfg, g.TileSize())

	dda := New(p, DDA{}, 1)
	segments := New(p, NewSegments(g), 1)

	for _, pos := range [][2]float64{{215, 205}, {75, 75}, {420, 130}, {110, 390}} {
		for quarter := 0; quarter < 4; quarter++ {
			pose := viewer.Viewer{X: pos[0], Y: pos[1], Angle: float64(quarter) * math.Pi / 2}
			d := dda.Cast(pose, g)[1]
			s := segments.Cast(pose, g)[1]

			if math.Abs(d.Distance-s.Distance) > 1e-6 {
				t.Errorf("Pose %+v: dda distance %v, segment distance %v", pose, d.Distance, s.Distance)
			}
			if d.Row != s.Row || d.Col != s.Col {
				t.Errorf("Pose %+v: dda hit (%d, %d), segment hit (%d, %d)", pose, d.Row, d.Col, s.Row, s.Col)
			}
		}
	}
}

func TestTracerFor(t *testing.T) {
	g := mustGrid(t, grid.DefaultLayout(), 500)

	if _, err := TracerFor("bsp", g); err == nil {
		t.Error("Expected error for unknown strategy")
	}
	if tr, err := TracerFor(config.StrategyDDA, g); err != nil || tr != (DDA{}) {
		t.Errorf("Expected DDA tracer, got %T (%v)", tr, err)
	}
	if tr, err := TracerFor(config.StrategySegment, g); err != nil {
		t.Errorf("Expected segment tracer, got error %v", err)
	} else if _, ok := tr.(*Segments); !ok {
		t.Errorf("Expected *Segments, got %T", tr)
	}
}

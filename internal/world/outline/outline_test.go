package outline

import (
	"testing"

	"chosenoffset.com/corridor/internal/world/grid"
)

func mustGrid(t *testing.T, layout [][]int, screenHeight int) *grid.Grid {
	t.Helper()
	g, err := grid.New(layout, screenHeight)
	if err != nil {
		t.Fatalf("Failed to build grid: %v", err)
	}
	return g
}

func TestExtractSingleCell(t *testing.T) {
	g := mustGrid(t, [][]int{{1, 1, 1}, {1, 0, 1}, {1, 1, 1}}, 300)
	segments := Extract(g)

	if len(segments) != 4 {
		t.Fatalf("Expected 4 faces around the open cell, got %d", len(segments))
	}

	want := map[Edge]Segment{
		Bottom: {A: Point{100, 100}, B: Point{200, 100}},
		Left:   {A: Point{200, 100}, B: Point{200, 200}},
		Top:    {A: Point{100, 200}, B: Point{200, 200}},
		Right:  {A: Point{100, 100}, B: Point{100, 200}},
	}
	for _, seg := range segments {
		w, ok := want[seg.Edge]
		if !ok {
			t.Fatalf("Unexpected edge %v", seg.Edge)
		}
		if seg.A != w.A || seg.B != w.B {
			t.Errorf("Edge %v: got %v-%v, expected %v-%v", seg.Edge, seg.A, seg.B, w.A, w.B)
		}
		if len(seg.Cells) != 1 {
			t.Errorf("Edge %v: expected one wall cell, got %d", seg.Edge, len(seg.Cells))
		}
	}
}

func TestExtractMergesColinearFaces(t *testing.T) {
	layout := [][]int{
		{1, 1, 1, 1},
		{1, 0, 0, 1},
		{1, 0, 0, 1},
		{1, 1, 1, 1},
	}
	segments := Extract(mustGrid(t, layout, 400))

	if len(segments) != 4 {
		t.Fatalf("Expected 4 merged faces, got %d", len(segments))
	}
	for _, seg := range segments {
		length := (seg.B.X - seg.A.X) + (seg.B.Y - seg.A.Y)
		if length != 200 {
			t.Errorf("Edge %v: expected length 200, got %v", seg.Edge, length)
		}
		if len(seg.Cells) != 2 {
			t.Errorf("Edge %v: expected two wall cells, got %d", seg.Edge, len(seg.Cells))
		}
	}
}

func TestExtractDefaultLayout(t *testing.T) {
	g := mustGrid(t, grid.DefaultLayout(), 500)
	segments := Extract(g)

	if len(segments) == 0 {
		t.Fatal("Expected wall faces in the default map")
	}

	// The border and the inner block are separate regions
	if regions := wallRegions(g); len(regions) != 2 {
		t.Errorf("Expected 2 wall regions, got %d", len(regions))
	}

	tile := g.TileSize()
	for _, seg := range segments {
		if seg.A == seg.B {
			t.Errorf("Empty segment %+v", seg)
		}
		for _, v := range []float64{seg.A.X, seg.A.Y, seg.B.X, seg.B.Y} {
			if int(v)%int(tile) != 0 {
				t.Errorf("Segment %+v is off the tile lattice", seg)
				break
			}
		}
	}
}

package maploader

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMap(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.json")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to write map file: %v", err)
	}
	return path
}

func TestLoadMap(t *testing.T) {
	path := writeMap(t, `{
		"name": "box",
		"layout": [
			[1, 1, 1, 1],
			[1, 0, 0, 1],
			[1, 0, 0, 1],
			[1, 1, 1, 1]
		],
		"spawn": {"x": 1.5, "y": 2.5, "angle": 3.14}
	}`)

	m, err := LoadMap(path, 400)
	if err != nil {
		t.Fatalf("Failed to load map: %v", err)
	}

	if m.Data.Name != "box" {
		t.Errorf("Expected name 'box', got '%s'", m.Data.Name)
	}
	if m.Grid.Size() != 4 || m.Grid.TileSize() != 100 {
		t.Errorf("Expected 4x4 grid with tile size 100, got %d and %v", m.Grid.Size(), m.Grid.TileSize())
	}

	v := m.SpawnViewer()
	if v.X != 150 || v.Y != 250 || v.Angle != 3.14 {
		t.Errorf("Expected spawn (150, 250, 3.14), got (%v, %v, %v)", v.X, v.Y, v.Angle)
	}
}

func TestLoadMapWithoutSpawn(t *testing.T) {
	path := writeMap(t, `{
		"name": "nospawn",
		"layout": [[1, 1, 1], [1, 0, 1], [1, 1, 1]]
	}`)

	m, err := LoadMap(path, 300)
	if err != nil {
		t.Fatalf("Failed to load map: %v", err)
	}

	v := m.SpawnViewer()
	if v.X != 150 || v.Y != 150 {
		t.Errorf("Expected spawn at the first open tile center (150, 150), got (%v, %v)", v.X, v.Y)
	}
}

func TestLoadMapErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"invalid json", `{"layout": [[1, 1`},
		{"open border", `{"layout": [[1, 0, 1], [1, 0, 1], [1, 1, 1]]}`},
		{"spawn outside", `{"layout": [[1, 1, 1], [1, 0, 1], [1, 1, 1]], "spawn": {"x": 5, "y": 1}}`},
		{"no open tile", `{"layout": [[1, 1, 1], [1, 1, 1], [1, 1, 1]]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadMap(writeMap(t, tt.contents), 300); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}

	if _, err := LoadMap(filepath.Join(t.TempDir(), "missing.json"), 300); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestDefaultSpawn(t *testing.T) {
	m, err := Default(500)
	if err != nil {
		t.Fatalf("Failed to build default map: %v", err)
	}

	v := m.SpawnViewer()
	if v.X != 200 || v.Y != 200 || v.Angle != 0 {
		t.Errorf("Expected spawn (200, 200, 0), got (%v, %v, %v)", v.X, v.Y, v.Angle)
	}
	if m.Grid.Size() != 10 {
		t.Errorf("Expected 10x10 default map, got %d", m.Grid.Size())
	}
}

func TestScanMapDirectory(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.json":       `{"name": "beta", "layout": [[1,1,1],[1,0,1],[1,1,1]]}`,
		"a.json":       `{"layout": [[1,1,1],[1,0,1],[1,1,1]]}`,
		"broken.json":  `{"layout": `,
		"notes.txt":    `not a map`,
		".hidden.json": `{"name": "hidden"}`,
	}
	for name, contents := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}

	entries, err := ScanMapDirectory(dir)
	if err != nil {
		t.Fatalf("Failed to scan: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 maps, got %d: %+v", len(entries), entries)
	}
	if entries[0].Name != "a" || entries[1].Name != "beta" {
		t.Errorf("Expected maps [a beta], got [%s %s]", entries[0].Name, entries[1].Name)
	}

	// Unparseable files never reach the loader
	maps, err := LoadDirectory(dir, 300)
	if err != nil {
		t.Fatalf("Failed to load directory: %v", err)
	}
	if len(maps) != 2 || maps["beta"] == nil {
		t.Errorf("Expected maps a and beta, got %v", maps)
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	room := `{"layout": [[1,1,1],[1,0,1],[1,1,1]]}`
	for _, name := range []string{"one.json", "two.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(room), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	maps, err := LoadDirectory(dir, 300)
	if err != nil {
		t.Fatalf("Failed to load directory: %v", err)
	}
	if len(maps) != 2 || maps["one"] == nil || maps["two"] == nil {
		t.Fatalf("Expected maps one and two, got %v", maps)
	}
	if maps["two"].Data.Name != "two" {
		t.Errorf("Expected name taken from the file, got %q", maps["two"].Data.Name)
	}
}

func TestShippedMaps(t *testing.T) {
	maps, err := LoadDirectory(filepath.Join("..", "..", "..", "maps"), 500)
	if err != nil {
		t.Fatalf("Failed to load shipped maps: %v", err)
	}
	if maps["classic"] == nil {
		t.Fatal("Expected the classic map")
	}
	if v := maps["classic"].SpawnViewer(); v.X != 200 || v.Y != 200 {
		t.Errorf("Expected classic spawn at (200, 200), got (%v, %v)", v.X, v.Y)
	}
}

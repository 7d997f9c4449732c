package maploader

import (
	"encoding/json"
	"fmt"
	"os"

	"chosenoffset.com/corridor/internal/core/viewer"
	"chosenoffset.com/corridor/internal/world/grid"
)

// SpawnPoint defines the viewer's starting pose in tile units
type SpawnPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

// MapData represents the map file contents
type MapData struct {
	Name   string      `json:"name"`
	Layout [][]int     `json:"layout"` // 2D array of 0/1 cells [row][col], 1 = wall
	Spawn  *SpawnPoint `json:"spawn"`
}

// Map represents a loaded map with its grid
type Map struct {
	Data *MapData
	Grid *grid.Grid
}

// LoadMap loads a map from a JSON file and builds its grid for the given
// screen height.
func LoadMap(mapPath string, screenHeight int) (*Map, error) {
	// Read the map JSON file
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", mapPath, err)
	}

	// Parse the JSON
	var mapData MapData
	if err := json.Unmarshal(data, &mapData); err != nil {
		return nil, fmt.Errorf("failed to parse map file %s: %w", mapPath, err)
	}

	gameMap, err := newMap(&mapData, screenHeight)
	if err != nil {
		return nil, fmt.Errorf("invalid map data in %s: %w", mapPath, err)
	}

	return gameMap, nil
}

// Default returns the built-in map. Its spawn is (200, 200) world units on
// the default 500 pixel screen.
func Default(screenHeight int) (*Map, error) {
	return newMap(&MapData{
		Name:   "default",
		Layout: grid.DefaultLayout(),
		Spawn:  &SpawnPoint{X: 4, Y: 4, Angle: 0},
	}, screenHeight)
}

func newMap(data *MapData, screenHeight int) (*Map, error) {
	g, err := grid.New(data.Layout, screenHeight)
	if err != nil {
		return nil, err
	}

	if data.Spawn == nil {
		spawn, ok := firstOpenTile(g)
		if !ok {
			return nil, fmt.Errorf("map has no open tile to spawn in")
		}
		data.Spawn = &spawn
	}

	if err := validateSpawn(data.Spawn, g); err != nil {
		return nil, err
	}

	return &Map{Data: data, Grid: g}, nil
}

// validateSpawn checks that the spawn point lies inside the map
func validateSpawn(spawn *SpawnPoint, g *grid.Grid) error {
	n := float64(g.Size())
	if spawn.X < 0 || spawn.X >= n || spawn.Y < 0 || spawn.Y >= n {
		return fmt.Errorf("spawn (%.2f, %.2f) outside %dx%d map", spawn.X, spawn.Y, g.Size(), g.Size())
	}
	return nil
}

// firstOpenTile returns the center of the first open tile in row-major order
func firstOpenTile(g *grid.Grid) (SpawnPoint, bool) {
	for row := 0; row < g.Size(); row++ {
		for col := 0; col < g.Size(); col++ {
			if g.CellAt(row, col) == grid.Open {
				return SpawnPoint{X: float64(col) + 0.5, Y: float64(row) + 0.5}, true
			}
		}
	}
	return SpawnPoint{}, false
}

// SpawnViewer returns the starting pose in world units.
func (m *Map) SpawnViewer() viewer.Viewer {
	tileSize := m.Grid.TileSize()
	return viewer.Viewer{
		X:     m.Data.Spawn.X * tileSize,
		Y:     m.Data.Spawn.Y * tileSize,
		Angle: m.Data.Spawn.Angle,
	}
}

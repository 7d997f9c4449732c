package game

import (
	"fmt"
	"log"

	"chosenoffset.com/corridor/internal/config"
	"chosenoffset.com/corridor/internal/world/maploader"
)

// LoadAssets reads the config and the map. An empty mapPath selects the
// built-in map; a missing config file falls back to defaults.
func LoadAssets(configPath, mapPath string) (*config.Config, *maploader.Map, error) {
	cfg := config.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, nil, err
		}
	}

	var (
		gameMap *maploader.Map
		err     error
	)
	if mapPath == "" {
		gameMap, err = maploader.Default(cfg.Screen.Height)
	} else {
		gameMap, err = maploader.LoadMap(mapPath, cfg.Screen.Height)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load map: %w", err)
	}

	log.Printf("Map loaded: %s (%dx%d, tile size %.0f)",
		gameMap.Data.Name, gameMap.Grid.Size(), gameMap.Grid.Size(), gameMap.Grid.TileSize())

	return cfg, gameMap, nil
}

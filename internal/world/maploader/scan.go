package maploader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MapEntry represents a discoverable map file
type MapEntry struct {
	Name string // Map name from the file, or the file name without extension
	Path string // Path to the JSON file
}

// ScanMapDirectory lists the map files in a directory in file name order.
// Files that don't parse as JSON are skipped; their layout is only checked
// when the map is loaded.
func ScanMapDirectory(dir string) ([]MapEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read map directory: %w", err)
	}

	var maps []MapEntry
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".json") {
			continue
		}

		path := filepath.Join(dir, name)
		mapName, err := readMapName(path)
		if err != nil {
			continue
		}
		if mapName == "" {
			mapName = strings.TrimSuffix(name, filepath.Ext(name))
		}

		maps = append(maps, MapEntry{Name: mapName, Path: path})
	}

	return maps, nil
}

// readMapName parses only the name field of a map file
func readMapName(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var header struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return "", err
	}
	return header.Name, nil
}

// LoadDirectory loads every map in dir, keyed by name. A map that fails to
// load is an error; a later file with a duplicate name replaces the earlier one.
func LoadDirectory(dir string, screenHeight int) (map[string]*Map, error) {
	entries, err := ScanMapDirectory(dir)
	if err != nil {
		return nil, err
	}

	maps := make(map[string]*Map, len(entries))
	for _, e := range entries {
		m, err := LoadMap(e.Path, screenHeight)
		if err != nil {
			return nil, err
		}
		m.Data.Name = e.Name
		maps[e.Name] = m
	}
	return maps, nil
}

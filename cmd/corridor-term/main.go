package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"chosenoffset.com/corridor/internal/game"
	"chosenoffset.com/corridor/internal/render/raster"
	"chosenoffset.com/corridor/internal/render/terminal"
	"chosenoffset.com/corridor/internal/world/maploader"
)

func main() {
	configPath := flag.String("config", "corridor.json", "path to the config file")
	mapPath := flag.String("map", "", "path to a map file (default: built-in map)")
	logPath := flag.String("log", "corridor-term.log", "log file (the terminal is busy drawing)")
	list := flag.String("list", "", "list the maps in a directory and exit")
	flag.Parse()

	if *list != "" {
		entries, err := maploader.ScanMapDirectory(*list)
		if err != nil {
			log.Fatal(err)
		}
		for _, e := range entries {
			fmt.Printf("%-20s %s\n", e.Name, e.Path)
		}
		return
	}

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	cfg, gameMap, err := game.LoadAssets(*configPath, *mapPath)
	if err != nil {
		log.Fatalf("Failed to load: %v", err)
	}

	engine, err := terminal.NewEngine(cfg.Screen.TPS)
	if err != nil {
		log.Fatalf("Failed to start terminal: %v", err)
	}

	g, err := game.New(cfg, gameMap, raster.NewRenderer(), engine.Input())
	if err != nil {
		engine.Close()
		log.Fatalf("Failed to create game: %v", err)
	}

	engine.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	engine.SetWindowTitle(cfg.Screen.Title + "  [wasd move, arrows/mouse turn, tab map, q quit]")
	engine.SetCursorCaptured(true)

	log.Println("Starting corridor in terminal...")
	if err := engine.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"flag"
	"log"

	"chosenoffset.com/corridor/internal/game"
	ebitenrender "chosenoffset.com/corridor/internal/render/ebiten"
)

func main() {
	configPath := flag.String("config", "corridor.json", "path to the config file")
	mapPath := flag.String("map", "", "path to a map file (default: built-in map)")
	flag.Parse()

	cfg, gameMap, err := game.LoadAssets(*configPath, *mapPath)
	if err != nil {
		log.Fatalf("Failed to load: %v", err)
	}

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine(cfg.Screen.TPS)

	g, err := game.New(cfg, gameMap, renderer, inputMgr)
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	// Set up the window
	engine.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	engine.SetWindowTitle(cfg.Screen.Title)
	engine.SetCursorCaptured(true)

	log.Println("Starting corridor...")
	if err := engine.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

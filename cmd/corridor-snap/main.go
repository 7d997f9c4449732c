package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"chosenoffset.com/corridor/internal/core/raycast"
	"chosenoffset.com/corridor/internal/game"
	"chosenoffset.com/corridor/internal/render/projector"
	"chosenoffset.com/corridor/internal/render/raster"
)

// corridor-snap renders a single frame without a window and saves it as PNG.
func main() {
	configPath := flag.String("config", "corridor.json", "path to the config file")
	mapPath := flag.String("map", "", "path to a map file (default: built-in map)")
	out := flag.String("out", "corridor.png", "output PNG file")
	x := flag.Float64("x", -1, "viewer x in world units (default: map spawn)")
	y := flag.Float64("y", -1, "viewer y in world units (default: map spawn)")
	angle := flag.Float64("angle", 0, "viewer heading in radians, used with -x and -y")
	flag.Parse()

	cfg, gameMap, err := game.LoadAssets(*configPath, *mapPath)
	if err != nil {
		log.Fatalf("Failed to load: %v", err)
	}

	v := gameMap.SpawnViewer()
	if *x >= 0 && *y >= 0 {
		v.X, v.Y, v.Angle = *x, *y, *angle
	}

	caster, err := raycast.NewFromConfig(cfg, gameMap.Grid)
	if err != nil {
		log.Fatalf("Failed to create caster: %v", err)
	}

	frame := raster.NewImage(cfg.Screen.Width, cfg.Screen.Height)
	proj := projector.New(raster.NewRenderer(), caster.Params(), gameMap.Grid, projector.OptionsFrom(cfg.Overlay))
	proj.Draw(frame, v, caster.Cast(v, gameMap.Grid))

	if err := raster.SavePNG(frame, *out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (viewer at %.1f, %.1f heading %.2f)\n", *out, v.X, v.Y, v.Heading())
}

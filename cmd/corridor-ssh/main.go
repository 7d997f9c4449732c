package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"log"
	"net"
	"os"

	"chosenoffset.com/corridor/internal/game"
	"chosenoffset.com/corridor/internal/render"
	"chosenoffset.com/corridor/internal/render/raster"
	"chosenoffset.com/corridor/internal/server"
	"chosenoffset.com/corridor/internal/world/maploader"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	addr := flag.String("addr", ":2222", "listen address")
	hostKeyPath := flag.String("hostkey", "host_key", "SSH host key file, generated if missing")
	configPath := flag.String("config", "corridor.json", "path to the config file")
	mapPath := flag.String("map", "", "path to a map file (default: built-in map)")
	mapsDir := flag.String("maps", "maps", "directory of maps selectable by SSH user name")
	flag.Parse()

	// Generate host key if it doesn't exist
	if err := ensureHostKey(*hostKeyPath); err != nil {
		log.Fatalf("Host key error: %v", err)
	}

	cfg, gameMap, err := game.LoadAssets(*configPath, *mapPath)
	if err != nil {
		log.Fatalf("Failed to load: %v", err)
	}

	// ssh -t <map>@host plays a named map, any other user the default
	catalog, err := maploader.LoadDirectory(*mapsDir, cfg.Screen.Height)
	if err != nil {
		log.Printf("No selectable maps: %v", err)
	}
	for name := range catalog {
		log.Printf("Map available: %s", name)
	}

	renderer := raster.NewRenderer()
	newGame := func(user string, input render.InputManager) (render.Game, error) {
		m, ok := catalog[user]
		if !ok {
			m = gameMap
		}
		return game.New(cfg, m, renderer, input)
	}

	listenAddr := *addr
	if port := os.Getenv("PORT"); port != "" {
		listenAddr = ":" + port
	}
	sshServer := server.NewSSHServer(listenAddr, *hostKeyPath, cfg.Screen.TPS, newGame)
	if _, port, err := net.SplitHostPort(listenAddr); err == nil {
		log.Printf("Starting corridor, connect with: ssh -t -p %s localhost", port)
	}
	if err := sshServer.Start(); err != nil {
		log.Fatalf("SSH server error: %v", err)
	}
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	log.Println("Generating new host key...")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	pemBlock := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: keyBytes,
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, pemBlock)
}

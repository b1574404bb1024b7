package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/flockgrid/go-grid-flocking/pkg/flock"
)

func main() {
	configFile := flag.String("config", "", "path to a JSON or YAML config file")
	schemaFile := flag.String("schema", "config/flockgrid.schema.json", "path to the config JSON schema")
	flag.Parse()

	cfg := flock.DefaultConfig()
	if *configFile != "" {
		var err error
		cfg, err = flock.LoadConfig(*configFile, *schemaFile)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}

	game, err := NewGame(cfg)
	if err != nil {
		log.Fatalf("initializing simulation: %v", err)
	}

	ebiten.SetWindowSize(cfg.Cols*cellScale, cfg.Rows*cellScale)
	ebiten.SetWindowTitle("Grid Flocking")
	if cfg.IntervalMs > 0 {
		ebiten.SetTPS(1000 / cfg.IntervalMs)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

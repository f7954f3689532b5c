//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"terrain-ca/internal/app"
	"terrain-ca/internal/config"
)

func main() {
	opts := app.NewOptions()
	opts.Bind(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		log.Fatal(err)
	}
	opts.Apply(cfg, flag.CommandLine)
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	game, err := app.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	side := cfg.Grid.Size * cfg.Display.Scale
	ebiten.SetWindowTitle(fmt.Sprintf("terrain-ca — %dx%d", cfg.Grid.Size, cfg.Grid.Size))
	ebiten.SetWindowSize(side, side)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

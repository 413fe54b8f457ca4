//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"time"

	"github.com/mrizaln/game-of-life/internal/app"
	"github.com/mrizaln/game-of-life/internal/grid"
	"github.com/mrizaln/game-of-life/internal/parallel"
	"github.com/mrizaln/game-of-life/internal/sim"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	strategy, err := parallel.ParseStrategy(cfg.Strategy)
	if err != nil {
		log.Fatal(err)
	}

	world, err := grid.New(cfg.Width, cfg.Height, grid.Options{
		Strategy: strategy,
		Workers:  cfg.Workers,
		Seed:     cfg.Seed,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer world.Close()

	if err := world.Populate(cfg.Density); err != nil {
		log.Fatal(err)
	}

	arb := sim.NewArbiter(world)
	scheduler := sim.NewScheduler(arb, sim.Options{
		Delay:  time.Duration(cfg.DelayMs) * time.Millisecond,
		Paused: cfg.Paused,
	})
	if err := scheduler.Launch(nil); err != nil {
		log.Fatal(err)
	}
	defer scheduler.Stop()

	log.Printf("grid %dx%d, strategy %s, %d workers", cfg.Width, cfg.Height, strategy, cfg.Workers)

	game := app.New(arb, scheduler, cfg)
	ebiten.SetWindowTitle("game of life")
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

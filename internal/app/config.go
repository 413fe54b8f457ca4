// Package app glues the simulation core to the window shell: configuration,
// input handling, and frame drawing.
package app

import (
	"flag"
	"runtime"

	"github.com/mrizaln/game-of-life/internal/parallel"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Width    int
	Height   int
	Density  float64
	DelayMs  int
	Paused   bool
	Strategy string
	Workers  int
	Seed     int64
	Scale    int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Width:    480,
		Height:   360,
		Density:  0.3,
		DelayMs:  0,
		Strategy: parallel.StrategyInterleaved.String(),
		Workers:  runtime.NumCPU(),
		Seed:     42,
		Scale:    2,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "width of the world grid")
	fs.IntVar(&c.Height, "height", c.Height, "height of the world grid")
	fs.Float64Var(&c.Density, "density", c.Density, "start density in [0, 1]")
	fs.IntVar(&c.DelayMs, "delay", c.DelayMs, "delay between updates in milliseconds")
	fs.BoolVar(&c.Paused, "paused", c.Paused, "start the simulation paused")
	fs.StringVar(&c.Strategy, "update-strategy", c.Strategy, "row partitioning strategy (interleaved or chunked)")
	fs.IntVar(&c.Workers, "workers", c.Workers, "worker pool size for parallel updates")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for population noise")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
}

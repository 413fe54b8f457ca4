// Command life-bench measures step throughput across partitioning strategies
// and worker counts, headlessly.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/mrizaln/game-of-life/internal/grid"
	"github.com/mrizaln/game-of-life/internal/parallel"
)

func main() {
	width := flag.Int("width", 512, "grid width")
	height := flag.Int("height", 512, "grid height")
	steps := flag.Int("steps", 200, "generations per measurement")
	density := flag.Float64("density", 0.3, "start density")
	seed := flag.Int64("seed", 42, "population seed")
	flag.Parse()

	maxWorkers := runtime.NumCPU()
	counts := []int{1}
	for n := 2; n < maxWorkers; n *= 2 {
		counts = append(counts, n)
	}
	if counts[len(counts)-1] != maxWorkers {
		counts = append(counts, maxWorkers)
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "strategy\tworkers\tsteps/s\ttotal")
	for _, strategy := range []parallel.Strategy{parallel.StrategyInterleaved, parallel.StrategyChunked} {
		for _, workers := range counts {
			rate, total, err := measure(*width, *height, *steps, *density, *seed, strategy, workers)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Fprintf(tw, "%s\t%d\t%.1f\t%v\n", strategy, workers, rate, total.Round(time.Millisecond))
		}
	}
	tw.Flush()
}

func measure(w, h, steps int, density float64, seed int64, strategy parallel.Strategy, workers int) (float64, time.Duration, error) {
	world, err := grid.New(w, h, grid.Options{Strategy: strategy, Workers: workers, Seed: seed})
	if err != nil {
		return 0, 0, err
	}
	defer world.Close()

	if err := world.Populate(density); err != nil {
		return 0, 0, err
	}

	start := time.Now()
	for i := 0; i < steps; i++ {
		if err := world.Step(); err != nil {
			return 0, 0, err
		}
	}
	total := time.Since(start)
	return float64(steps) / total.Seconds(), total, nil
}

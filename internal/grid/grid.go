// Package grid implements the toroidal, double-buffered cell field for the
// decayed variant of Conway's Game of Life.
package grid

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/mrizaln/game-of-life/internal/parallel"
)

// Cell is a single grid value: 0 is fully dead, 255 fully alive, anything in
// between the fading trail of a cell that died recently.
type Cell = uint8

const (
	// LiveState marks a fully alive cell.
	LiveState Cell = 0xff
	// DeadState marks a fully dead cell.
	DeadState Cell = 0x00
)

var (
	// ErrInvalidDimensions reports a non-positive width or height.
	ErrInvalidDimensions = errors.New("non-positive grid dimensions")
	// ErrOutOfRange reports a strict accessor called with coordinates
	// outside the grid.
	ErrOutOfRange = errors.New("coordinates out of range")
)

// Options configures grid construction.
type Options struct {
	// Strategy selects the row partitioning used by parallel passes.
	Strategy parallel.Strategy
	// Workers sizes the worker pool; values below 1 mean runtime.NumCPU().
	Workers int
	// Seed drives the population noise field and coin flips.
	Seed int64
}

// Grid owns two equally sized cell buffers. The front buffer is what the
// outside world reads; a step writes the next generation into the back
// buffer and then swaps the two, so no reader can observe a generation half
// built.
type Grid struct {
	w, h  int
	front []Cell
	back  []Cell

	pool  *parallel.Pool
	exec  *parallel.Executor
	noise *NoiseField
	rng   *RNG

	// cellHook, when set, runs before each per-cell update inside Step.
	// Tests use it to inject worker failures; it is never set in
	// production code.
	cellHook func(x, y int)
}

// New allocates a w by h grid with every cell dead.
func New(w, h int, opts Options) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	pool := parallel.NewPool(workers)
	return &Grid{
		w:     w,
		h:     h,
		front: make([]Cell, w*h),
		back:  make([]Cell, w*h),
		pool:  pool,
		exec:  parallel.NewExecutor(pool, opts.Strategy),
		noise: NewNoiseField(opts.Seed),
		rng:   NewRNG(opts.Seed),
	}, nil
}

// Close releases the worker pool. The grid must not be stepped afterwards.
func (g *Grid) Close() { g.pool.Close() }

// Dimensions returns the grid width and height.
func (g *Grid) Dimensions() (int, int) { return g.w, g.h }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Strategy returns the row partitioning strategy in use.
func (g *Grid) Strategy() parallel.Strategy { return g.exec.Strategy() }

// Cells exposes the front buffer in row-major order.
func (g *Grid) Cells() []Cell { return g.front }

// InBounds reports whether (x, y) lies strictly inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// Wrap maps arbitrary coordinates onto the torus using a mathematical
// modulo, so negative inputs of any magnitude land on the far edge instead
// of staying negative.
func (g *Grid) Wrap(x, y int) (int, int) {
	x = (x%g.w + g.w) % g.w
	y = (y%g.h + g.h) % g.h
	return x, y
}

// Get returns the front-buffer cell at (x, y) after wrapping.
func (g *Grid) Get(x, y int) Cell {
	x, y = g.Wrap(x, y)
	return g.front[y*g.w+x]
}

// Set writes the front-buffer cell at (x, y) after wrapping.
func (g *Grid) Set(x, y int, v Cell) {
	x, y = g.Wrap(x, y)
	g.front[y*g.w+x] = v
}

// At returns the cell at (x, y) without wrapping.
func (g *Grid) At(x, y int) (Cell, error) {
	if !g.InBounds(x, y) {
		return DeadState, fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfRange, x, y, g.w, g.h)
	}
	return g.front[y*g.w+x], nil
}

// SetAt writes the cell at (x, y) without wrapping.
func (g *Grid) SetAt(x, y int, v Cell) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfRange, x, y, g.w, g.h)
	}
	g.front[y*g.w+x] = v
	return nil
}

// NeighborCount returns how many of the 8 Moore neighbors are fully alive,
// with wrap-around at the edges.
func (g *Grid) NeighborCount(x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if g.Get(x+dx, y+dy) == LiveState {
				count++
			}
		}
	}
	return count
}

// Step advances the grid one generation. Every next value is computed from
// the pre-step front buffer and written to the back buffer, so workers never
// observe each other's writes; the buffers swap only after all workers have
// joined. On a worker failure the swap is skipped, leaving the front buffer
// intact.
func (g *Grid) Step() error {
	err := g.exec.RunOverRows(g.w, g.h, func(x, y int) {
		if g.cellHook != nil {
			g.cellHook(x, y)
		}
		idx := y*g.w + x
		g.back[idx] = nextCell(g.front[idx], g.NeighborCount(x, y))
	})
	if err != nil {
		return err
	}
	g.front, g.back = g.back, g.front
	return nil
}

// nextCell applies the decayed Life rule to a single cell.
func nextCell(cell Cell, neighbors int) Cell {
	if cell == LiveState {
		if neighbors == 2 || neighbors == 3 {
			return LiveState
		}
		return decay(cell)
	}
	if neighbors == 3 {
		return LiveState
	}
	return decay(cell)
}

// decay fades a cell one level toward dead.
func decay(cell Cell) Cell {
	if cell <= 1 {
		return DeadState
	}
	return cell - 1
}

// Populate redraws every cell from coherent noise gated by density, so the
// live clusters come out organic instead of uniformly speckled. Each cell
// additionally flips a density-weighted coin, and the decided value goes
// into both buffers so the result is visible without a prior swap.
//
// A density of 1 revives every cell and 0 kills every cell; with a fixed
// seed the sequence of Populate calls is reproducible and independent of
// the partitioning strategy and worker count.
func (g *Grid) Populate(density float64) error {
	if density < 0 {
		density = 0
	} else if density > 1 {
		density = 1
	}
	fx := noiseFrequency / float64(g.w)
	fy := noiseFrequency / float64(g.h)
	rows := g.rng.RowStreams(g.h)
	return g.exec.RunOverRows(g.w, g.h, func(x, y int) {
		v := DeadState
		if g.noise.At01(fx*float64(x), fy*float64(y)) < density && rows[y].Float64() < density {
			v = LiveState
		}
		idx := y*g.w + x
		g.front[idx] = v
		g.back[idx] = v
	})
}

// Clear kills every cell in both buffers.
func (g *Grid) Clear() {
	for i := range g.front {
		g.front[i] = DeadState
		g.back[i] = DeadState
	}
}

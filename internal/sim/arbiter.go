// Package sim runs the simulation on a background goroutine and arbitrates
// access to the grid between that goroutine and the UI.
package sim

import (
	"sync"

	"github.com/mrizaln/game-of-life/internal/grid"
)

// Arbiter serializes every access to a grid behind one mutex: UI paints,
// renderer reads, and the scheduler's own steps all pass through it, so no
// caller ever observes a half-finished generation. The buffer swap inside
// Step completes before the lock is released.
//
// Read is currently as exclusive as Write. A reader-writer lock would admit
// concurrent readers, but with a single renderer there is nothing to gain;
// one mutex is the simplest arrangement that preserves step/swap atomicity.
type Arbiter struct {
	mu sync.Mutex
	g  *grid.Grid
}

// NewArbiter wraps the grid.
func NewArbiter(g *grid.Grid) *Arbiter { return &Arbiter{g: g} }

// Write runs fn with exclusive access to the grid.
func (a *Arbiter) Write(fn func(*grid.Grid)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(a.g)
}

// Read runs fn with read access to the grid.
func (a *Arbiter) Read(fn func(*grid.Grid)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(a.g)
}

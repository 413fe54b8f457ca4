package grid

import "math/rand/v2"

// RNG wraps math/rand/v2 with deterministic seeding so population is
// reproducible from a single injected seed.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG from the seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// RowStreams derives one independent sub-stream per row, all keyed off a
// single fresh draw from the master stream. Each row yields the same values
// no matter which worker consumes it or in which order, which keeps parallel
// population independent of the partitioning strategy.
func (r *RNG) RowStreams(rows int) []*rand.Rand {
	base := r.r.Uint64()
	streams := make([]*rand.Rand, rows)
	for y := range streams {
		streams[y] = rand.New(rand.NewPCG(base, uint64(y)))
	}
	return streams
}

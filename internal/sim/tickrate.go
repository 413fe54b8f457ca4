package sim

import (
	"math"
	"sync/atomic"
	"time"
)

// tickHistorySize is the number of recent iterations folded into the
// published average.
const tickHistorySize = 8

// TickRate keeps a small ring of recent loop rates and publishes their
// smoothed ticks-per-second average. Record is called only from the
// scheduler goroutine; TPS is a lock-free read for everyone else.
//
// Samples span the whole loop iteration, inter-step sleep included, so the
// published figure is the achieved loop rate, not the raw step cost.
type TickRate struct {
	history [tickHistorySize]float32
	index   int
	avg     atomic.Uint32
}

// Record folds one loop duration into the ring and republishes the average.
func (t *TickRate) Record(d time.Duration) {
	var rate float32
	if d > 0 {
		rate = float32(time.Second) / float32(d)
	}
	t.history[t.index] = rate
	t.index = (t.index + 1) % tickHistorySize

	var sum float32
	for _, r := range t.history {
		sum += r
	}
	t.avg.Store(math.Float32bits(sum / tickHistorySize))
}

// TPS returns the smoothed ticks-per-second estimate.
func (t *TickRate) TPS() float32 {
	return math.Float32frombits(t.avg.Load())
}

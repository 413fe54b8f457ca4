package parallel

import (
	"fmt"
	"strings"
)

// Strategy selects how grid rows are divided among workers for one pass.
// Partitioning affects performance only; every strategy visits each cell
// exactly once, so results are identical to a sequential pass.
type Strategy uint8

const (
	// StrategyInterleaved assigns row y to worker y mod n.
	StrategyInterleaved Strategy = iota
	// StrategyChunked assigns each worker one contiguous band of rows.
	StrategyChunked
)

var strategyNames = map[string]Strategy{
	"interleaved": StrategyInterleaved,
	"chunked":     StrategyChunked,
}

func (s Strategy) String() string {
	switch s {
	case StrategyChunked:
		return "chunked"
	default:
		return "interleaved"
	}
}

// ParseStrategy maps a flag value onto a Strategy, case-insensitively.
func ParseStrategy(name string) (Strategy, error) {
	if s, ok := strategyNames[strings.ToLower(name)]; ok {
		return s, nil
	}
	return StrategyInterleaved, fmt.Errorf("unknown update strategy %q", name)
}

// Executor runs per-cell functions over a grid using a persistent pool.
type Executor struct {
	pool     *Pool
	strategy Strategy
}

// NewExecutor binds a pool to a partitioning strategy.
func NewExecutor(pool *Pool, strategy Strategy) *Executor {
	return &Executor{pool: pool, strategy: strategy}
}

// Strategy returns the configured partitioning strategy.
func (e *Executor) Strategy() Strategy { return e.strategy }

// RunOverRows applies fn to every (x, y) in [0,width) x [0,height), with the
// rows divided among the pool per the strategy. It blocks until every
// dispatched task has finished; when a task fails, the remaining tasks still
// run to completion and the first failure is returned.
func (e *Executor) RunOverRows(width, height int, fn func(x, y int)) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	n := e.pool.Size()
	if n > height {
		n = height
	}

	futures := make([]<-chan error, 0, n)
	switch e.strategy {
	case StrategyChunked:
		base, extra := height/n, height%n
		begin := 0
		for i := 0; i < n; i++ {
			rows := base
			if i < extra {
				rows++
			}
			lo, hi := begin, begin+rows
			begin = hi
			futures = append(futures, e.pool.Submit(func() error {
				for y := lo; y < hi; y++ {
					for x := 0; x < width; x++ {
						fn(x, y)
					}
				}
				return nil
			}))
		}
	default:
		for i := 0; i < n; i++ {
			first := i
			futures = append(futures, e.pool.Submit(func() error {
				for y := first; y < height; y += n {
					for x := 0; x < width; x++ {
						fn(x, y)
					}
				}
				return nil
			}))
		}
	}

	var first error
	for _, f := range futures {
		if err := <-f; err != nil && first == nil {
			first = err
		}
	}
	return first
}

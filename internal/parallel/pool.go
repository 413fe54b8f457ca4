// Package parallel provides the fixed worker pool and the row executor used
// to spread per-cell grid passes across CPU cores.
package parallel

import (
	"errors"
	"fmt"
	"sync"
)

// ErrWorkerFailure reports that a pooled task panicked instead of returning.
var ErrWorkerFailure = errors.New("worker task failed")

// Pool is a fixed set of persistent worker goroutines fed by a shared task
// queue. It lives as long as its owner; Submit never spawns.
type Pool struct {
	tasks chan func()
	wg    sync.WaitGroup
	once  sync.Once
	size  int
}

// NewPool starts a pool with the given number of workers, coerced to at
// least 1.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{tasks: make(chan func()), size: workers}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.work()
	}
	return p
}

func (p *Pool) work() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Submit queues fn and returns a future that yields its result exactly once.
// A panic inside fn is recovered and delivered as an ErrWorkerFailure, so a
// crashed task can never hang the join.
func (p *Pool) Submit(fn func() error) <-chan error {
	done := make(chan error, 1)
	p.tasks <- func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", ErrWorkerFailure, r)
			}
			done <- err
		}()
		err = fn()
	}
	return done
}

// Size reports the number of workers.
func (p *Pool) Size() int { return p.size }

// Close stops the workers once queued tasks drain. Safe to call more than
// once; the pool is unusable afterwards.
func (p *Pool) Close() {
	p.once.Do(func() { close(p.tasks) })
	p.wg.Wait()
}

package sim

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mrizaln/game-of-life/internal/grid"
)

var (
	// ErrAlreadyLaunched reports a second Launch on a running scheduler.
	ErrAlreadyLaunched = errors.New("scheduler already launched")
	// ErrNotLaunched reports Stop called before Launch.
	ErrNotLaunched = errors.New("scheduler not launched")
)

// lazyDelay is the fixed cadence used while paused, keeping the loop
// responsive at roughly 30 checks per second without advancing the grid.
const lazyDelay = 33 * time.Millisecond

// TickFunc is invoked once per completed step while the scheduler holds
// write access to the grid. It always runs on the scheduler goroutine and
// must not block indefinitely.
type TickFunc func(*grid.Grid)

// Options configures the initial scheduler state.
type Options struct {
	// Delay is the target time between steps.
	Delay time.Duration
	// Paused starts the loop without advancing the grid.
	Paused bool
	// IgnoreDelay steps as fast as possible while unpaused.
	IgnoreDelay bool
}

// Scheduler drives a grid forward on its own background goroutine. Control
// methods are safe from any goroutine; the inter-step sleep is interrupted
// by Stop, ForceUpdate, and delay shortening through a coalescing wake
// token, so cancellation and cadence changes take effect promptly.
type Scheduler struct {
	arb *Arbiter

	delayMs     atomic.Int64
	paused      atomic.Bool
	ignoreDelay atomic.Bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}

	mu       sync.Mutex
	launched bool
	stopped  bool

	onTick TickFunc
	rate   TickRate
}

// NewScheduler wraps an arbiter-guarded grid.
func NewScheduler(arb *Arbiter, opts Options) *Scheduler {
	s := &Scheduler{
		arb:  arb,
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	s.delayMs.Store(int64(opts.Delay / time.Millisecond))
	s.paused.Store(opts.Paused)
	s.ignoreDelay.Store(opts.IgnoreDelay)
	return s
}

// Launch starts the background loop and returns immediately. onTick may be
// nil. Launching twice is an error.
func (s *Scheduler) Launch(onTick TickFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.launched {
		return ErrAlreadyLaunched
	}
	s.launched = true
	s.onTick = onTick
	go s.run()
	return nil
}

// Stop cancels the loop and waits for it to exit. An in-flight step always
// finishes first; a sleeping loop is woken. Safe to call more than once.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.launched {
		s.mu.Unlock()
		return ErrNotLaunched
	}
	if !s.stopped {
		s.stopped = true
		close(s.stop)
	}
	s.mu.Unlock()
	<-s.done
	return nil
}

func (s *Scheduler) run() {
	defer close(s.done)
	for {
		select {
		case <-s.stop:
			return
		default:
		}

		start := time.Now()
		s.arb.Write(func(g *grid.Grid) {
			if s.paused.Load() {
				return
			}
			if err := g.Step(); err != nil {
				// The front buffer is untouched on failure; the next
				// iteration retries.
				return
			}
			if s.onTick != nil {
				s.onTick(g)
			}
		})

		if paused := s.paused.Load(); paused || !s.ignoreDelay.Load() {
			delay := time.Duration(s.delayMs.Load()) * time.Millisecond
			if paused {
				delay = lazyDelay
			}
			if remaining := delay - time.Since(start); remaining > 0 {
				timer := time.NewTimer(remaining)
				select {
				case <-s.stop:
					timer.Stop()
					s.rate.Record(time.Since(start))
					return
				case <-s.wake:
					timer.Stop()
				case <-timer.C:
				}
			}
		}
		s.rate.Record(time.Since(start))
	}
}

// ForceUpdate wakes the loop early; while paused it additionally performs
// exactly one step (with the tick callback) outside the normal cadence. The
// paused flag is left untouched.
func (s *Scheduler) ForceUpdate() {
	s.WakeUp()
	if !s.paused.Load() {
		return
	}
	s.arb.Write(func(g *grid.Grid) {
		if err := g.Step(); err != nil {
			return
		}
		if s.onTick != nil {
			s.onTick(g)
		}
	})
}

// WakeUp interrupts the current inter-step sleep, if any. Extra wake
// requests coalesce into a single pending token.
func (s *Scheduler) WakeUp() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// SetDelay changes the target time between steps. Shortening the delay
// wakes the loop so the new cadence applies without waiting out the old
// sleep; lengthening takes effect on the next natural wake.
func (s *Scheduler) SetDelay(d time.Duration) {
	ms := int64(d / time.Millisecond)
	if ms < 0 {
		ms = 0
	}
	if old := s.delayMs.Swap(ms); ms < old {
		s.WakeUp()
	}
}

// Delay returns the configured inter-step delay.
func (s *Scheduler) Delay() time.Duration {
	return time.Duration(s.delayMs.Load()) * time.Millisecond
}

// SetPause switches between stepping and the lazy paused cadence without
// stopping the loop.
func (s *Scheduler) SetPause(pause bool) { s.paused.Store(pause) }

// Paused reports whether the loop is paused.
func (s *Scheduler) Paused() bool { return s.paused.Load() }

// TogglePause flips the paused flag and returns the new value.
func (s *Scheduler) TogglePause() bool {
	for {
		old := s.paused.Load()
		if s.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// SetIgnoreDelay makes the loop step as fast as possible while unpaused.
func (s *Scheduler) SetIgnoreDelay(ignore bool) { s.ignoreDelay.Store(ignore) }

// IgnoringDelay reports whether the configured delay is being skipped.
func (s *Scheduler) IgnoringDelay() bool { return s.ignoreDelay.Load() }

// ToggleIgnoreDelay flips the ignore-delay flag and returns the new value.
func (s *Scheduler) ToggleIgnoreDelay() bool {
	for {
		old := s.ignoreDelay.Load()
		if s.ignoreDelay.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// TickRate returns the smoothed loop rate in ticks per second.
func (s *Scheduler) TickRate() float32 { return s.rate.TPS() }

package sim

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mrizaln/game-of-life/internal/grid"
)

func newTestArbiter(t *testing.T, w, h int) *Arbiter {
	t.Helper()
	g, err := grid.New(w, h, grid.Options{Workers: 2, Seed: 1})
	if err != nil {
		t.Fatalf("grid.New failed: %v", err)
	}
	t.Cleanup(g.Close)
	return NewArbiter(g)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return cond()
}

func TestSchedulerCadence(t *testing.T) {
	arb := newTestArbiter(t, 16, 16)
	s := NewScheduler(arb, Options{Delay: 50 * time.Millisecond})

	var ticks atomic.Int32
	if err := s.Launch(func(*grid.Grid) { ticks.Add(1) }); err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	time.Sleep(500 * time.Millisecond)
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	got := ticks.Load()
	if got < 5 || got > 16 {
		t.Fatalf("tick count over 500ms at 50ms delay = %d, want roughly 10", got)
	}
}

func TestPausedSchedulerDoesNotStep(t *testing.T) {
	arb := newTestArbiter(t, 8, 8)
	s := NewScheduler(arb, Options{Delay: 5 * time.Millisecond, Paused: true})

	var ticks atomic.Int32
	if err := s.Launch(func(*grid.Grid) { ticks.Add(1) }); err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	time.Sleep(150 * time.Millisecond)
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	if got := ticks.Load(); got != 0 {
		t.Fatalf("paused scheduler ticked %d times, want 0", got)
	}
}

func TestForceUpdateWhilePaused(t *testing.T) {
	arb := newTestArbiter(t, 8, 8)
	s := NewScheduler(arb, Options{Paused: true})

	var ticks atomic.Int32
	if err := s.Launch(func(*grid.Grid) { ticks.Add(1) }); err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	defer s.Stop()

	time.Sleep(50 * time.Millisecond)
	if got := ticks.Load(); got != 0 {
		t.Fatalf("ticked %d times before ForceUpdate, want 0", got)
	}

	s.ForceUpdate()
	if !waitFor(t, time.Second, func() bool { return ticks.Load() == 1 }) {
		t.Fatalf("tick count after ForceUpdate = %d, want 1", ticks.Load())
	}
	time.Sleep(100 * time.Millisecond)
	if got := ticks.Load(); got != 1 {
		t.Fatalf("tick count settled at %d after ForceUpdate, want exactly 1", got)
	}
	if !s.Paused() {
		t.Fatal("ForceUpdate cleared the paused flag")
	}
}

func TestForceUpdateWhileRunningOnlyWakes(t *testing.T) {
	arb := newTestArbiter(t, 8, 8)
	s := NewScheduler(arb, Options{Delay: time.Hour})

	var ticks atomic.Int32
	if err := s.Launch(func(*grid.Grid) { ticks.Add(1) }); err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	defer s.Stop()

	if !waitFor(t, time.Second, func() bool { return ticks.Load() >= 1 }) {
		t.Fatal("scheduler never performed its first step")
	}

	s.ForceUpdate()
	if !waitFor(t, time.Second, func() bool { return ticks.Load() >= 2 }) {
		t.Fatalf("ForceUpdate did not wake the sleeping scheduler (ticks=%d)", ticks.Load())
	}
}

func TestSetDelayShorterWakesImmediately(t *testing.T) {
	arb := newTestArbiter(t, 8, 8)
	s := NewScheduler(arb, Options{Delay: time.Hour})

	var ticks atomic.Int32
	if err := s.Launch(func(*grid.Grid) { ticks.Add(1) }); err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	defer s.Stop()

	if !waitFor(t, time.Second, func() bool { return ticks.Load() >= 1 }) {
		t.Fatal("scheduler never performed its first step")
	}

	s.SetDelay(5 * time.Millisecond)
	if !waitFor(t, time.Second, func() bool { return ticks.Load() >= 3 }) {
		t.Fatalf("shorter delay did not take effect promptly (ticks=%d)", ticks.Load())
	}
	if d := s.Delay(); d != 5*time.Millisecond {
		t.Fatalf("Delay() = %v, want 5ms", d)
	}
}

func TestIgnoreDelaySkipsConfiguredSleep(t *testing.T) {
	arb := newTestArbiter(t, 8, 8)
	s := NewScheduler(arb, Options{Delay: time.Hour, IgnoreDelay: true})

	var ticks atomic.Int32
	if err := s.Launch(func(*grid.Grid) { ticks.Add(1) }); err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	defer s.Stop()

	// with an hour-long delay only the free-running path can tick this much
	if !waitFor(t, time.Second, func() bool { return ticks.Load() >= 50 }) {
		t.Fatalf("ignore-delay loop ticked only %d times, want a free-running rate", ticks.Load())
	}
	if !s.IgnoringDelay() {
		t.Fatal("IgnoringDelay() = false after starting with IgnoreDelay")
	}
}

func TestToggleIgnoreDelayTakesEffect(t *testing.T) {
	arb := newTestArbiter(t, 8, 8)
	s := NewScheduler(arb, Options{Delay: time.Hour})

	var ticks atomic.Int32
	if err := s.Launch(func(*grid.Grid) { ticks.Add(1) }); err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	defer s.Stop()

	if !waitFor(t, time.Second, func() bool { return ticks.Load() >= 1 }) {
		t.Fatal("scheduler never performed its first step")
	}

	if !s.ToggleIgnoreDelay() {
		t.Fatal("ToggleIgnoreDelay() = false, want true")
	}
	s.WakeUp()
	if !waitFor(t, time.Second, func() bool { return ticks.Load() >= 50 }) {
		t.Fatalf("loop ticked only %d times after enabling ignore-delay", ticks.Load())
	}
	if s.ToggleIgnoreDelay() {
		t.Fatal("second ToggleIgnoreDelay() = true, want false")
	}
}

func TestIgnoreDelayWhilePausedStaysLazy(t *testing.T) {
	arb := newTestArbiter(t, 8, 8)
	s := NewScheduler(arb, Options{IgnoreDelay: true, Paused: true})

	var ticks atomic.Int32
	if err := s.Launch(func(*grid.Grid) { ticks.Add(1) }); err != nil {
		t.Fatalf("Launch failed: %v", err)
	}

	time.Sleep(150 * time.Millisecond)
	if got := ticks.Load(); got != 0 {
		t.Fatalf("paused ignore-delay scheduler ticked %d times, want 0", got)
	}

	// the lazy cadence must not turn into a busy loop that starves Stop
	done := make(chan struct{})
	go func() {
		if err := s.Stop(); err != nil {
			t.Errorf("Stop failed: %v", err)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return in time")
	}
}

func TestStopIsPromptAndIdempotent(t *testing.T) {
	arb := newTestArbiter(t, 8, 8)
	s := NewScheduler(arb, Options{Delay: time.Hour})

	if err := s.Launch(nil); err != nil {
		t.Fatalf("Launch failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		if err := s.Stop(); err != nil {
			t.Errorf("Stop failed: %v", err)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return in time")
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop failed: %v", err)
	}
}

func TestLifecycleErrors(t *testing.T) {
	arb := newTestArbiter(t, 8, 8)

	s := NewScheduler(arb, Options{Paused: true})
	if err := s.Stop(); !errors.Is(err, ErrNotLaunched) {
		t.Fatalf("Stop before Launch error = %v, want ErrNotLaunched", err)
	}
	if err := s.Launch(nil); err != nil {
		t.Fatalf("Launch failed: %v", err)
	}
	if err := s.Launch(nil); !errors.Is(err, ErrAlreadyLaunched) {
		t.Fatalf("second Launch error = %v, want ErrAlreadyLaunched", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
}

func TestTogglePause(t *testing.T) {
	arb := newTestArbiter(t, 8, 8)
	s := NewScheduler(arb, Options{})

	if s.Paused() {
		t.Fatal("scheduler started paused")
	}
	if !s.TogglePause() {
		t.Fatal("TogglePause() = false, want true")
	}
	if s.TogglePause() {
		t.Fatal("second TogglePause() = true, want false")
	}
}

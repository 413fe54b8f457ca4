//go:build ebiten

package app

import (
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/mrizaln/game-of-life/internal/grid"
	"github.com/mrizaln/game-of-life/internal/render"
	"github.com/mrizaln/game-of-life/internal/sim"
	"github.com/mrizaln/game-of-life/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// delayScale is applied once per frame while J or L is held.
	delayScale = 1.01
	minDelay   = 5 * time.Millisecond
)

// Game adapts the scheduler-driven grid to the ebiten.Game interface. All
// grid access goes through the arbiter; the scheduler keeps stepping on its
// own goroutine regardless of the frame rate.
type Game struct {
	arb       *sim.Arbiter
	scheduler *sim.Scheduler
	painter   *render.GridPainter
	hud       *ui.HUD

	strategy string
	scale    int

	painting     bool
	pausedBefore bool

	onColor  color.Color
	offColor color.Color
}

// New constructs the Game glue around an already-constructed grid and
// scheduler. Grid dimensions and strategy are read from the grid itself
// rather than trusted from the config.
func New(arb *sim.Arbiter, scheduler *sim.Scheduler, cfg *Config) *Game {
	var (
		w, h     int
		strategy string
	)
	arb.Read(func(gr *grid.Grid) {
		w, h = gr.Width(), gr.Height()
		strategy = gr.Strategy().String()
	})
	return &Game{
		arb:       arb,
		scheduler: scheduler,
		painter:   render.NewGridPainter(w, h),
		hud:       ui.NewHUD(),
		strategy:  strategy,
		scale:     cfg.Scale,
		onColor:   color.White,
		offColor:  color.Black,
	}
}

// Update handles per-frame input. The simulation itself advances on the
// scheduler goroutine, not here.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.scheduler.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyU) {
		g.scheduler.ForceUpdate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.scheduler.ToggleIgnoreDelay()
	}
	if ebiten.IsKeyPressed(ebiten.KeyL) {
		g.scaleDelay(delayScale)
	}
	if ebiten.IsKeyPressed(ebiten.KeyJ) {
		g.scaleDelay(1 / delayScale)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.arb.Write(func(gr *grid.Grid) { gr.Clear() })
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		density := rand.Float64()*0.6 + 0.2
		g.arb.Write(func(gr *grid.Grid) { _ = gr.Populate(density) })
	}
	g.handlePaint()
	return nil
}

func (g *Game) scaleDelay(factor float64) {
	d := time.Duration(float64(g.scheduler.Delay()) * factor)
	if d < minDelay {
		d = minDelay
	}
	g.scheduler.SetDelay(d)
}

// handlePaint pauses the simulation while a mouse button is held, paints
// (left) or erases (right) the cell under the cursor, and restores the
// previous pause state on release. Off-grid positions are rejected rather
// than wrapped.
func (g *Game) handlePaint() {
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)

	if (left || right) && !g.painting {
		g.painting = true
		g.pausedBefore = g.scheduler.Paused()
		g.scheduler.SetPause(true)
		g.scheduler.WakeUp()
	}
	if !left && !right {
		if g.painting {
			g.painting = false
			g.scheduler.SetPause(g.pausedBefore)
		}
		return
	}

	mx, my := ebiten.CursorPosition()
	x, y := mx/g.scale, my/g.scale
	value := grid.LiveState
	if right {
		value = grid.DeadState
	}
	g.arb.Write(func(gr *grid.Grid) {
		if gr.InBounds(x, y) {
			gr.Set(x, y, value)
		}
	})
}

// Draw renders the current front buffer and the status line.
func (g *Game) Draw(screen *ebiten.Image) {
	g.arb.Read(func(gr *grid.Grid) {
		g.painter.Blit(screen, gr.Cells(), g.onColor, g.offColor, g.scale)
	})
	g.hud.Draw(screen, ui.Status{
		TPS:         g.scheduler.TickRate(),
		Delay:       g.scheduler.Delay(),
		Paused:      g.scheduler.Paused(),
		IgnoreDelay: g.scheduler.IgnoringDelay(),
		Strategy:    g.strategy,
	})
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.painter.Size()
	return w * g.scale, h * g.scale
}

//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders a one-line simulation status readout in the corner.
type HUD struct{}

// NewHUD constructs a HUD.
func NewHUD() *HUD { return &HUD{} }

// Draw renders the status line in the top-left corner of dst.
func (h *HUD) Draw(dst *ebiten.Image, st Status) {
	state := "running"
	if st.Paused {
		state = "paused"
	}
	line := fmt.Sprintf("%.1f tps | delay %v | %s | %s", st.TPS, st.Delay, state, st.Strategy)
	if st.IgnoreDelay && !st.Paused {
		line += " | unthrottled"
	}
	text.Draw(dst, line, basicfont.Face7x13, 4, 14, color.White)
}

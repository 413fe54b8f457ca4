//go:build !ebiten

// Package render turns trail cell buffers into pixels.
package render

// GridPainter is a placeholder for the headless build.
type GridPainter struct {
	w, h int
}

// NewGridPainter records the grid dimensions.
func NewGridPainter(w, h int) *GridPainter { return &GridPainter{w: w, h: h} }

// Blit is a no-op in the headless build.
func (gp *GridPainter) Blit(any, []uint8, any, any, int) {}

// Size returns the dimensions the painter was created with.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }

package grid

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// noiseFrequency sets the cluster scale of the population noise relative to
// the grid size; each cell samples the field at noiseFrequency/width steps.
const noiseFrequency = 8.0

const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3
)

// NoiseField is a seeded coherent 2D noise source normalized to [0, 1).
type NoiseField struct {
	p *perlin.Perlin
}

// NewNoiseField builds a noise field from the given seed.
func NewNoiseField(seed int64) *NoiseField {
	return &NoiseField{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}
}

// At01 samples the field at (x, y). The result is clamped into [0, 1) so
// that a density of 1 passes every cell and a density of 0 passes none.
func (n *NoiseField) At01(x, y float64) float64 {
	v := (n.p.Noise2D(x, y) + 1) / 2
	if v < 0 {
		return 0
	}
	if v >= 1 {
		return math.Nextafter(1, 0)
	}
	return v
}

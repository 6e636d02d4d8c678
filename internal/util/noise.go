package util

import (
	"github.com/aquilax/go-perlin"
)

// Noise wraps a seeded Perlin permutation table. Unlike a package-level
// singleton, each instance owns its own tables so independently seeded
// generators never interfere with each other.
type Noise struct {
	perlin *perlin.Perlin
}

// NewNoise builds a coherent noise source seeded deterministically from seed.
func NewNoise(seed int64) *Noise {
	const (
		alpha   = 2.0
		beta    = 2.0
		octaves = int32(3)
	)
	return &Noise{perlin: perlin.NewPerlin(alpha, beta, octaves, seed)}
}

// Noise1D returns a coherent scalar in [-1, 1] for the given coordinate.
func (n *Noise) Noise1D(x float64) float64 {
	return n.perlin.Noise1D(x)
}

// Noise2D returns a coherent scalar in [-1, 1] for the given coordinates.
func (n *Noise) Noise2D(x, y float64) float64 {
	return n.perlin.Noise2D(x, y)
}

// Noise3D returns a coherent scalar in [-1, 1] for the given coordinates.
func (n *Noise) Noise3D(x, y, z float64) float64 {
	return n.perlin.Noise3D(x, y, z)
}

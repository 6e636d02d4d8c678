package world

import (
	"github.com/voxelcore/worldcore/internal/util"
	"github.com/voxelcore/worldcore/internal/vec"
	"github.com/voxelcore/worldcore/internal/world/block"
)

// Generator produces deterministic chunks from a coordinate and the
// world's seed. It owns its noise instance rather than reading a package
// global, so two generators with different seeds never interfere.
type Generator struct {
	noise *util.Noise
}

const (
	baseY        = 48
	amplitude    = 48
	seaLevel     = 63
	scaleX       = 64.0
	scaleZ       = 64.0
	dirtDepth    = 4
	beachBandTop = seaLevel + 1
)

// NewGenerator builds a generator seeded for the given world seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{noise: util.NewNoise(seed)}
}

// Generate is the §4.1 contract: a pure, deterministic function of chunk
// coordinate and the generator's seed.
func (g *Generator) Generate(coord vec.Vec2) *Chunk {
	c := NewChunk(coord)

	for lx := 0; lx < ChunkSize; lx++ {
		for lz := 0; lz < ChunkSize; lz++ {
			wx := coord.X*ChunkSize + lx
			wz := coord.Z*ChunkSize + lz
			h := g.heightAt(wx, wz)
			g.fillColumn(c, wx, wz, h)
		}
	}
	return c
}

func (g *Generator) heightAt(wx, wz int) int {
	n := g.noise.Noise2D(float64(wx)/scaleX, float64(wz)/scaleZ)
	normalized := (n + 1.0) / 2.0
	return baseY + int(normalized*float64(amplitude))
}

func (g *Generator) fillColumn(c *Chunk, wx, wz, h int) {
	for y := 0; y < WorldHeight; y++ {
		var t block.Type
		switch {
		case y < h-dirtDepth:
			t = block.Stone
		case y < h:
			if h <= beachBandTop {
				t = block.Sand
			} else {
				t = block.Dirt
			}
		case y == h:
			t = block.Grass
		case y <= seaLevel:
			t = block.StillWater
		default:
			t = block.Air
		}
		c.SetBlockAt(vec.Vec3{X: wx, Y: y, Z: wz}, t, 0)
	}
}

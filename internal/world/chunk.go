package world

import (
	"fmt"

	"github.com/voxelcore/worldcore/internal/vec"
	"github.com/voxelcore/worldcore/internal/world/block"
)

// Chunk owns exactly MinisPerChunk mini-chunks stacked along y. It is the
// residency unit: the world map indexes chunks by their (cx, cz) coord.
type Chunk struct {
	Coord vec.Vec2
	Minis [MinisPerChunk]*MiniChunk
}

// NewChunk allocates an all-Air chunk at coord, with every mini's origin
// satisfying the §3 stacking invariant.
func NewChunk(coord vec.Vec2) *Chunk {
	c := &Chunk{Coord: coord}
	for i := 0; i < MinisPerChunk; i++ {
		origin := vec.Vec3{X: coord.X * ChunkSize, Y: i * MiniSize, Z: coord.Z * ChunkSize}
		c.Minis[i] = NewMiniChunk(origin)
	}
	return c
}

// Validate checks the §3 chunk invariant: every mini's coord must equal
// (chunk.coord.x, 16*i, chunk.coord.z). A violation is an InvariantViolation
// per §7 — callers should treat a non-nil return as fatal.
func (c *Chunk) Validate() error {
	for i, mini := range c.Minis {
		want := vec.Vec3{X: c.Coord.X * ChunkSize, Y: i * MiniSize, Z: c.Coord.Z * ChunkSize}
		if mini == nil {
			return fmt.Errorf("%w: chunk %v missing mini %d", ErrInvariantViolation, c.Coord, i)
		}
		if !mini.Coord.Equals(want) {
			return fmt.Errorf("%w: chunk %v mini %d coord %v != %v", ErrInvariantViolation, c.Coord, i, mini.Coord, want)
		}
	}
	return nil
}

// MiniAt returns the mini-chunk owning world y-coordinate y, or nil if y is
// out of the chunk's 0..255 vertical range.
func (c *Chunk) MiniAt(y int) *MiniChunk {
	if y < 0 || y >= WorldHeight {
		return nil
	}
	return c.Minis[y/MiniSize]
}

// BlockAt returns the type and metadata at a block coordinate local to this
// chunk's (x, z) but in world y.
func (c *Chunk) BlockAt(b vec.Vec3) (block.Type, block.Metadata) {
	mini := c.MiniAt(b.Y)
	if mini == nil {
		return block.Air, 0
	}
	return mini.BlockAt(LocalCoord(b))
}

// SetBlockAt writes the type and metadata at a block coordinate local to
// this chunk.
func (c *Chunk) SetBlockAt(b vec.Vec3, t block.Type, md block.Metadata) {
	mini := c.MiniAt(b.Y)
	if mini == nil {
		return
	}
	mini.SetBlockAt(LocalCoord(b), t, md)
}

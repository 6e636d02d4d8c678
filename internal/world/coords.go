package world

import (
	"github.com/voxelcore/worldcore/internal/vec"
)

const (
	// ChunkSize is the horizontal extent of a chunk in blocks.
	ChunkSize = 16
	// WorldHeight is the fixed vertical extent of every chunk in blocks.
	WorldHeight = 256
	// MiniSize is the edge length of a mini-chunk.
	MiniSize = 16
	// MinisPerChunk is the number of mini-chunks stacked in one chunk.
	MinisPerChunk = WorldHeight / MiniSize
)

// ChunkCoord converts a world-block coordinate to the chunk coordinate
// that contains it.
func ChunkCoord(b vec.Vec3) vec.Vec2 {
	return vec.Vec2{X: floorDivInt(b.X, ChunkSize), Z: floorDivInt(b.Z, ChunkSize)}
}

// MiniY returns the y-origin (a multiple of MiniSize) of the mini-chunk
// that contains block y-coordinate y.
func MiniY(y int) int {
	return floorDivInt(y, MiniSize) * MiniSize
}

// LocalCoord returns the block's position within its mini-chunk, using
// true mathematical modulo so negative world coordinates still land in
// 0..15.
func LocalCoord(b vec.Vec3) vec.Vec3 {
	return vec.Vec3{
		X: floorModInt(b.X, ChunkSize),
		Y: floorModInt(b.Y, MiniSize),
		Z: floorModInt(b.Z, ChunkSize),
	}
}

func floorDivInt(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorModInt(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voxelcore/worldcore/internal/vec"
	"github.com/voxelcore/worldcore/internal/world/block"
)

func TestEncodeDecodeChunkRoundTrip(t *testing.T) {
	original := NewChunk(vec.Vec2{X: 4, Z: -9})
	original.SetBlockAt(vec.Vec3{X: 1, Y: 70, Z: 2}, block.Grass, 0)
	original.SetBlockAt(vec.Vec3{X: 5, Y: 63, Z: 9}, block.FlowingWater, block.Metadata(0).WithLevel(3))

	data, err := EncodeChunk(original)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	decoded, err := DecodeChunk(data)
	require.NoError(t, err)

	assert.Equal(t, original.Coord, decoded.Coord)

	for y := 0; y < WorldHeight; y += 7 {
		for _, pos := range []vec.Vec3{
			{X: 1, Y: y, Z: 2},
			{X: 5, Y: y, Z: 9},
		} {
			wantType, wantMeta := original.BlockAt(pos)
			gotType, gotMeta := decoded.BlockAt(pos)
			assert.Equal(t, wantType, gotType, "type mismatch at %v", pos)
			assert.Equal(t, wantMeta, gotMeta, "metadata mismatch at %v", pos)
		}
	}
}

func TestDecodeChunkRejectsCorruptData(t *testing.T) {
	_, err := DecodeChunk([]byte{0x00, 0x01, 0x02})
	assert.Error(t, err)
}

func TestEncodeChunkProducesCompressedFrame(t *testing.T) {
	c := NewChunk(vec.Vec2{X: 0, Z: 0})
	data, err := EncodeChunk(c)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voxelcore/worldcore/internal/vec"
	"github.com/voxelcore/worldcore/internal/world/block"
)

func TestInsertChunkRejectsDuplicate(t *testing.T) {
	w := NewWorld(1, nil, nil)
	c1 := NewChunk(vec.Vec2{X: 0, Z: 0})
	c2 := NewChunk(vec.Vec2{X: 0, Z: 0})

	assert.NoError(t, w.InsertChunk(c1))
	assert.ErrorIs(t, w.InsertChunk(c2), ErrDuplicateChunk)
	assert.Equal(t, 1, w.ResidentCount())
}

func TestGetTypeOnNonResidentChunkIsAir(t *testing.T) {
	w := NewWorld(1, nil, nil)
	ty := w.GetType(vec.Vec3{X: 500, Y: 10, Z: 500})
	assert.Equal(t, block.Air, ty)
}

func TestSetTypeOnNonResidentChunkIsDropped(t *testing.T) {
	w := NewWorld(1, nil, nil)
	w.SetType(vec.Vec3{X: 500, Y: 10, Z: 500}, block.Stone)
	assert.Equal(t, block.Air, w.GetType(vec.Vec3{X: 500, Y: 10, Z: 500}))
}

func TestAddAndDestroyBlock(t *testing.T) {
	w := NewWorld(1, nil, nil)
	c := NewChunk(vec.Vec2{X: 0, Z: 0})
	assert.NoError(t, w.InsertChunk(c))

	pos := vec.Vec3{X: 3, Y: 20, Z: 3}
	w.AddBlock(pos, block.Stone)
	assert.Equal(t, block.Stone, w.GetType(pos))

	w.DestroyBlock(pos)
	assert.Equal(t, block.Air, w.GetType(pos))
}

func TestGetMinisTouchingBlockInteriorIsOwnerOnly(t *testing.T) {
	w := NewWorld(1, nil, nil)
	touched := w.GetMinisTouchingBlock(vec.Vec3{X: 5, Y: 20, Z: 5})
	assert.Len(t, touched, 1)
}

func TestGetMinisTouchingBlockOnChunkBoundaryIncludesNeighbor(t *testing.T) {
	w := NewWorld(1, nil, nil)
	touched := w.GetMinisTouchingBlock(vec.Vec3{X: 0, Y: 20, Z: 5})

	assert.Contains(t, touched, vec.Vec3{X: 0, Y: 16, Z: 0})
	assert.Contains(t, touched, vec.Vec3{X: -16, Y: 16, Z: 0})
}

func TestGetMinisTouchingBlockOnWorldEdgeDoesNotReachOutOfBounds(t *testing.T) {
	w := NewWorld(1, nil, nil)

	bottom := w.GetMinisTouchingBlock(vec.Vec3{X: 5, Y: 0, Z: 5})
	assert.Len(t, bottom, 1, "y=0 sits on a world edge, not a mini boundary that needs a neighbor below")

	top := w.GetMinisTouchingBlock(vec.Vec3{X: 5, Y: WorldHeight - 1, Z: 5})
	assert.Len(t, top, 1, "the top world row must not request a mini above the world")
}

func TestInsertChunkRequestsMeshForResidentNeighbors(t *testing.T) {
	var requested []vec.Vec3
	w := NewWorld(1, nil, func(m vec.Vec3) { requested = append(requested, m) })

	first := NewChunk(vec.Vec2{X: 0, Z: 0})
	assert.NoError(t, w.InsertChunk(first))
	requested = nil

	second := NewChunk(vec.Vec2{X: 1, Z: 0})
	assert.NoError(t, w.InsertChunk(second))

	assert.NotEmpty(t, requested, "inserting a chunk adjacent to a resident one must re-request its neighbor's meshes")
}

func TestGenNearbySkipsResidentChunks(t *testing.T) {
	var requested []vec.Vec2
	w := NewWorld(1, func(c vec.Vec2) { requested = append(requested, c) }, nil)

	assert.NoError(t, w.InsertChunk(NewChunk(vec.Vec2{X: 0, Z: 0})))

	w.GenNearby(vec.Vec2{X: 0, Z: 0}, 1)

	for _, c := range requested {
		assert.NotEqual(t, vec.Vec2{X: 0, Z: 0}, c, "a resident chunk must never be re-requested")
	}
	assert.Len(t, requested, 8, "a radius-1 disk around a resident center requests its 8 neighbors")
}

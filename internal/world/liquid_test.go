package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voxelcore/worldcore/internal/vec"
	"github.com/voxelcore/worldcore/internal/world/block"
)

func TestLiquidQueueDrainsInTickOrder(t *testing.T) {
	q := newLiquidQueue()
	q.schedule(5, vec.Vec3{X: 1})
	q.schedule(2, vec.Vec3{X: 2})
	q.schedule(8, vec.Vec3{X: 3})

	var order []int64
	for q.Len() > 0 {
		order = append(order, q.pop().tick)
	}
	assert.Equal(t, []int64{2, 5, 8}, order)
}

func newTestWorldWithChunk(coord vec.Vec2) (*World, *Chunk) {
	w := NewWorld(1, nil, nil)
	c := NewChunk(coord)
	_ = w.InsertChunk(c)
	return w, c
}

func TestPropagateWaterSourceForcesLevelSeven(t *testing.T) {
	w, c := newTestWorldWithChunk(vec.Vec2{X: 0, Z: 0})

	above := vec.Vec3{X: 5, Y: 11, Z: 5}
	target := vec.Vec3{X: 5, Y: 10, Z: 5}

	c.SetBlockAt(above, block.StillWater, 0)

	w.propagateWater(target)

	ty, md := c.BlockAt(target)
	assert.Equal(t, block.FlowingWater, ty)
	assert.Equal(t, block.MaxLiquidLevel, md.Level())
}

func TestPropagateWaterSettlesFromHorizontalSource(t *testing.T) {
	w, c := newTestWorldWithChunk(vec.Vec2{X: 0, Z: 0})

	source := vec.Vec3{X: 5, Y: 10, Z: 5}
	sourceFloor := vec.Vec3{X: 5, Y: 9, Z: 5}
	target := vec.Vec3{X: 6, Y: 10, Z: 5}

	c.SetBlockAt(source, block.StillWater, 0)
	c.SetBlockAt(sourceFloor, block.Stone, 0)

	w.propagateWater(target)

	ty, md := c.BlockAt(target)
	assert.Equal(t, block.FlowingWater, ty)
	assert.Equal(t, block.MaxLiquidLevel-1, md.Level())
}

func TestPropagateWaterDestroysFlowingWaterWithNoSource(t *testing.T) {
	w, c := newTestWorldWithChunk(vec.Vec2{X: 0, Z: 0})

	target := vec.Vec3{X: 5, Y: 10, Z: 5}
	c.SetBlockAt(target, block.FlowingWater, block.Metadata(0).WithLevel(2))

	w.propagateWater(target)

	ty, _ := c.BlockAt(target)
	assert.Equal(t, block.Air, ty)
}

func TestPropagateWaterIgnoresResidentSolidBlock(t *testing.T) {
	w, c := newTestWorldWithChunk(vec.Vec2{X: 0, Z: 0})

	target := vec.Vec3{X: 5, Y: 10, Z: 5}
	c.SetBlockAt(target, block.Stone, 0)

	w.propagateWater(target)

	ty, _ := c.BlockAt(target)
	assert.Equal(t, block.Stone, ty, "propagation must never overwrite a solid resident block")
}

func TestUpdateTickIsMonotone(t *testing.T) {
	w, _ := newTestWorldWithChunk(vec.Vec2{X: 0, Z: 0})
	w.UpdateTick(10)
	assert.Equal(t, int64(10), w.Tick())

	w.UpdateTick(5)
	assert.Equal(t, int64(10), w.Tick(), "advancing to an earlier tick must be a no-op")
}

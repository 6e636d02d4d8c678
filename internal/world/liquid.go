package world

import (
	"container/heap"

	"github.com/voxelcore/worldcore/internal/vec"
	"github.com/voxelcore/worldcore/internal/world/block"
)

// PropagationDelay is the fixed number of ticks between a triggering write
// and the scheduled re-evaluation of a block's liquid state.
const PropagationDelay = 5

type liquidItem struct {
	tick  int64
	coord vec.Vec3
}

// liquidQueue is a min-heap of (tick, coord) ordered by tick, draining in
// non-decreasing tick order regardless of insertion order.
type liquidQueue struct {
	items []liquidItem
}

func (q *liquidQueue) Len() int { return len(q.items) }
func (q *liquidQueue) Less(i, j int) bool {
	return q.items[i].tick < q.items[j].tick
}
func (q *liquidQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *liquidQueue) Push(x interface{}) {
	q.items = append(q.items, x.(liquidItem))
}
func (q *liquidQueue) Pop() interface{} {
	n := len(q.items)
	item := q.items[n-1]
	q.items = q.items[:n-1]
	return item
}

func newLiquidQueue() *liquidQueue {
	q := &liquidQueue{}
	heap.Init(q)
	return q
}

func (q *liquidQueue) schedule(tick int64, coord vec.Vec3) {
	heap.Push(q, liquidItem{tick: tick, coord: coord})
}

// peekTick returns the tick of the earliest-scheduled item without
// removing it, and false if the queue is empty.
func (q *liquidQueue) peekTick() (int64, bool) {
	if q.Len() == 0 {
		return 0, false
	}
	return q.items[0].tick, true
}

func (q *liquidQueue) pop() liquidItem {
	return heap.Pop(q).(liquidItem)
}

// propagateWater implements the §4.4 cellular rule for a single coordinate
// popped off the queue. It is only ever called from UpdateTick, always with
// tick <= w.tick.
func (w *World) propagateWater(coord vec.Vec3) {
	c, ok := w.ChunkAt(ChunkCoord(coord))
	if !ok {
		return
	}

	b, md := c.BlockAt(coord)
	if b != block.Air && b != block.FlowingWater {
		return
	}

	above := vec.Vec3{X: coord.X, Y: coord.Y + 1, Z: coord.Z}
	if w.GetType(above).IsWater() {
		w.writeLiquid(c, coord, block.FlowingWater, block.MaxLiquidLevel)
		w.onBlockUpdate(coord)
		return
	}

	maxNeighborLevel := -1
	for _, n := range horizontalNeighbors(coord) {
		below := vec.Vec3{X: n.X, Y: n.Y - 1, Z: n.Z}
		if !w.GetType(below).IsSolid() {
			continue
		}
		nt := w.GetType(n)
		nm := w.GetMetadata(n)
		if lvl := block.LiquidLevel(nt, nm); nt.IsWater() && lvl > maxNeighborLevel {
			maxNeighborLevel = lvl
		}
	}

	newLevel := maxNeighborLevel - 1

	switch {
	case newLevel >= 0 && newLevel <= block.MaxLiquidLevel && newLevel != md.Level():
		w.writeLiquid(c, coord, block.FlowingWater, newLevel)
		w.onBlockUpdate(coord)
	case newLevel < 0 && b == block.FlowingWater:
		w.writeLiquid(c, coord, block.Air, 0)
		w.onBlockUpdate(coord)
	}
}

func (w *World) writeLiquid(c *Chunk, coord vec.Vec3, t block.Type, level int) {
	md := block.Metadata(0).WithLevel(level)
	c.SetBlockAt(coord, t, md)
}

// onBlockUpdate re-requests meshing for the affected minis and schedules
// the five liquid neighbors five ticks out, mirroring onMiniUpdate's mesh
// cascade without re-deriving the liquid schedule from scratch (propagation
// already knows exactly which neighbors to wake).
func (w *World) onBlockUpdate(coord vec.Vec3) {
	owner := miniCoordOf(coord)
	w.requestMesh(owner)
	for _, m := range w.GetMinisTouchingBlock(coord) {
		if m != owner {
			w.requestMesh(m)
		}
	}

	targetTick := w.tick + PropagationDelay
	for _, n := range horizontalAndDownNeighbors(coord) {
		w.liquid.schedule(targetTick, n)
	}
}

func horizontalNeighbors(coord vec.Vec3) [4]vec.Vec3 {
	return [4]vec.Vec3{
		{X: coord.X + 1, Y: coord.Y, Z: coord.Z},
		{X: coord.X - 1, Y: coord.Y, Z: coord.Z},
		{X: coord.X, Y: coord.Y, Z: coord.Z + 1},
		{X: coord.X, Y: coord.Y, Z: coord.Z - 1},
	}
}

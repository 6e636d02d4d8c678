package world

import (
	"sync"

	"github.com/voxelcore/worldcore/internal/logging"
	"github.com/voxelcore/worldcore/internal/vec"
	"github.com/voxelcore/worldcore/internal/world/block"
)

// MeshRequestFunc is invoked by the world actor whenever a mini needs
// re-meshing. The bus wiring in bus.go supplies the real implementation;
// tests can supply a recording stub.
type MeshRequestFunc func(mini vec.Vec3)

// ChunkRequestFunc is invoked by the world actor whenever a chunk
// coordinate needs generating.
type ChunkRequestFunc func(coord vec.Vec2)

// World is the sole mutator of the resident chunk set and of block
// contents. It is meant to run inside a single goroutine (the "world
// actor"); every method below assumes no concurrent caller mutates it,
// though GetType/GetMetadata are safe to call from other goroutines because
// the underlying MiniChunk guards its own fields with a mutex.
type World struct {
	mu     sync.RWMutex
	chunks map[vec.Vec2]*Chunk

	seed int64
	tick int64

	liquid *liquidQueue

	onMeshRequest  MeshRequestFunc
	onChunkRequest ChunkRequestFunc

	logger *logging.Logger
}

// NewWorld creates an empty world for the given seed. onMeshRequest and
// onChunkRequest may be nil during tests that only exercise direct state
// mutation.
func NewWorld(seed int64, onChunkRequest ChunkRequestFunc, onMeshRequest MeshRequestFunc) *World {
	return &World{
		chunks:         make(map[vec.Vec2]*Chunk),
		seed:           seed,
		liquid:         newLiquidQueue(),
		onChunkRequest: onChunkRequest,
		onMeshRequest:  onMeshRequest,
		logger:         logging.GetWorldLogger(),
	}
}

// Seed returns the world's generation seed.
func (w *World) Seed() int64 { return w.seed }

// InsertChunk adds a freshly generated chunk to the resident map. Returns
// ErrDuplicateChunk if the coordinate is already resident — the caller
// should drop the response, per §7.
func (w *World) InsertChunk(c *Chunk) error {
	if err := c.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	if _, exists := w.chunks[c.Coord]; exists {
		w.mu.Unlock()
		w.logger.Warn("duplicate chunk response for %v dropped", c.Coord)
		return ErrDuplicateChunk
	}
	w.chunks[c.Coord] = c
	w.mu.Unlock()

	w.requestMeshForChunk(c.Coord)
	for _, n := range neighborChunkCoords(c.Coord) {
		if _, ok := w.ChunkAt(n); ok {
			w.requestMeshForChunk(n)
		}
	}
	return nil
}

// ChunkAt returns the resident chunk at coord, if any.
func (w *World) ChunkAt(coord vec.Vec2) (*Chunk, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.chunks[coord]
	return c, ok
}

// ResidentCount returns the number of chunks currently in the world map.
func (w *World) ResidentCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

func neighborChunkCoords(c vec.Vec2) [4]vec.Vec2 {
	return [4]vec.Vec2{
		{X: c.X + 1, Z: c.Z},
		{X: c.X - 1, Z: c.Z},
		{X: c.X, Z: c.Z + 1},
		{X: c.X, Z: c.Z - 1},
	}
}

// GetType returns Air if the enclosing chunk is not resident.
func (w *World) GetType(coord vec.Vec3) block.Type {
	t, _ := w.get(coord)
	return t
}

// GetMetadata returns 0 if the enclosing chunk is not resident.
func (w *World) GetMetadata(coord vec.Vec3) block.Metadata {
	_, m := w.get(coord)
	return m
}

func (w *World) get(coord vec.Vec3) (block.Type, block.Metadata) {
	c, ok := w.ChunkAt(ChunkCoord(coord))
	if !ok {
		return block.Air, 0
	}
	return c.BlockAt(coord)
}

// SetType is a no-op with a warning if the chunk is not resident.
func (w *World) SetType(coord vec.Vec3, t block.Type) {
	c, ok := w.ChunkAt(ChunkCoord(coord))
	if !ok {
		w.logger.Warn("set_type on non-resident chunk at %v dropped", coord)
		return
	}
	_, md := c.BlockAt(coord)
	c.SetBlockAt(coord, t, md)
}

// SetMetadata is a no-op with a warning if the chunk is not resident.
func (w *World) SetMetadata(coord vec.Vec3, m block.Metadata) {
	c, ok := w.ChunkAt(ChunkCoord(coord))
	if !ok {
		w.logger.Warn("set_metadata on non-resident chunk at %v dropped", coord)
		return
	}
	t, _ := c.BlockAt(coord)
	c.SetBlockAt(coord, t, m)
}

// AddBlock writes t at coord, with metadata 0, and triggers the update
// cascade (mesh re-request + liquid scheduling).
func (w *World) AddBlock(coord vec.Vec3, t block.Type) {
	c, ok := w.ChunkAt(ChunkCoord(coord))
	if !ok {
		w.logger.Warn("add_block on non-resident chunk at %v dropped", coord)
		return
	}
	c.SetBlockAt(coord, t, 0)
	w.onMiniUpdate(coord)
}

// DestroyBlock sets coord to Air and triggers the update cascade.
func (w *World) DestroyBlock(coord vec.Vec3) {
	c, ok := w.ChunkAt(ChunkCoord(coord))
	if !ok {
		w.logger.Warn("destroy_block on non-resident chunk at %v dropped", coord)
		return
	}
	c.SetBlockAt(coord, block.Air, 0)
	w.onMiniUpdate(coord)
}

// onMiniUpdate enqueues mesh-gen for the owning mini and every
// boundary-adjacent mini, then schedules water propagation for coord and
// its horizontal and downward neighbors. These mesh requests go on the
// same FIFO queue as every other mesh request; there is no priority lane.
func (w *World) onMiniUpdate(coord vec.Vec3) {
	owner := miniCoordOf(coord)
	touched := w.GetMinisTouchingBlock(coord)

	w.requestMesh(owner)
	for _, m := range touched {
		if m != owner {
			w.requestMesh(m)
		}
	}

	w.scheduleLiquidFor(coord)
}

func (w *World) scheduleLiquidFor(coord vec.Vec3) {
	targetTick := w.tick + PropagationDelay
	w.liquid.schedule(targetTick, coord)
	for _, n := range horizontalAndDownNeighbors(coord) {
		w.liquid.schedule(targetTick, n)
	}
}

func horizontalAndDownNeighbors(coord vec.Vec3) [5]vec.Vec3 {
	return [5]vec.Vec3{
		{X: coord.X + 1, Y: coord.Y, Z: coord.Z},
		{X: coord.X - 1, Y: coord.Y, Z: coord.Z},
		{X: coord.X, Y: coord.Y, Z: coord.Z + 1},
		{X: coord.X, Y: coord.Y, Z: coord.Z - 1},
		{X: coord.X, Y: coord.Y - 1, Z: coord.Z},
	}
}

func miniCoordOf(coord vec.Vec3) vec.Vec3 {
	cc := ChunkCoord(coord)
	return vec.Vec3{X: cc.X * ChunkSize, Y: MiniY(coord.Y), Z: cc.Z * ChunkSize}
}

// GetMinisTouchingBlock returns the owning mini plus up to three
// neighboring minis if the block sits on a mini boundary (x==0 or 15, y==0
// or 15 and not a world edge, z==0 or 15).
func (w *World) GetMinisTouchingBlock(coord vec.Vec3) []vec.Vec3 {
	local := LocalCoord(coord)
	owner := miniCoordOf(coord)
	result := []vec.Vec3{owner}

	if local.X == 0 {
		result = append(result, vec.Vec3{X: owner.X - ChunkSize, Y: owner.Y, Z: owner.Z})
	} else if local.X == ChunkSize-1 {
		result = append(result, vec.Vec3{X: owner.X + ChunkSize, Y: owner.Y, Z: owner.Z})
	}

	if local.Y == 0 && coord.Y > 0 {
		result = append(result, vec.Vec3{X: owner.X, Y: owner.Y - MiniSize, Z: owner.Z})
	} else if local.Y == MiniSize-1 && coord.Y < WorldHeight-1 {
		result = append(result, vec.Vec3{X: owner.X, Y: owner.Y + MiniSize, Z: owner.Z})
	}

	if local.Z == 0 {
		result = append(result, vec.Vec3{X: owner.X, Y: owner.Y, Z: owner.Z - ChunkSize})
	} else if local.Z == ChunkSize-1 {
		result = append(result, vec.Vec3{X: owner.X, Y: owner.Y, Z: owner.Z + ChunkSize})
	}

	return result
}

func (w *World) requestMesh(mini vec.Vec3) {
	if w.onMeshRequest != nil {
		w.onMeshRequest(mini)
	}
}

func (w *World) requestMeshForChunk(coord vec.Vec2) {
	for i := 0; i < MinisPerChunk; i++ {
		w.requestMesh(vec.Vec3{X: coord.X * ChunkSize, Y: i * MiniSize, Z: coord.Z * ChunkSize})
	}
}

// GenNearby computes the filled disk of chunk coordinates within Chebyshev
// radius of observerXZ and emits a chunk-gen request for every
// not-yet-resident coordinate in it.
func (w *World) GenNearby(observerXZ vec.Vec2, radius int) {
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			coord := vec.Vec2{X: observerXZ.X + dx, Z: observerXZ.Z + dz}
			if coord.ChebyshevDistance(observerXZ) > radius {
				continue
			}
			if _, ok := w.ChunkAt(coord); ok {
				continue
			}
			if w.onChunkRequest != nil {
				w.onChunkRequest(coord)
			}
		}
	}
}

// UpdateTick is monotone: advancing to the same or an earlier tick than
// already recorded is a no-op. It drains every water-propagation item
// scheduled at or before newTick.
func (w *World) UpdateTick(newTick int64) {
	if newTick <= w.tick {
		return
	}
	w.tick = newTick

	for {
		t, ok := w.liquid.peekTick()
		if !ok || t > w.tick {
			return
		}
		item := w.liquid.pop()
		w.propagateWater(item.coord)
	}
}

// Tick returns the current internal tick counter.
func (w *World) Tick() int64 { return w.tick }

// LiquidQueueDepth returns the number of entries still pending in the
// water-propagation heap.
func (w *World) LiquidQueueDepth() int { return w.liquid.Len() }

package world

import (
	"sync"

	"github.com/voxelcore/worldcore/internal/vec"
	"github.com/voxelcore/worldcore/internal/world/block"
)

// MiniChunk owns a 16x16x16 cube of blocks: the unit the mesh extractor
// consumes and the unit the render thread swaps buffers for.
type MiniChunk struct {
	mu sync.RWMutex

	// Coord is the mini-chunk's origin (cx*16, my, cz*16) in world-block
	// coordinates, where my is a multiple of MiniSize.
	Coord vec.Vec3

	blocks   [MiniSize * MiniSize * MiniSize]block.Type
	metadata [MiniSize * MiniSize * MiniSize]block.Metadata

	dirty bool
}

// NewMiniChunk allocates an all-Air mini-chunk at coord.
func NewMiniChunk(coord vec.Vec3) *MiniChunk {
	return &MiniChunk{Coord: coord, dirty: true}
}

func miniIndex(local vec.Vec3) int {
	return local.Y*MiniSize*MiniSize + local.Z*MiniSize + local.X
}

// BlockAt returns the type and metadata at a block-local coordinate
// (0..15 on every axis).
func (m *MiniChunk) BlockAt(local vec.Vec3) (block.Type, block.Metadata) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := miniIndex(local)
	return m.blocks[i], m.metadata[i]
}

// SetBlockAt writes the type and metadata at a block-local coordinate and
// marks the mini dirty for re-meshing.
func (m *MiniChunk) SetBlockAt(local vec.Vec3, t block.Type, md block.Metadata) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := miniIndex(local)
	m.blocks[i] = t
	m.metadata[i] = md
	m.dirty = true
}

// MarkClean clears the dirty flag once a mesh has been produced for the
// mini's current contents.
func (m *MiniChunk) MarkClean() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirty = false
}

// Dirty reports whether the mini's contents changed since the last mesh.
func (m *MiniChunk) Dirty() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dirty
}

// Snapshot copies out the full block/metadata arrays for handing an
// immutable read view to a mesh-gen worker.
func (m *MiniChunk) Snapshot() MiniSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var snap MiniSnapshot
	snap.Coord = m.Coord
	snap.Blocks = m.blocks
	snap.Metadata = m.metadata
	return snap
}

// MiniSnapshot is an immutable, pass-by-value copy of a mini-chunk's
// contents. Mesh-gen workers only ever see snapshots, never the live
// *MiniChunk, so they cannot observe a write in progress.
type MiniSnapshot struct {
	Coord    vec.Vec3
	Blocks   [MiniSize * MiniSize * MiniSize]block.Type
	Metadata [MiniSize * MiniSize * MiniSize]block.Metadata
}

// BlockAt returns the type and metadata at a block-local coordinate within
// the snapshot.
func (s MiniSnapshot) BlockAt(local vec.Vec3) (block.Type, block.Metadata) {
	if local.X < 0 || local.X >= MiniSize || local.Y < 0 || local.Y >= MiniSize || local.Z < 0 || local.Z >= MiniSize {
		return block.Air, 0
	}
	i := miniIndex(local)
	return s.Blocks[i], s.Metadata[i]
}

package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voxelcore/worldcore/internal/vec"
	"github.com/voxelcore/worldcore/internal/world/block"
)

func emptySnapshot() MiniSnapshot {
	return MiniSnapshot{Coord: vec.Vec3{}}
}

func TestExtractMeshLoneBlockEmitsSixQuads(t *testing.T) {
	self := emptySnapshot()
	self.Blocks[miniIndex(vec.Vec3{X: 5, Y: 5, Z: 5})] = block.Stone

	result := ExtractMesh(self, NeighborMinis{})

	assert.Len(t, result.Opaque, 6)
	assert.Empty(t, result.Water)

	seen := map[FaceDir]bool{}
	for _, q := range result.Opaque {
		seen[q.Face] = true
	}
	for _, f := range []FaceDir{FacePosX, FaceNegX, FacePosY, FaceNegY, FacePosZ, FaceNegZ} {
		assert.True(t, seen[f], "face %v must be present for an isolated block", f)
	}
}

// TestExtractMeshPositiveSweepOffsetsPlaneByOne checks the plane-offset
// convention: for a block at local y, the +y sweep must place its quad's
// plane at y+1, the -y sweep at y.
func TestExtractMeshPositiveSweepOffsetsPlaneByOne(t *testing.T) {
	self := emptySnapshot()
	self.Blocks[miniIndex(vec.Vec3{X: 5, Y: 5, Z: 5})] = block.Stone

	result := ExtractMesh(self, NeighborMinis{})

	var posY, negY *Quad
	for i := range result.Opaque {
		q := &result.Opaque[i]
		switch q.Face {
		case FacePosY:
			posY = q
		case FaceNegY:
			negY = q
		}
	}

	assert.NotNil(t, posY)
	assert.NotNil(t, negY)
	assert.Equal(t, 6, posY.Corner1.Y)
	assert.Equal(t, 6, posY.Corner2.Y)
	assert.Equal(t, 5, negY.Corner1.Y)
	assert.Equal(t, 5, negY.Corner2.Y)
}

// TestExtractMeshCornersHaveExactlyOneZeroComponent checks the corner
// ordering invariant for every quad on both a positive- and a
// negative-facing sweep: Corner2-Corner1 must have exactly one zero
// component (the plane axis) and the other two strictly positive,
// regardless of sweep sign. A full corner-label swap on negative sweeps
// would otherwise flip two components negative instead of zero.
func TestExtractMeshCornersHaveExactlyOneZeroComponent(t *testing.T) {
	self := emptySnapshot()
	self.Blocks[miniIndex(vec.Vec3{X: 5, Y: 5, Z: 5})] = block.Stone

	result := ExtractMesh(self, NeighborMinis{})

	for _, q := range result.Opaque {
		d := q.Corner2.Sub(q.Corner1)
		zeros, positives := 0, 0
		for _, c := range []int{d.X, d.Y, d.Z} {
			switch {
			case c == 0:
				zeros++
			case c > 0:
				positives++
			}
		}
		assert.Equal(t, 1, zeros, "face %v: Corner2-Corner1 must have exactly one zero component, got %+v", q.Face, d)
		assert.Equal(t, 2, positives, "face %v: the other two components must be positive, got %+v", q.Face, d)
	}

	var negX, negY, negZ *Quad
	for i := range result.Opaque {
		q := &result.Opaque[i]
		switch q.Face {
		case FaceNegX:
			negX = q
		case FaceNegY:
			negY = q
		case FaceNegZ:
			negZ = q
		}
	}

	assert.NotNil(t, negX)
	assert.NotNil(t, negY)
	assert.NotNil(t, negZ)
	assert.Greater(t, negX.Corner2.Y, negX.Corner1.Y)
	assert.Greater(t, negX.Corner2.Z, negX.Corner1.Z)
	assert.Greater(t, negY.Corner2.X, negY.Corner1.X)
	assert.Greater(t, negY.Corner2.Z, negY.Corner1.Z)
	assert.Greater(t, negZ.Corner2.X, negZ.Corner1.X)
	assert.Greater(t, negZ.Corner2.Y, negZ.Corner1.Y)
}

func TestGreedyRectanglesMergesAdjacentHomogeneousCells(t *testing.T) {
	self := emptySnapshot()
	self.Blocks[miniIndex(vec.Vec3{X: 5, Y: 5, Z: 5})] = block.Stone
	self.Blocks[miniIndex(vec.Vec3{X: 5, Y: 5, Z: 6})] = block.Stone

	result := ExtractMesh(self, NeighborMinis{})

	// Two adjacent same-type blocks merge into six faces total: the shared
	// internal boundary is occluded on both sides, and each remaining outer
	// face pair merges into a single quad per sweep.
	assert.Len(t, result.Opaque, 6)
}

func TestExtractMeshOcclusionSuppressesSharedInternalFace(t *testing.T) {
	self := emptySnapshot()
	self.Blocks[miniIndex(vec.Vec3{X: 5, Y: 5, Z: 5})] = block.Stone
	self.Blocks[miniIndex(vec.Vec3{X: 5, Y: 5, Z: 6})] = block.Stone

	result := ExtractMesh(self, NeighborMinis{})

	for _, q := range result.Opaque {
		if q.Face != FacePosZ && q.Face != FaceNegZ {
			continue
		}
		assert.NotEqual(t, 6, q.Corner1.Z, "the internal boundary between the two blocks must not emit a quad")
		assert.NotEqual(t, 6, q.Corner2.Z)
	}
}

func TestExtractMeshWaterSourceOccludedOnlyByAir(t *testing.T) {
	self := emptySnapshot()
	waterIdx := miniIndex(vec.Vec3{X: 3, Y: 3, Z: 3})
	self.Blocks[waterIdx] = block.StillWater

	aboveIdx := miniIndex(vec.Vec3{X: 3, Y: 4, Z: 3})
	self.Blocks[aboveIdx] = block.StillWater

	result := ExtractMesh(self, NeighborMinis{})

	for _, q := range result.Water {
		if q.Corner1.Y == 4 && q.Corner2.Y == 4 {
			t.Fatalf("the shared boundary between two stacked water blocks must not emit a quad: %+v", q)
		}
	}
}

func TestExtractMeshReadsAcrossMiniBoundary(t *testing.T) {
	self := emptySnapshot()
	self.Blocks[miniIndex(vec.Vec3{X: 15, Y: 5, Z: 5})] = block.Stone

	posXNeighbor := emptySnapshot()
	posXNeighbor.Blocks[miniIndex(vec.Vec3{X: 0, Y: 5, Z: 5})] = block.Stone

	result := ExtractMesh(self, NeighborMinis{PosX: &posXNeighbor})

	for _, q := range result.Opaque {
		assert.NotEqual(t, FacePosX, q.Face, "a block touching an occupied neighbor mini must not expose its boundary face")
	}
}

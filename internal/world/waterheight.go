package world

import (
	"github.com/voxelcore/worldcore/internal/vec"
	"github.com/voxelcore/worldcore/internal/world/block"
)

// CornerWaterHeight computes the per-corner vertex height the water
// renderer uses for shading, per §4.3: the arithmetic mean of a height
// factor over the four cells (x+dx, y, z+dz) with dx, dz in {0, -1}. Air
// contributes 0, StillWater contributes 8, FlowingWater contributes its
// level, solids contribute 7.
func CornerWaterHeight(self MiniSnapshot, neighbors NeighborMinis, corner vec.Vec3) float64 {
	s := sampler{self: self, nb: neighbors}

	var sum float64
	for _, dx := range [2]int{0, -1} {
		for _, dz := range [2]int{0, -1} {
			cell := vec.Vec3{X: corner.X + dx, Y: corner.Y, Z: corner.Z + dz}
			t, md := s.blockAt(cell)
			sum += heightFactor(t, md)
		}
	}
	return sum / 4.0
}

func heightFactor(t block.Type, md block.Metadata) float64 {
	switch {
	case t == block.Air:
		return 0
	case t == block.StillWater:
		return 8
	case t == block.FlowingWater:
		return float64(md.Level())
	default:
		return 7
	}
}

package world

import (
	"github.com/voxelcore/worldcore/internal/vec"
	"github.com/voxelcore/worldcore/internal/world/block"
)

// FaceDir names one of the six axis-aligned face directions a quad can
// face.
type FaceDir int

const (
	FacePosX FaceDir = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// faceLighting is a flat per-face shading constant. The engine does not
// propagate light (that is an explicit non-goal); each face direction gets
// a fixed brightness, the way flat ambient shading works in the absence of
// a lighting pass.
var faceLighting = map[FaceDir]uint8{
	FacePosY: 15,
	FaceNegY: 5,
	FacePosX: 10,
	FaceNegX: 10,
	FacePosZ: 8,
	FaceNegZ: 8,
}

// Quad is one flat axis-aligned rectangle on a block face. Corner1 is the
// min-u,min-v corner and Corner2 the max-u,max-v corner of the rectangle on
// its plane, so Corner2-Corner1 always has exactly one zero component (the
// plane axis) and the other two components positive, regardless of which
// face the quad is on.
type Quad struct {
	Block    block.Type
	Corner1  vec.Vec3
	Corner2  vec.Vec3
	Face     FaceDir
	Lighting uint8
	Level    int // liquid level, meaningful only for water quads
}

// MeshResult is the output of extracting one mini: two independent quad
// lists so the caller can render water after opaque geometry with blending.
type MeshResult struct {
	Opaque []Quad
	Water  []Quad
}

// NeighborMinis carries read-only snapshots of a mini's six face
// neighbors. A nil entry means that neighbor is absent and is treated as
// entirely Air.
type NeighborMinis struct {
	PosX, NegX *MiniSnapshot
	PosY, NegY *MiniSnapshot
	PosZ, NegZ *MiniSnapshot
}

type sampler struct {
	self MiniSnapshot
	nb   NeighborMinis
}

// blockAt resolves a local coordinate that may overflow the mini's 0..15
// range by exactly one cell on at most one axis, reaching into the
// appropriate face neighbor. Overflow on two axes at once (a diagonal,
// never produced by the sweep itself) resolves to Air since no edge
// neighbor is available.
func (s sampler) blockAt(local vec.Vec3) (block.Type, block.Metadata) {
	overflowed := 0
	if local.X < 0 || local.X > MiniSize-1 {
		overflowed++
	}
	if local.Y < 0 || local.Y > MiniSize-1 {
		overflowed++
	}
	if local.Z < 0 || local.Z > MiniSize-1 {
		overflowed++
	}
	if overflowed > 1 {
		return block.Air, 0
	}

	if local.X < 0 {
		if s.nb.NegX == nil {
			return block.Air, 0
		}
		return s.nb.NegX.BlockAt(vec.Vec3{X: MiniSize + local.X, Y: local.Y, Z: local.Z})
	}
	if local.X > MiniSize-1 {
		if s.nb.PosX == nil {
			return block.Air, 0
		}
		return s.nb.PosX.BlockAt(vec.Vec3{X: local.X - MiniSize, Y: local.Y, Z: local.Z})
	}
	if local.Y < 0 {
		if s.nb.NegY == nil {
			return block.Air, 0
		}
		return s.nb.NegY.BlockAt(vec.Vec3{X: local.X, Y: MiniSize + local.Y, Z: local.Z})
	}
	if local.Y > MiniSize-1 {
		if s.nb.PosY == nil {
			return block.Air, 0
		}
		return s.nb.PosY.BlockAt(vec.Vec3{X: local.X, Y: local.Y - MiniSize, Z: local.Z})
	}
	if local.Z < 0 {
		if s.nb.NegZ == nil {
			return block.Air, 0
		}
		return s.nb.NegZ.BlockAt(vec.Vec3{X: local.X, Y: local.Y, Z: MiniSize + local.Z})
	}
	if local.Z > MiniSize-1 {
		if s.nb.PosZ == nil {
			return block.Air, 0
		}
		return s.nb.PosZ.BlockAt(vec.Vec3{X: local.X, Y: local.Y, Z: local.Z - MiniSize})
	}
	return s.self.BlockAt(local)
}

type axis int

const (
	axisX axis = iota
	axisY
	axisZ
)

func localFor(ax axis, layer, u, v int) vec.Vec3 {
	switch ax {
	case axisX:
		return vec.Vec3{X: layer, Y: u, Z: v}
	case axisY:
		return vec.Vec3{X: u, Y: layer, Z: v}
	default:
		return vec.Vec3{X: u, Y: v, Z: layer}
	}
}

func withLayer(c vec.Vec3, ax axis, layer int) vec.Vec3 {
	switch ax {
	case axisX:
		c.X = layer
	case axisY:
		c.Y = layer
	default:
		c.Z = layer
	}
	return c
}

func faceDirFor(ax axis, sign int) FaceDir {
	switch {
	case ax == axisX && sign > 0:
		return FacePosX
	case ax == axisX:
		return FaceNegX
	case ax == axisY && sign > 0:
		return FacePosY
	case ax == axisY:
		return FaceNegY
	case ax == axisZ && sign > 0:
		return FacePosZ
	default:
		return FaceNegZ
	}
}

// isOccludedBy reports whether a face of a source block is hidden given the
// block occupying the adjacent cell along the sweep direction, per §4.3:
// an opaque source is occluded by anything solid (its face shows next to
// Air or water); a water source is occluded by anything non-Air.
func isOccludedBy(source, neighbor block.Type) bool {
	if source.IsWater() {
		return neighbor != block.Air
	}
	return neighbor.IsSolid()
}

type sliceCell struct {
	present bool
	typ     block.Type
	level   int
	light   uint8
}

// ExtractMesh runs the six-sweep greedy mesh extraction for one mini and
// its face neighbors, per §4.3.
func ExtractMesh(self MiniSnapshot, neighbors NeighborMinis) MeshResult {
	s := sampler{self: self, nb: neighbors}
	var result MeshResult

	sweeps := []struct {
		ax   axis
		sign int
	}{
		{axisX, 1}, {axisX, -1},
		{axisY, 1}, {axisY, -1},
		{axisZ, 1}, {axisZ, -1},
	}

	for _, sw := range sweeps {
		extractSweep(s, sw.ax, sw.sign, &result)
	}

	return result
}

func extractSweep(s sampler, ax axis, sign int, result *MeshResult) {
	face := faceDirFor(ax, sign)
	light := faceLighting[face]

	for layer := 0; layer < MiniSize; layer++ {
		var slice [MiniSize][MiniSize]sliceCell

		for u := 0; u < MiniSize; u++ {
			for v := 0; v < MiniSize; v++ {
				local := localFor(ax, layer, u, v)
				srcType, srcMeta := s.blockAt(local)
				if srcType == block.Air {
					continue
				}

				neighborLocal := withLayer(local, ax, layer+sign)
				neighborType, _ := s.blockAt(neighborLocal)

				if isOccludedBy(srcType, neighborType) {
					continue
				}

				slice[u][v] = sliceCell{
					present: true,
					typ:     srcType,
					level:   block.LiquidLevel(srcType, srcMeta),
					light:   light,
				}
			}
		}

		quads2D := greedyRectangles(slice)
		planeCoord := layer
		if sign > 0 {
			planeCoord = layer + 1
		}

		for _, q := range quads2D {
			corner1 := localFor(ax, planeCoord, q.u0, q.v0)
			corner2 := localFor(ax, planeCoord, q.u1, q.v1)

			quad := Quad{
				Block:    q.typ,
				Corner1:  corner1,
				Corner2:  corner2,
				Face:     face,
				Lighting: q.light,
				Level:    q.level,
			}

			if q.typ.IsWater() {
				result.Water = append(result.Water, quad)
			} else {
				result.Opaque = append(result.Opaque, quad)
			}
		}
	}
}

type rect2D struct {
	u0, v0, u1, v1 int
	typ            block.Type
	level          int
	light          uint8
}

// greedyRectangles runs the §4.3 step-2 algorithm: scan in row-major order,
// growing each unmerged cell into the maximal same-type (same-level for
// water), unmerged rectangle.
func greedyRectangles(slice [MiniSize][MiniSize]sliceCell) []rect2D {
	var merged [MiniSize][MiniSize]bool
	var out []rect2D

	homogeneous := func(a, b sliceCell) bool {
		if a.typ != b.typ || a.light != b.light {
			return false
		}
		if a.typ.IsWater() && a.level != b.level {
			return false
		}
		return true
	}

	for u := 0; u < MiniSize; u++ {
		for v := 0; v < MiniSize; v++ {
			start := slice[u][v]
			if !start.present || merged[u][v] {
				continue
			}

			w := 1
			for u+w < MiniSize {
				cand := slice[u+w][v]
				if !cand.present || merged[u+w][v] || !homogeneous(start, cand) {
					break
				}
				w++
			}

			h := 1
		rows:
			for v+h < MiniSize {
				for du := 0; du < w; du++ {
					cand := slice[u+du][v+h]
					if !cand.present || merged[u+du][v+h] || !homogeneous(start, cand) {
						break rows
					}
				}
				h++
			}

			for du := 0; du < w; du++ {
				for dv := 0; dv < h; dv++ {
					merged[u+du][v+dv] = true
				}
			}

			out = append(out, rect2D{
				u0: u, v0: v, u1: u + w, v1: v + h,
				typ: start.typ, level: start.level, light: start.light,
			})
		}
	}

	return out
}

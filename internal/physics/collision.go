package physics

import (
	"math"
	"sort"

	"github.com/voxelcore/worldcore/internal/vec"
)

// SolidAt reports whether the block at coord is solid. The physics package
// depends only on this narrow seam, never on the world package directly.
type SolidAt func(coord vec.Vec3) bool

// AABB is an axis-aligned box centered on a horizontal point with a
// half-width in x/z and a height measured upward from its base.
type AABB struct {
	Radius float64
	Height float64
}

// Resolution is the outcome of PreventCollisions: the delta actually safe to
// apply, plus which axes were zeroed by the projection search (so the
// caller can also zero velocity on those axes and snap to the wall).
type Resolution struct {
	Delta   vec.Vec3Float
	ZeroedX bool
	ZeroedY bool
	ZeroedZ bool
}

// PreventCollisions implements the largest-magnitude-first projection
// search: it returns the biggest subvector of delta that lands position
// outside every solid block, trying the full vector, then each single-axis
// zeroing (smallest |delta[i]| first), then each two-axis zeroing, and
// finally the zero vector.
func PreventCollisions(position vec.Vec3Float, delta vec.Vec3Float, box AABB, isSolid SolidAt) Resolution {
	if !intersectsSolid(position, delta, box, isSolid) {
		return Resolution{Delta: delta}
	}

	type axis struct {
		index int
		mag   float64
	}
	axes := []axis{
		{0, math.Abs(delta.X)},
		{1, math.Abs(delta.Y)},
		{2, math.Abs(delta.Z)},
	}
	sort.Slice(axes, func(i, j int) bool { return axes[i].mag < axes[j].mag })

	for _, a := range axes {
		candidate := zeroAxis(delta, a.index)
		if !intersectsSolid(position, candidate, box, isSolid) {
			return resolutionFor(candidate, a.index)
		}
	}

	pairs := [][2]int{{0, 1}, {0, 2}, {1, 2}}
	type pairMag struct {
		pair [2]int
		mag  float64
	}
	pairMags := make([]pairMag, 0, len(pairs))
	for _, p := range pairs {
		d0, d1 := componentAt(delta, p[0]), componentAt(delta, p[1])
		pairMags = append(pairMags, pairMag{p, math.Hypot(d0, d1)})
	}
	sort.Slice(pairMags, func(i, j int) bool { return pairMags[i].mag < pairMags[j].mag })

	for _, pm := range pairMags {
		candidate := zeroAxis(zeroAxis(delta, pm.pair[0]), pm.pair[1])
		if !intersectsSolid(position, candidate, box, isSolid) {
			return resolutionForPair(candidate, pm.pair)
		}
	}

	return Resolution{Delta: vec.Vec3Float{}, ZeroedX: true, ZeroedY: true, ZeroedZ: true}
}

func componentAt(v vec.Vec3Float, i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func zeroAxis(v vec.Vec3Float, i int) vec.Vec3Float {
	switch i {
	case 0:
		v.X = 0
	case 1:
		v.Y = 0
	case 2:
		v.Z = 0
	}
	return v
}

func resolutionFor(d vec.Vec3Float, zeroed int) Resolution {
	r := Resolution{Delta: d}
	switch zeroed {
	case 0:
		r.ZeroedX = true
	case 1:
		r.ZeroedY = true
	case 2:
		r.ZeroedZ = true
	}
	return r
}

func resolutionForPair(d vec.Vec3Float, zeroed [2]int) Resolution {
	r := Resolution{Delta: d}
	for _, i := range zeroed {
		switch i {
		case 0:
			r.ZeroedX = true
		case 1:
			r.ZeroedY = true
		case 2:
			r.ZeroedZ = true
		}
	}
	return r
}

// intersectsSolid reports whether the player's AABB at position+delta
// overlaps any solid integer block cell.
func intersectsSolid(position, delta vec.Vec3Float, box AABB, isSolid SolidAt) bool {
	p := position.Add(delta)

	minX := math.Floor(p.X - box.Radius)
	maxX := math.Floor(p.X + box.Radius)
	minY := math.Floor(p.Y)
	maxY := math.Floor(p.Y + box.Height)
	minZ := math.Floor(p.Z - box.Radius)
	maxZ := math.Floor(p.Z + box.Radius)

	for x := int(minX); x <= int(maxX); x++ {
		for y := int(minY); y <= int(maxY); y++ {
			for z := int(minZ); z <= int(maxZ); z++ {
				if isSolid(vec.Vec3{X: x, Y: y, Z: z}) {
					return true
				}
			}
		}
	}
	return false
}

// SnapToWall computes the position adjustment that places the AABB exactly
// against the wall it was about to penetrate along the given axis, in the
// direction of original motion. axis is 0=x, 1=y, 2=z.
func SnapToWall(position vec.Vec3Float, originalDelta float64, axis int, box AABB, isSolid SolidAt) float64 {
	if originalDelta == 0 {
		return componentAt(position, axis)
	}
	step := 0.01
	if originalDelta < 0 {
		step = -step
	}
	safe := componentAt(position, axis)
	probe := safe
	for i := 0; i < 200; i++ {
		next := probe + step
		moved := position
		moved = setComponent(moved, axis, next)
		delta := vec.Vec3Float{}
		if intersectsSolid(moved, delta, box, isSolid) {
			break
		}
		probe = next
		safe = probe
	}
	return safe
}

func setComponent(v vec.Vec3Float, axis int, value float64) vec.Vec3Float {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	case 2:
		v.Z = value
	}
	return v
}

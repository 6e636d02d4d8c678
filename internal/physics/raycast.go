package physics

import (
	"math"

	"github.com/voxelcore/worldcore/internal/vec"
)

// Face identifies which side of a block cell a ray entered through.
type Face int

const (
	FaceNone Face = iota
	FacePosX
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// Predicate reports whether the given block coordinate satisfies a raycast
// target condition (typically "is solid").
type Predicate func(coord vec.Vec3) bool

// Raycast steps a ray from origin along dir (need not be normalized) using
// Amanatides-Woo DDA, visiting integer block cells in order of distance,
// and returns the first cell for which pred holds along with the face the
// ray entered it through. ok is false if no such cell is found within
// maxDist.
func Raycast(origin, dir vec.Vec3Float, maxDist float64, pred Predicate) (coord vec.Vec3, face Face, ok bool) {
	length := math.Sqrt(dir.X*dir.X + dir.Y*dir.Y + dir.Z*dir.Z)
	if length == 0 {
		return vec.Vec3{}, FaceNone, false
	}
	dirX, dirY, dirZ := dir.X/length, dir.Y/length, dir.Z/length

	x := int(math.Floor(origin.X))
	y := int(math.Floor(origin.Y))
	z := int(math.Floor(origin.Z))

	stepX := sign(dirX)
	stepY := sign(dirY)
	stepZ := sign(dirZ)

	tDeltaX := tDelta(dirX)
	tDeltaY := tDelta(dirY)
	tDeltaZ := tDelta(dirZ)

	tMaxX := tMaxInit(origin.X, dirX, stepX)
	tMaxY := tMaxInit(origin.Y, dirY, stepY)
	tMaxZ := tMaxInit(origin.Z, dirZ, stepZ)

	traveled := 0.0
	entered := FaceNone

	for traveled <= maxDist {
		c := vec.Vec3{X: x, Y: y, Z: z}
		if pred(c) {
			return c, entered, true
		}

		switch {
		case tMaxX < tMaxY && tMaxX < tMaxZ:
			traveled = tMaxX
			x += stepX
			tMaxX += tDeltaX
			if stepX > 0 {
				entered = FaceNegX
			} else {
				entered = FacePosX
			}
		case tMaxY < tMaxZ:
			traveled = tMaxY
			y += stepY
			tMaxY += tDeltaY
			if stepY > 0 {
				entered = FaceNegY
			} else {
				entered = FacePosY
			}
		default:
			traveled = tMaxZ
			z += stepZ
			tMaxZ += tDeltaZ
			if stepZ > 0 {
				entered = FaceNegZ
			} else {
				entered = FacePosZ
			}
		}
	}

	return vec.Vec3{}, FaceNone, false
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func tDelta(d float64) float64 {
	if d == 0 {
		return math.Inf(1)
	}
	return math.Abs(1.0 / d)
}

func tMaxInit(origin, d float64, step int) float64 {
	if d == 0 {
		return math.Inf(1)
	}
	if step > 0 {
		next := math.Floor(origin) + 1
		return (next - origin) / d
	}
	next := math.Floor(origin)
	return (next - origin) / d
}

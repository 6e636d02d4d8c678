package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voxelcore/worldcore/internal/vec"
)

func TestRaycastHitsBlockAlongAxis(t *testing.T) {
	origin := vec.Vec3Float{X: 0.5, Y: 0.5, Z: 0.5}
	dir := vec.Vec3Float{X: 1, Y: 0, Z: 0}

	hit := func(c vec.Vec3) bool { return c.X == 5 }

	coord, face, ok := Raycast(origin, dir, 20, hit)
	assert.True(t, ok)
	assert.Equal(t, vec.Vec3{X: 5, Y: 0, Z: 0}, coord)
	assert.Equal(t, FaceNegX, face, "a ray traveling in +x enters the target cell through its -x face")
}

func TestRaycastMissesBeyondMaxDistance(t *testing.T) {
	origin := vec.Vec3Float{X: 0.5, Y: 0.5, Z: 0.5}
	dir := vec.Vec3Float{X: 1, Y: 0, Z: 0}

	hit := func(c vec.Vec3) bool { return c.X == 50 }

	_, _, ok := Raycast(origin, dir, 10, hit)
	assert.False(t, ok)
}

func TestRaycastZeroDirectionNeverHits(t *testing.T) {
	origin := vec.Vec3Float{X: 0.5, Y: 0.5, Z: 0.5}
	_, _, ok := Raycast(origin, vec.Vec3Float{}, 10, func(vec.Vec3) bool { return true })
	assert.False(t, ok)
}

func TestRaycastNegativeDirectionEntersOppositeFace(t *testing.T) {
	origin := vec.Vec3Float{X: 5.5, Y: 0.5, Z: 0.5}
	dir := vec.Vec3Float{X: -1, Y: 0, Z: 0}

	hit := func(c vec.Vec3) bool { return c.X == 0 }

	coord, face, ok := Raycast(origin, dir, 20, hit)
	assert.True(t, ok)
	assert.Equal(t, vec.Vec3{X: 0, Y: 0, Z: 0}, coord)
	assert.Equal(t, FacePosX, face, "a ray traveling in -x enters the target cell through its +x face")
}

func TestRaycastOriginInsideTargetHitsImmediately(t *testing.T) {
	origin := vec.Vec3Float{X: 0.5, Y: 0.5, Z: 0.5}
	dir := vec.Vec3Float{X: 0, Y: 1, Z: 0}

	coord, face, ok := Raycast(origin, dir, 5, func(c vec.Vec3) bool { return c.Equals(vec.Vec3{X: 0, Y: 0, Z: 0}) })
	assert.True(t, ok)
	assert.Equal(t, vec.Vec3{X: 0, Y: 0, Z: 0}, coord)
	assert.Equal(t, FaceNone, face)
}

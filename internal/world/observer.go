package world

import (
	"math"

	"github.com/voxelcore/worldcore/internal/logging"
	"github.com/voxelcore/worldcore/internal/physics"
	"github.com/voxelcore/worldcore/internal/vec"
	"github.com/voxelcore/worldcore/internal/world/block"
)

// ActionFlags are the per-frame movement inputs an input layer reports.
type ActionFlags struct {
	Forward, Back, Left, Right, Jump, Shift bool
}

const (
	observerRadius = 0.3
	observerHeight = 1.8
)

// MovedChunksFunc is invoked whenever an observer's current chunk
// coordinate changes, used to publish EVENT_PLAYER_MOVED_CHUNKS on the bus.
type MovedChunksFunc func(newChunkXZ vec.Vec2)

// Observer tracks a single moving viewpoint into the world: position,
// orientation, the block it's looking at, and the last chunk it was seen
// in (so the world actor can tell when GenNearby needs to run again).
type Observer struct {
	Position vec.Vec3Float
	Velocity vec.Vec3Float
	Yaw      float64
	Pitch    float64

	RenderRadius int
	Actions      ActionFlags

	StaringAt     vec.Vec3
	StaringAtFace physics.Face
	HasTarget     bool

	InWater bool

	lastChunk vec.Vec2
	hasSeen   bool

	onMovedChunks MovedChunksFunc

	logger *logging.Logger
}

// NewObserver creates an observer at position with the given render
// radius (in chunks).
func NewObserver(position vec.Vec3Float, renderRadius int) *Observer {
	return &Observer{
		Position:     position,
		RenderRadius: renderRadius,
		logger:       logging.GetObserverLogger(),
	}
}

// ApplyInput updates action flags and orientation; the actual movement
// integration happens in Move.
func (o *Observer) ApplyInput(flags ActionFlags, dyaw, dpitch float64) {
	o.Actions = flags
	o.Yaw += dyaw
	o.Pitch += dpitch
	if o.Pitch > 89 {
		o.Pitch = 89
	}
	if o.Pitch < -89 {
		o.Pitch = -89
	}
}

// Move advances the observer's position by delta after resolving
// collisions against w, then snaps velocity/position on any axis the
// collision search had to zero.
func (o *Observer) Move(w *World, delta vec.Vec3Float) {
	box := physics.AABB{Radius: observerRadius, Height: observerHeight}
	isSolid := func(c vec.Vec3) bool { return w.GetType(c).IsSolid() }

	res := physics.PreventCollisions(o.Position, delta, box, isSolid)

	if res.ZeroedX {
		o.Velocity.X = 0
		snapped := physics.SnapToWall(o.Position, delta.X, 0, box, isSolid)
		o.Position.X = snapped
	} else {
		o.Position.X += res.Delta.X
	}

	if res.ZeroedY {
		o.Velocity.Y = 0
		snapped := physics.SnapToWall(o.Position, delta.Y, 1, box, isSolid)
		o.Position.Y = snapped
	} else {
		o.Position.Y += res.Delta.Y
	}

	if res.ZeroedZ {
		o.Velocity.Z = 0
		snapped := physics.SnapToWall(o.Position, delta.Z, 2, box, isSolid)
		o.Position.Z = snapped
	} else {
		o.Position.Z += res.Delta.Z
	}

	feet := o.Position.Floor()
	o.InWater = w.GetType(feet).IsWater()

	o.refreshChunk(w)
}

// OnMovedChunks registers the callback refreshChunk invokes whenever the
// observer crosses into a new chunk. Passing nil disables notification.
func (o *Observer) OnMovedChunks(f MovedChunksFunc) {
	o.onMovedChunks = f
}

func (o *Observer) refreshChunk(w *World) {
	current := ChunkCoord(o.Position.Floor())
	if !o.hasSeen || !current.Equals(o.lastChunk) {
		o.lastChunk = current
		o.hasSeen = true
		w.GenNearby(current, o.RenderRadius)
		if o.onMovedChunks != nil {
			o.onMovedChunks(current)
		}
	}
}

// UpdateTarget raycasts from the observer's Position (the base of its
// collision box, not eye height) along its look direction and records the
// first solid block it hits.
func (o *Observer) UpdateTarget(w *World, maxDist float64) {
	dir := lookDirection(o.Yaw, o.Pitch)
	coord, face, ok := physics.Raycast(o.Position, dir, maxDist, func(c vec.Vec3) bool {
		return w.GetType(c).IsSolid() && w.GetType(c) != block.Air
	})
	o.HasTarget = ok
	if ok {
		o.StaringAt = coord
		o.StaringAtFace = face
	}
}

func lookDirection(yawDeg, pitchDeg float64) vec.Vec3Float {
	yaw := yawDeg * degToRad
	pitch := pitchDeg * degToRad
	return vec.Vec3Float{
		X: math.Cos(pitch) * math.Sin(yaw),
		Y: math.Sin(pitch),
		Z: math.Cos(pitch) * math.Cos(yaw),
	}
}

const degToRad = math.Pi / 180.0

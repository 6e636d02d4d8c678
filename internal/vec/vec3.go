package vec

// Vec3 represents an integer 3-vector: a world-block coordinate, or any
// offset derived from one (chunk-local position, mini coordinate).
type Vec3 struct {
	X int
	Y int
	Z int
}

// Vec3Float represents a floating-point 3-vector: observer position,
// velocity, or a raycast direction.
type Vec3Float struct {
	X float64
	Y float64
	Z float64
}

// DistanceSq returns the squared Euclidean distance to other, avoiding a
// sqrt when only relative distance matters.
func (v Vec3) DistanceSq(other Vec3) int {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// Equals reports whether v and other have identical components.
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Add returns the component-wise sum of v and other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub returns the component-wise difference v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Float converts v to a floating-point vector.
func (v Vec3) Float() Vec3Float {
	return Vec3Float{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

func (v Vec3Float) Add(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

func (v Vec3Float) Sub(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

func (v Vec3Float) Mul(scalar float64) Vec3Float {
	return Vec3Float{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar}
}

// Floor truncates each component towards negative infinity, yielding the
// integer block coordinate containing this point.
func (v Vec3Float) Floor() Vec3 {
	return Vec3{X: floorDiv(v.X), Y: floorDiv(v.Y), Z: floorDiv(v.Z)}
}

func floorDiv(f float64) int {
	i := int(f)
	if f < 0 && float64(i) != f {
		i--
	}
	return i
}

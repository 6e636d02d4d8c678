package vec

// Vec2 is a chunk coordinate (cx, cz): the horizontal index used as a key
// into the world map. Unlike Vec3, it carries no height component.
type Vec2 struct {
	X, Z int
}

// Equals reports whether v and other name the same chunk.
func (v Vec2) Equals(other Vec2) bool {
	return v.X == other.X && v.Z == other.Z
}

// ChebyshevDistance returns max(|dx|, |dz|), the radius metric used by
// gen_nearby's filled disk of chunk coordinates.
func (v Vec2) ChebyshevDistance(other Vec2) int {
	dx := abs(v.X - other.X)
	dz := abs(v.Z - other.Z)
	if dx > dz {
		return dx
	}
	return dz
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

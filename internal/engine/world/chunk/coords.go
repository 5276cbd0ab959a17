package chunk

import "github.com/OCharnyshevich/voxel-core/internal/engine/world/block"

// FloorDiv divides rounding towards negative infinity. b must be positive.
func FloorDiv(a, b int) int {
	q := a / b
	if a%b < 0 {
		q--
	}
	return q
}

// Mod returns the non-negative remainder of a / b. b must be positive.
func Mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// Locate splits a world position into the owning chunk position and the local
// position inside that chunk. The local Y is the world Y unchanged.
func Locate(p block.Pos) (Pos, block.Pos) {
	return Pos{X: FloorDiv(p.X, Width), Z: FloorDiv(p.Z, Depth)},
		block.Pos{X: Mod(p.X, Width), Y: p.Y, Z: Mod(p.Z, Depth)}
}

package world

import "github.com/OCharnyshevich/voxel-core/internal/engine/world/chunk"

// Bounds is the half-open rectangle of chunk positions [MinX, MaxX) × [MinZ, MaxZ)
// a world covers.
type Bounds struct {
	MinX, MinZ int
	MaxX, MaxZ int
}

// Radius returns the bounds [-r, r) on both axes, a (2r)×(2r) square of chunks.
func Radius(r int) Bounds {
	return Bounds{MinX: -r, MinZ: -r, MaxX: r, MaxZ: r}
}

// Contains reports whether pos lies inside b.
func (b Bounds) Contains(pos chunk.Pos) bool {
	return pos.X >= b.MinX && pos.X < b.MaxX && pos.Z >= b.MinZ && pos.Z < b.MaxZ
}

// Len returns the number of chunk positions in b.
func (b Bounds) Len() int {
	if b.MaxX <= b.MinX || b.MaxZ <= b.MinZ {
		return 0
	}
	return (b.MaxX - b.MinX) * (b.MaxZ - b.MinZ)
}

// Positions lists every position in b, X outer and Z inner.
func (b Bounds) Positions() []chunk.Pos {
	out := make([]chunk.Pos, 0, b.Len())
	for x := b.MinX; x < b.MaxX; x++ {
		for z := b.MinZ; z < b.MaxZ; z++ {
			out = append(out, chunk.Pos{X: x, Z: z})
		}
	}
	return out
}

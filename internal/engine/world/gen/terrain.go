package gen

import "github.com/OCharnyshevich/voxel-core/internal/engine/world/block"

// HeightFunc returns the ground height of the world column at (x, z). It must
// be deterministic: the same coordinates always yield the same height.
type HeightFunc func(x, z int) int

// MaxHeight is the highest ground height a height function may report.
const MaxHeight = 256

// StoneHeight is the top of the stone band. Below ground, cells at or under
// it are stone, cells above it are dirt.
const StoneHeight = 60

// TerrainParams shape the noise height field.
type TerrainParams struct {
	Scale       float64 // world blocks per noise unit
	Amplitude   float64 // height swing in blocks
	Base        float64 // mean ground height
	Octaves     int
	Persistence float64
}

// DefaultTerrain is a single octave of noise sampled every 20 blocks,
// swinging ±10 blocks around a ground height of 80.
var DefaultTerrain = TerrainParams{
	Scale:       20,
	Amplitude:   10,
	Base:        80,
	Octaves:     1,
	Persistence: 0.5,
}

// Terrain is a noise-backed height field.
type Terrain struct {
	noise  *Simplex
	params TerrainParams
}

// NewTerrain creates a height field seeded with seed.
func NewTerrain(seed int64, params TerrainParams) *Terrain {
	if params.Octaves < 1 {
		params.Octaves = 1
	}
	if params.Scale == 0 {
		params.Scale = DefaultTerrain.Scale
	}
	return &Terrain{noise: NewSimplex(seed), params: params}
}

// Height implements HeightFunc.
func (t *Terrain) Height(x, z int) int {
	p := t.params
	n := t.noise.Octave2D(float64(x)/p.Scale, float64(z)/p.Scale, p.Octaves, p.Persistence)
	h := int(n*p.Amplitude + p.Base)
	return min(max(h, 0), MaxHeight)
}

// Flat returns a height function that reports h everywhere.
func Flat(h int) HeightFunc {
	h = min(max(h, 0), MaxHeight)
	return func(_, _ int) int { return h }
}

// Classify returns the material at height y of a column whose ground height
// is ground: stone up to StoneHeight, dirt above it, one grass layer at
// ground-1, and air from ground upwards.
func Classify(y, ground int) block.Material {
	top := ground - 1
	switch {
	case ground <= 0:
		return block.Air
	case y < top && y <= StoneHeight:
		return block.Stone
	case y < top:
		return block.Dirt
	case y == top:
		return block.Grass
	}
	return block.Air
}

package player

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxel-core/internal/engine/world/block"
)

// Target is the block lookup a ray is cast against. *world.World implements it.
type Target interface {
	Block(p block.Pos) (block.Block, bool)
}

// Ray is a half-line from Origin along Dir.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// NewRay returns a ray with a normalized direction. A zero direction is kept as is.
func NewRay(origin, dir mgl32.Vec3) Ray {
	return Ray{Origin: origin, Dir: normalize(dir)}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

func normalize(v mgl32.Vec3) mgl32.Vec3 {
	if l := v.Len(); l > 0 {
		return v.Mul(1 / l)
	}
	return v
}

// Cell returns the block cell containing point p.
func Cell(p mgl32.Vec3) block.Pos {
	return block.Pos{
		X: int(math.Floor(float64(p.X()))),
		Y: int(math.Floor(float64(p.Y()))),
		Z: int(math.Floor(float64(p.Z()))),
	}
}

// Mode selects how a Caster walks the cells along a ray.
type Mode uint8

const (
	// ModeMarch samples the ray at fixed steps. A step wider than a cell can
	// jump over thin features.
	ModeMarch Mode = iota
	// ModeDDA visits every cell the ray crosses, in order.
	ModeDDA
)

func (m Mode) String() string {
	switch m {
	case ModeMarch:
		return "march"
	case ModeDDA:
		return "dda"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode parses the name of a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "march", "":
		return ModeMarch, nil
	case "dda":
		return ModeDDA, nil
	}
	return 0, fmt.Errorf("unknown ray mode %q", s)
}

// Caster answers which block a ray points at.
type Caster struct {
	// Step is the sampling distance of ModeMarch.
	Step float32
	// MaxDistance bounds how far along the ray cells are considered.
	MaxDistance float32
	Mode        Mode
}

// DefaultCaster marches in steps of 0.05 up to a distance of 8.
var DefaultCaster = Caster{Step: 0.05, MaxDistance: 8, Mode: ModeMarch}

// solid reports whether p resolves to a non-air block. Cells outside the
// target never count as hits.
func solid(t Target, p block.Pos) bool {
	b, ok := t.Block(p)
	return ok && !b.IsAir()
}

// Pick returns the first cell along r holding a non-air block.
func (c Caster) Pick(t Target, r Ray) (block.Pos, bool) {
	var (
		hit   block.Pos
		found bool
	)
	c.walk(r, func(p block.Pos) bool {
		if solid(t, p) {
			hit, found = p, true
			return false
		}
		return true
	})
	return hit, found
}

// PlacementTarget returns the empty cell visited just before the first
// non-air block along r. There is no result when nothing solid is hit or the
// ray starts inside a solid block.
func (c Caster) PlacementTarget(t Target, r Ray) (block.Pos, bool) {
	var (
		last, hit block.Pos
		empty     bool
		found     bool
	)
	c.walk(r, func(p block.Pos) bool {
		if solid(t, p) {
			hit, found = last, empty
			return false
		}
		last, empty = p, true
		return true
	})
	return hit, found
}

// walk calls visit for each cell along r in order until visit returns false
// or the maximum distance is passed.
func (c Caster) walk(r Ray, visit func(block.Pos) bool) {
	r.Dir = normalize(r.Dir)
	if c.Mode == ModeDDA {
		c.traverse(r, visit)
		return
	}
	c.march(r, visit)
}

func (c Caster) march(r Ray, visit func(block.Pos) bool) {
	step := c.Step
	if step <= 0 {
		step = DefaultCaster.Step
	}
	n := int(c.MaxDistance / step)

	var prev block.Pos
	for i := 0; i <= n; i++ {
		p := Cell(r.At(float32(i) * step))
		if i > 0 && p == prev {
			continue
		}
		prev = p
		if !visit(p) {
			return
		}
	}
}

// traverse is the Amanatides-Woo voxel walk.
func (c Caster) traverse(r Ray, visit func(block.Pos) bool) {
	start := Cell(r.Origin)
	if !visit(start) {
		return
	}
	cell := [3]int{start.X, start.Y, start.Z}
	inf := float32(math.Inf(1))

	var (
		step         [3]int
		tMax, tDelta [3]float32
	)
	for a := 0; a < 3; a++ {
		d := r.Dir[a]
		switch {
		case d > 0:
			step[a] = 1
			tMax[a] = (float32(cell[a]+1) - r.Origin[a]) / d
			tDelta[a] = 1 / d
		case d < 0:
			step[a] = -1
			tMax[a] = (r.Origin[a] - float32(cell[a])) / -d
			tDelta[a] = -1 / d
		default:
			tMax[a], tDelta[a] = inf, inf
		}
	}

	for {
		a := 0
		if tMax[1] < tMax[a] {
			a = 1
		}
		if tMax[2] < tMax[a] {
			a = 2
		}
		if tMax[a] > c.MaxDistance {
			return
		}
		cell[a] += step[a]
		tMax[a] += tDelta[a]
		if !visit(block.Pos{X: cell[0], Y: cell[1], Z: cell[2]}) {
			return
		}
	}
}

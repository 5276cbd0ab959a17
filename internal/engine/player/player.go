package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxel-core/internal/engine/world/block"
)

// Editor accepts resolved block edits. *world.Queue implements it.
type Editor interface {
	Break(p block.Pos)
	Place(p block.Pos)
}

// Selection is what a player's view currently points at.
type Selection struct {
	// Pick is the solid block a break would remove.
	Pick    block.Pos
	HasPick bool
	// Place is the empty cell a place would fill.
	Place    block.Pos
	HasPlace bool
}

// Player is a camera in the world that turns its view into block edits.
type Player struct {
	eye    mgl32.Vec3
	dir    mgl32.Vec3
	caster Caster
}

// New returns a player at eye looking along -Z and 20 degrees down.
func New(eye mgl32.Vec3, caster Caster) *Player {
	p := &Player{eye: eye, caster: caster}
	p.Look(-90, -20)
	return p
}

// Eye returns the eye position.
func (p *Player) Eye() mgl32.Vec3 {
	return p.eye
}

// Dir returns the normalized view direction.
func (p *Player) Dir() mgl32.Vec3 {
	return p.dir
}

// SetView moves the eye and points the view along dir.
func (p *Player) SetView(eye, dir mgl32.Vec3) {
	p.eye = eye
	p.dir = normalize(dir)
}

// Look points the view by yaw and pitch in degrees. Yaw 0 looks along +X,
// yaw -90 along -Z, and positive pitch looks up.
func (p *Player) Look(yaw, pitch float32) {
	y := float64(mgl32.DegToRad(yaw))
	x := float64(mgl32.DegToRad(pitch))
	p.dir = normalize(mgl32.Vec3{
		float32(math.Cos(y) * math.Cos(x)),
		float32(math.Sin(x)),
		float32(math.Sin(y) * math.Cos(x)),
	})
}

// Ray returns the view ray.
func (p *Player) Ray() Ray {
	return Ray{Origin: p.eye, Dir: p.dir}
}

// Target resolves what the view points at in t.
func (p *Player) Target(t Target) Selection {
	var s Selection
	r := p.Ray()
	s.Pick, s.HasPick = p.caster.Pick(t, r)
	s.Place, s.HasPlace = p.caster.PlacementTarget(t, r)
	return s
}

// Break sends the picked block to e. It reports whether anything was picked.
func (p *Player) Break(t Target, e Editor) bool {
	pos, ok := p.caster.Pick(t, p.Ray())
	if ok {
		e.Break(pos)
	}
	return ok
}

// Place sends the placement cell to e. It reports whether there was one.
func (p *Player) Place(t Target, e Editor) bool {
	pos, ok := p.caster.PlacementTarget(t, p.Ray())
	if ok {
		e.Place(pos)
	}
	return ok
}

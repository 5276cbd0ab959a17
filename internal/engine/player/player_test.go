package player

import (
	"io"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxel-core/internal/engine/world"
	"github.com/OCharnyshevich/voxel-core/internal/engine/world/block"
	"github.com/OCharnyshevich/voxel-core/internal/engine/world/gen"
)

// grid is a sparse Target: listed cells are solid, every other cell inside
// the box [-32, 32) is air and anything outside is unknown.
type grid map[block.Pos]block.Material

func (g grid) Block(p block.Pos) (block.Block, bool) {
	if p.X < -32 || p.X >= 32 || p.Y < -32 || p.Y >= 32 || p.Z < -32 || p.Z >= 32 {
		return block.Block{}, false
	}
	return block.Block{Material: g[p]}, true
}

type recordEditor struct {
	breaks, places []block.Pos
}

func (e *recordEditor) Break(p block.Pos) { e.breaks = append(e.breaks, p) }
func (e *recordEditor) Place(p block.Pos) { e.places = append(e.places, p) }

var casters = []Caster{
	DefaultCaster,
	{Step: 0.05, MaxDistance: 8, Mode: ModeDDA},
}

func TestPickStraightDown(t *testing.T) {
	g := grid{{X: 2, Y: 0, Z: 3}: block.Stone, {X: 2, Y: 1, Z: 3}: block.Grass}
	r := NewRay(mgl32.Vec3{2.5, 5.5, 3.5}, mgl32.Vec3{0, -1, 0})

	for _, c := range casters {
		if p, ok := c.Pick(g, r); !ok || p != (block.Pos{X: 2, Y: 1, Z: 3}) {
			t.Errorf("%s: Pick() = %v, %v, want (2,1,3)", c.Mode, p, ok)
		}
		if p, ok := c.PlacementTarget(g, r); !ok || p != (block.Pos{X: 2, Y: 2, Z: 3}) {
			t.Errorf("%s: PlacementTarget() = %v, %v, want (2,2,3)", c.Mode, p, ok)
		}
	}
}

func TestMissHasNoResult(t *testing.T) {
	g := grid{{X: 0, Y: 0, Z: 0}: block.Stone}
	r := NewRay(mgl32.Vec3{0.5, 2.5, 0.5}, mgl32.Vec3{1, 0, 0})

	for _, c := range casters {
		if p, ok := c.Pick(g, r); ok {
			t.Errorf("%s: Pick() = %v, want no hit", c.Mode, p)
		}
		if p, ok := c.PlacementTarget(g, r); ok {
			t.Errorf("%s: PlacementTarget() = %v, want no result without a solid hit", c.Mode, p)
		}
	}
}

func TestStartInsideSolid(t *testing.T) {
	g := grid{{X: 1, Y: 1, Z: 1}: block.Dirt}
	r := NewRay(mgl32.Vec3{1.5, 1.5, 1.5}, mgl32.Vec3{0, 0, 1})

	for _, c := range casters {
		if p, ok := c.Pick(g, r); !ok || p != (block.Pos{X: 1, Y: 1, Z: 1}) {
			t.Errorf("%s: Pick() = %v, %v, want the origin cell", c.Mode, p, ok)
		}
		if p, ok := c.PlacementTarget(g, r); ok {
			t.Errorf("%s: PlacementTarget() = %v, want none with no empty cell before the hit", c.Mode, p)
		}
	}
}

func TestNegativeCoordinates(t *testing.T) {
	g := grid{{X: -1, Y: -3, Z: -1}: block.Stone}
	r := NewRay(mgl32.Vec3{-0.5, 1, -0.5}, mgl32.Vec3{0, -1, 0})

	for _, c := range casters {
		if p, ok := c.Pick(g, r); !ok || p != (block.Pos{X: -1, Y: -3, Z: -1}) {
			t.Errorf("%s: Pick() = %v, %v, want (-1,-3,-1)", c.Mode, p, ok)
		}
		if p, ok := c.PlacementTarget(g, r); !ok || p != (block.Pos{X: -1, Y: -2, Z: -1}) {
			t.Errorf("%s: PlacementTarget() = %v, %v, want (-1,-2,-1)", c.Mode, p, ok)
		}
	}
}

func TestMaxDistance(t *testing.T) {
	g := grid{{X: 10, Y: 0, Z: 0}: block.Stone}
	r := NewRay(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0})

	for _, c := range casters {
		if p, ok := c.Pick(g, r); ok {
			t.Errorf("%s: Pick() = %v beyond MaxDistance", c.Mode, p)
		}
		c.MaxDistance = 12
		if _, ok := c.Pick(g, r); !ok {
			t.Errorf("%s: Pick() missed within MaxDistance 12", c.Mode)
		}
	}
}

func TestUnknownCellsAreNotHits(t *testing.T) {
	g := grid{{X: 30, Y: 0, Z: 0}: block.Stone}
	// Starts outside the grid and walks into it.
	r := NewRay(mgl32.Vec3{33.5, 0.5, 0.5}, mgl32.Vec3{-1, 0, 0})
	c := Caster{Step: 0.05, MaxDistance: 8}

	if p, ok := c.Pick(g, r); !ok || p != (block.Pos{X: 30, Y: 0, Z: 0}) {
		t.Errorf("Pick() = %v, %v, want (30,0,0)", p, ok)
	}
	if p, ok := c.PlacementTarget(g, r); !ok || p != (block.Pos{X: 31, Y: 0, Z: 0}) {
		t.Errorf("PlacementTarget() = %v, %v, want (31,0,0)", p, ok)
	}
}

func TestDDAVisitsCellsMarchSkips(t *testing.T) {
	g := grid{{X: 3, Y: 0, Z: 0}: block.Stone}
	r := NewRay(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0})

	coarse := Caster{Step: 2, MaxDistance: 8, Mode: ModeMarch}
	if p, ok := coarse.Pick(g, r); ok {
		t.Errorf("coarse march Pick() = %v, expected it to step over x=3", p)
	}

	dda := Caster{Step: 2, MaxDistance: 8, Mode: ModeDDA}
	if p, ok := dda.Pick(g, r); !ok || p != (block.Pos{X: 3, Y: 0, Z: 0}) {
		t.Errorf("DDA Pick() = %v, %v, want (3,0,0)", p, ok)
	}
	if p, ok := dda.PlacementTarget(g, r); !ok || p != (block.Pos{X: 2, Y: 0, Z: 0}) {
		t.Errorf("DDA PlacementTarget() = %v, %v, want (2,0,0)", p, ok)
	}
}

func TestDDADiagonalStepsOneFaceAtATime(t *testing.T) {
	g := grid{{X: 4, Y: 3, Z: 0}: block.Stone}
	r := NewRay(mgl32.Vec3{0.5, 0.2, 0.5}, mgl32.Vec3{1, 0.8, 0})
	c := Caster{MaxDistance: 8, Mode: ModeDDA}

	var prev block.Pos
	first := true
	c.walk(r, func(p block.Pos) bool {
		if !first {
			d := p.X - prev.X + p.Y - prev.Y + p.Z - prev.Z
			if d != 1 && d != -1 {
				t.Errorf("DDA moved from %v to %v, want a face-adjacent step", prev, p)
			}
		}
		first, prev = false, p
		return !(p == block.Pos{X: 4, Y: 3, Z: 0})
	})
	if p, ok := c.Pick(g, r); !ok || p != (block.Pos{X: 4, Y: 3, Z: 0}) {
		t.Errorf("Pick() = %v, %v, want (4,3,0)", p, ok)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeMarch, ModeDDA} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v, want %v", m.String(), got, err, m)
		}
	}
	if _, err := ParseMode("bresenham"); err == nil {
		t.Error("ParseMode(bresenham) should fail")
	}
}

func TestLook(t *testing.T) {
	p := New(mgl32.Vec3{}, DefaultCaster)
	p.Look(-90, 0)
	if d := p.Dir(); d.Sub(mgl32.Vec3{0, 0, -1}).Len() > 1e-6 {
		t.Errorf("Look(-90, 0) dir = %v, want (0,0,-1)", d)
	}
	p.Look(0, -90)
	if d := p.Dir(); d.Sub(mgl32.Vec3{0, -1, 0}).Len() > 1e-6 {
		t.Errorf("Look(0, -90) dir = %v, want (0,-1,0)", d)
	}
	p.SetView(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, 5})
	if p.Dir() != (mgl32.Vec3{0, 0, 1}) || p.Eye() != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("SetView: eye=%v dir=%v", p.Eye(), p.Dir())
	}
}

func TestPlayerEditsThroughEditor(t *testing.T) {
	g := grid{{X: 0, Y: 0, Z: 0}: block.Stone}
	p := New(mgl32.Vec3{0.5, 3.5, 0.5}, DefaultCaster)
	p.Look(0, -90)

	var e recordEditor
	if !p.Break(g, &e) || !p.Place(g, &e) {
		t.Fatal("Break/Place found no target")
	}
	if len(e.breaks) != 1 || e.breaks[0] != (block.Pos{}) {
		t.Errorf("breaks = %v, want [(0,0,0)]", e.breaks)
	}
	if len(e.places) != 1 || e.places[0] != (block.Pos{Y: 1}) {
		t.Errorf("places = %v, want [(0,1,0)]", e.places)
	}

	p.Look(0, 90)
	if p.Break(g, &e) || p.Place(g, &e) {
		t.Error("looking at the sky should target nothing")
	}
	sel := p.Target(g)
	if sel.HasPick || sel.HasPlace {
		t.Errorf("Target() = %+v, want empty", sel)
	}
}

func TestBreakThenLookDownInWorld(t *testing.T) {
	w := world.New(world.Config{
		Bounds:  world.Radius(1),
		Heights: gen.Flat(2),
		Log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	var q world.Queue
	p := New(mgl32.Vec3{5.5, 6, 5.5}, DefaultCaster)
	p.Look(0, -90)

	if sel := p.Target(w); !sel.HasPick || sel.Pick != (block.Pos{X: 5, Y: 1, Z: 5}) {
		t.Fatalf("Target() pick = %+v, want grass at (5,1,5)", sel)
	}
	p.Break(w, &q)
	if n := q.Drain(w); n != 1 {
		t.Fatalf("Drain() = %d, want 1", n)
	}
	sel := p.Target(w)
	if !sel.HasPick || sel.Pick != (block.Pos{X: 5, Y: 0, Z: 5}) {
		t.Errorf("Target() pick after break = %+v, want stone at (5,0,5)", sel)
	}
	if !sel.HasPlace || sel.Place != (block.Pos{X: 5, Y: 1, Z: 5}) {
		t.Errorf("Target() place after break = %+v, want (5,1,5)", sel)
	}
	if b, _ := w.Block(block.Pos{X: 5, Y: 0, Z: 5}); !b.HasFace(block.Top) {
		t.Error("stone below the broken grass should show its top face")
	}
}

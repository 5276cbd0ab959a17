package block

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewAirHasNoFaces(t *testing.T) {
	for mask := 0; mask < 64; mask++ {
		var occluded [6]bool
		for i := range occluded {
			occluded[i] = mask&(1<<i) != 0
		}
		b := New(Air, occluded)
		if got := b.FaceCount(); got != 0 {
			t.Fatalf("New(Air, %v).FaceCount() = %d, want 0", occluded, got)
		}
	}
}

func TestNewFacePresenceMatchesOcclusion(t *testing.T) {
	for _, m := range []Material{Grass, Stone, Dirt, 255} {
		for mask := 0; mask < 64; mask++ {
			var occluded [6]bool
			want := 0
			for i := range occluded {
				occluded[i] = mask&(1<<i) != 0
				if !occluded[i] {
					want++
				}
			}
			b := New(m, occluded)
			if b.IsAir() {
				t.Fatalf("New(%d, %v) is air", m, occluded)
			}
			for _, d := range Directions {
				if b.HasFace(d) == occluded[d] {
					t.Fatalf("New(%d, %v).HasFace(%s) = %v, want %v", m, occluded, d, b.HasFace(d), !occluded[d])
				}
			}
			if got := b.FaceCount(); got != want {
				t.Fatalf("New(%d, %v).FaceCount() = %d, want %d", m, occluded, got, want)
			}
		}
	}
}

func TestFaceGeometryLiesOnCubeSide(t *testing.T) {
	for _, d := range Directions {
		f := NewFace(d, Stone, DefaultAtlas)
		if f.Dir != d {
			t.Errorf("NewFace(%s).Dir = %s", d, f.Dir)
		}
		off := d.Offset()
		// Every corner of a face sits on the plane of the cube side it faces.
		for i, v := range f.Verts {
			var coord, want float32
			switch {
			case off.X != 0:
				coord, want = v.Position.X(), float32(max(off.X, 0))
			case off.Y != 0:
				coord, want = v.Position.Y(), float32(max(off.Y, 0))
			default:
				coord, want = v.Position.Z(), float32(max(off.Z, 0))
			}
			if coord != want {
				t.Errorf("NewFace(%s) vertex %d = %v, not on side plane %v", d, i, v.Position, want)
			}
		}
	}
}

func TestFaceWindingFacesOutward(t *testing.T) {
	for _, d := range Directions {
		f := NewFace(d, Grass, DefaultAtlas)
		a, b, c := f.Verts[FaceIndices[0]].Position, f.Verts[FaceIndices[1]].Position, f.Verts[FaceIndices[2]].Position
		n := b.Sub(a).Cross(c.Sub(a))
		off := d.Offset()
		want := mgl32.Vec3{float32(off.X), float32(off.Y), float32(off.Z)}
		if n.Normalize().Dot(want) <= 0 {
			t.Errorf("NewFace(%s) normal %v does not point along %v", d, n, want)
		}
	}
}

func TestFaceTexCoordsFollowAtlas(t *testing.T) {
	uv := DefaultAtlas.TexCoords(Dirt)
	f := NewFace(Top, Dirt, DefaultAtlas)
	for i := range f.Verts {
		if f.Verts[i].TexCoord != uv[i] {
			t.Errorf("vertex %d texcoord = %v, want %v", i, f.Verts[i].TexCoord, uv[i])
		}
	}
}

func TestGridAtlasTexCoords(t *testing.T) {
	const s = float32(1.0 / 16)
	uv := DefaultAtlas.TexCoords(17) // column 1, row 1
	want := [4]mgl32.Vec2{{s, s}, {2 * s, s}, {2 * s, 2 * s}, {s, 2 * s}}
	if uv != want {
		t.Errorf("TexCoords(17) = %v, want %v", uv, want)
	}
}

func TestBlockFace(t *testing.T) {
	b := New(Stone, [6]bool{Top: true})
	if _, ok := b.Face(Top, DefaultAtlas); ok {
		t.Error("occluded top face reported visible")
	}
	f, ok := b.Face(Bottom, DefaultAtlas)
	if !ok {
		t.Fatal("bottom face missing")
	}
	if f != NewFace(Bottom, Stone, DefaultAtlas) {
		t.Errorf("Face(Bottom) = %v, want table geometry", f)
	}
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range Directions {
		o := d.Opposite()
		if o == d || o.Opposite() != d {
			t.Errorf("%s.Opposite() = %s", d, o)
		}
		if d.Offset().Add(o.Offset()) != (Pos{}) {
			t.Errorf("offsets of %s and %s do not cancel", d, o)
		}
	}
	for _, d := range HorizontalDirections {
		if !d.Horizontal() || d.Offset().Y != 0 {
			t.Errorf("%s should be horizontal", d)
		}
	}
}

func TestParseMaterial(t *testing.T) {
	for _, m := range []Material{Air, Grass, Stone, Dirt} {
		got, err := ParseMaterial(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMaterial(%q) = %v, %v, want %v", m.String(), got, err, m)
		}
	}
	if _, err := ParseMaterial("lava"); err == nil {
		t.Error("ParseMaterial(lava) should fail")
	}
	if s := Material(40).String(); s != "material(40)" {
		t.Errorf("Material(40).String() = %q", s)
	}
}

package block

import "github.com/go-gl/mathgl/mgl32"

// Atlas maps a material to the texture coordinates of its tile. The four
// corners are returned as lower-left, lower-right, upper-right, upper-left.
type Atlas interface {
	TexCoords(m Material) [4]mgl32.Vec2
}

// GridAtlas is a texture atlas laid out as a regular grid of equally sized
// tiles. Material m lives in column m%Columns, row m/Columns.
type GridAtlas struct {
	Columns, Rows int
}

// DefaultAtlas is a 16×16 tile atlas.
var DefaultAtlas = GridAtlas{Columns: 16, Rows: 16}

func (a GridAtlas) TexCoords(m Material) [4]mgl32.Vec2 {
	x := float32(int(m) % a.Columns)
	y := float32(int(m) / a.Columns)
	w := 1 / float32(a.Columns)
	h := 1 / float32(a.Rows)

	return [4]mgl32.Vec2{
		{x * w, y * h},
		{(x + 1) * w, y * h},
		{(x + 1) * w, (y + 1) * h},
		{x * w, (y + 1) * h},
	}
}

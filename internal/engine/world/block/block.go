package block

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Material identifies the type of a block. Material 0 is air.
type Material uint16

const (
	Air   Material = 0
	Grass Material = 1
	Stone Material = 2
	Dirt  Material = 3
)

var materialNames = [...]string{Air: "air", Grass: "grass", Stone: "stone", Dirt: "dirt"}

func (m Material) String() string {
	if int(m) < len(materialNames) {
		return materialNames[m]
	}
	return fmt.Sprintf("material(%d)", uint16(m))
}

// ParseMaterial returns the material with the given name.
func ParseMaterial(name string) (Material, error) {
	for i, n := range materialNames {
		if n == name {
			return Material(i), nil
		}
	}
	return Air, fmt.Errorf("unknown material %q", name)
}

// Vertex is a single mesh vertex: a position and a texture coordinate.
type Vertex struct {
	Position mgl32.Vec3
	TexCoord mgl32.Vec2
}

// Face is one textured quad of a unit cube.
type Face struct {
	Dir   Direction
	Verts [4]Vertex
}

// FaceIndices is the two-triangle index pattern shared by every quad,
// relative to the quad's own four vertices.
var FaceIndices = [6]uint32{0, 1, 2, 2, 3, 0}

// faceCorners holds the unit-cube corners of each face, in the order the
// atlas texture coordinates are paired with them.
var faceCorners = [6][4]mgl32.Vec3{
	Back: {
		{1, 1, 0},
		{1, 0, 0},
		{0, 0, 0},
		{0, 1, 0},
	},
	Front: {
		{0, 1, 1},
		{0, 0, 1},
		{1, 0, 1},
		{1, 1, 1},
	},
	Left: {
		{0, 1, 0},
		{0, 0, 0},
		{0, 0, 1},
		{0, 1, 1},
	},
	Right: {
		{1, 1, 1},
		{1, 0, 1},
		{1, 0, 0},
		{1, 1, 0},
	},
	Top: {
		{0, 1, 0},
		{0, 1, 1},
		{1, 1, 1},
		{1, 1, 0},
	},
	Bottom: {
		{0, 0, 1},
		{0, 0, 0},
		{1, 0, 0},
		{1, 0, 1},
	},
}

// NewFace builds the quad for direction dir of a block of material m. It is a
// pure lookup: the corners depend only on dir, the texture coordinates only on
// m and the atlas.
func NewFace(dir Direction, m Material, atlas Atlas) Face {
	uv := atlas.TexCoords(m)
	f := Face{Dir: dir}
	for i, corner := range faceCorners[dir] {
		f.Verts[i] = Vertex{Position: corner, TexCoord: uv[i]}
	}
	return f
}

// Block is a single cell of a chunk: a material and the set of its faces
// that are visible. Face geometry is not stored; it is derived on demand
// from the face table.
type Block struct {
	Material Material
	visible  uint8
}

// New returns a block of material m. Each face is present iff the matching
// entry of occluded is false. Air never has faces.
func New(m Material, occluded [6]bool) Block {
	if m == Air {
		return Block{}
	}
	b := Block{Material: m}
	for _, d := range Directions {
		if !occluded[d] {
			b.visible |= 1 << d
		}
	}
	return b
}

// IsAir reports whether the block is air.
func (b Block) IsAir() bool {
	return b.Material == Air
}

// HasFace reports whether the face in direction d is visible.
func (b Block) HasFace(d Direction) bool {
	return b.visible&(1<<d) != 0
}

// FaceCount returns the number of visible faces.
func (b Block) FaceCount() int {
	n := 0
	for v := b.visible; v != 0; v &= v - 1 {
		n++
	}
	return n
}

// Face returns the geometry of the face in direction d, if it is visible.
func (b Block) Face(d Direction, atlas Atlas) (Face, bool) {
	if !b.HasFace(d) {
		return Face{}, false
	}
	return NewFace(d, b.Material, atlas), true
}

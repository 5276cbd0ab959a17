package chunk

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxel-core/internal/engine/world/block"
)

// Mesh is the renderable geometry of a chunk: one quad of four vertices and
// six indices per visible face. Vertex positions are local to the chunk; a
// renderer places the mesh at the chunk's Pos().Origin().
type Mesh struct {
	Vertices    []block.Vertex
	Indices     []uint32
	NumElements uint32
}

// NewMesh builds the mesh of c. Cells are visited x outer, y middle, z inner
// and faces in direction order, so an unchanged chunk always yields identical
// vertex and index slices.
func NewMesh(c *Chunk, atlas block.Atlas) Mesh {
	faces := c.VisibleFaces()
	m := Mesh{
		Vertices: make([]block.Vertex, 0, faces*4),
		Indices:  make([]uint32, 0, faces*6),
	}

	for x := 0; x < Width; x++ {
		for y := 0; y < Height; y++ {
			for z := 0; z < Depth; z++ {
				b := c.blocks[index(x, y, z)]
				if b.IsAir() {
					continue
				}
				cell := mgl32.Vec3{float32(x), float32(y), float32(z)}
				for _, d := range block.Directions {
					f, ok := b.Face(d, atlas)
					if !ok {
						continue
					}
					m.addFace(f, cell)
				}
			}
		}
	}
	m.NumElements = uint32(len(m.Indices))
	return m
}

func (m *Mesh) addFace(f block.Face, cell mgl32.Vec3) {
	base := uint32(len(m.Vertices))
	for _, v := range f.Verts {
		v.Position = v.Position.Add(cell)
		m.Vertices = append(m.Vertices, v)
	}
	for _, i := range block.FaceIndices {
		m.Indices = append(m.Indices, base+i)
	}
}

// FaceCount returns the number of quads in the mesh.
func (m *Mesh) FaceCount() int {
	return len(m.Indices) / len(block.FaceIndices)
}

// Empty reports whether the mesh has no geometry.
func (m *Mesh) Empty() bool {
	return len(m.Indices) == 0
}

func (m *Mesh) clone() Mesh {
	return Mesh{
		Vertices:    append([]block.Vertex(nil), m.Vertices...),
		Indices:     append([]uint32(nil), m.Indices...),
		NumElements: m.NumElements,
	}
}

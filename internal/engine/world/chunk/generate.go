package chunk

import (
	"github.com/OCharnyshevich/voxel-core/internal/engine/world/block"
	"github.com/OCharnyshevich/voxel-core/internal/engine/world/gen"
)

// Generate creates the chunk at pos from a height function. Every column is
// classified by its ground height, faces are culled against the chunk's own
// cells and the mesh is built. Edges stay open until a world resolves them
// against neighbouring chunks.
func Generate(pos Pos, heights gen.HeightFunc, atlas block.Atlas) *Chunk {
	c := New(pos)
	c.Fill(heights)
	c.UpdateFaces()
	c.RebuildMesh(atlas)
	return c
}

// Fill sets every cell's material from heights without touching faces.
func (c *Chunk) Fill(heights gen.HeightFunc) {
	o := c.pos.Origin()
	for x := 0; x < Width; x++ {
		for z := 0; z < Depth; z++ {
			ground := heights(o.X+x, o.Z+z)
			for y := 0; y < Height; y++ {
				c.blocks[index(x, y, z)] = block.Block{Material: gen.Classify(y, ground)}
			}
		}
	}
}

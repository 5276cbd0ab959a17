package chunk

import "github.com/OCharnyshevich/voxel-core/internal/engine/world/block"

const (
	Width  = 16
	Height = 256
	Depth  = Width

	volume = Width * Height * Depth
)

// Pos identifies a chunk on the horizontal chunk grid. One unit is one
// Width×Depth footprint.
type Pos struct {
	X, Z int
}

// Origin returns the world position of the chunk's (0, 0, 0) cell.
func (p Pos) Origin() block.Pos {
	return block.Pos{X: p.X * Width, Z: p.Z * Depth}
}

// Neighbour returns the position of the adjacent chunk in horizontal direction d.
func (p Pos) Neighbour(d block.Direction) Pos {
	off := d.Offset()
	return Pos{X: p.X + off.X, Z: p.Z + off.Z}
}

// Chunk is a Width×Height×Depth column of blocks together with the mesh built
// from it. A chunk's position never changes; two chunks are the same chunk iff
// their positions are equal.
//
// A Chunk does not know about the world or about other chunks. Faces on its
// horizontal edges are resolved against Boundaries supplied by the caller.
type Chunk struct {
	pos    Pos
	blocks [volume]block.Block
	mesh   Mesh
}

// New returns an all-air chunk at pos with an empty mesh.
func New(pos Pos) *Chunk {
	return &Chunk{pos: pos}
}

// Pos returns the chunk's grid position.
func (c *Chunk) Pos() Pos {
	return c.pos
}

// index lays cells out x outer, y middle, z inner, matching mesh order.
func index(x, y, z int) int {
	return (x*Height+y)*Depth + z
}

func inBounds(x, y, z int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height && z >= 0 && z < Depth
}

// Block returns a copy of the block at local coordinates, or false when the
// coordinates fall outside the chunk.
func (c *Chunk) Block(x, y, z int) (block.Block, bool) {
	if !inBounds(x, y, z) {
		return block.Block{}, false
	}
	return c.blocks[index(x, y, z)], true
}

// BlockAt is Block for a local position.
func (c *Chunk) BlockAt(local block.Pos) (block.Block, bool) {
	return c.Block(local.X, local.Y, local.Z)
}

// Material returns the material at local coordinates, air when out of bounds.
func (c *Chunk) Material(x, y, z int) block.Material {
	if !inBounds(x, y, z) {
		return block.Air
	}
	return c.blocks[index(x, y, z)].Material
}

// SetMaterial changes the material of a cell and reports whether it changed.
// Faces are left as they were: the caller must refresh the cell and its
// neighbours, then rebuild the mesh, before the mesh is read again.
func (c *Chunk) SetMaterial(x, y, z int, m block.Material) bool {
	if !inBounds(x, y, z) {
		return false
	}
	i := index(x, y, z)
	if c.blocks[i].Material == m {
		return false
	}
	c.blocks[i] = block.Block{Material: m}
	return true
}

// Local converts a world position into this chunk's local frame. The bool is
// false when the position lies outside the chunk.
func (c *Chunk) Local(p block.Pos) (block.Pos, bool) {
	o := c.pos.Origin()
	l := block.Pos{X: p.X - o.X, Y: p.Y, Z: p.Z - o.Z}
	return l, inBounds(l.X, l.Y, l.Z)
}

// ContainsPosition reports whether the world position p lies within the chunk.
func (c *Chunk) ContainsPosition(p block.Pos) bool {
	_, ok := c.Local(p)
	return ok
}

// ContainsBlock reports whether p lies within the chunk and holds a non-air block.
func (c *Chunk) ContainsBlock(p block.Pos) bool {
	l, ok := c.Local(p)
	return ok && !c.blocks[index(l.X, l.Y, l.Z)].IsAir()
}

// VisibleFaces counts the visible faces of every block in the chunk.
func (c *Chunk) VisibleFaces() int {
	n := 0
	for i := range c.blocks {
		n += c.blocks[i].FaceCount()
	}
	return n
}

// Mesh returns the chunk's current mesh. Callers must treat it as read-only.
func (c *Chunk) Mesh() *Mesh {
	return &c.mesh
}

// RebuildMesh regenerates the mesh from the current blocks.
func (c *Chunk) RebuildMesh(atlas block.Atlas) {
	c.mesh = NewMesh(c, atlas)
}

// Clone returns a deep copy of the chunk.
func (c *Chunk) Clone() *Chunk {
	cp := &Chunk{pos: c.pos, blocks: c.blocks}
	cp.mesh = c.mesh.clone()
	return cp
}

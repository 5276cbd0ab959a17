package chunk

import "github.com/OCharnyshevich/voxel-core/internal/engine/world/block"

// Plane is one vertical boundary layer of a chunk's materials. Cells are
// addressed by (u, y), where u runs along X for the back and front sides and
// along Z for the left and right sides.
type Plane struct {
	mats [Width * Height]block.Material
}

// Solid reports whether the cell at (u, y) holds a non-air block.
func (p *Plane) Solid(u, y int) bool {
	if u < 0 || u >= Width || y < 0 || y >= Height {
		return false
	}
	return p.mats[u*Height+y] != block.Air
}

// Plane extracts the chunk's boundary layer on horizontal side d. A neighbour
// on that side reads it to resolve its own faces towards this chunk.
func (c *Chunk) Plane(d block.Direction) *Plane {
	p := &Plane{}
	if !d.Horizontal() {
		return p
	}
	for u := 0; u < Width; u++ {
		for y := 0; y < Height; y++ {
			var x, z int
			switch d {
			case block.Back:
				x, z = u, 0
			case block.Front:
				x, z = u, Depth-1
			case block.Left:
				x, z = 0, u
			case block.Right:
				x, z = Width-1, u
			}
			p.mats[u*Height+y] = c.blocks[index(x, y, z)].Material
		}
	}
	return p
}

// Boundaries holds, per horizontal direction, the facing plane of the
// neighbouring chunk in that direction. A nil entry means there is no
// neighbour and faces towards it stay open.
type Boundaries [4]*Plane

// occluded reports whether the neighbour of (x, y, z) in direction d is solid.
func (c *Chunk) occluded(x, y, z int, d block.Direction, b *Boundaries) bool {
	off := d.Offset()
	nx, ny, nz := x+off.X, y+off.Y, z+off.Z
	if ny < 0 || ny >= Height {
		return false
	}
	if inBounds(nx, ny, nz) {
		return c.blocks[index(nx, ny, nz)].Material != block.Air
	}
	p := b[d]
	if p == nil {
		return false
	}
	if d == block.Back || d == block.Front {
		return p.Solid(x, y)
	}
	return p.Solid(z, y)
}

func (c *Chunk) resolveCell(x, y, z int, b *Boundaries) {
	i := index(x, y, z)
	m := c.blocks[i].Material
	if m == block.Air {
		c.blocks[i] = block.Block{}
		return
	}
	var occ [6]bool
	for _, d := range block.Directions {
		occ[d] = c.occluded(x, y, z, d, b)
	}
	c.blocks[i] = block.New(m, occ)
}

// UpdateFaces recomputes every block's faces from the chunk's own cells,
// treating all horizontal edges as open.
func (c *Chunk) UpdateFaces() {
	c.ResolveFaces(Boundaries{})
}

// ResolveFaces recomputes every block's faces. Faces on the horizontal edges
// are resolved against b, the top and bottom of the chunk are always open.
func (c *Chunk) ResolveFaces(b Boundaries) {
	for x := 0; x < Width; x++ {
		for y := 0; y < Height; y++ {
			for z := 0; z < Depth; z++ {
				c.resolveCell(x, y, z, &b)
			}
		}
	}
}

// RefreshCells recomputes faces only for the given local cells. Cells outside
// the chunk are ignored. After a material change, refreshing the changed cell
// and its six neighbours yields the same faces as ResolveFaces.
func (c *Chunk) RefreshCells(cells []block.Pos, b Boundaries) {
	for _, l := range cells {
		if inBounds(l.X, l.Y, l.Z) {
			c.resolveCell(l.X, l.Y, l.Z, &b)
		}
	}
}

// DiffFaces returns the first local cell whose block differs between c and
// other, in mesh order. The bool is false when both hold identical blocks.
func (c *Chunk) DiffFaces(other *Chunk) (block.Pos, bool) {
	for i := range c.blocks {
		if c.blocks[i] != other.blocks[i] {
			z := i % Depth
			y := (i / Depth) % Height
			x := i / (Depth * Height)
			return block.Pos{X: x, Y: y, Z: z}, true
		}
	}
	return block.Pos{}, false
}

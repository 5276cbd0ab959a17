package world

import (
	"slices"

	"github.com/OCharnyshevich/voxel-core/internal/engine/world/block"
	"github.com/OCharnyshevich/voxel-core/internal/engine/world/chunk"
)

// BreakBlock turns the solid block at world position p into air. It reports
// false, changing nothing, when no chunk covers p or the cell is already air.
func (w *World) BreakBlock(p block.Pos) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	c, local, ok := w.locate(p)
	if !ok || c.Material(local.X, local.Y, local.Z) == block.Air {
		return false
	}
	w.set(c, local, p, block.Air)
	w.log.Debug("block broken", "pos", p)
	return true
}

// PlaceBlock puts the world's placement material into the empty cell at p.
func (w *World) PlaceBlock(p block.Pos) bool {
	return w.PlaceMaterial(p, w.place)
}

// PlaceMaterial puts m into the empty cell at p. It reports false, changing
// nothing, when m is air, no chunk covers p, or the cell is occupied.
func (w *World) PlaceMaterial(p block.Pos, m block.Material) bool {
	if m == block.Air {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	c, local, ok := w.locate(p)
	if !ok || c.Material(local.X, local.Y, local.Z) != block.Air {
		return false
	}
	w.set(c, local, p, m)
	w.log.Debug("block placed", "pos", p, "material", m)
	return true
}

// set writes m at p and refreshes the faces of p and its six neighbours in
// whichever chunks own them. Every touched chunk gets a new mesh.
// The caller holds w.mu.
func (w *World) set(c *chunk.Chunk, local, p block.Pos, m block.Material) {
	c.SetMaterial(local.X, local.Y, local.Z, m)

	dirty := make(map[int][]block.Pos, 2)
	mark := func(q block.Pos) {
		if q.Y < 0 || q.Y >= chunk.Height {
			return
		}
		pos, l := chunk.Locate(q)
		if i, ok := w.index[pos]; ok {
			dirty[i] = append(dirty[i], l)
		}
	}
	mark(p)
	for _, d := range block.Directions {
		mark(p.Side(d))
	}

	touched := make([]int, 0, len(dirty))
	for i := range dirty {
		touched = append(touched, i)
	}
	slices.Sort(touched)

	for _, i := range touched {
		t := w.chunks[i]
		t.RefreshCells(dirty[i], w.boundaries(t.Pos()))
		t.RebuildMesh(w.atlas)
	}
	for _, i := range touched {
		w.upload(w.chunks[i])
	}
}

// Restitch recomputes every face of the chunk at pos against its current
// neighbours and rebuilds its mesh. It reports false when there is no chunk
// at pos.
func (w *World) Restitch(pos chunk.Pos) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	c, ok := w.lookup(pos)
	if !ok {
		return false
	}
	c.ResolveFaces(w.boundaries(pos))
	c.RebuildMesh(w.atlas)
	w.upload(c)
	return true
}

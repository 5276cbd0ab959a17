package world

import (
	"fmt"
	"slices"

	"github.com/OCharnyshevich/voxel-core/internal/engine/world/chunk"
)

// Verify recomputes every chunk's faces and mesh from its blocks and its
// neighbours and returns an error describing the first chunk whose stored
// state disagrees. A nil result means every mesh is what a fresh world with
// the same blocks would produce.
func (w *World) Verify() error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, c := range w.chunks {
		fresh := c.Clone()
		fresh.ResolveFaces(w.boundaries(c.Pos()))
		if at, diff := c.DiffFaces(fresh); diff {
			return fmt.Errorf("chunk %v: stale faces at local %v", c.Pos(), at)
		}

		want := chunk.NewMesh(fresh, w.atlas)
		got := c.Mesh()
		if got.NumElements != want.NumElements ||
			!slices.Equal(got.Indices, want.Indices) ||
			!slices.Equal(got.Vertices, want.Vertices) {
			return fmt.Errorf("chunk %v: stale mesh (%d elements, want %d)", c.Pos(), got.NumElements, want.NumElements)
		}
	}
	return nil
}

package world

import (
	"sync"

	"github.com/OCharnyshevich/voxel-core/internal/engine/world/block"
)

// EditKind says what an Edit does.
type EditKind uint8

const (
	EditBreak EditKind = iota
	EditPlace
)

// Edit is a pending change to the world.
type Edit struct {
	Kind EditKind
	Pos  block.Pos
	// Material is used by EditPlace. Air means the world's placement material.
	Material block.Material
}

// Queue collects edits from any goroutine and applies them to a World in
// submission order when drained. A frame loop drains it once per frame before
// reading meshes.
type Queue struct {
	mu    sync.Mutex
	edits []Edit
}

// Break queues breaking the block at p.
func (q *Queue) Break(p block.Pos) {
	q.Push(Edit{Kind: EditBreak, Pos: p})
}

// Place queues placing the world's placement material at p.
func (q *Queue) Place(p block.Pos) {
	q.Push(Edit{Kind: EditPlace, Pos: p})
}

// Push queues e.
func (q *Queue) Push(e Edit) {
	q.mu.Lock()
	q.edits = append(q.edits, e)
	q.mu.Unlock()
}

// Len returns the number of pending edits.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.edits)
}

// Drain applies every pending edit to w and returns how many changed it.
// Edits pushed while draining wait for the next call.
func (q *Queue) Drain(w *World) int {
	q.mu.Lock()
	edits := q.edits
	q.edits = nil
	q.mu.Unlock()

	applied := 0
	for _, e := range edits {
		var changed bool
		switch e.Kind {
		case EditBreak:
			changed = w.BreakBlock(e.Pos)
		case EditPlace:
			if e.Material == block.Air {
				changed = w.PlaceBlock(e.Pos)
			} else {
				changed = w.PlaceMaterial(e.Pos, e.Material)
			}
		}
		if changed {
			applied++
		}
	}
	return applied
}

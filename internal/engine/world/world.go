package world

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"

	"github.com/OCharnyshevich/voxel-core/internal/engine/world/block"
	"github.com/OCharnyshevich/voxel-core/internal/engine/world/chunk"
	"github.com/OCharnyshevich/voxel-core/internal/engine/world/gen"
)

// MeshSink receives every chunk mesh the world builds: once per chunk at
// construction and again after each edit that rebuilds it. The mesh is owned
// by the world and must not be modified or retained past the next edit.
type MeshSink interface {
	UploadMesh(pos chunk.Pos, m *chunk.Mesh)
}

// Config holds the options for creating a World.
type Config struct {
	// Bounds is the fixed set of chunks the world is made of.
	Bounds Bounds
	// Heights is the ground height function used to fill every chunk.
	// If nil, a flat world of height 64 is generated.
	Heights gen.HeightFunc
	// Atlas maps materials to texture coordinates. Defaults to block.DefaultAtlas.
	Atlas block.Atlas
	// PlaceMaterial is the material PlaceBlock puts down. Defaults to block.Stone.
	PlaceMaterial block.Material
	// Workers bounds the goroutines used to build the world. Defaults to
	// runtime.NumCPU().
	Workers int
	// Sink, if set, is handed every mesh the world builds.
	Sink MeshSink
	// Log is the Logger to use. If nil, slog.Default() is used.
	Log *slog.Logger
}

// World is a fixed, finite grid of chunks. It is the only place where
// neighbouring chunks are read together, and all edits go through it so that
// every chunk's mesh keeps matching its own blocks and those of its neighbours.
//
// Reads may run concurrently with each other. Edits are exclusive, and a mesh
// obtained from the world must not be read while an edit is in flight.
type World struct {
	mu sync.RWMutex

	id    uuid.UUID
	log   *slog.Logger
	atlas block.Atlas
	place block.Material
	sink  MeshSink

	bounds Bounds
	chunks []*chunk.Chunk
	index  map[chunk.Pos]int
}

// New generates every chunk in cfg.Bounds, resolves their shared boundaries
// and builds their meshes.
func New(cfg Config) *World {
	if cfg.Heights == nil {
		cfg.Heights = gen.Flat(64)
	}
	if cfg.Atlas == nil {
		cfg.Atlas = block.DefaultAtlas
	}
	if cfg.PlaceMaterial == block.Air {
		cfg.PlaceMaterial = block.Stone
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}

	w := &World{
		id:     uuid.New(),
		atlas:  cfg.Atlas,
		place:  cfg.PlaceMaterial,
		sink:   cfg.Sink,
		bounds: cfg.Bounds,
		index:  make(map[chunk.Pos]int, cfg.Bounds.Len()),
	}
	w.log = cfg.Log.With("world", w.id.String())

	positions := cfg.Bounds.Positions()
	w.chunks = make([]*chunk.Chunk, len(positions))
	for i, pos := range positions {
		w.index[pos] = i
	}

	pool := pond.NewPool(cfg.Workers)
	defer pool.StopAndWait()

	// Every chunk must be filled before any boundary is read.
	fill := pool.NewGroup()
	for i, pos := range positions {
		fill.Submit(func() {
			c := chunk.New(pos)
			c.Fill(cfg.Heights)
			w.chunks[i] = c
		})
	}
	if err := fill.Wait(); err != nil {
		panic(fmt.Sprintf("world: fill chunks: %v", err))
	}

	// Resolving rewrites whole blocks, so all planes are copied out first.
	bounds := make([]chunk.Boundaries, len(w.chunks))
	extract := pool.NewGroup()
	for i, c := range w.chunks {
		extract.Submit(func() {
			bounds[i] = w.boundaries(c.Pos())
		})
	}
	if err := extract.Wait(); err != nil {
		panic(fmt.Sprintf("world: extract boundaries: %v", err))
	}

	stitch := pool.NewGroup()
	for i, c := range w.chunks {
		stitch.Submit(func() {
			c.ResolveFaces(bounds[i])
			c.RebuildMesh(w.atlas)
		})
	}
	if err := stitch.Wait(); err != nil {
		panic(fmt.Sprintf("world: stitch chunks: %v", err))
	}

	for _, c := range w.chunks {
		w.upload(c)
	}
	w.log.Info("world generated",
		"chunks", len(w.chunks),
		"workers", cfg.Workers,
		"faces", w.stats().Faces,
	)
	return w
}

// ID returns the identifier of this world instance.
func (w *World) ID() uuid.UUID {
	return w.id
}

// Bounds returns the chunk rectangle the world covers.
func (w *World) Bounds() Bounds {
	return w.bounds
}

// Atlas returns the atlas meshes are textured with.
func (w *World) Atlas() block.Atlas {
	return w.atlas
}

func (w *World) lookup(pos chunk.Pos) (*chunk.Chunk, bool) {
	i, ok := w.index[pos]
	if !ok {
		return nil, false
	}
	return w.chunks[i], true
}

// locate returns the chunk owning world position p and p in its local frame.
func (w *World) locate(p block.Pos) (*chunk.Chunk, block.Pos, bool) {
	if p.Y < 0 || p.Y >= chunk.Height {
		return nil, block.Pos{}, false
	}
	pos, local := chunk.Locate(p)
	c, ok := w.lookup(pos)
	return c, local, ok
}

// boundaries collects, for each horizontal side of the chunk at pos, the
// opposite-facing plane of the neighbour on that side.
func (w *World) boundaries(pos chunk.Pos) chunk.Boundaries {
	var b chunk.Boundaries
	for _, d := range block.HorizontalDirections {
		if n, ok := w.lookup(pos.Neighbour(d)); ok {
			b[d] = n.Plane(d.Opposite())
		}
	}
	return b
}

func (w *World) upload(c *chunk.Chunk) {
	if w.sink != nil {
		w.sink.UploadMesh(c.Pos(), c.Mesh())
	}
}

// Block returns the block at world position p. The bool is false when no
// chunk covers p.
func (w *World) Block(p block.Pos) (block.Block, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	c, local, ok := w.locate(p)
	if !ok {
		return block.Block{}, false
	}
	return c.BlockAt(local)
}

// Chunk returns the chunk at pos. The chunk must be treated as read-only.
func (w *World) Chunk(pos chunk.Pos) (*chunk.Chunk, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lookup(pos)
}

// ChunkAt returns the chunk covering world position p.
func (w *World) ChunkAt(p block.Pos) (*chunk.Chunk, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, _, ok := w.locate(p)
	return c, ok
}

// Mesh returns the current mesh of the chunk at pos.
func (w *World) Mesh(pos chunk.Pos) (*chunk.Mesh, bool) {
	c, ok := w.Chunk(pos)
	if !ok {
		return nil, false
	}
	return c.Mesh(), true
}

// Positions returns the positions of all chunks, X outer and Z inner.
func (w *World) Positions() []chunk.Pos {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]chunk.Pos, len(w.chunks))
	for i, c := range w.chunks {
		out[i] = c.Pos()
	}
	return out
}

// Len returns the number of chunks.
func (w *World) Len() int {
	return len(w.chunks)
}

// Stats summarises the geometry of the whole world.
type Stats struct {
	Chunks   int
	Faces    int
	Vertices int
	Indices  int
}

// Stats returns the current geometry totals.
func (w *World) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats()
}

func (w *World) stats() Stats {
	s := Stats{Chunks: len(w.chunks)}
	for _, c := range w.chunks {
		m := c.Mesh()
		s.Faces += m.FaceCount()
		s.Vertices += len(m.Vertices)
		s.Indices += len(m.Indices)
	}
	return s
}

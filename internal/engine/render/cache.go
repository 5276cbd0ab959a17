package render

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/OCharnyshevich/voxel-core/internal/engine/world/chunk"
)

// Cache holds the packed buffers of every chunk handed to it, standing in for
// the GPU-resident copies a renderer keeps. It implements world.MeshSink.
type Cache struct {
	log *slog.Logger

	mu      sync.RWMutex
	buffers map[chunk.Pos]*Buffers
	stats   CacheStats
}

// CacheStats counts what the cache did with the meshes it received.
type CacheStats struct {
	// Uploads counts meshes whose packed bytes changed.
	Uploads int
	// Skips counts meshes identical to what was already cached.
	Skips int
	Bytes int
}

// NewCache returns an empty cache. If log is nil, slog.Default() is used.
func NewCache(log *slog.Logger) *Cache {
	if log == nil {
		log = slog.Default()
	}
	return &Cache{
		log:     log,
		buffers: make(map[chunk.Pos]*Buffers),
	}
}

// UploadMesh packs m and stores it for pos unless the cached buffers already
// hold the same bytes.
func (c *Cache) UploadMesh(pos chunk.Pos, m *chunk.Mesh) {
	b := Pack(pos, m)

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.buffers[pos]; ok && old.Digest == b.Digest {
		c.stats.Skips++
		c.log.Debug("mesh unchanged", "chunk", pos, "digest", b.Digest)
		return
	}
	if old, ok := c.buffers[pos]; ok {
		c.stats.Bytes -= len(old.Vertices) + len(old.Indices)
	}
	c.buffers[pos] = &b
	c.stats.Uploads++
	c.stats.Bytes += len(b.Vertices) + len(b.Indices)
	c.log.Debug("mesh uploaded",
		"chunk", pos,
		"elements", b.NumElements,
		"bytes", len(b.Vertices)+len(b.Indices),
	)
}

// Buffers returns the cached buffers for pos.
func (c *Cache) Buffers(pos chunk.Pos) (*Buffers, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.buffers[pos]
	return b, ok
}

// Positions returns the cached chunk positions, sorted by X then Z.
func (c *Cache) Positions() []chunk.Pos {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]chunk.Pos, 0, len(c.buffers))
	for pos := range c.buffers {
		out = append(out, pos)
	}
	slices.SortFunc(out, func(a, b chunk.Pos) int {
		if a.X != b.X {
			return a.X - b.X
		}
		return a.Z - b.Z
	})
	return out
}

// Stats returns the upload counters.
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

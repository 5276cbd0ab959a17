package render

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/OCharnyshevich/voxel-core/internal/engine/world/chunk"
)

// VertexStride is the byte size of one packed vertex: position x, y, z and
// texture coordinate u, v, each a little-endian float32.
const VertexStride = 5 * 4

// Buffers is a chunk mesh packed into the byte layout a GPU vertex and
// index buffer expect.
type Buffers struct {
	Pos         chunk.Pos
	Vertices    []byte
	Indices     []byte
	NumElements uint32
	// Digest is the xxhash of Vertices followed by Indices.
	Digest uint64
}

// Pack lays out m for upload.
func Pack(pos chunk.Pos, m *chunk.Mesh) Buffers {
	b := Buffers{
		Pos:         pos,
		Vertices:    make([]byte, len(m.Vertices)*VertexStride),
		Indices:     make([]byte, len(m.Indices)*4),
		NumElements: m.NumElements,
	}

	off := 0
	for _, v := range m.Vertices {
		for _, f := range [5]float32{v.Position[0], v.Position[1], v.Position[2], v.TexCoord[0], v.TexCoord[1]} {
			binary.LittleEndian.PutUint32(b.Vertices[off:], math.Float32bits(f))
			off += 4
		}
	}
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(b.Indices[i*4:], idx)
	}

	d := xxhash.New()
	_, _ = d.Write(b.Vertices)
	_, _ = d.Write(b.Indices)
	b.Digest = d.Sum64()
	return b
}

// Vertex decodes the position and texture coordinate of vertex i.
func (b *Buffers) Vertex(i int) (pos [3]float32, uv [2]float32) {
	at := func(k int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(b.Vertices[i*VertexStride+k*4:]))
	}
	return [3]float32{at(0), at(1), at(2)}, [2]float32{at(3), at(4)}
}

// Index decodes index i.
func (b *Buffers) Index(i int) uint32 {
	return binary.LittleEndian.Uint32(b.Indices[i*4:])
}

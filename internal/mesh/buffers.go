// Package mesh holds the per-frame geometry stream as two parallel float32
// arrays: three position components and four colour components per vertex.
package mesh

const (
	PositionStride = 3
	ColorStride    = 4
)

type Buffers struct {
	Positions []float32
	Colors    []float32
}

func NewBuffers(vertexCapacity int) *Buffers {
	return &Buffers{
		Positions: make([]float32, 0, vertexCapacity*PositionStride),
		Colors:    make([]float32, 0, vertexCapacity*ColorStride),
	}
}

// Reset empties both arrays but keeps their backing storage.
func (b *Buffers) Reset() {
	b.Positions = b.Positions[:0]
	b.Colors = b.Colors[:0]
}

func (b *Buffers) AppendVertex(x, y, z float64, r, g, bl, a float64) {
	b.Positions = append(b.Positions, float32(x), float32(y), float32(z))
	b.Colors = append(b.Colors, float32(r), float32(g), float32(bl), float32(a))
}

// AppendQuad emits the quad p00,p10,p11,p01 as the triangles
// (p00, p01, p10) and (p10, p01, p11), all in one colour.
func (b *Buffers) AppendQuad(p00, p10, p11, p01 [3]float64, rgba [4]float64) {
	for _, p := range [6][3]float64{p00, p01, p10, p10, p01, p11} {
		b.AppendVertex(p[0], p[1], p[2], rgba[0], rgba[1], rgba[2], rgba[3])
	}
}

func (b *Buffers) VertexCount() int   { return len(b.Positions) / PositionStride }
func (b *Buffers) TriangleCount() int { return b.VertexCount() / 3 }

func (b *Buffers) Vertex(i int) [3]float32 {
	p := b.Positions[i*PositionStride:]
	return [3]float32{p[0], p[1], p[2]}
}

func (b *Buffers) Color(i int) [4]float32 {
	c := b.Colors[i*ColorStride:]
	return [4]float32{c[0], c[1], c[2], c[3]}
}

// Clone returns an independent copy.
func (b *Buffers) Clone() *Buffers {
	c := &Buffers{
		Positions: make([]float32, len(b.Positions)),
		Colors:    make([]float32, len(b.Colors)),
	}
	copy(c.Positions, b.Positions)
	copy(c.Colors, b.Colors)
	return c
}

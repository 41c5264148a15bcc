package mesh

import "testing"

func TestAppendQuad(t *testing.T) {
	b := NewBuffers(6)
	b.AppendQuad(
		[3]float64{0, 0, 0},
		[3]float64{1, 0, 0},
		[3]float64{1, 1, 0},
		[3]float64{0, 1, 0},
		[4]float64{0.5, 0.25, 0.75, 0.4},
	)

	if got := b.VertexCount(); got != 6 {
		t.Fatalf("expected 6 vertices, got %d", got)
	}
	if got := b.TriangleCount(); got != 2 {
		t.Errorf("expected 2 triangles, got %d", got)
	}
	if len(b.Colors) != 6*ColorStride {
		t.Errorf("expected %d colour values, got %d", 6*ColorStride, len(b.Colors))
	}

	want := [][3]float32{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}}
	for i, w := range want {
		if got := b.Vertex(i); got != w {
			t.Errorf("vertex %d: expected %v, got %v", i, w, got)
		}
		if c := b.Color(i); c[3] != 0.4 {
			t.Errorf("vertex %d: expected alpha 0.4, got %f", i, c[3])
		}
	}
}

func TestResetKeepsCapacity(t *testing.T) {
	b := NewBuffers(0)
	for i := 0; i < 10; i++ {
		b.AppendVertex(float64(i), 0, 0, 1, 1, 1, 1)
	}
	capBefore := cap(b.Positions)
	b.Reset()

	if b.VertexCount() != 0 || len(b.Colors) != 0 {
		t.Error("reset did not empty buffers")
	}
	if cap(b.Positions) != capBefore {
		t.Errorf("reset dropped capacity: %d -> %d", capBefore, cap(b.Positions))
	}
}

func TestClone(t *testing.T) {
	b := NewBuffers(1)
	b.AppendVertex(1, 2, 3, 0.1, 0.2, 0.3, 0.4)
	c := b.Clone()
	c.Positions[0] = 99
	if b.Positions[0] == 99 {
		t.Error("clone shares storage with source")
	}
}

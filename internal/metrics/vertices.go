package metrics

import (
	"github.com/san-kum/splitbox/internal/frame"
)

type MeanVertices struct {
	name    string
	sum     float64
	samples int
}

func NewMeanVertices() *MeanVertices {
	return &MeanVertices{name: "mean_vertices"}
}

func (m *MeanVertices) Name() string { return m.name }

func (m *MeanVertices) Observe(f *frame.Frame) {
	m.sum += float64(f.Vertices)
	m.samples++
}

func (m *MeanVertices) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanVertices) Reset() {
	m.sum = 0
	m.samples = 0
}

// Peak tracks the largest value a frame field reached.
type Peak struct {
	name string
	pick func(f *frame.Frame) int
	max  int
}

func NewPeakVertices() *Peak {
	return &Peak{name: "peak_vertices", pick: func(f *frame.Frame) int { return f.Vertices }}
}

func NewPeakNodes() *Peak {
	return &Peak{name: "peak_nodes", pick: func(f *frame.Frame) int { return f.Tree.Nodes }}
}

func NewPeakDepth() *Peak {
	return &Peak{name: "peak_depth", pick: func(f *frame.Frame) int { return f.Tree.MaxDepth }}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(f *frame.Frame) {
	if v := p.pick(f); v > p.max {
		p.max = v
	}
}

func (p *Peak) Value() float64 { return float64(p.max) }

func (p *Peak) Reset() { p.max = 0 }

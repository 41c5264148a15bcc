package metrics

import (
	"github.com/san-kum/splitbox/internal/frame"
)

type Replacements struct {
	name  string
	count int
}

func NewReplacements() *Replacements {
	return &Replacements{name: "replacements"}
}

func (r *Replacements) Name() string { return r.name }

func (r *Replacements) Observe(f *frame.Frame) {
	if f.Replaced {
		r.count++
	}
}

func (r *Replacements) Value() float64 { return float64(r.count) }

func (r *Replacements) Reset() { r.count = 0 }

type Losses struct {
	name  string
	count int
}

func NewLosses() *Losses {
	return &Losses{name: "losses"}
}

func (l *Losses) Name() string { return l.name }

func (l *Losses) Observe(f *frame.Frame) {
	if f.Lost {
		l.count++
	}
}

func (l *Losses) Value() float64 { return float64(l.count) }

func (l *Losses) Reset() { l.count = 0 }

// Continuity is the share of frames that did not lose the root.
type Continuity struct {
	name    string
	lost    int
	samples int
}

func NewContinuity() *Continuity {
	return &Continuity{name: "continuity"}
}

func (c *Continuity) Name() string { return c.name }

func (c *Continuity) Observe(f *frame.Frame) {
	c.samples++
	if f.Lost {
		c.lost++
	}
}

func (c *Continuity) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.lost)/float64(c.samples)
}

func (c *Continuity) Reset() {
	c.lost = 0
	c.samples = 0
}

// Default returns a fresh set of the standard per-run metrics.
func Default() []frame.Metric {
	return []frame.Metric{
		NewMeanVertices(),
		NewPeakVertices(),
		NewPeakNodes(),
		NewPeakDepth(),
		NewReplacements(),
		NewLosses(),
		NewContinuity(),
	}
}

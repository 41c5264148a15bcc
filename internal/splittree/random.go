package splittree

import "math/rand"

// Source supplies the pseudo-random decisions made while growing a tree:
// spawn rolls, child axes, colours and direction flags.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// NewSource returns a deterministic source for the given seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// Sequence replays a fixed list of values, cycling when exhausted.
// Intn maps the next value onto [0, n).
type Sequence struct {
	Values []float64
	pos    int
}

func NewSequence(values ...float64) *Sequence {
	return &Sequence{Values: values}
}

func (s *Sequence) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.pos%len(s.Values)]
	s.pos++
	return v
}

func (s *Sequence) Intn(n int) int {
	i := int(s.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

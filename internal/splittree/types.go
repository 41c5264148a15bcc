package splittree

import "fmt"

type Axis int

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// Others returns the two axes perpendicular to a, in cyclic order.
func (a Axis) Others() (Axis, Axis) {
	return (a + 1) % 3, (a + 2) % 3
}

func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return X, nil
	case "y", "Y":
		return Y, nil
	case "z", "Z":
		return Z, nil
	}
	return X, fmt.Errorf("unknown axis: %q", s)
}

type Vec3 [3]float64

// Box is an axis-aligned region given by its minimum corner and size.
type Box struct {
	Origin  Vec3
	Extents Vec3
}

// Split cuts the box with the plane Origin[axis]+offset. The first box lies
// on the negative side of the plane and the second on the positive side.
func (b Box) Split(axis Axis, offset float64) (Box, Box) {
	neg, pos := b, b
	neg.Extents[axis] = offset
	pos.Origin[axis] += offset
	pos.Extents[axis] -= offset
	return neg, pos
}

type Color struct {
	R, G, B float64
}

// Params holds the constants shared by every node of a tree.
type Params struct {
	Lifetime     float64
	SpawnDivisor float64
	FadeWindow   float64
	ColorMin     float64
	ColorSpan    float64
	// MaxDepth stops spawning below this depth; 0 means unbounded.
	MaxDepth int
}

func DefaultParams() Params {
	return Params{
		Lifetime:     5000,
		SpawnDivisor: 20,
		FadeWindow:   0.1,
		ColorMin:     0.3,
		ColorSpan:    0.4,
	}
}

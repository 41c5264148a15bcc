package splittree

import "math"

// Fraction is the node's lifetime progress. It is clamped above at 1 but not
// below, so times before TimeStart give negative values.
func (n *Node) Fraction(time float64) float64 {
	return math.Min((time-n.TimeStart)/(n.TimeEnd-n.TimeStart), 1)
}

// Fade ramps from 0 to alpha over the first window of the lifetime, holds,
// then ramps back to 0 over the last window. The result stays in [0, alpha].
func Fade(fraction, alpha, window float64) float64 {
	switch {
	case window <= 0:
		return alpha
	case fraction <= 0 || fraction >= 1:
		return 0
	case fraction < window:
		return alpha * fraction / window
	case fraction > 1-window:
		return alpha * (1 - fraction) / window
	}
	return alpha
}

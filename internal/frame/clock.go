package frame

import "time"

// Clock supplies the time base in the tree's time units (milliseconds).
type Clock interface {
	Now() float64
}

type WallClock struct {
	start time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

func (c *WallClock) Now() float64 {
	return float64(time.Since(c.start)) / float64(time.Millisecond)
}

// StepClock returns T and then advances it by Dt on every call.
type StepClock struct {
	T  float64
	Dt float64
}

func NewStepClock(start, dt float64) *StepClock {
	return &StepClock{T: start, Dt: dt}
}

func (c *StepClock) Now() float64 {
	t := c.T
	c.T += c.Dt
	return t
}

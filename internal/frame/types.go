package frame

import (
	"time"

	"github.com/san-kum/splitbox/internal/splittree"
)

type Config struct {
	Params      splittree.Params
	FadeAlpha   float64
	Box         splittree.Box
	InitialAxis splittree.Axis
	Seed        int64
}

func DefaultConfig() Config {
	return Config{
		Params:    splittree.DefaultParams(),
		FadeAlpha: 0.4,
		Box: splittree.Box{
			Origin:  splittree.Vec3{-1.5, -1.5, -1.5},
			Extents: splittree.Vec3{3, 3, 3},
		},
		InitialAxis: splittree.X,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Params.Lifetime <= 0:
		return &ConfigError{Field: "lifetime", Reason: "must be positive"}
	case c.Params.SpawnDivisor <= 0:
		return &ConfigError{Field: "spawn_divisor", Reason: "must be positive"}
	case c.Params.FadeWindow < 0 || c.Params.FadeWindow > 0.5:
		return &ConfigError{Field: "fade_window", Reason: "must be within [0, 0.5]"}
	case c.Params.ColorMin < 0 || c.Params.ColorSpan < 0 || c.Params.ColorMin+c.Params.ColorSpan > 1:
		return &ConfigError{Field: "color", Reason: "band must lie within [0, 1]"}
	case c.Params.MaxDepth < 0:
		return &ConfigError{Field: "max_depth", Reason: "must not be negative"}
	case c.FadeAlpha < 0 || c.FadeAlpha > 1:
		return &ConfigError{Field: "fade_alpha", Reason: "must be within [0, 1]"}
	case c.InitialAxis < splittree.X || c.InitialAxis > splittree.Z:
		return &ConfigError{Field: "initial_axis", Reason: "must be x, y or z"}
	}
	for _, e := range c.Box.Extents {
		if e < 0 {
			return &ConfigError{Field: "box.extents", Reason: "must not be negative"}
		}
	}
	return nil
}

// Frame is the outcome of one Step. Positions and Colors alias the driver's
// buffers and are only valid until the next Step.
type Frame struct {
	Index     int
	Time      float64
	Positions []float32
	Colors    []float32
	Vertices  int
	Triangles int
	Tree      splittree.Stats
	Spawned   int
	Expired   int
	// Seeded is set on the very first root, Recovered when a root had to be
	// recreated after the previous one expired without a survivor.
	Seeded    bool
	Recovered bool
	Replaced  bool
	Lost      bool
	Elapsed   time.Duration
}

// Counters accumulate root lifecycle events across frames.
type Counters struct {
	Frames       int `json:"frames"`
	Seeds        int `json:"seeds"`
	Recoveries   int `json:"recoveries"`
	Replacements int `json:"replacements"`
	Losses       int `json:"losses"`
	Spawned      int `json:"spawned"`
}

type Observer interface {
	OnFrame(f *Frame)
}

type ObserverFunc func(f *Frame)

func (fn ObserverFunc) OnFrame(f *Frame) { fn(f) }

// Metric reduces a stream of frames to a single value.
type Metric interface {
	Name() string
	Observe(f *Frame)
	Value() float64
	Reset()
}

// Backend is the rendering collaborator: it receives the parallel position
// and colour arrays, draws them as a triangle list and shows the result.
type Backend interface {
	Upload(positions, colors []float32) error
	Draw(vertexCount int) error
	Present() error
}

package frame

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/splitbox/internal/logging"
	"github.com/san-kum/splitbox/internal/mesh"
	"github.com/san-kum/splitbox/internal/splittree"
)

const initialVertexCapacity = 6 * 256

type Driver struct {
	cfg       Config
	root      *splittree.Node
	clock     Clock
	rnd       splittree.Source
	buf       *mesh.Buffers
	ec        *splittree.EmitContext
	observers []Observer
	metrics   []Metric
	logger    *slog.Logger
	counters  Counters
	last      Frame
}

type Option func(*Driver)

func WithClock(c Clock) Option { return func(d *Driver) { d.clock = c } }

// WithSource replaces the seeded random source built from Config.Seed.
func WithSource(s splittree.Source) Option { return func(d *Driver) { d.rnd = s } }

func WithLogger(l *slog.Logger) Option { return func(d *Driver) { d.logger = l } }

func WithObserver(o Observer) Option {
	return func(d *Driver) { d.observers = append(d.observers, o) }
}

func New(cfg Config, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Driver{
		cfg:    cfg,
		buf:    mesh.NewBuffers(initialVertexCapacity),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.clock == nil {
		d.clock = NewWallClock()
	}
	if d.rnd == nil {
		d.rnd = splittree.NewSource(cfg.Seed)
	}
	d.ec = splittree.NewEmitContext(d.rnd, cfg.Params, d.buf)
	return d, nil
}

func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }
func (d *Driver) AddMetric(m Metric)     { d.metrics = append(d.metrics, m) }

func (d *Driver) Config() Config         { return d.cfg }
func (d *Driver) Root() *splittree.Node  { return d.root }
func (d *Driver) Counters() Counters     { return d.counters }
func (d *Driver) Buffers() *mesh.Buffers { return d.buf }

// Last returns the most recent frame. Its slices are only valid until the
// next Step.
func (d *Driver) Last() Frame { return d.last }

// Advance steps the driver at the clock's current time.
func (d *Driver) Advance() Frame {
	return d.Step(d.clock.Now())
}

// Step rebuilds the geometry for time now.
func (d *Driver) Step(now float64) Frame {
	start := time.Now()
	d.buf.Reset()
	d.ec.Reset()

	f := Frame{Index: d.counters.Frames, Time: now}

	if d.root == nil {
		d.root = splittree.NewNode(d.rnd, d.cfg.Params, now, d.cfg.InitialAxis)
		if d.counters.Seeds == 0 {
			d.counters.Seeds++
			f.Seeded = true
			d.logger.Debug("root seeded", "time", now, "axis", d.root.Axis, "direction", d.root.Direction)
		} else {
			d.counters.Recoveries++
			f.Recovered = true
			d.logger.Debug("root recreated", "time", now, "axis", d.root.Axis, "direction", d.root.Direction)
		}
	}

	prev := d.root
	d.root = prev.Emit(d.ec, now, d.cfg.FadeAlpha, d.cfg.Box)
	if d.root != prev {
		d.counters.Replacements++
		f.Replaced = true
		if d.root == nil {
			d.counters.Losses++
			f.Lost = true
			d.logger.Debug("root expired without survivor", "time", now)
		} else {
			d.logger.Debug("root replaced", "time", now, "axis", d.root.Axis, "time_end", d.root.TimeEnd)
		}
	}

	d.counters.Frames++
	d.counters.Spawned += d.ec.Spawned

	f.Positions = d.buf.Positions
	f.Colors = d.buf.Colors
	f.Vertices = d.buf.VertexCount()
	f.Triangles = d.buf.TriangleCount()
	f.Tree = splittree.Measure(d.root, now)
	f.Spawned = d.ec.Spawned
	f.Expired = d.ec.Expired
	f.Elapsed = time.Since(start)
	d.last = f

	for _, m := range d.metrics {
		m.Observe(&f)
	}
	for _, o := range d.observers {
		o.OnFrame(&f)
	}
	return f
}

// Present hands a frame to the backend: upload both arrays, draw the
// triangle list, then show it.
func (d *Driver) Present(b Backend, f Frame) error {
	if err := b.Upload(f.Positions, f.Colors); err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	if err := b.Draw(f.Vertices); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	if err := b.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

// Metrics collects the current value of every registered metric.
func (d *Driver) Metrics() map[string]float64 {
	out := make(map[string]float64, len(d.metrics))
	for _, m := range d.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Snapshot copies the current tree.
func (d *Driver) Snapshot() (*splittree.Snapshot, error) {
	if d.root == nil {
		return nil, ErrNoRoot
	}
	return splittree.Snap(d.root), nil
}

// Reset drops the tree and counters and reseeds the random source.
func (d *Driver) Reset(seed int64) {
	d.cfg.Seed = seed
	d.root = nil
	d.counters = Counters{}
	d.last = Frame{}
	d.rnd = splittree.NewSource(seed)
	d.ec = splittree.NewEmitContext(d.rnd, d.cfg.Params, d.buf)
	for _, m := range d.metrics {
		m.Reset()
	}
}

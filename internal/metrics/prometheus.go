package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/san-kum/splitbox/internal/frame"
)

const namespace = "splitbox"

// Collector exports frame statistics as Prometheus series. It implements
// frame.Observer.
type Collector struct {
	frames       prometheus.Counter
	replacements prometheus.Counter
	recoveries   prometheus.Counter
	losses       prometheus.Counter
	spawned      prometheus.Counter
	expired      prometheus.Counter
	vertices     prometheus.Gauge
	nodes        prometheus.Gauge
	depth        prometheus.Gauge
	stepSeconds  prometheus.Histogram
}

func NewCollector() *Collector {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}
	return &Collector{
		frames:       counter("frames_total", "Frames produced by the driver."),
		replacements: counter("root_replacements_total", "Times an expired root was replaced by a child."),
		recoveries:   counter("root_recoveries_total", "Times a new root was created after the tree was lost."),
		losses:       counter("root_losses_total", "Times the root expired with no surviving child."),
		spawned:      counter("nodes_spawned_total", "Child nodes created during emission."),
		expired:      counter("nodes_expired_total", "Nodes that had outlived their lifetime when emitted."),
		vertices:     gauge("vertices", "Vertices emitted in the last frame."),
		nodes:        gauge("tree_nodes", "Nodes in the tree after the last frame."),
		depth:        gauge("tree_depth", "Depth of the deepest node after the last frame."),
		stepSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Time spent emitting one frame.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}
}

func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, col := range []prometheus.Collector{
		c.frames, c.replacements, c.recoveries, c.losses, c.spawned,
		c.expired, c.vertices, c.nodes, c.depth, c.stepSeconds,
	} {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) OnFrame(f *frame.Frame) {
	c.frames.Inc()
	if f.Replaced {
		c.replacements.Inc()
	}
	if f.Recovered {
		c.recoveries.Inc()
	}
	if f.Lost {
		c.losses.Inc()
	}
	c.spawned.Add(float64(f.Spawned))
	c.expired.Add(float64(f.Expired))
	c.vertices.Set(float64(f.Vertices))
	c.nodes.Set(float64(f.Tree.Nodes))
	c.depth.Set(float64(f.Tree.MaxDepth))
	c.stepSeconds.Observe(f.Elapsed.Seconds())
}

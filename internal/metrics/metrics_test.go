package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/splitbox/internal/frame"
	"github.com/san-kum/splitbox/internal/splittree"
)

func frames() []*frame.Frame {
	return []*frame.Frame{
		{Vertices: 6, Tree: splittree.Stats{Nodes: 1}},
		{Vertices: 18, Tree: splittree.Stats{Nodes: 3, MaxDepth: 1}, Spawned: 2},
		{Vertices: 12, Tree: splittree.Stats{Nodes: 2, MaxDepth: 1}, Replaced: true, Expired: 1},
		{Vertices: 0, Lost: true, Expired: 1},
	}
}

func observeAll(m frame.Metric) {
	for _, f := range frames() {
		m.Observe(f)
	}
}

func TestMeanVertices(t *testing.T) {
	m := NewMeanVertices()
	assert.Equal(t, 0.0, m.Value())

	observeAll(m)
	assert.InDelta(t, 9.0, m.Value(), 1e-9)

	m.Reset()
	assert.Equal(t, 0.0, m.Value())
}

func TestPeaks(t *testing.T) {
	tests := []struct {
		metric *Peak
		want   float64
	}{
		{NewPeakVertices(), 18},
		{NewPeakNodes(), 3},
		{NewPeakDepth(), 1},
	}
	for _, tt := range tests {
		t.Run(tt.metric.Name(), func(t *testing.T) {
			observeAll(tt.metric)
			assert.Equal(t, tt.want, tt.metric.Value())
			tt.metric.Reset()
			assert.Equal(t, 0.0, tt.metric.Value())
		})
	}
}

func TestLifecycleCounts(t *testing.T) {
	r, l, c := NewReplacements(), NewLosses(), NewContinuity()
	assert.Equal(t, 1.0, c.Value())

	for _, m := range []frame.Metric{r, l, c} {
		observeAll(m)
	}
	assert.Equal(t, 1.0, r.Value())
	assert.Equal(t, 1.0, l.Value())
	assert.InDelta(t, 0.75, c.Value(), 1e-9)
}

func TestDefaultNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Default() {
		assert.False(t, seen[m.Name()], "duplicate metric %s", m.Name())
		seen[m.Name()] = true
	}
	assert.Len(t, seen, 7)
}

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector()
	require.NoError(t, c.Register(reg))

	for _, f := range frames() {
		f.Elapsed = 50 * time.Microsecond
		c.OnFrame(f)
	}

	assert.Equal(t, 4.0, testutil.ToFloat64(c.frames))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.replacements))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.losses))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.spawned))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.expired))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.vertices))

	expected := `
# HELP splitbox_tree_nodes Nodes in the tree after the last frame.
# TYPE splitbox_tree_nodes gauge
splitbox_tree_nodes 0
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "splitbox_tree_nodes"))
	assert.Equal(t, 1, testutil.CollectAndCount(c.stepSeconds))
}

func TestCollectorDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, NewCollector().Register(reg))
	assert.Error(t, NewCollector().Register(reg))
}

package export

import (
	"strings"
	"testing"

	"github.com/san-kum/splitbox/internal/mesh"
	"github.com/san-kum/splitbox/internal/viz"
)

func quad(z float64, rgba [4]float64) *mesh.Buffers {
	buf := mesh.NewBuffers(6)
	buf.AppendQuad([3]float64{-1, -1, z}, [3]float64{1, -1, z}, [3]float64{1, 1, z}, [3]float64{-1, 1, z}, rgba)
	return buf
}

func TestFrameToSVG(t *testing.T) {
	svg := FrameToSVG(quad(0, [4]float64{1, 0.5, 0, 0.4}), viz.NewCamera(), 200, 100)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not a complete svg document")
	}
	if n := strings.Count(svg, "<polygon"); n != 2 {
		t.Errorf("expected 2 polygons, got %d", n)
	}
	if !strings.Contains(svg, `fill="rgb(255,127,0)"`) {
		t.Error("missing triangle colour")
	}
	if !strings.Contains(svg, `fill-opacity="0.400"`) {
		t.Error("missing triangle alpha")
	}
}

func TestFrameToSVGSkipsBehindCamera(t *testing.T) {
	svg := FrameToSVG(quad(10, [4]float64{1, 1, 1, 1}), viz.NewCamera(), 100, 100)
	if strings.Contains(svg, "<polygon") {
		t.Error("triangles behind the camera were exported")
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Plot(3, 3, viz.RGBA{0.4, 0.4, 0.4, 1})

	svg := CanvasToSVG(c, 10)
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(svg, `fill="#ffffff"`) || !strings.Contains(svg, `fill="rgb(255,255,255)"`) {
		t.Errorf("unexpected fills in %s", svg)
	}
	if CanvasToSVG(nil, 1) != "" {
		t.Error("nil canvas should give empty output")
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("single point should give empty output")
	}
	svg := SeriesToSVG([]float64{6, 18, 12, 0}, 300, 100, "#00ff88")
	if !strings.Contains(svg, `stroke="#00ff88"`) {
		t.Error("missing stroke colour")
	}
	if n := strings.Count(svg, " L"); n != 3 {
		t.Errorf("expected 3 line segments, got %d", n)
	}
	if !strings.Contains(svg, "M0.0,") {
		t.Error("path should start at x=0")
	}
}

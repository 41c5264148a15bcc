package viz

import (
	"fmt"

	"github.com/san-kum/splitbox/internal/mesh"
	"github.com/san-kum/splitbox/internal/splittree"
)

// Terminal is a frame.Backend that rasterises triangle edges onto a braille
// canvas. The rendered text is available from View after Present.
type Terminal struct {
	Canvas  *Canvas
	Camera  *Camera
	ShowBox bool

	buf       mesh.Buffers
	wire      *Wireframe
	box       *Wireframe
	view      string
	draws     int
	presented int
}

func NewTerminal(w, h int, box splittree.Box) *Terminal {
	return &Terminal{
		Canvas:  NewCanvas(w, h),
		Camera:  NewCamera(),
		ShowBox: true,
		wire:    NewWireframe(),
		box:     CreateBoxWireframe(box, RGBA{0.4, 0.4, 0.5, 0.5}),
	}
}

func (t *Terminal) Upload(positions, colors []float32) error {
	if len(positions)/mesh.PositionStride != len(colors)/mesh.ColorStride {
		return fmt.Errorf("position and color arrays disagree: %d vs %d vertices",
			len(positions)/mesh.PositionStride, len(colors)/mesh.ColorStride)
	}
	t.buf.Positions = append(t.buf.Positions[:0], positions...)
	t.buf.Colors = append(t.buf.Colors[:0], colors...)
	return nil
}

func (t *Terminal) Draw(vertexCount int) error {
	if vertexCount%3 != 0 {
		return fmt.Errorf("vertex count %d is not a whole number of triangles", vertexCount)
	}
	if vertexCount > t.buf.VertexCount() {
		return fmt.Errorf("draw %d vertices, only %d uploaded", vertexCount, t.buf.VertexCount())
	}

	part := mesh.Buffers{
		Positions: t.buf.Positions[:vertexCount*mesh.PositionStride],
		Colors:    t.buf.Colors[:vertexCount*mesh.ColorStride],
	}
	t.wire.Clear()
	t.wire.AddTriangles(&part)

	t.Canvas.Clear()
	if t.ShowBox {
		Render3D(t.Canvas, t.box, t.Camera)
	}
	Render3D(t.Canvas, t.wire, t.Camera)
	t.draws++
	return nil
}

func (t *Terminal) Present() error {
	t.view = t.Canvas.Render()
	t.presented++
	return nil
}

// View returns the last presented frame.
func (t *Terminal) View() string { return t.view }

func (t *Terminal) Presented() int { return t.presented }

// Resize replaces the canvas, keeping the camera.
func (t *Terminal) Resize(w, h int) {
	if w <= 0 || h <= 0 || (w == t.Canvas.Width && h == t.Canvas.Height) {
		return
	}
	t.Canvas = NewCanvas(w, h)
}

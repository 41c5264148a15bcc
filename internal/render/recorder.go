// Package render holds the frame.Backend implementations that need no
// display. The OpenGL window lives in render/window.
package render

import (
	"fmt"

	"github.com/san-kum/splitbox/internal/frame"
	"github.com/san-kum/splitbox/internal/mesh"
)

// Recorder is a headless backend. It keeps copies of the last upload and
// counts calls, and can pretend the display closed after a number of
// presents.
type Recorder struct {
	Positions []float32
	Colors    []float32
	Uploads   int
	Draws     int
	Presents  int
	Drawn     int // vertices in the last draw

	// CloseAfter makes Present return frame.ErrClosed once this many frames
	// have been shown. Zero never closes.
	CloseAfter int
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Upload(positions, colors []float32) error {
	if len(positions)%mesh.PositionStride != 0 || len(colors)%mesh.ColorStride != 0 {
		return fmt.Errorf("ragged arrays: %d positions, %d colors", len(positions), len(colors))
	}
	if len(positions)/mesh.PositionStride != len(colors)/mesh.ColorStride {
		return fmt.Errorf("position and color arrays disagree: %d vs %d vertices",
			len(positions)/mesh.PositionStride, len(colors)/mesh.ColorStride)
	}
	r.Positions = append(r.Positions[:0], positions...)
	r.Colors = append(r.Colors[:0], colors...)
	r.Uploads++
	return nil
}

func (r *Recorder) Draw(vertexCount int) error {
	if vertexCount%3 != 0 {
		return fmt.Errorf("vertex count %d is not a whole number of triangles", vertexCount)
	}
	if uploaded := len(r.Positions) / mesh.PositionStride; vertexCount > uploaded {
		return fmt.Errorf("draw %d vertices, only %d uploaded", vertexCount, uploaded)
	}
	r.Drawn = vertexCount
	r.Draws++
	return nil
}

func (r *Recorder) Present() error {
	if r.CloseAfter > 0 && r.Presents >= r.CloseAfter {
		return frame.ErrClosed
	}
	r.Presents++
	return nil
}

// Mesh returns a copy of the last upload.
func (r *Recorder) Mesh() *mesh.Buffers {
	return (&mesh.Buffers{Positions: r.Positions, Colors: r.Colors}).Clone()
}

package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/splitbox/internal/frame"
)

// FrameExport is the JSON form of one frame's geometry.
type FrameExport struct {
	Time        float64   `json:"time"`
	VertexCount int       `json:"vertex_count"`
	Positions   []float32 `json:"positions"`
	Colors      []float32 `json:"colors"`
}

func ExportFrameJSON(w io.Writer, f frame.Frame) error {
	data := FrameExport{
		Time:        f.Time,
		VertexCount: f.Vertices,
		Positions:   append([]float32{}, f.Positions...),
		Colors:      append([]float32{}, f.Colors...),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/splitbox/internal/mesh"
	"github.com/san-kum/splitbox/internal/viz"
)

const background = "#000000"

type triangle struct {
	pts   [3][2]int
	depth float64
	color [4]float32
}

// FrameToSVG projects every triangle in buf through cam onto a width x height
// image. Triangles are painted far to near and blended with "screen" so
// overlapping faces brighten as they do in the window.
func FrameToSVG(buf *mesh.Buffers, cam *viz.Camera, width, height int) string {
	tris := make([]triangle, 0, buf.TriangleCount())
	for i := 0; i+2 < buf.VertexCount(); i += 3 {
		var tri triangle
		visible := false
		for k := 0; k < 3; k++ {
			p := buf.Vertex(i + k)
			x, y, z, ok := cam.Project(viz.Vec3{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}, width, height)
			if z >= cam.Distance-cam.Near {
				visible = false
				break
			}
			visible = visible || ok
			tri.pts[k] = [2]int{x, y}
			tri.depth += z / 3
		}
		if !visible {
			continue
		}
		tri.color = buf.Color(i)
		tris = append(tris, tri)
	}
	sort.SliceStable(tris, func(i, j int) bool { return tris[i].depth < tris[j].depth })

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g style="mix-blend-mode:screen">
`, width, height, width, height, background))

	for _, t := range tris {
		c := t.color
		sb.WriteString(fmt.Sprintf(`<polygon points="%d,%d %d,%d %d,%d" fill="rgb(%d,%d,%d)" fill-opacity="%.3f"/>
`, t.pts[0][0], t.pts[0][1], t.pts[1][0], t.pts[1][1], t.pts[2][0], t.pts[2][1],
			byteOf(c[0]), byteOf(c[1]), byteOf(c[2]), c[3]))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// CanvasToSVG converts a braille canvas to SVG, one circle per lit dot,
// coloured by the cell tint.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.DotsWide()) * scale
	height := float64(canvas.DotsHigh()) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	dotRadius := scale * 0.4
	for y := 0; y < canvas.DotsHigh(); y++ {
		for x := 0; x < canvas.DotsWide(); x++ {
			if !canvas.Lit(x, y) {
				continue
			}
			t := canvas.Tint[y/4][x/2]
			fill := fmt.Sprintf("rgb(%d,%d,%d)", byteOf(t[0]*2.5), byteOf(t[1]*2.5), byteOf(t[2]*2.5))
			if t == [3]float32{} {
				fill = "#ffffff"
			}
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, float64(x)*scale+scale/2, float64(y)*scale+scale/2, dotRadius, fill))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots values against their index as a polyline.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2
	step := float64(width) / float64(len(values)-1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) * step
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func byteOf(v float32) int {
	if v >= 1 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return int(v * 255)
}

package viz

import (
	"math"
	"sort"

	"github.com/san-kum/splitbox/internal/mesh"
	"github.com/san-kum/splitbox/internal/splittree"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Camera looks down -Z from Distance at the origin and orbits the scene by
// rotating points before projection.
type Camera struct {
	Distance         float64
	FOV, Near        float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

// NewCamera matches the window view: eye at (0, 0, 4), 45 degree field of view.
func NewCamera() *Camera {
	return &Camera{Distance: 4, FOV: math.Pi / 4, Near: 0.1, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) ResetView() {
	c.RotX, c.RotY, c.RotZ, c.Zoom = 0, 0, 0, 1
}

func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project maps a world point to screen coordinates on a sw x sh surface.
// It returns x, y, the rotated depth (larger is nearer) and whether the
// point is in front of the camera and on screen.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	dz := c.Distance - rot.Z
	if dz < c.Near {
		return 0, 0, rot.Z, false
	}
	focal := 1 / math.Tan(c.FOV/2)
	half := math.Min(float64(sw), float64(sh)) / 2
	sx := int(math.Round(rot.X*focal/dz*half)) + sw/2
	sy := int(math.Round(-rot.Y*focal/dz*half)) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

func (c *Camera) inFront(depth float64) bool { return c.Distance-depth >= c.Near }

type Edge struct {
	Start, End Vec3
	Color      RGBA
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe                 { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e Vec3, c RGBA) { w.Edges = append(w.Edges, Edge{s, e, c}) }
func (w *Wireframe) Clear()                    { w.Edges = w.Edges[:0] }

// AddTriangles appends the three edges of every triangle in buf.
func (w *Wireframe) AddTriangles(buf *mesh.Buffers) {
	for i := 0; i+2 < buf.VertexCount(); i += 3 {
		a, b, c := vertexAt(buf, i), vertexAt(buf, i+1), vertexAt(buf, i+2)
		col := RGBA(buf.Color(i))
		w.AddEdge(a, b, col)
		w.AddEdge(b, c, col)
		w.AddEdge(c, a, col)
	}
}

func vertexAt(buf *mesh.Buffers, i int) Vec3 {
	p := buf.Vertex(i)
	return Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
}

type ProjectedEdge struct {
	X1, Y1, X2, Y2 int
	Depth          float64
	Color          RGBA
}

// Render3D draws the wireframe onto the canvas, far edges first.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.DotsWide(), c.DotsHigh()
	proj := make([]ProjectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, v2 := cam.Project(e.End, cw, ch)
		if !cam.inFront(d1) || !cam.inFront(d2) {
			continue
		}
		if v1 || v2 {
			proj = append(proj, ProjectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Color})
		}
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].Depth < proj[j].Depth })
	for _, e := range proj {
		c.DrawLine(e.X1, e.Y1, e.X2, e.Y2, e.Color)
	}
}

// CreateBoxWireframe outlines a box with its twelve edges.
func CreateBoxWireframe(b splittree.Box, col RGBA) *Wireframe {
	w := NewWireframe()
	o, e := b.Origin, b.Extents
	v := make([]Vec3, 8)
	for i := range v {
		v[i] = Vec3{o[0], o[1], o[2]}
		if i&1 != 0 {
			v[i].X += e[0]
		}
		if i&2 != 0 {
			v[i].Y += e[1]
		}
		if i&4 != 0 {
			v[i].Z += e[2]
		}
	}
	ei := [][2]int{{0, 1}, {2, 3}, {4, 5}, {6, 7}, {0, 2}, {1, 3}, {4, 6}, {5, 7}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	for _, p := range ei {
		w.AddEdge(v[p[0]], v[p[1]], col)
	}
	return w
}

package splittree

import "github.com/san-kum/splitbox/internal/mesh"

// Node is one time-bounded split of a box. Left and Right are owned
// exclusively by the node and are created at most once each.
type Node struct {
	TimeStart float64
	TimeEnd   float64
	Axis      Axis
	Direction bool
	Color     Color
	Left      *Node
	Right     *Node
}

// EmitContext carries the collaborators shared by one emission pass.
type EmitContext struct {
	Rand   Source
	Params Params
	Out    *mesh.Buffers

	// Spawned and Expired count nodes created and replaced since the last
	// call to Reset.
	Spawned int
	Expired int

	depth int
}

func NewEmitContext(rnd Source, params Params, out *mesh.Buffers) *EmitContext {
	return &EmitContext{Rand: rnd, Params: params, Out: out}
}

func (ec *EmitContext) Reset() {
	ec.Spawned = 0
	ec.Expired = 0
	ec.depth = 0
}

// NewNode creates a childless node living from start to start+Lifetime with
// a freshly drawn colour and direction.
func NewNode(rnd Source, p Params, start float64, axis Axis) *Node {
	n := &Node{
		TimeStart: start,
		TimeEnd:   start + p.Lifetime,
		Axis:      axis,
	}
	n.Color = Color{
		R: p.ColorMin + rnd.Float64()*p.ColorSpan,
		G: p.ColorMin + rnd.Float64()*p.ColorSpan,
		B: p.ColorMin + rnd.Float64()*p.ColorSpan,
	}
	n.Direction = rnd.Float64() < 0.5
	return n
}

// Emit appends this node's subtree geometry to ec.Out and returns the node
// that should replace it in its parent's slot (or as root).
func (n *Node) Emit(ec *EmitContext, time, fadeAlpha float64, box Box) *Node {
	fraction := n.Fraction(time)
	alpha := Fade(fraction, fadeAlpha, ec.Params.FadeWindow)
	if n.Direction {
		fraction = 1 - fraction
	}

	if ec.canSpawn() {
		if n.Left == nil && ec.Rand.Float64() < (1-fraction)*(1-fraction)/ec.Params.SpawnDivisor {
			n.Left = n.spawn(ec, time)
		}
		if n.Right == nil && ec.Rand.Float64() < fraction*fraction/ec.Params.SpawnDivisor {
			n.Right = n.spawn(ec, time)
		}
	}

	offset := box.Extents[n.Axis] * fraction
	neg, pos := box.Split(n.Axis, offset)

	ec.depth++
	if n.Left != nil {
		n.Left = n.Left.Emit(ec, time, fadeAlpha, neg)
	}
	if n.Right != nil {
		n.Right = n.Right.Emit(ec, time, fadeAlpha, pos)
	}
	ec.depth--

	n.emitPlane(ec.Out, box, offset, alpha)

	if time < n.TimeEnd {
		return n
	}
	ec.Expired++
	return n.Survivor()
}

// Expired reports whether the node's lifetime has ended at time.
func (n *Node) Expired(time float64) bool {
	return time >= n.TimeEnd
}

// Survivor is the child that inherits the node's slot on expiry.
func (n *Node) Survivor() *Node {
	if n.Direction {
		return n.Right
	}
	return n.Left
}

func (ec *EmitContext) canSpawn() bool {
	return ec.Params.MaxDepth <= 0 || ec.depth < ec.Params.MaxDepth
}

func (n *Node) spawn(ec *EmitContext, time float64) *Node {
	a, b := n.Axis.Others()
	axis := a
	if ec.Rand.Intn(2) == 1 {
		axis = b
	}
	ec.Spawned++
	return NewNode(ec.Rand, ec.Params, time, axis)
}

// emitPlane appends the split-plane quad spanning the box on the two axes
// perpendicular to n.Axis.
func (n *Node) emitPlane(out *mesh.Buffers, box Box, offset, alpha float64) {
	u, v := n.Axis.Others()

	var p00 [3]float64
	p00[n.Axis] = box.Origin[n.Axis] + offset
	p00[u] = box.Origin[u]
	p00[v] = box.Origin[v]

	p10, p11, p01 := p00, p00, p00
	p10[u] += box.Extents[u]
	p11[u] += box.Extents[u]
	p11[v] += box.Extents[v]
	p01[v] += box.Extents[v]

	out.AppendQuad(p00, p10, p11, p01, [4]float64{n.Color.R, n.Color.G, n.Color.B, alpha})
}

package splittree

// Walk visits the tree depth-first, parents before children. The root has
// depth 0. Returning false from fn skips that node's children.
func Walk(root *Node, fn func(n *Node, depth int) bool) {
	walk(root, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	walk(n.Left, depth+1, fn)
	walk(n.Right, depth+1, fn)
}

type Stats struct {
	Nodes    int `json:"nodes"`
	Leaves   int `json:"leaves"`
	MaxDepth int `json:"max_depth"`
	// Expired counts reachable nodes whose lifetime has already ended.
	Expired int `json:"expired"`
}

func Measure(root *Node, time float64) Stats {
	var s Stats
	Walk(root, func(n *Node, depth int) bool {
		s.Nodes++
		if n.Left == nil && n.Right == nil {
			s.Leaves++
		}
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		if n.Expired(time) {
			s.Expired++
		}
		return true
	})
	return s
}

// Snapshot is a serialisable copy of a subtree.
type Snapshot struct {
	TimeStart float64    `json:"time_start"`
	TimeEnd   float64    `json:"time_end"`
	Axis      string     `json:"axis"`
	Direction bool       `json:"direction"`
	Color     [3]float64 `json:"color"`
	Left      *Snapshot  `json:"left,omitempty"`
	Right     *Snapshot  `json:"right,omitempty"`
}

func Snap(n *Node) *Snapshot {
	if n == nil {
		return nil
	}
	return &Snapshot{
		TimeStart: n.TimeStart,
		TimeEnd:   n.TimeEnd,
		Axis:      n.Axis.String(),
		Direction: n.Direction,
		Color:     [3]float64{n.Color.R, n.Color.G, n.Color.B},
		Left:      Snap(n.Left),
		Right:     Snap(n.Right),
	}
}

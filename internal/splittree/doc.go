// Package splittree implements a lazily grown binary tree of axis-aligned
// box splits that emits triangle geometry every frame.
//
// Each [Node] owns a lifetime window, a split axis and up to two children.
// Calling [Node.Emit] once per frame:
//
//   - computes the node's lifetime fraction and fade,
//   - spawns missing children with a fraction-dependent probability,
//   - recurses into the two sub-boxes on either side of the split plane,
//   - appends the split-plane quad to the output buffers,
//   - returns the node that should occupy its slot on the next frame.
//
// The returned node is the receiver while the node is alive. Once its
// lifetime has ended the surviving child is returned instead (right when
// Direction is set, left otherwise), which may be nil.
//
// # Example
//
//	ec := splittree.NewEmitContext(splittree.NewSource(42), splittree.DefaultParams(), buf)
//	root := splittree.NewNode(ec.Rand, ec.Params, now, splittree.X)
//	root = root.Emit(ec, now, 0.4, box)
//
// # Thread Safety
//
// Nodes and EmitContext are not safe for concurrent use. A tree is owned by a
// single driver goroutine.
package splittree

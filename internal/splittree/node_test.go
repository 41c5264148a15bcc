package splittree_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/splitbox/internal/mesh"
	"github.com/san-kum/splitbox/internal/splittree"
)

var cube = splittree.Box{
	Origin:  splittree.Vec3{-1.5, -1.5, -1.5},
	Extents: splittree.Vec3{3, 3, 3},
}

// never is a source whose spawn rolls always fail.
func never() splittree.Source { return splittree.NewSequence(0.99) }

func leaf(start, end float64, axis splittree.Axis, dir bool) *splittree.Node {
	return &splittree.Node{
		TimeStart: start,
		TimeEnd:   end,
		Axis:      axis,
		Direction: dir,
		Color:     splittree.Color{R: 0.5, G: 0.4, B: 0.6},
	}
}

var _ = Describe("Fraction", func() {
	n := leaf(1000, 6000, splittree.X, false)

	It("is negative before the node starts", func() {
		Expect(n.Fraction(500)).To(BeNumerically("<", 0))
		Expect(n.Fraction(500)).To(BeNumerically("~", -0.1, 1e-12))
	})

	It("is linear inside the lifetime", func() {
		Expect(n.Fraction(3500)).To(BeNumerically("~", 0.5, 1e-12))
	})

	It("never exceeds 1", func() {
		for _, t := range []float64{6000, 6001, 1e6} {
			Expect(n.Fraction(t)).To(Equal(1.0))
		}
	})
})

var _ = Describe("Fade", func() {
	It("is zero at both ends of the lifetime", func() {
		Expect(splittree.Fade(0, 0.4, 0.1)).To(BeZero())
		Expect(splittree.Fade(1, 0.4, 0.1)).To(BeZero())
	})

	It("holds at exactly full alpha through the middle", func() {
		for _, f := range []float64{0.1, 0.25, 0.5, 0.75, 0.9} {
			Expect(splittree.Fade(f, 0.4, 0.1)).To(Equal(0.4), "fraction %f", f)
		}
	})

	It("ramps linearly at the edges", func() {
		Expect(splittree.Fade(0.05, 0.4, 0.1)).To(BeNumerically("~", 0.2, 1e-9))
		Expect(splittree.Fade(0.95, 0.4, 0.1)).To(BeNumerically("~", 0.2, 1e-9))
	})

	It("does not go negative for fractions before the start", func() {
		Expect(splittree.Fade(-0.3, 0.4, 0.1)).To(BeZero())
	})
})

var _ = Describe("Emit", func() {
	var (
		buf *mesh.Buffers
		ec  *splittree.EmitContext
	)

	BeforeEach(func() {
		buf = mesh.NewBuffers(64)
		ec = splittree.NewEmitContext(never(), splittree.DefaultParams(), buf)
	})

	Context("a live root at half its lifetime", func() {
		It("returns itself and emits the split plane at x = 0", func() {
			root := leaf(0, 5000, splittree.X, false)

			next := root.Emit(ec, 2500, 0.4, cube)

			Expect(next).To(BeIdenticalTo(root))
			Expect(buf.VertexCount()).To(Equal(6))
			Expect(buf.Colors).To(HaveLen(6 * mesh.ColorStride))
			for i := 0; i < 6; i++ {
				v := buf.Vertex(i)
				Expect(v[0]).To(BeZero())
				Expect(v[1]).To(BeElementOf(float32(-1.5), float32(1.5)))
				Expect(v[2]).To(BeElementOf(float32(-1.5), float32(1.5)))
				c := buf.Color(i)
				Expect(c[3]).To(BeNumerically("~", 0.4, 1e-6))
				Expect(c[0]).To(BeNumerically("~", 0.5, 1e-6))
			}
		})

		It("mirrors the split plane when direction is set", func() {
			root := leaf(0, 5000, splittree.Y, true)

			root.Emit(ec, 1000, 0.4, cube)

			// fraction 0.2 reversed to 0.8: y = -1.5 + 3*0.8
			for i := 0; i < 6; i++ {
				Expect(buf.Vertex(i)[1]).To(BeNumerically("~", 0.9, 1e-6))
			}
		})
	})

	Context("at the end of its lifetime", func() {
		It("returns nil when the surviving child was never spawned", func() {
			root := leaf(0, 5000, splittree.X, false)

			Expect(root.Emit(ec, 5000, 0.4, cube)).To(BeNil())
			Expect(buf.VertexCount()).To(Equal(6))
			Expect(ec.Expired).To(Equal(1))
		})

		It("hands its slot to the left child when direction is false", func() {
			root := leaf(0, 5000, splittree.X, false)
			root.Left = leaf(100, 5100, splittree.Y, false)
			root.Right = leaf(100, 5100, splittree.Z, false)

			Expect(root.Emit(ec, 5000, 0.4, cube)).To(BeIdenticalTo(root.Left))
		})

		It("hands its slot to the right child when direction is true", func() {
			root := leaf(0, 5000, splittree.X, true)
			root.Left = leaf(100, 5100, splittree.Y, false)
			root.Right = leaf(100, 5100, splittree.Z, false)

			Expect(root.Emit(ec, 5001, 0.4, cube)).To(BeIdenticalTo(root.Right))
		})

		It("prunes expired children in place", func() {
			root := leaf(0, 5000, splittree.X, false)
			child := leaf(0, 1000, splittree.Y, false)
			grandchild := leaf(500, 5500, splittree.Z, false)
			child.Left = grandchild
			root.Left = child

			Expect(root.Emit(ec, 1000, 0.4, cube)).To(BeIdenticalTo(root))
			Expect(root.Left).To(BeIdenticalTo(grandchild))
			Expect(buf.VertexCount()).To(Equal(18))
		})
	})

	Context("with children", func() {
		It("emits children first, then its own plane", func() {
			root := leaf(0, 5000, splittree.X, false)
			root.Left = leaf(0, 5000, splittree.Y, false)
			root.Right = leaf(0, 5000, splittree.Z, false)

			root.Emit(ec, 2500, 0.4, cube)

			Expect(buf.VertexCount()).To(Equal(18))
			// left child lives in x in [-1.5, 0], split on y at its midpoint
			for i := 0; i < 6; i++ {
				v := buf.Vertex(i)
				Expect(v[1]).To(BeZero())
				Expect(v[0]).To(BeNumerically(">=", -1.5))
				Expect(v[0]).To(BeNumerically("<=", 0))
			}
			// right child lives in x in [0, 1.5], split on z
			for i := 6; i < 12; i++ {
				v := buf.Vertex(i)
				Expect(v[2]).To(BeZero())
				Expect(v[0]).To(BeNumerically(">=", 0))
			}
			for i := 12; i < 18; i++ {
				Expect(buf.Vertex(i)[0]).To(BeZero())
			}
		})
	})

	Context("spawning", func() {
		It("gives children a different axis and a fresh lifetime", func() {
			params := splittree.DefaultParams()
			params.MaxDepth = 1
			ec = splittree.NewEmitContext(splittree.NewSequence(0), params, buf)
			root := leaf(0, 5000, splittree.X, false)

			root.Emit(ec, 2500, 0.4, cube)

			Expect(root.Left).NotTo(BeNil())
			Expect(root.Right).NotTo(BeNil())
			Expect(ec.Spawned).To(Equal(2))
			for _, c := range []*splittree.Node{root.Left, root.Right} {
				Expect(c.Axis).NotTo(Equal(splittree.X))
				Expect(c.TimeStart).To(Equal(2500.0))
				Expect(c.TimeEnd).To(Equal(7500.0))
				Expect(c.Left).To(BeNil())
				Expect(c.Right).To(BeNil())
			}
			Expect(buf.VertexCount()).To(Equal(18))
		})

		// Left spawns on roll < (1-f)^2/div and right on roll < f^2/div, where f
		// is mirrored when Direction is set. div is 20.
		DescribeTable("compares each roll with its own threshold",
			func(direction bool, time, roll float64, wantLeft, wantRight bool) {
				params := splittree.DefaultParams()
				params.MaxDepth = 1
				ec = splittree.NewEmitContext(splittree.NewSequence(roll), params, buf)
				root := leaf(0, 5000, splittree.X, direction)

				root.Emit(ec, time, 0.4, cube)

				Expect(root.Left != nil).To(Equal(wantLeft), "left")
				Expect(root.Right != nil).To(Equal(wantRight), "right")
			},
			// f 0.2 mirrored to 0.8: left 0.002, right 0.032
			Entry("mirrored fraction favours the right child", true, 1000.0, 0.01, false, true),
			// f 0.2: left 0.032, right 0.002
			Entry("raw fraction favours the left child", false, 1000.0, 0.01, true, false),
			Entry("roll above both thresholds spawns nothing", false, 1000.0, 0.033, false, false),
			// f 0.5: both thresholds are 0.0125
			Entry("roll just below the midpoint threshold", false, 2500.0, 0.0124, true, true),
			Entry("roll just above the midpoint threshold", false, 2500.0, 0.0126, false, false),
			Entry("mirroring leaves the midpoint unchanged", true, 2500.0, 0.0126, false, false),
		)

		It("never spawns a child whose roll fails", func() {
			root := leaf(0, 5000, splittree.X, false)
			for t := 0.0; t < 5000; t += 100 {
				buf.Reset()
				root.Emit(ec, t, 0.4, cube)
			}
			Expect(root.Left).To(BeNil())
			Expect(root.Right).To(BeNil())
			Expect(ec.Spawned).To(BeZero())
		})

		It("never un-spawns children as time advances", func() {
			ec = splittree.NewEmitContext(splittree.NewSource(11), splittree.DefaultParams(), buf)
			root := leaf(0, 5000, splittree.X, false)
			var left, right *splittree.Node

			for t := 0.0; t < 5000; t += 10 {
				buf.Reset()
				Expect(root.Emit(ec, t, 0.4, cube)).To(BeIdenticalTo(root))
				if left != nil {
					Expect(root.Left).To(BeIdenticalTo(left))
				}
				if right != nil {
					Expect(root.Right).To(BeIdenticalTo(right))
				}
				left, right = root.Left, root.Right
			}
		})

		It("never repeats the parent's axis anywhere in the tree", func() {
			ec = splittree.NewEmitContext(splittree.NewSource(3), splittree.DefaultParams(), buf)
			root := leaf(0, 5000, splittree.X, false)
			for t := 0.0; t < 4900; t += 20 {
				buf.Reset()
				root.Emit(ec, t, 0.4, cube)
			}

			splittree.Walk(root, func(n *splittree.Node, _ int) bool {
				for _, c := range []*splittree.Node{n.Left, n.Right} {
					if c != nil {
						Expect(c.Axis).NotTo(Equal(n.Axis))
					}
				}
				return true
			})
		})

		It("emits six vertices per reachable node", func() {
			ec = splittree.NewEmitContext(splittree.NewSource(5), splittree.DefaultParams(), buf)
			root := leaf(0, 5000, splittree.X, false)
			for t := 0.0; t < 4000; t += 20 {
				buf.Reset()
				root.Emit(ec, t, 0.4, cube)
			}

			stats := splittree.Measure(root, 4000)
			Expect(buf.VertexCount()).To(Equal(6 * stats.Nodes))
			Expect(buf.Colors).To(HaveLen(4 * buf.VertexCount()))
		})

		It("respects the depth cap", func() {
			params := splittree.DefaultParams()
			params.MaxDepth = 2
			ec = splittree.NewEmitContext(splittree.NewSequence(0), params, buf)
			root := leaf(0, 5000, splittree.X, false)
			for t := 0.0; t < 3000; t += 100 {
				buf.Reset()
				root.Emit(ec, t, 0.4, cube)
			}

			Expect(splittree.Measure(root, 3000).MaxDepth).To(Equal(2))
		})
	})
})

var _ = Describe("NewNode", func() {
	It("draws colours inside the configured band", func() {
		rnd := splittree.NewSource(1)
		p := splittree.DefaultParams()
		for i := 0; i < 200; i++ {
			n := splittree.NewNode(rnd, p, 10, splittree.Z)
			for _, c := range []float64{n.Color.R, n.Color.G, n.Color.B} {
				Expect(c).To(BeNumerically(">=", 0.3))
				Expect(c).To(BeNumerically("<", 0.7))
			}
			Expect(n.TimeEnd - n.TimeStart).To(Equal(p.Lifetime))
		}
	})

	It("is reproducible for a given seed", func() {
		p := splittree.DefaultParams()
		a := splittree.NewNode(splittree.NewSource(9), p, 0, splittree.X)
		b := splittree.NewNode(splittree.NewSource(9), p, 0, splittree.X)
		Expect(a).To(Equal(b))
	})
})

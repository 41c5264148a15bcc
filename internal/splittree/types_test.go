package splittree_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/splitbox/internal/splittree"
)

var _ = Describe("Axis", func() {
	DescribeTable("Others never includes the axis itself",
		func(a, u, v splittree.Axis) {
			gu, gv := a.Others()
			Expect(gu).To(Equal(u))
			Expect(gv).To(Equal(v))
		},
		Entry("x", splittree.X, splittree.Y, splittree.Z),
		Entry("y", splittree.Y, splittree.Z, splittree.X),
		Entry("z", splittree.Z, splittree.X, splittree.Y),
	)

	It("parses names", func() {
		a, err := splittree.ParseAxis("Y")
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(splittree.Y))

		_, err = splittree.ParseAxis("w")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Box", func() {
	It("splits into two boxes that share the plane", func() {
		neg, pos := cube.Split(splittree.Z, 1)

		Expect(neg.Origin).To(Equal(cube.Origin))
		Expect(neg.Extents).To(Equal(splittree.Vec3{3, 3, 1}))
		Expect(pos.Origin).To(Equal(splittree.Vec3{-1.5, -1.5, -0.5}))
		Expect(pos.Extents).To(Equal(splittree.Vec3{3, 3, 2}))
	})
})

var _ = Describe("Snap", func() {
	It("copies the tree shape", func() {
		root := leaf(0, 5000, splittree.X, true)
		root.Right = leaf(10, 5010, splittree.Y, false)

		s := splittree.Snap(root)
		Expect(s.Axis).To(Equal("x"))
		Expect(s.Direction).To(BeTrue())
		Expect(s.Left).To(BeNil())
		Expect(s.Right).NotTo(BeNil())
		Expect(s.Right.Axis).To(Equal("y"))
		Expect(splittree.Snap(nil)).To(BeNil())
	})

	It("measures counts and depth", func() {
		root := leaf(0, 5000, splittree.X, true)
		root.Right = leaf(10, 100, splittree.Y, false)
		root.Right.Left = leaf(20, 5020, splittree.Z, false)

		s := splittree.Measure(root, 200)
		Expect(s.Nodes).To(Equal(3))
		Expect(s.Leaves).To(Equal(1))
		Expect(s.MaxDepth).To(Equal(2))
		Expect(s.Expired).To(Equal(1))
		Expect(splittree.Measure(nil, 0)).To(Equal(splittree.Stats{}))
	})
})

package dynexpr

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func sampleTree() *Node[float64] {
	// (x1 + x2) * cos(3.0)
	return ApplyBinary(2,
		ApplyBinary(1, MustLeafVar[float64](1), MustLeafVar[float64](2)),
		ApplyUnary(1, LeafConst(3.0)),
	)
}

func TestTraversalPreOrder(t *testing.T) {
	Convey("Collect visits nodes pre-order, current before children, left before right", t, func() {
		tree := sampleTree()
		nodes := Collect(tree)

		So(len(nodes), ShouldEqual, 6)
		So(nodes[0], ShouldEqual, tree)
		So(nodes[1], ShouldEqual, tree.Left)
		So(nodes[2], ShouldEqual, tree.Left.Left)
		So(nodes[3], ShouldEqual, tree.Left.Right)
		So(nodes[4], ShouldEqual, tree.Right)
		So(nodes[5], ShouldEqual, tree.Right.Left)
	})

	Convey("Index returns the i-th pre-order node, 1-based", t, func() {
		tree := sampleTree()
		So(Index(tree, 1), ShouldEqual, tree)
		So(Index(tree, 5), ShouldEqual, tree.Right)
		So(Index(tree, 0), ShouldBeNil)
		So(Index(tree, 7), ShouldBeNil)
	})

	Convey("Length matches the number of collected nodes", t, func() {
		tree := sampleTree()
		So(Length(tree), ShouldEqual, len(Collect(tree)))
	})
}

func TestTraversalDerivedOps(t *testing.T) {
	Convey("Any reports whether some node matches", t, func() {
		tree := sampleTree()
		So(Any(func(n *Node[float64]) bool { return n.Degree == DegreeLeaf && !n.Constant }, tree), ShouldBeTrue)
		So(Any(func(n *Node[float64]) bool { return n.Degree == DegreeLeaf && n.Constant && n.Val == 99 }, tree), ShouldBeFalse)
	})

	Convey("Filter returns only matching nodes, in pre-order", t, func() {
		tree := sampleTree()
		leaves := Filter(func(n *Node[float64]) bool { return n.Degree == DegreeLeaf }, tree)
		So(len(leaves), ShouldEqual, 3)
	})

	Convey("Map applies f to every node in pre-order", t, func() {
		tree := sampleTree()
		degrees := Map(func(n *Node[float64]) Degree { return n.Degree }, tree)
		So(degrees, ShouldResemble, []Degree{DegreeBinary, DegreeBinary, DegreeLeaf, DegreeLeaf, DegreeUnary, DegreeLeaf})
	})
}

func TestFold(t *testing.T) {
	Convey("Fold(_ -> 1, sum) counts nodes, matching Length", t, func() {
		tree := sampleTree()
		count := Fold(
			func(*Node[float64]) int { return 1 },
			func(self int, children ...int) int {
				total := self
				for _, c := range children {
					total += c
				}
				return total
			},
			tree,
		)
		So(count, ShouldEqual, Length(tree))
	})
}

package dynexpr

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestValidate(t *testing.T) {
	reg := NewRegistry[float64](
		[]Operator[float64]{{Name: "cos"}},
		[]Operator[float64]{{Name: "+"}},
		false,
	)

	Convey("a well-formed tree validates cleanly", t, func() {
		tree := ApplyBinary(1, MustLeafVar[float64](1), ApplyUnary(1, LeafConst(2.0)))
		So(Validate(tree, reg), ShouldBeNil)
	})

	Convey("an out-of-range unary operator index is reported", t, func() {
		tree := ApplyUnary(5, LeafConst(1.0))
		err := Validate(tree, reg)
		So(err, ShouldNotBeNil)
	})

	Convey("an out-of-range binary operator index is reported", t, func() {
		tree := ApplyBinary(9, LeafConst(1.0), LeafConst(2.0))
		err := Validate(tree, reg)
		So(err, ShouldNotBeNil)
	})

	Convey("a non-positive feature index on a variable leaf is reported", t, func() {
		tree := &Node[float64]{Degree: DegreeLeaf, Constant: false, Feature: 0}
		err := Validate(tree, reg)
		So(err, ShouldNotBeNil)
	})

	Convey("every violation in a tree is aggregated, not just the first", t, func() {
		tree := ApplyBinary(9, &Node[float64]{Degree: DegreeLeaf, Feature: -1}, ApplyUnary(7, LeafConst(1.0)))
		err := Validate(tree, reg)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "3 error")
	})
}

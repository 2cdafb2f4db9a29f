package dynexpr

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRegistryLookup(t *testing.T) {
	Convey("NewRegistry stores unary and binary tuples independently", t, func() {
		reg := NewRegistry[float64](
			[]Operator[float64]{{Name: "cos"}},
			[]Operator[float64]{{Name: "+"}, {Name: "*"}},
			true,
		)

		So(reg.NumUnary(), ShouldEqual, 1)
		So(reg.NumBinary(), ShouldEqual, 2)
		So(reg.AutodiffEnabled(), ShouldBeTrue)

		u, err := reg.LookupUnary(1)
		So(err, ShouldBeNil)
		So(u.Name, ShouldEqual, "cos")

		b, err := reg.LookupBinary(2)
		So(err, ShouldBeNil)
		So(b.Name, ShouldEqual, "*")
	})

	Convey("lookups are 1-based and out-of-range indices error", t, func() {
		reg := NewRegistry[float64]([]Operator[float64]{{Name: "cos"}}, nil, false)

		_, err := reg.LookupUnary(0)
		So(err, ShouldNotBeNil)

		_, err = reg.LookupUnary(2)
		So(err, ShouldNotBeNil)

		_, err = reg.LookupBinary(1)
		So(err, ShouldNotBeNil)
	})

	Convey("the same callable may appear in both tuples as distinct entries", t, func() {
		double := func(a, b float64) float64 { return a + b }
		reg := NewRegistry[float64](
			[]Operator[float64]{{Name: "double", Unary: func(a float64) float64 { return double(a, a) }}},
			[]Operator[float64]{{Name: "double", Binary: double}},
			false,
		)
		u, _ := reg.LookupUnary(1)
		b, _ := reg.LookupBinary(1)
		So(u.Unary(3), ShouldEqual, 6)
		So(b.Binary(3, 4), ShouldEqual, 7)
	})
}

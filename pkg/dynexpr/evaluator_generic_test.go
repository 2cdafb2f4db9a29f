package dynexpr

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// sliceInput adapts a plain []any to GenericInput for a 1-D X, per
// §4.3.4's selectdim(X, axis=1, feature) contract.
type sliceInput []any

func (s sliceInput) Select(feature int) (any, error) {
	if feature < 1 || feature > len(s) {
		return nil, errors.New("feature index out of range")
	}
	return s[feature-1], nil
}

func TestEvaluateGenericSeedScenario(t *testing.T) {
	Convey("S6: string unary greeting and binary concatenation", t, func() {
		reg := NewGenericRegistry(
			[]GenericOperator{{
				Name: "greet",
				Unary: func(v any) (any, error) {
					s, ok := v.(string)
					if !ok {
						return nil, errors.New("greet: not a string")
					}
					return "Hello " + s, nil
				},
			}},
			[]GenericOperator{{
				Name: "*",
				Binary: func(a, b any) (any, error) {
					sa, okA := a.(string)
					sb, okB := b.(string)
					if !okA || !okB {
						return nil, errors.New("*: not both strings")
					}
					return sa + sb, nil
				},
			}},
		)

		tree := ApplyBinary[any](1, MustLeafVar[any](1), LeafConst[any](" World!"))
		x := sliceInput{"Hello"}

		result, complete, err := EvaluateGeneric(tree, x, reg, true)

		So(err, ShouldBeNil)
		So(complete, ShouldBeTrue)
		So(result, ShouldEqual, "Hello World!")
	})
}

func TestEvaluateGenericDispatchFailure(t *testing.T) {
	reg := NewGenericRegistry(nil, []GenericOperator{{
		Name: "*",
		Binary: func(a, b any) (any, error) {
			return nil, errors.New("no method for these types")
		},
	}})
	tree := ApplyBinary[any](1, LeafConst[any](1), LeafConst[any]("x"))
	x := sliceInput{}

	Convey("throwErrors=true surfaces a *DispatchError naming the tree", t, func() {
		_, complete, err := EvaluateGeneric(tree, x, reg, true)
		So(complete, ShouldBeFalse)
		So(err, ShouldNotBeNil)
		var dispatchErr *DispatchError
		So(errors.As(err, &dispatchErr), ShouldBeTrue)
	})

	Convey("throwErrors=false folds the failure into complete=false silently", t, func() {
		result, complete, err := EvaluateGeneric(tree, x, reg, false)
		So(err, ShouldBeNil)
		So(complete, ShouldBeFalse)
		So(result, ShouldBeNil)
	})
}

func TestEvaluateGenericSelectionError(t *testing.T) {
	reg := NewGenericRegistry(nil, nil)
	tree := MustLeafVar[any](5)
	x := sliceInput{"only one"}

	Convey("an out-of-range feature selection is a dispatch failure", t, func() {
		_, complete, err := EvaluateGeneric(tree, x, reg, true)
		So(complete, ShouldBeFalse)
		So(err, ShouldNotBeNil)
	})
}

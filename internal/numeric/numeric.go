// Package numeric holds the small generic numeric helpers shared by the
// node and evaluator code of pkg/dynexpr: the scalar-type constraints and
// the conversion primitive that backs convert_type/leaf_const_typed.
package numeric

import "golang.org/x/exp/constraints"

// Scalar is any type a tree's elements can be made of: an integer or
// floating-point kind. It is deliberately wider than Float so that
// leaf_const_typed and convert_type work for integer-typed trees too, even
// though the evaluator's NaN/Inf bookkeeping only applies to Float.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// Float is the constraint the scalar evaluator requires: a type whose
// values can be tested for NaN/Inf via the standard math functions.
type Float interface {
	constraints.Float
}

// Convert performs the numeric conversion convert_type needs between two
// scalar type parameters. Go permits T1(v) here because every type in both
// Scalar's and the caller's instantiations has a numeric core type; this
// is the same pattern the constraints package itself documents for
// generic numeric conversions.
func Convert[T1, T2 Scalar](v T2) T1 {
	return T1(v)
}

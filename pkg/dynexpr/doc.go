/*
Package dynexpr implements a dynamic symbolic expression tree: a
runtime-mutable expression tree over a user-declared, closed set of
scalar operators, evaluated repeatedly and fast over tabular numeric
input. It is built for the inner loop of a symbolic-regression search:
constructing, mutating, and scoring large numbers of candidate
expressions against a fixed dataset.

# Overview

dynexpr is three tightly coupled pieces:

  - A Registry, the closed, ordered alphabet of unary and binary
    operators a tree's Op indices refer to. Dispatch is by index into a
    tuple, not a vtable.
  - A Node tree: a tagged variant keyed on Degree (0 leaf, 1 unary, 2
    binary), supporting structural mutation, typed conversion, equality,
    hashing, traversal, and sharing-preserving deep copy.
  - An Evaluator: a recursive interpreter that performs structural
    specialization over common tree shapes, constant-subtree folding, and
    non-finite (NaN/Inf) short-circuiting, returning a result vector
    together with a completeness flag rather than erroring on bad data.

# Quick Start

	reg := dynexpr.NewRegistry[float64](
		[]dynexpr.Operator[float64]{{Name: "cos", Unary: math.Cos}},
		[]dynexpr.Operator[float64]{
			{Name: "+", Precedence: dynexpr.PrecedenceAdditive, Binary: func(a, b float64) float64 { return a + b }},
			{Name: "*", Precedence: dynexpr.PrecedenceMultiplicative, Binary: func(a, b float64) float64 { return a * b }},
		},
		false,
	)

	x1 := dynexpr.MustLeafVar[float64](1)
	x2 := dynexpr.MustLeafVar[float64](2)
	tree := dynexpr.ApplyBinary(2, x1, dynexpr.ApplyUnary(1, x2)) // x1 * cos(x2)

	x := dynexpr.NewMatrixFromRows([][]float64{{1.0, 2.0}, {0.0, math.Pi}})
	out, complete := dynexpr.Evaluate(tree, x, reg)

# Operators and Rendering

An Operator carries a Name alongside its callable, so the same registry
drives both evaluation and pretty-printing. It also has Precedence and
Associativity fields, which Render does not consult: every infix
application is wrapped in its own parentheses.

	dynexpr.Render(tree, reg, nil)              // "(x1 * cos(x2))"
	dynexpr.Render(tree, reg, []string{"a","b"}) // "(a * cos(b))"

The canonical operator-name rewrite table (safe_log -> log, safe_pow ->
^, and so on) is applied automatically by Render; the registry itself
still stores operators under whatever name the caller chose.

# Error Handling

Tree construction returns a *ConstructionError synchronously on a client
usage mistake: a malformed leaf, an ambiguous or missing variable name.
Operator indices are not checked at construction; Validate reports an
out-of-range index, and Evaluate panics on one. Evaluate never errors
on data; a
non-finite intermediate or output is communicated entirely through the
returned completeness flag. The generic evaluator, EvaluateGeneric, is
the one place operator-dispatch failure can surface as an error, and
only when its throwErrors argument asks for it; a *DispatchError names
both the failing operator and the subtree it failed on.

# Validation

Validate walks a tree and aggregates every invariant violation it finds
(rather than stopping at the first) into a single error built with
hashicorp/go-multierror, the same way a caller debugging a malformed
tree wants every problem surfaced in one pass.

# Numeric Promotion

Combining or comparing subtrees of different element types, or
evaluating a tree against data of a different element type than the
tree carries, requires an explicit promotion: ApplyBinaryPromote,
EqualPromoting, and EvaluatePromoting all convert to a common
supertype first. EvaluatePromoting additionally prints a diagnostic
once per call (suppressible with SilenceDiagnostics) since silent type
drift is difficult to debug across a search loop evaluating millions of
trees.
*/
package dynexpr

package dynexpr

import (
	"math"

	"github.com/wayneeseguin/dynexpr/internal/numeric"
)

// Evaluate is the scalar evaluator of spec §4.3: it returns a length-n
// output vector (n = X.Cols()) together with a completeness flag. A false
// complete means a non-finite intermediate or output was observed
// somewhere and output must not be relied upon.
//
// Evaluate never errors on data; an invalid Op index (a malformed tree
// referencing an operator the registry doesn't have) is a client usage
// bug and panics, the same way an out-of-range slice index would.
func Evaluate[T numeric.Float](tree *Node[T], x *Matrix[T], reg *Registry[T]) ([]T, bool) {
	n := x.Cols()
	out := make([]T, n)

	if !containsVariable(tree) {
		v, ok := evalConstant(tree, reg)
		if !ok {
			return out, false
		}
		fillConst(out, v)
		return out, true
	}

	if !evalInto(tree, x, reg, out) {
		return out, false
	}
	return out, allFinite(out)
}

// EvaluatePromoting is Evaluate, but accepts a tree and matrix of
// different element types: both are converted to TOut first (via
// ConvertType), and a diagnostic is printed once before proceeding, per
// spec §4.3/§7 and DESIGN.md's Open Question resolution.
func EvaluatePromoting[TOut numeric.Float, TTree, TData numeric.Scalar](tree *Node[TTree], x *Matrix[TData], reg *Registry[TOut]) ([]TOut, bool) {
	warnPromotion(typeName[TTree](), typeName[TData]())
	converted := ConvertType[TOut](tree)
	promotedRows := make([]TOut, x.Rows()*x.Cols())
	for i := 0; i < x.Rows()*x.Cols(); i++ {
		promotedRows[i] = numeric.Convert[TOut](x.dataAt(i))
	}
	px := NewMatrix(promotedRows, x.Rows(), x.Cols())
	return Evaluate(converted, px, reg)
}

func typeName[T any]() string {
	var zero T
	switch any(zero).(type) {
	case float32:
		return "float32"
	case float64:
		return "float64"
	default:
		return "numeric"
	}
}

func (m *Matrix[T]) dataAt(i int) T { return m.data[i] }

// containsVariable reports whether any leaf of tree is a variable
// reference, i.e. whether the constant-subtree fast path (§4.3.1) applies.
func containsVariable[T any](tree *Node[T]) bool {
	return Any(func(n *Node[T]) bool {
		return n.Degree == DegreeLeaf && !n.Constant
	}, tree)
}

// evalConstant is the constant-subtree scalar recursion of §4.3.1: it is
// only ever called on a subtree containing no variable leaf. Any
// non-finite intermediate returns (_, false) immediately.
func evalConstant[T numeric.Float](tree *Node[T], reg *Registry[T]) (T, bool) {
	switch tree.Degree {
	case DegreeLeaf:
		return tree.Val, isFinite(tree.Val)
	case DegreeUnary:
		v, ok := evalConstant(tree.Left, reg)
		if !ok {
			var zero T
			return zero, false
		}
		op := mustUnary(reg, tree.Op)
		r := op.Unary(v)
		return r, isFinite(r)
	default: // DegreeBinary
		l, ok := evalConstant(tree.Left, reg)
		if !ok {
			var zero T
			return zero, false
		}
		r, ok := evalConstant(tree.Right, reg)
		if !ok {
			var zero T
			return zero, false
		}
		res := mustBinary(reg, tree.Op).Binary(l, r)
		return res, isFinite(res)
	}
}

// evalInto fills out (length n) with tree's evaluation against x,
// applying the structural-specialization matrix of §4.3.2. It returns
// false when a fused kernel's pre-read of a constant subexpression turned
// out non-finite (§4.3.3's "return immediately" case); out's contents are
// then not meaningful. A true return means out was fully populated,
// possibly with +Inf standing in for non-finite intermediates at the
// per-element kernels, per §4.3.3.
func evalInto[T numeric.Float](tree *Node[T], x *Matrix[T], reg *Registry[T], out []T) bool {
	switch tree.Degree {
	case DegreeLeaf:
		materializeLeaf(tree, x, out)
		return true
	case DegreeUnary:
		return evalUnaryInto(tree, x, reg, out)
	default: // DegreeBinary
		return evalBinaryInto(tree, x, reg, out)
	}
}

// materializeLeaf is the degree-0 kernel: fill(n, val) for a constant,
// row-slice X[feature, :] for a variable.
func materializeLeaf[T any](leaf *Node[T], x *Matrix[T], out []T) {
	if leaf.Constant {
		fillConst(out, leaf.Val)
		return
	}
	copy(out, x.Row(leaf.Feature))
}

func evalUnaryInto[T numeric.Float](tree *Node[T], x *Matrix[T], reg *Registry[T], out []T) bool {
	g := mustUnary(reg, tree.Op)
	child := tree.Left

	if child.Degree == DegreeUnary && child.Left.Degree == DegreeLeaf {
		// Fused g(f(c)) / g(f(x_k)).
		f := mustUnary(reg, child.Op)
		gc := child.Left
		if gc.Constant {
			c := gc.Val
			if !isFinite(c) {
				return false
			}
			v := f.Unary(c)
			if !isFinite(v) {
				return false
			}
			v = g.Unary(v)
			if !isFinite(v) {
				return false
			}
			fillConst(out, v)
			return true
		}
		row := x.Row(gc.Feature)
		for j := range out {
			v := g.Unary(f.Unary(row[j]))
			out[j] = finiteOrInf(v)
		}
		return true
	}

	if child.Degree == DegreeBinary && child.Left.Degree == DegreeLeaf && child.Right.Degree == DegreeLeaf {
		// Fused g(h(a, b)) over the four constant/variable sub-cases.
		return evalUnaryOfBinaryInto(tree, x, reg, out)
	}

	// General case: recurse into child, then apply g in place.
	buf := make([]T, len(out))
	if !evalInto(child, x, reg, buf) {
		return false
	}
	for j := range out {
		out[j] = finiteOrInf(g.Unary(buf[j]))
	}
	return true
}

func evalUnaryOfBinaryInto[T numeric.Float](tree *Node[T], x *Matrix[T], reg *Registry[T], out []T) bool {
	g := mustUnary(reg, tree.Op)
	child := tree.Left
	h := mustBinary(reg, child.Op)
	l, r := child.Left, child.Right

	switch {
	case l.Constant && r.Constant:
		v := h.Binary(l.Val, r.Val)
		if !isFinite(v) {
			return false
		}
		v = g.Unary(v)
		if !isFinite(v) {
			return false
		}
		fillConst(out, v)
	case l.Constant && !r.Constant:
		row := x.Row(r.Feature)
		for j := range out {
			out[j] = finiteOrInf(g.Unary(h.Binary(l.Val, row[j])))
		}
	case !l.Constant && r.Constant:
		row := x.Row(l.Feature)
		for j := range out {
			out[j] = finiteOrInf(g.Unary(h.Binary(row[j], r.Val)))
		}
	default:
		rowL, rowR := x.Row(l.Feature), x.Row(r.Feature)
		for j := range out {
			out[j] = finiteOrInf(g.Unary(h.Binary(rowL[j], rowR[j])))
		}
	}
	return true
}

func evalBinaryInto[T numeric.Float](tree *Node[T], x *Matrix[T], reg *Registry[T], out []T) bool {
	h := mustBinary(reg, tree.Op)
	l, r := tree.Left, tree.Right

	switch {
	case l.Degree == DegreeLeaf && r.Degree == DegreeLeaf:
		return evalBinaryBothLeaves(h, l, r, x, out)

	case l.Degree == DegreeLeaf && r.Degree != DegreeLeaf:
		buf := make([]T, len(out))
		if !evalInto(r, x, reg, buf) {
			return false
		}
		if l.Constant {
			for j := range out {
				out[j] = finiteOrInf(h.Binary(l.Val, buf[j]))
			}
		} else {
			row := x.Row(l.Feature)
			for j := range out {
				out[j] = finiteOrInf(h.Binary(row[j], buf[j]))
			}
		}
		return true

	case r.Degree == DegreeLeaf && l.Degree != DegreeLeaf:
		buf := make([]T, len(out))
		if !evalInto(l, x, reg, buf) {
			return false
		}
		if r.Constant {
			for j := range out {
				out[j] = finiteOrInf(h.Binary(buf[j], r.Val))
			}
		} else {
			row := x.Row(r.Feature)
			for j := range out {
				out[j] = finiteOrInf(h.Binary(buf[j], row[j]))
			}
		}
		return true

	default:
		bufL := make([]T, len(out))
		if !evalInto(l, x, reg, bufL) {
			return false
		}
		bufR := make([]T, len(out))
		if !evalInto(r, x, reg, bufR) {
			return false
		}
		for j := range out {
			out[j] = finiteOrInf(h.Binary(bufL[j], bufR[j]))
		}
		return true
	}
}

func evalBinaryBothLeaves[T numeric.Float](h Operator[T], l, r *Node[T], x *Matrix[T], out []T) bool {
	switch {
	case l.Constant && r.Constant:
		v := h.Binary(l.Val, r.Val)
		if !isFinite(v) {
			return false
		}
		fillConst(out, v)
	case l.Constant && !r.Constant:
		row := x.Row(r.Feature)
		for j := range out {
			out[j] = finiteOrInf(h.Binary(l.Val, row[j]))
		}
	case !l.Constant && r.Constant:
		row := x.Row(l.Feature)
		for j := range out {
			out[j] = finiteOrInf(h.Binary(row[j], r.Val))
		}
	default:
		rowL, rowR := x.Row(l.Feature), x.Row(r.Feature)
		for j := range out {
			out[j] = finiteOrInf(h.Binary(rowL[j], rowR[j]))
		}
	}
	return true
}

func mustUnary[T any](reg *Registry[T], op int) Operator[T] {
	o, err := reg.LookupUnary(op)
	if err != nil {
		panic(NewConstructionError("evaluate: %s", err))
	}
	return o
}

func mustBinary[T any](reg *Registry[T], op int) Operator[T] {
	o, err := reg.LookupBinary(op)
	if err != nil {
		panic(NewConstructionError("evaluate: %s", err))
	}
	return o
}

func fillConst[T any](out []T, v T) {
	for i := range out {
		out[i] = v
	}
}

func isFinite[T numeric.Float](v T) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finiteOrInf[T numeric.Float](v T) T {
	if isFinite(v) {
		return v
	}
	return T(math.Inf(1))
}

func allFinite[T numeric.Float](out []T) bool {
	for _, v := range out {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

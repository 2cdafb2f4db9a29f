package dynexpr

// Fold applies f to every node of tree and combines results with combine,
// depth-first, current-node-before-children (pre-order). At a leaf, f's
// result is returned directly; at degree 1 or 2, combine is called with
// f(node) and the already-folded result(s) of its child(ren), left before
// right.
func Fold[T any, R any](f func(*Node[T]) R, combine func(self R, children ...R) R, tree *Node[T]) R {
	self := f(tree)
	switch tree.Degree {
	case DegreeLeaf:
		return self
	case DegreeUnary:
		return combine(self, Fold(f, combine, tree.Left))
	default: // DegreeBinary
		return combine(self, Fold(f, combine, tree.Left), Fold(f, combine, tree.Right))
	}
}

// Any reports whether f holds for some node of tree, visited in pre-order
// (current node, then left, then right) with short-circuit evaluation.
func Any[T any](f func(*Node[T]) bool, tree *Node[T]) bool {
	if tree == nil {
		return false
	}
	if f(tree) {
		return true
	}
	if tree.Degree == DegreeLeaf {
		return false
	}
	if Any(f, tree.Left) {
		return true
	}
	if tree.Degree == DegreeBinary {
		return Any(f, tree.Right)
	}
	return false
}

// Collect returns every node of tree, in pre-order.
func Collect[T any](tree *Node[T]) []*Node[T] {
	return Filter(func(*Node[T]) bool { return true }, tree)
}

// Filter returns every node of tree for which predicate holds, in
// pre-order.
func Filter[T any](predicate func(*Node[T]) bool, tree *Node[T]) []*Node[T] {
	f := func(n *Node[T]) []*Node[T] {
		if predicate(n) {
			return []*Node[T]{n}
		}
		return nil
	}
	combine := func(self []*Node[T], children ...[]*Node[T]) []*Node[T] {
		out := self
		for _, c := range children {
			out = append(out, c...)
		}
		return out
	}
	return Fold(f, combine, tree)
}

// Map applies f to every node of tree and returns the results in
// pre-order.
func Map[T any, R any](f func(*Node[T]) R, tree *Node[T]) []R {
	wrap := func(n *Node[T]) []R { return []R{f(n)} }
	combine := func(self []R, children ...[]R) []R {
		out := self
		for _, c := range children {
			out = append(out, c...)
		}
		return out
	}
	return Fold(wrap, combine, tree)
}

// Length returns the number of nodes in tree; equals
// Fold(func(*Node[T]) int { return 1 }, sum, tree).
func Length[T any](tree *Node[T]) int {
	return len(Collect(tree))
}

// Index returns the i-th (1-based) node of tree in pre-order, or nil if i
// is out of range. Mutating a tree through Index's result must go through
// SetNode; there is no setindex-on-traversal-result operation.
func Index[T any](tree *Node[T], i int) *Node[T] {
	nodes := Collect(tree)
	if i < 1 || i > len(nodes) {
		return nil
	}
	return nodes[i-1]
}

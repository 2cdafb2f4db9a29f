package dynexpr

import "github.com/mitchellh/hashstructure"

// leafTag distinguishes a constant leaf from a variable leaf in the
// structural hash, so that, per spec §4.2, a constant of value 3 and a
// variable at feature 3 never collide.
type leafTag int

const (
	tagConstant leafTag = iota
	tagVariable
)

// hashable is the flat, per-node record hashed by mitchellh/hashstructure:
// degree, a leaf/op discriminant, the meaningful scalar field, and the
// already-computed child hashes. Combining already-hashed children
// (rather than re-hashing whole subtrees) is what makes Hash a single
// bottom-up pass instead of quadratic in tree depth.
type hashable struct {
	Degree  Degree
	Tag     leafTag
	Value   interface{}
	Feature int
	Op      int
	Left    uint64
	Right   uint64
}

// Hash computes tree's structural hash: (degree, op-or-val-or-feature,
// child hash, child hash?), combined bottom-up. Equal(a, b) implies
// Hash(a) == Hash(b) (spec §8.4).
func Hash[T any](tree *Node[T]) uint64 {
	if tree == nil {
		return 0
	}
	h := hashable{Degree: tree.Degree, Op: tree.Op, Feature: tree.Feature}
	switch tree.Degree {
	case DegreeLeaf:
		if tree.Constant {
			h.Tag = tagConstant
			h.Value = tree.Val
			// Equal treats +0 and -0 as equal, so they must hash alike.
			switch v := any(tree.Val).(type) {
			case float64:
				if v == 0 {
					h.Value = float64(0)
				}
			case float32:
				if v == 0 {
					h.Value = float32(0)
				}
			}
		} else {
			h.Tag = tagVariable
		}
	case DegreeUnary:
		h.Left = Hash(tree.Left)
	case DegreeBinary:
		h.Left = Hash(tree.Left)
		h.Right = Hash(tree.Right)
	}
	sum, err := hashstructure.Hash(h, nil)
	if err != nil {
		// hashstructure only errors on unhashable field kinds (channels,
		// funcs); hashable's fields are all plain scalars, so this is
		// unreachable in practice. Fall back to a degenerate but still
		// deterministic value rather than panicking in a hot path.
		return uint64(tree.Degree) + 1
	}
	return sum
}

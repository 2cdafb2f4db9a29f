package dynexpr

import "github.com/wayneeseguin/dynexpr/internal/numeric"

// Degree is the arity tag that selects which fields of a Node are
// meaningful. It is the discriminant of the tagged variant described in
// the data model: 0 for leaves, 1 for unary application, 2 for binary
// application.
type Degree uint8

const (
	DegreeLeaf   Degree = 0
	DegreeUnary  Degree = 1
	DegreeBinary Degree = 2
)

func (d Degree) String() string {
	switch d {
	case DegreeLeaf:
		return "leaf"
	case DegreeUnary:
		return "unary"
	case DegreeBinary:
		return "binary"
	default:
		return "invalid"
	}
}

// Node is a tagged-variant expression tree node over scalar type T. Degree
// selects which of the remaining fields are meaningful:
//
//	Degree == DegreeLeaf:   Constant selects between Val (constant) and
//	                        Feature (variable); Op/Left/Right unused.
//	Degree == DegreeUnary:  Op and Left are meaningful; everything else is not.
//	Degree == DegreeBinary: Op, Left and Right are meaningful; everything
//	                        else is not.
//
// A Node is owned by whichever tree holds it; see DeepCopy for the
// sharing-preserving copy that is the only supported way to alias a
// subtree across two owners.
type Node[T any] struct {
	Degree Degree

	// Leaf fields.
	Constant bool
	Val      T
	Feature  int // 1-based

	// Unary/binary fields. Op is a 1-based index into a Registry's
	// unary or binary operator tuple, selected by Degree.
	Op    int
	Left  *Node[T]
	Right *Node[T]
}

// LeafConst builds a degree-0 constant leaf.
func LeafConst[T any](val T) *Node[T] {
	return &Node[T]{Degree: DegreeLeaf, Constant: true, Val: val}
}

// LeafConstTyped builds a degree-0 constant leaf of element type T1,
// converting val (of type T2) via convert_type's numeric conversion.
func LeafConstTyped[T1, T2 numeric.Scalar](val T2) *Node[T1] {
	return LeafConst[T1](numeric.Convert[T1](val))
}

// LeafVar builds a degree-0 variable leaf referencing the given 1-based
// feature row. It is a client usage error to pass feature < 1.
func LeafVar[T any](feature int) (*Node[T], error) {
	if feature < 1 {
		return nil, NewConstructionError("leaf_var: feature index must be >= 1, got %d", feature)
	}
	return &Node[T]{Degree: DegreeLeaf, Constant: false, Feature: feature}, nil
}

// MustLeafVar is LeafVar but panics on error, for call sites (tests,
// literal tree construction) that know the feature index is valid.
func MustLeafVar[T any](feature int) *Node[T] {
	n, err := LeafVar[T](feature)
	if err != nil {
		panic(err)
	}
	return n
}

// ApplyUnary builds a degree-1 node applying registry operator op to child.
func ApplyUnary[T any](op int, child *Node[T]) *Node[T] {
	return &Node[T]{Degree: DegreeUnary, Op: op, Left: child}
}

// ApplyBinary builds a degree-2 node applying registry operator op to
// left and right. Both operands must already share element type T; see
// ApplyBinaryPromote for combining subtrees of differing element types.
func ApplyBinary[T any](op int, left, right *Node[T]) *Node[T] {
	return &Node[T]{Degree: DegreeBinary, Op: op, Left: left, Right: right}
}

// ApplyBinaryPromote combines two subtrees of possibly different element
// types by first converting both to the common type TOut, then applying
// op. This is the explicit analogue of the spec's "combining subtrees of
// different T promotes both to the common supertype" rule; see
// SPEC_FULL.md's Open Question resolution for why this is a separate,
// explicit call rather than something ApplyBinary infers.
func ApplyBinaryPromote[TOut, T1, T2 numeric.Scalar](op int, left *Node[T1], right *Node[T2]) *Node[TOut] {
	return ApplyBinary[TOut](op, ConvertType[TOut](left), ConvertType[TOut](right))
}

// ParseVar builds a degree-0 variable leaf from a "xK" name, where K is a
// 1-based feature index.
func ParseVar[T any](name string) (*Node[T], error) {
	if len(name) < 2 || name[0] != 'x' {
		return nil, NewConstructionError("parse_var: %q is not of the form \"xK\"", name)
	}
	k, err := parsePositiveInt(name[1:])
	if err != nil {
		return nil, NewConstructionError("parse_var: %q is not of the form \"xK\": %s", name, err)
	}
	return LeafVar[T](k)
}

// ParseVarNamed builds a degree-0 variable leaf whose feature index is
// 1 + the position of name within varMap. It is a client usage error for
// name to match zero or more than one entry.
func ParseVarNamed[T any](name string, varMap []string) (*Node[T], error) {
	found := -1
	for i, candidate := range varMap {
		if candidate == name {
			if found >= 0 {
				return nil, NewConstructionError("parse_var: %q matches more than one entry in the variable map", name)
			}
			found = i
		}
	}
	if found < 0 {
		return nil, NewConstructionError("parse_var: %q does not match any entry in the variable map", name)
	}
	return LeafVar[T](found + 1)
}

func parsePositiveInt(s string) (int, error) {
	if s == "" {
		return 0, errNotANumber
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, errNotANumber
		}
		n = n*10 + int(c-'0')
	}
	if n < 1 {
		return 0, errNotANumber
	}
	return n, nil
}

// SetNode overwrites every meaningful field of target with source's
// fields: a shallow reassignment, not a copy. After the call target
// shares source's Degree and references source's children directly.
func SetNode[T any](target, source *Node[T]) {
	*target = *source
}

// ConvertType performs a recursive, deep, element-type conversion of tree
// from TIn to TOut: every constant Val is converted via Go's numeric
// conversion; Feature and Op fields are preserved unchanged. Shared
// subtrees in tree are duplicated in the result; use
// ConvertTypeSharing to preserve DAG sharing.
func ConvertType[TOut, TIn numeric.Scalar](tree *Node[TIn]) *Node[TOut] {
	return convertTypeRec[TOut](tree, nil)
}

// ConvertTypeSharing is ConvertType, but maintains an identity map from
// source node to converted node so that a subtree shared (by pointer) in
// tree is converted once and shared in the result too. Trees with cycles
// are unsupported and produce undefined behavior, per the spec.
func ConvertTypeSharing[TOut, TIn numeric.Scalar](tree *Node[TIn]) *Node[TOut] {
	seen := make(map[*Node[TIn]]*Node[TOut])
	return convertTypeRec[TOut](tree, seen)
}

func convertTypeRec[TOut, TIn numeric.Scalar](n *Node[TIn], seen map[*Node[TIn]]*Node[TOut]) *Node[TOut] {
	if n == nil {
		return nil
	}
	if seen != nil {
		if out, ok := seen[n]; ok {
			return out
		}
	}
	out := &Node[TOut]{
		Degree:   n.Degree,
		Constant: n.Constant,
		Feature:  n.Feature,
		Op:       n.Op,
	}
	if n.Degree == DegreeLeaf && n.Constant {
		out.Val = numeric.Convert[TOut](n.Val)
	}
	if seen != nil {
		seen[n] = out
	}
	out.Left = convertTypeRec[TOut](n.Left, seen)
	out.Right = convertTypeRec[TOut](n.Right, seen)
	return out
}

// DeepCopy duplicates tree with the same element type. With
// preserveSharing=false (the default, matching the spec), a node shared
// by two parents in tree is duplicated once per occurrence in the result;
// with preserveSharing=true it is copied once and the copy is shared.
func DeepCopy[T any](tree *Node[T], preserveSharing bool) *Node[T] {
	if !preserveSharing {
		return deepCopyRec(tree, nil)
	}
	seen := make(map[*Node[T]]*Node[T])
	return deepCopyRec(tree, seen)
}

func deepCopyRec[T any](n *Node[T], seen map[*Node[T]]*Node[T]) *Node[T] {
	if n == nil {
		return nil
	}
	if seen != nil {
		if out, ok := seen[n]; ok {
			return out
		}
	}
	out := &Node[T]{
		Degree:   n.Degree,
		Constant: n.Constant,
		Val:      n.Val,
		Feature:  n.Feature,
		Op:       n.Op,
	}
	if seen != nil {
		seen[n] = out
	}
	out.Left = deepCopyRec(n.Left, seen)
	out.Right = deepCopyRec(n.Right, seen)
	return out
}

// Equal reports whether a and b are structurally equal: same degree, same
// constant/feature/value or operator index, and recursively equal
// children, left before right.
func Equal[T comparable](a, b *Node[T]) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Degree != b.Degree {
		return false
	}
	switch a.Degree {
	case DegreeLeaf:
		if a.Constant != b.Constant {
			return false
		}
		if a.Constant {
			return a.Val == b.Val
		}
		return a.Feature == b.Feature
	case DegreeUnary:
		return a.Op == b.Op && Equal(a.Left, b.Left)
	case DegreeBinary:
		return a.Op == b.Op && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	default:
		return false
	}
}

// EqualPromoting compares two trees of possibly different element types
// by first promoting both to TOut, per the spec's "when element types
// differ, first promote both trees to the common supertype" rule.
func EqualPromoting[TOut, T1, T2 numeric.Scalar](a *Node[T1], b *Node[T2]) bool {
	pa := ConvertType[TOut](a)
	pb := ConvertType[TOut](b)
	return Equal(pa, pb)
}

var errNotANumber = NewConstructionError("not a valid feature number")

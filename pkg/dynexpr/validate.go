package dynexpr

import (
	"github.com/hashicorp/go-multierror"
)

// Validate walks tree in pre-order and reports every invariant violation
// of §3.1 against reg: a degree-0 leaf with both or neither of
// constant/variable meaningful is impossible by construction through
// node.go's constructors, so Validate instead catches the violations
// that construction can't rule out: a non-positive feature index, an
// operator index out of reg's range for the node's degree, and (for a
// leaf reached directly, bypassing the constructors) a feature of zero.
//
// Every violation found is accumulated rather than stopping at the
// first, the same way the teacher aggregates merge errors, so a caller
// debugging a malformed tree sees every problem in one pass.
func Validate[T any](tree *Node[T], reg *Registry[T]) error {
	var errs *multierror.Error
	validateRec(tree, reg, &errs)
	return errs.ErrorOrNil()
}

// validateRec checks for a nil child before descending into it, unlike
// the traversal utilities in traversal.go, which assume the well-formed
// trees those are documented to operate on; Validate exists precisely
// to check trees that might not be well-formed.
func validateRec[T any](n *Node[T], reg *Registry[T], errs **multierror.Error) {
	if n == nil {
		*errs = multierror.Append(*errs, NewConstructionError("nil node"))
		return
	}
	switch n.Degree {
	case DegreeLeaf:
		if !n.Constant && n.Feature < 1 {
			*errs = multierror.Append(*errs, NewConstructionError("leaf variable has feature index %d, want >= 1", n.Feature))
		}
	case DegreeUnary:
		if _, err := reg.LookupUnary(n.Op); err != nil {
			*errs = multierror.Append(*errs, WrapConstructionError(err, "unary node"))
		}
		if n.Left == nil {
			*errs = multierror.Append(*errs, NewConstructionError("unary node has no child"))
			return
		}
		validateRec(n.Left, reg, errs)
	case DegreeBinary:
		if _, err := reg.LookupBinary(n.Op); err != nil {
			*errs = multierror.Append(*errs, WrapConstructionError(err, "binary node"))
		}
		if n.Left == nil || n.Right == nil {
			*errs = multierror.Append(*errs, NewConstructionError("binary node is missing a child"))
			return
		}
		validateRec(n.Left, reg, errs)
		validateRec(n.Right, reg, errs)
	default:
		*errs = multierror.Append(*errs, NewConstructionError("node has invalid degree %d", n.Degree))
	}
}

package dynexpr

import "fmt"

// GenericInput is the §4.3.4 analogue of a Matrix for the generic
// evaluator: Select(feature) is selectdim(X, axis=1, feature) — a 1-D
// input yields a scalar per feature, a 2-D input yields a vector per
// feature, and so on. Callers adapt whatever input shape they have to
// this single method.
type GenericInput interface {
	Select(feature int) (any, error)
}

// GenericOperator is one entry of a GenericRegistry's unary or binary
// tuple: operators here are typed over any because the generic
// evaluator exists specifically for element types the scalar evaluator
// cannot handle (strings, tensors, arbitrary domain objects), and must
// report a dispatch failure rather than panic when called with operand
// types they don't support.
type GenericOperator struct {
	Name   string
	Unary  func(any) (any, error)
	Binary func(any, any) (any, error)
}

// GenericRegistry is the evaluate_generic analogue of Registry: the same
// ordered-tuple shape, but holding type-erased operators instead of
// Go-generic ones, since a single generic evaluation may cross more than
// one element type as it descends a tree (e.g. a string leaf combined
// with an int leaf by a polymorphic operator).
type GenericRegistry struct {
	unary  []GenericOperator
	binary []GenericOperator
}

// NewGenericRegistry constructs a GenericRegistry from ordered unary and
// binary operator tuples, mirroring NewRegistry's construction contract.
func NewGenericRegistry(unary, binary []GenericOperator) *GenericRegistry {
	u := make([]GenericOperator, len(unary))
	copy(u, unary)
	b := make([]GenericOperator, len(binary))
	copy(b, binary)
	return &GenericRegistry{unary: u, binary: b}
}

func (r *GenericRegistry) lookupUnary(i int) (GenericOperator, error) {
	if i < 1 || i > len(r.unary) {
		var zero GenericOperator
		return zero, fmt.Errorf("unary operator index %d out of range [1, %d]", i, len(r.unary))
	}
	return r.unary[i-1], nil
}

func (r *GenericRegistry) lookupBinary(i int) (GenericOperator, error) {
	if i < 1 || i > len(r.binary) {
		var zero GenericOperator
		return zero, fmt.Errorf("binary operator index %d out of range [1, %d]", i, len(r.binary))
	}
	return r.binary[i-1], nil
}

// EvaluateGeneric is evaluate_generic from spec §4.3.4: an evaluator for
// trees whose element type isn't (or needn't be) a Go-generic scalar.
// There is no NaN/Inf tracking and no structural specialization; every
// node is visited by plain post-order recursion, and a feature leaf's
// value comes from X.Select(feature) rather than a Matrix row.
//
// tree is *Node[any] rather than *Node[T]: the generic evaluator is
// meant to cross operand types mid-tree (a string leaf feeding into a
// binary op with a numeric leaf, say), which a single Go type parameter
// can't express. Build such a tree with LeafConst[any], LeafVar[any],
// etc, storing each leaf's real value boxed in the any field.
//
// throwErrors selects what happens when an operator is not defined for
// the operand types actually encountered: true surfaces the failure to
// the caller as a *DispatchError naming the rendered subtree; false
// folds it silently into a (nil, false) result.
func EvaluateGeneric(tree *Node[any], x GenericInput, reg *GenericRegistry, throwErrors bool) (result any, complete bool, err error) {
	v, evalErr := evalGenericRec(tree, x, reg)
	if evalErr != nil {
		if throwErrors {
			return nil, false, evalErr
		}
		return nil, false, nil
	}
	return v, true, nil
}

func evalGenericRec(n *Node[any], x GenericInput, reg *GenericRegistry) (any, error) {
	switch n.Degree {
	case DegreeLeaf:
		if n.Constant {
			return n.Val, nil
		}
		v, err := x.Select(n.Feature)
		if err != nil {
			return nil, NewDispatchError(SelectionError, "", "", err).WithContext(fmt.Sprintf("feature %d", n.Feature))
		}
		return v, nil

	case DegreeUnary:
		op, lookupErr := reg.lookupUnary(n.Op)
		if lookupErr != nil {
			return nil, NewDispatchError(UnaryDispatchError, "", renderGenericBestEffort(n, reg), lookupErr)
		}
		childVal, err := evalGenericRec(n.Left, x, reg)
		if err != nil {
			return nil, err
		}
		v, err := op.Unary(childVal)
		if err != nil {
			return nil, NewDispatchError(UnaryDispatchError, op.Name, renderGenericBestEffort(n, reg), err)
		}
		return v, nil

	default: // DegreeBinary
		op, lookupErr := reg.lookupBinary(n.Op)
		if lookupErr != nil {
			return nil, NewDispatchError(BinaryDispatchError, "", renderGenericBestEffort(n, reg), lookupErr)
		}
		leftVal, err := evalGenericRec(n.Left, x, reg)
		if err != nil {
			return nil, err
		}
		rightVal, err := evalGenericRec(n.Right, x, reg)
		if err != nil {
			return nil, err
		}
		v, err := op.Binary(leftVal, rightVal)
		if err != nil {
			return nil, NewDispatchError(BinaryDispatchError, op.Name, renderGenericBestEffort(n, reg), err)
		}
		return v, nil
	}
}

// renderGenericBestEffort renders n for inclusion in a DispatchError's
// message. The generic evaluator's registry carries no Precedence or
// render-name metadata (it is typed over any, not over a single scalar
// T), so this does not reuse Render; it produces a short structural
// description instead, enough for a caller to locate the failing node.
func renderGenericBestEffort(n *Node[any], reg *GenericRegistry) string {
	switch n.Degree {
	case DegreeLeaf:
		if n.Constant {
			return fmt.Sprintf("%v", n.Val)
		}
		return fmt.Sprintf("x%d", n.Feature)
	case DegreeUnary:
		return fmt.Sprintf("op%d(%s)", n.Op, renderGenericBestEffort(n.Left, reg))
	default:
		return fmt.Sprintf("op%d(%s, %s)", n.Op, renderGenericBestEffort(n.Left, reg), renderGenericBestEffort(n.Right, reg))
	}
}

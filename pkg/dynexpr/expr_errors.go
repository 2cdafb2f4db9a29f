package dynexpr

import (
	"fmt"
	"strings"
)

// DispatchErrorType categorizes why evaluate_generic's dispatch step
// failed, mirroring the teacher's ExprErrorType enumeration for its own
// expression evaluator.
type DispatchErrorType int

const (
	// UnaryDispatchError: no unary operator is defined for the operand
	// type actually encountered at a degree-1 node.
	UnaryDispatchError DispatchErrorType = iota
	// BinaryDispatchError: no binary operator is defined for the operand
	// types actually encountered at a degree-2 node.
	BinaryDispatchError
	// SelectionError: the input's Select(feature) failed (out-of-range
	// feature, or an input shape the caller's GenericInput can't index).
	SelectionError
)

func (t DispatchErrorType) String() string {
	switch t {
	case UnaryDispatchError:
		return "unary dispatch error"
	case BinaryDispatchError:
		return "binary dispatch error"
	case SelectionError:
		return "selection error"
	default:
		return "dispatch error"
	}
}

// DispatchError is evaluate_generic's operator-dispatch-failure type
// (spec §4.3.4, §7): it names the operator, the rendered subtree it
// failed on, and wraps the operator's own returned error as Nested.
type DispatchError struct {
	Type    DispatchErrorType
	Op      string
	Tree    string // rendered subtree, for context
	Nested  error
	Context string
}

// Error implements the error interface.
func (e *DispatchError) Error() string {
	var parts []string
	parts = append(parts, e.Type.String())
	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("operator %q", e.Op))
	}
	msg := strings.Join(parts, ": ")
	if e.Tree != "" {
		msg += fmt.Sprintf(" (in %s)", e.Tree)
	}
	if e.Context != "" {
		msg += ": " + e.Context
	}
	if e.Nested != nil {
		msg += ": " + e.Nested.Error()
	}
	return msg
}

// Unwrap returns the operator's own error.
func (e *DispatchError) Unwrap() error {
	return e.Nested
}

// NewDispatchError builds a DispatchError carrying the already rendered
// subtree for context.
// rendered may be empty if rendering itself is unavailable (for example,
// a registry the caller chose not to pass through for diagnostics).
func NewDispatchError(typ DispatchErrorType, op, rendered string, nested error) *DispatchError {
	return &DispatchError{Type: typ, Op: op, Tree: rendered, Nested: nested}
}

// WithContext attaches a short human-readable hint to the error.
func (e *DispatchError) WithContext(context string) *DispatchError {
	e.Context = context
	return e
}

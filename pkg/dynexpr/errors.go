package dynexpr

import (
	"errors"
	"fmt"

	"github.com/starkandwayne/goutils/ansi"
)

// ConstructionError is the client-usage-error type the constructors in
// node.go return synchronously: a variable leaf with a feature index
// below 1, and malformed, ambiguous or missing variable names. Operator
// indices are not checked at construction; Validate reports an
// out-of-range index as a ConstructionError, and Evaluate and Render
// panic with one when they meet it. The scalar evaluator never raises
// one of these on data.
type ConstructionError struct {
	Message string
	Cause   error
}

// Error implements the error interface, colorizing the message the way
// the teacher's errors.go colorizes its own warnings and merge errors.
func (e *ConstructionError) Error() string {
	return ansi.Sprintf("@R{construction error:} %s", e.Message)
}

// Unwrap exposes a wrapped cause, if any, to errors.Is/errors.As.
func (e *ConstructionError) Unwrap() error {
	return e.Cause
}

// NewConstructionError builds a ConstructionError with a printf-style
// message.
func NewConstructionError(format string, args ...interface{}) *ConstructionError {
	return &ConstructionError{Message: fmt.Sprintf(format, args...)}
}

// WrapConstructionError builds a ConstructionError that wraps an
// underlying cause (for example, a registry lookup failure surfaced
// during a constructor call).
func WrapConstructionError(cause error, format string, args ...interface{}) *ConstructionError {
	return &ConstructionError{Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsConstructionError reports whether err is (or wraps) a ConstructionError.
func IsConstructionError(err error) bool {
	var ce *ConstructionError
	return errors.As(err, &ce)
}

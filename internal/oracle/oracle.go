// Package oracle provides an independent reference evaluator for
// dynexpr's testable property 5 (structural specialization equivalence):
// it renders a tree to infix text and hands that text to
// github.com/Knetic/govaluate, a wholly separate expression engine, so
// a test can compare dynexpr's specialized evaluation against an
// evaluator that shares none of dynexpr's evaluation code.
//
// This is not a construction or parsing path for dynexpr itself (that
// is an explicit non-goal); it exists only in _test.go-reachable code
// to cross-check evaluation results.
package oracle

import (
	"fmt"

	"github.com/Knetic/govaluate"
	"github.com/wayneeseguin/dynexpr/pkg/dynexpr"
)

// Evaluate renders tree via dynexpr.Render and evaluates the resulting
// text with govaluate, once per column of x, substituting "x1".."xF"
// with x's column values. reg must carry operator names govaluate's
// default function set or Functions recognizes; arithmetic infix
// operators (+ - * /) need no special handling, govaluate supports them
// natively.
func Evaluate(tree *dynexpr.Node[float64], x *dynexpr.Matrix[float64], reg *dynexpr.Registry[float64], functions map[string]govaluate.ExpressionFunction) ([]float64, error) {
	expr := dynexpr.Render(tree, reg, nil)
	parsed, err := govaluate.NewEvaluableExpressionWithFunctions(expr, functions)
	if err != nil {
		return nil, fmt.Errorf("oracle: parsing rendered expression %q: %w", expr, err)
	}

	out := make([]float64, x.Cols())
	for j := 0; j < x.Cols(); j++ {
		params := make(map[string]interface{}, x.Rows())
		for i := 1; i <= x.Rows(); i++ {
			params[fmt.Sprintf("x%d", i)] = x.At(i, j)
		}
		result, err := parsed.Evaluate(params)
		if err != nil {
			return nil, fmt.Errorf("oracle: evaluating column %d: %w", j, err)
		}
		v, ok := result.(float64)
		if !ok {
			return nil, fmt.Errorf("oracle: column %d produced a non-numeric result %v", j, result)
		}
		out[j] = v
	}
	return out, nil
}

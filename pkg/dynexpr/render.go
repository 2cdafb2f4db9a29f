package dynexpr

import (
	"fmt"
	"strconv"
)

// Render prints tree in the form specified by §4.4: standard infix for
// the arithmetic operators (+ - * / ^), each wrapped in parentheses so
// nesting is always unambiguous without a precedence table at the read
// site; prefix name(arg) / name(arg1, arg2) for everything else. varMap,
// if non-nil, renders a variable at feature K as varMap[K-1] instead of
// the default "xK".
func Render[T any](tree *Node[T], reg *Registry[T], varMap []string) string {
	return renderRec(tree, reg, varMap)
}

func renderRec[T any](n *Node[T], reg *Registry[T], varMap []string) string {
	switch n.Degree {
	case DegreeLeaf:
		if n.Constant {
			return renderConstant(n.Val)
		}
		return renderVariable(n.Feature, varMap)

	case DegreeUnary:
		op := mustUnary(reg, n.Op)
		name := rewriteOperatorName(op.Name)
		child := renderRec(n.Left, reg, varMap)
		return fmt.Sprintf("%s(%s)", name, child)

	default: // DegreeBinary
		op := mustBinary(reg, n.Op)
		name := rewriteOperatorName(op.Name)
		l := renderRec(n.Left, reg, varMap)
		r := renderRec(n.Right, reg, varMap)
		if !infixSymbols[name] {
			return fmt.Sprintf("%s(%s, %s)", name, l, r)
		}
		return fmt.Sprintf("(%s %s %s)", l, name, r)
	}
}

// rewriteOperatorName applies the canonical safe_* -> bare-name rewrite
// table (spec §4.4) uniformly at render time; the registry itself still
// stores the operator under its original name.
func rewriteOperatorName(name string) string {
	if rewritten, ok := operatorNameRewrite[name]; ok {
		return rewritten
	}
	return name
}

func renderVariable(feature int, varMap []string) string {
	if varMap != nil {
		if feature >= 1 && feature <= len(varMap) {
			return varMap[feature-1]
		}
	}
	return "x" + strconv.Itoa(feature)
}

// renderConstant renders val via its natural textual form. float32,
// float64, int and int64 render bare; any other element type (Render
// accepts any T) is parenthesized so it cannot be misread as a bare
// operand by anything re-parsing the output.
func renderConstant[T any](val T) string {
	switch v := any(val).(type) {
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case fmt.Stringer:
		return "(" + v.String() + ")"
	default:
		return fmt.Sprintf("(%v)", v)
	}
}

package rpn

import (
	"fmt"
	"strconv"
	"strings"
)

// Postfix renders expr as a single-space separated postfix stream. For trees
// produced by Build, building the result again yields an equal tree.
func Postfix(expr Expr) string {
	var sb strings.Builder
	postfix(&sb, expr)

	return sb.String()
}

func postfix(sb *strings.Builder, expr Expr) {
	switch e := expr.(type) {
	case *BinaryExpr:
		postfix(sb, e.Op1)
		sb.WriteByte(' ')
		postfix(sb, e.Op2)
		sb.WriteByte(' ')
		sb.WriteString(string(e.Operation))
	default:
		sb.WriteString(atom(expr))
	}
}

// Infix renders expr with every binary operation parenthesised.
func Infix(expr Expr) string {
	switch e := expr.(type) {
	case *BinaryExpr:
		return parenthesize(string(e.Operation), e.Op1, e.Op2)
	default:
		return atom(expr)
	}
}

func parenthesize(op string, lhs, rhs Expr) string {
	return "(" + Infix(lhs) + " " + op + " " + Infix(rhs) + ")"
}

func atom(expr Expr) string {
	switch e := expr.(type) {
	case *Constant:
		return strconv.FormatInt(int64(e.Value), 10)
	case *VariableRef:
		return e.Name
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%T", expr)
	}
}

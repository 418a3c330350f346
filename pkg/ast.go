package rpn

import "sort"

// Expr is a node of an expression tree. The set of node kinds is closed:
// Constant, VariableRef and BinaryExpr.
type Expr interface {
	exprNode()
}

type Constant struct {
	Value int32
}

type VariableRef struct {
	Name string
}

type BinaryOp string

const (
	BinaryAddition    BinaryOp = "+"
	BinarySubtraction BinaryOp = "-"
)

type BinaryExpr struct {
	Operation BinaryOp
	Op1       Expr
	Op2       Expr
}

func (*Constant) exprNode()    {}
func (*VariableRef) exprNode() {}
func (*BinaryExpr) exprNode()  {}

// Variables returns the distinct variable names referenced by expr, sorted.
func Variables(expr Expr) []string {
	seen := make(map[string]struct{})
	walk(expr, func(e Expr) {
		if v, ok := e.(*VariableRef); ok {
			seen[v.Name] = struct{}{}
		}
	})

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func walk(expr Expr, visit func(Expr)) {
	visit(expr)

	if e, ok := expr.(*BinaryExpr); ok {
		walk(e.Op1, visit)
		walk(e.Op2, visit)
	}
}

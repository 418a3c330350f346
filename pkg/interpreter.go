package rpn

import "fmt"

// Interpret evaluates expr against ctx. A variable without a binding
// evaluates to zero, and so does a variable reached again while its own
// binding is being resolved. Arithmetic wraps at 32 bits.
func Interpret(expr Expr, ctx *Context) int32 {
	in := &interpreter{ctx: ctx}
	return in.eval(expr)
}

// InterpretStrict is Interpret after an Analyze pass. It fails with the
// first unbound or cyclic binding found instead of defaulting to zero.
func InterpretStrict(expr Expr, ctx *Context) (int32, error) {
	if errs := Analyze(expr, ctx); len(errs) != 0 {
		return 0, errs[0]
	}

	return Interpret(expr, ctx), nil
}

type interpreter struct {
	ctx *Context

	// names whose bindings are being evaluated, innermost last
	resolving []string
}

func (in *interpreter) eval(expr Expr) int32 {
	switch e := expr.(type) {
	case *Constant:
		return e.Value
	case *VariableRef:
		return in.variable(e.Name)
	case *BinaryExpr:
		lhs := in.eval(e.Op1)
		rhs := in.eval(e.Op2)

		switch e.Operation {
		case BinaryAddition:
			return lhs + rhs
		case BinarySubtraction:
			return lhs - rhs
		default:
			panic("unexpected binary op: " + string(e.Operation))
		}
	default:
		panic(fmt.Sprintf("unexpected expression %T", expr))
	}
}

func (in *interpreter) variable(name string) int32 {
	bound, ok := in.ctx.Get(name)
	if !ok || in.isResolving(name) {
		return 0
	}

	in.resolving = append(in.resolving, name)
	defer func() {
		in.resolving = in.resolving[:len(in.resolving)-1]
	}()

	return in.eval(bound)
}

func (in *interpreter) isResolving(name string) bool {
	for _, n := range in.resolving {
		if n == name {
			return true
		}
	}

	return false
}

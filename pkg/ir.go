package rpn

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Variables become parameters of @eval under this prefix so that no
// variable name can collide with the numbered locals LLVM assigns.
const paramPrefix = "var."

type ValueLookup struct {
	vals map[string]value.Value
}

func NewValueLookup() *ValueLookup {
	return &ValueLookup{
		vals: make(map[string]value.Value),
	}
}

func (l *ValueLookup) Get(id string) (value.Value, bool) {
	val, ok := l.vals[id]
	return val, ok
}

func (l *ValueLookup) Set(id string, val value.Value) {
	l.vals[id] = val
}

type IRGenerator interface {
	Do() IR
}

type IR interface {
	fmt.Stringer
}

type LLVMIRBuilder struct {
	mod      *ir.Module
	block    *ir.Block
	builtins *ValueLookup
}

func NewLLVMIRBuilder() *LLVMIRBuilder {
	builder := &LLVMIRBuilder{
		mod:      ir.NewModule(),
		builtins: NewValueLookup(),
	}

	defineBuiltins(builder)
	return builder
}

// loadVariable yields the value standing for a variable in the current
// block, plus the instructions computing it.
type loadVariable func(name string) (value.Value, []ir.Instruction)

// evalFunc defines i32 @eval with one i32 parameter per variable of expr.
func (b *LLVMIRBuilder) evalFunc(expr Expr, names []string) *ir.Func {
	params := NewValueLookup()

	var ps []*ir.Param
	for _, name := range names {
		p := ir.NewParam(paramPrefix+name, types.I32)
		params.Set(name, p)
		ps = append(ps, p)
	}

	f := b.mod.NewFunc("eval", types.I32, ps...)

	prevBlock := b.block
	b.block = f.NewBlock("")
	defer func() {
		b.block = prevBlock
	}()

	v, ins := b.recursiveLoad(expr, func(name string) (value.Value, []ir.Instruction) {
		p, _ := params.Get(name)
		return p, nil
	})

	b.block.Insts = append(b.block.Insts, ins...)
	b.block.NewRet(v)

	return f
}

// mainFunc defines i32 @main, which resolves every argument of eval from
// ctx, calls it and prints the result.
func (b *LLVMIRBuilder) mainFunc(eval *ir.Func, names []string, ctx *Context) *ir.Func {
	f := b.mod.NewFunc("main", types.I32)

	prevBlock := b.block
	b.block = f.NewBlock("")
	defer func() {
		b.block = prevBlock
	}()

	r := &bindingResolver{b: b, ctx: ctx}

	var args []value.Value
	for _, name := range names {
		v, ins := r.load(name)
		b.block.Insts = append(b.block.Insts, ins...)
		args = append(args, v)
	}

	result := b.block.NewCall(eval, args...)

	printFn, _ := b.builtins.Get("print")
	b.block.NewCall(printFn, result)

	b.block.NewRet(constant.NewInt(types.I32, 0))

	return f
}

func (b *LLVMIRBuilder) recursiveLoad(expr Expr, load loadVariable) (value.Value, []ir.Instruction) {
	switch e := expr.(type) {
	case *Constant:
		return constant.NewInt(types.I32, int64(e.Value)), nil
	case *VariableRef:
		return load(e.Name)
	case *BinaryExpr:
		return b.binaryExpression(e, load)
	default:
		panic(fmt.Sprintf("unexpected expression %T", expr))
	}
}

func (b *LLVMIRBuilder) binaryExpression(expr *BinaryExpr, load loadVariable) (value.Value, []ir.Instruction) {
	v1, i1 := b.recursiveLoad(expr.Op1, load)
	v2, i2 := b.recursiveLoad(expr.Op2, load)
	ins := append(i1, i2...)

	switch expr.Operation {
	case BinaryAddition:
		op := ir.NewAdd(v1, v2)
		return op, append(ins, op)
	case BinarySubtraction:
		op := ir.NewSub(v1, v2)
		return op, append(ins, op)
	default:
		panic("unexpected binary op: " + string(expr.Operation))
	}
}

// bindingResolver inlines context bindings the way Interpret resolves them:
// unbound and cyclic variables load as zero.
type bindingResolver struct {
	b         *LLVMIRBuilder
	ctx       *Context
	resolving []string
}

func (r *bindingResolver) load(name string) (value.Value, []ir.Instruction) {
	bound, ok := r.ctx.Get(name)
	if !ok || r.isResolving(name) {
		return constant.NewInt(types.I32, 0), nil
	}

	r.resolving = append(r.resolving, name)
	defer func() {
		r.resolving = r.resolving[:len(r.resolving)-1]
	}()

	return r.b.recursiveLoad(bound, r.load)
}

func (r *bindingResolver) isResolving(name string) bool {
	for _, n := range r.resolving {
		if n == name {
			return true
		}
	}

	return false
}

// LLVMGenerator compiles an expression tree and the context it is run
// against into an LLVM module printing the result.
type LLVMGenerator struct {
	expr Expr
	ctx  *Context
}

func NewLLVMGenerator(expr Expr, ctx *Context) *LLVMGenerator {
	return &LLVMGenerator{
		expr: expr,
		ctx:  ctx,
	}
}

func (g LLVMGenerator) Do() IR {
	builder := NewLLVMIRBuilder()

	names := Variables(g.expr)
	eval := builder.evalFunc(g.expr, names)
	builder.mainFunc(eval, names, g.ctx)

	return builder.mod
}

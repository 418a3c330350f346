package rpn

import (
	"io"
	"strings"
)

// Evaluator holds a tree built once from a postfix expression and evaluates
// it against any number of contexts.
type Evaluator struct {
	tree Expr
}

func NewEvaluator(expression string) (*Evaluator, error) {
	return NewEvaluatorFromReader(strings.NewReader(expression))
}

func NewEvaluatorFromReader(reader io.Reader) (*Evaluator, error) {
	return NewEvaluatorFromTokenizer(NewLexer(reader))
}

func NewEvaluatorFromTokenizer(tokenizer Tokenizer) (*Evaluator, error) {
	tree, err := NewBuilder(tokenizer).Run()
	if err != nil {
		return nil, err
	}

	return &Evaluator{tree: tree}, nil
}

func (e *Evaluator) Interpret(ctx *Context) int32 {
	return Interpret(e.tree, ctx)
}

func (e *Evaluator) InterpretStrict(ctx *Context) (int32, error) {
	return InterpretStrict(e.tree, ctx)
}

func (e *Evaluator) Analyze(ctx *Context) []error {
	return Analyze(e.tree, ctx)
}

// IR compiles the tree into an LLVM module that evaluates it against ctx.
func (e *Evaluator) IR(ctx *Context) IR {
	return NewLLVMGenerator(e.tree, ctx).Do()
}

func (e *Evaluator) Tree() Expr {
	return e.tree
}

func (e *Evaluator) Variables() []string {
	return Variables(e.tree)
}

func (e *Evaluator) String() string {
	return Postfix(e.tree)
}

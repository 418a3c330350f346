package rpn

import (
	"fmt"

	"github.com/edwingeng/deque"
)

// Builder turns a postfix token stream into an expression tree using an
// operand stack. A Builder is used for a single Run.
type Builder struct {
	tokenizer Tokenizer
	stack     deque.Deque
	finished  bool
}

func NewBuilder(tokenizer Tokenizer) *Builder {
	return &Builder{
		tokenizer: tokenizer,
		stack:     deque.NewDeque(),
	}
}

// Build lexes expression and returns the root of its tree.
func Build(expression string) (Expr, error) {
	return NewBuilder(NewLexerFromString(expression)).Run()
}

// Run consumes the whole stream and returns the single remaining node.
func (b *Builder) Run() (Expr, error) {
	go b.tokenizer.Do()
	defer b.drain()

	for tok := b.next(); tok.Typ != TokenEOF; tok = b.next() {
		if err := b.token(tok); err != nil {
			return nil, err
		}
	}

	return b.root()
}

func (b *Builder) next() Token {
	tok := b.tokenizer.Get()
	if !tok.isValid() {
		b.finished = true
	}

	return tok
}

// drain keeps the tokenizer from blocking on a stream the builder gave up on.
func (b *Builder) drain() {
	for !b.finished {
		b.next()
	}
}

func (b *Builder) token(tok Token) error {
	switch tok.Typ {
	case TokenError:
		return b.errorf(Token{Pos: tok.Pos}, "%s", tok.Value)
	case TokenPlus:
		rhs, lhs, err := b.operands(tok)
		if err != nil {
			return err
		}

		b.push(&BinaryExpr{
			Operation: BinaryAddition,
			Op1:       lhs,
			Op2:       rhs,
		})
	case TokenMinus:
		// Popped in reverse: the first pop is the right-hand operand
		rhs, lhs, err := b.operands(tok)
		if err != nil {
			return err
		}

		b.push(&BinaryExpr{
			Operation: BinarySubtraction,
			Op1:       lhs,
			Op2:       rhs,
		})
	default:
		b.push(&VariableRef{
			Name: tok.Value,
		})
	}

	return nil
}

func (b *Builder) operands(tok Token) (Expr, Expr, error) {
	if b.stack.Len() < 2 {
		return nil, nil, b.errorf(tok, "operator %q needs two operands, found %d", tok.Value, b.stack.Len())
	}

	return b.pop(), b.pop(), nil
}

func (b *Builder) root() (Expr, error) {
	switch n := b.stack.Len(); {
	case n == 0:
		return nil, b.errorf(Token{}, "empty expression")
	case n > 1:
		return nil, b.errorf(Token{}, "%d operands left without an operator", n-1)
	}

	return b.pop(), nil
}

func (b *Builder) push(expr Expr) {
	b.stack.PushBack(expr)
}

func (b *Builder) pop() Expr {
	return b.stack.PopBack().(Expr)
}

func (b *Builder) errorf(tok Token, format string, args ...interface{}) error {
	return &MalformedExpressionError{
		Pos:    tok.Pos,
		Token:  tok.Value,
		Depth:  b.stack.Len(),
		Reason: fmt.Sprintf(format, args...),
	}
}

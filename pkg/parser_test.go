package rpn

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type BufferedTokenizerMocker struct {
	buf []Token
	pos int
}

func NewBufferedTokenizerMocker(toks []Token) *BufferedTokenizerMocker {
	return &BufferedTokenizerMocker{
		buf: toks,
		pos: 0,
	}
}

func (b *BufferedTokenizerMocker) Do() {
	return
}

func (b *BufferedTokenizerMocker) Get() Token {
	if len(b.buf) <= b.pos {
		return Token{Typ: TokenEOF}
	}

	tok := b.buf[b.pos]
	b.pos++

	return tok
}

func TestBuilder(t *testing.T) {
	cases := []struct {
		data   []Token
		fail   bool
		expect Expr
	}{
		{
			[]Token{
				{TokenIdentifier, "w", 1},
				{TokenIdentifier, "x", 2},
				{TokenIdentifier, "z", 3},
				{TokenMinus, "-", 4},
				{TokenPlus, "+", 5},
			},
			false,
			&BinaryExpr{
				Operation: BinaryAddition,
				Op1:       &VariableRef{"w"},
				Op2: &BinaryExpr{
					Operation: BinarySubtraction,
					Op1:       &VariableRef{"x"},
					Op2:       &VariableRef{"z"},
				},
			},
		},
		{
			[]Token{
				{TokenIdentifier, "a", 1},
				{TokenIdentifier, "b", 2},
				{TokenMinus, "-", 3},
			},
			false,
			&BinaryExpr{
				Operation: BinarySubtraction,
				Op1:       &VariableRef{"a"},
				Op2:       &VariableRef{"b"},
			},
		},
		{
			[]Token{
				{TokenIdentifier, "a", 1},
				{TokenIdentifier, "b", 2},
				{TokenPlus, "+", 3},
			},
			false,
			&BinaryExpr{
				Operation: BinaryAddition,
				Op1:       &VariableRef{"a"},
				Op2:       &VariableRef{"b"},
			},
		},
		{
			[]Token{
				{TokenIdentifier, "a", 1},
				{TokenIdentifier, "b", 2},
				{TokenMinus, "-", 3},
				{TokenIdentifier, "c", 4},
				{TokenMinus, "-", 5},
			},
			false,
			&BinaryExpr{
				Operation: BinarySubtraction,
				Op1: &BinaryExpr{
					Operation: BinarySubtraction,
					Op1:       &VariableRef{"a"},
					Op2:       &VariableRef{"b"},
				},
				Op2: &VariableRef{"c"},
			},
		},
		{
			[]Token{
				{TokenIdentifier, "q", 1},
			},
			false,
			&VariableRef{"q"},
		},
		{
			[]Token{
				{TokenPlus, "+", 1},
			},
			true,
			nil,
		},
		{
			[]Token{
				{TokenIdentifier, "a", 1},
				{TokenMinus, "-", 2},
			},
			true,
			nil,
		},
		{
			[]Token{
				{TokenIdentifier, "a", 1},
				{TokenIdentifier, "b", 2},
				{TokenPlus, "+", 3},
				{TokenPlus, "+", 4},
			},
			true,
			nil,
		},
		{
			[]Token{
				{TokenIdentifier, "a", 1},
				{TokenIdentifier, "b", 2},
			},
			true,
			nil,
		},
		{
			nil,
			true,
			nil,
		},
		{
			[]Token{
				{TokenIdentifier, "a", 1},
				{TokenError, "invalid UTF-8 encoding", 2},
			},
			true,
			nil,
		},
	}

	for _, c := range cases {
		tokenizer := NewBufferedTokenizerMocker(c.data)
		b := NewBuilder(tokenizer)

		got, err := b.Run()
		if c.fail {
			assert.True(t, errors.Is(err, ErrMalformedExpression), "expected building to fail, got %v", err)
			assert.Nil(t, got)

			continue
		}

		require.NoError(t, err)
		assert.Equal(t, c.expect, got)
	}
}

func TestBuilderErrorDetails(t *testing.T) {
	cases := []struct {
		expression string
		expect     *MalformedExpressionError
	}{
		{
			"+",
			&MalformedExpressionError{Pos: 1, Token: "+", Depth: 0, Reason: `operator "+" needs two operands, found 0`},
		},
		{
			"a b + +",
			&MalformedExpressionError{Pos: 4, Token: "+", Depth: 1, Reason: `operator "+" needs two operands, found 1`},
		},
		{
			"a b c -",
			&MalformedExpressionError{Pos: 0, Token: "", Depth: 2, Reason: "1 operands left without an operator"},
		},
		{
			"",
			&MalformedExpressionError{Pos: 0, Token: "", Depth: 0, Reason: "empty expression"},
		},
	}

	for _, c := range cases {
		_, err := Build(c.expression)

		var malformed *MalformedExpressionError
		require.True(t, errors.As(err, &malformed), c.expression)
		assert.Equal(t, c.expect, malformed, c.expression)
	}
}

func TestBuilderErrorMessage(t *testing.T) {
	_, err := Build("a b + +")
	require.Error(t, err)
	assert.Equal(t, `malformed expression: operator "+" needs two operands, found 1 at token 4 ("+")`, err.Error())

	_, err = Build("a b")
	require.Error(t, err)
	assert.Equal(t, "malformed expression: 1 operands left without an operator at end of input", err.Error())

	_, err = Build("a \xff b")
	require.Error(t, err)
	assert.Equal(t, "malformed expression: invalid UTF-8 encoding at token 2", err.Error())

	var malformed *MalformedExpressionError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, &MalformedExpressionError{Pos: 2, Depth: 1, Reason: "invalid UTF-8 encoding"}, malformed)
}

func TestBuilderDrainsLexer(t *testing.T) {
	// The builder stops at the first '+' but the lexer goroutine must still
	// run to completion
	l := NewLexerFromString("+ a b c d e f")

	_, err := NewBuilder(l).Run()
	require.Error(t, err)

	_, open := <-l.Chan()
	assert.False(t, open)
}

func TestBuild(t *testing.T) {
	got, err := Build("w x z - +")
	require.NoError(t, err)

	assert.Equal(t, &BinaryExpr{
		Operation: BinaryAddition,
		Op1:       &VariableRef{"w"},
		Op2: &BinaryExpr{
			Operation: BinarySubtraction,
			Op1:       &VariableRef{"x"},
			Op2:       &VariableRef{"z"},
		},
	}, got)
}

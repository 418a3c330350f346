package rpn

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

type TokenType uint64
type stateFunc func(l *Lexer) stateFunc

const (
	EOF rune = -1

	TokenError TokenType = iota
	TokenEOF
	TokenIdentifier

	TokenPlus
	TokenMinus
)

var tokenNames = map[TokenType]string{
	TokenError:      "Error",
	TokenEOF:        "EOF",
	TokenIdentifier: "Identifier",
	TokenPlus:       "Plus",
	TokenMinus:      "Minus",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return fmt.Sprintf("TokenType(%d)", uint64(t))
}

var operatorTable = map[string]TokenType{
	"+": TokenPlus,
	"-": TokenMinus,
}

var errInvalidEncoding = errors.New("invalid UTF-8 encoding")

// Token is a single word of a postfix stream. Pos is the 1-based index of
// the token in the stream.
type Token struct {
	Typ   TokenType
	Value string
	Pos   int
}

func (t Token) isValid() bool {
	return t.Typ != TokenError && t.Typ != TokenEOF
}

// Tokenizer is the token source a Builder consumes. Do produces tokens and
// Get returns them one at a time, TokenEOF once the stream is exhausted.
type Tokenizer interface {
	Do()
	Get() Token
}

type Lexer struct {
	reader *bufio.Reader
	done   chan Token
	pos    int
	err    error
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
		done:   make(chan Token),
	}
}

func NewLexerFromString(expression string) *Lexer {
	return NewLexer(strings.NewReader(expression))
}

func (l *Lexer) Chan() chan Token {
	return l.done
}

func (l *Lexer) Do() {
	l.Run()
}

func (l *Lexer) Get() Token {
	t, ok := <-l.done
	if !ok {
		return Token{Typ: TokenEOF, Pos: l.pos + 1}
	}

	return t
}

func (l *Lexer) Run() {
	for state := defaultState; state != nil; {
		state = state(l)
	}

	close(l.done)
}

func (l *Lexer) RunBlocking() ([]Token, error) {
	go l.Run()

	var tokens []Token
	for t := range l.Chan() {
		switch t.Typ {
		case TokenEOF:
			return tokens, nil
		case TokenError:
			return nil, errors.Errorf("token %d: %s", t.Pos, t.Value)
		}

		tokens = append(tokens, t)
	}

	return tokens, nil
}

func defaultState(l *Lexer) stateFunc {
	for {
		r := l.peek()
		if l.err != nil {
			return l.errorf("%v", l.err)
		}

		switch {
		case r == EOF:
			l.emmit(TokenEOF, "")
			return nil
		case unicode.IsSpace(r):
			l.next()
		default:
			return wordState
		}
	}
}

func wordState(l *Lexer) stateFunc {
	var word strings.Builder
	for r := l.peek(); r != EOF && !unicode.IsSpace(r); r = l.peek() {
		if l.err != nil {
			break
		}

		word.WriteRune(l.next())
	}

	if l.err != nil {
		return l.errorf("%v after %q", l.err, word.String())
	}

	if tok, ok := operatorTable[word.String()]; ok {
		return l.emmitValue(tok, word.String())
	}

	return l.emmitValue(TokenIdentifier, word.String())
}

func (l *Lexer) errorf(format string, args ...interface{}) stateFunc {
	l.emmit(TokenError, fmt.Sprintf(format, args...))

	return nil
}

func (l *Lexer) emmit(t TokenType, val string) {
	l.pos++
	l.done <- Token{
		Typ:   t,
		Value: val,
		Pos:   l.pos,
	}
}

func (l *Lexer) emmitValue(t TokenType, val string) stateFunc {
	l.emmit(t, val)

	return defaultState
}

func (l *Lexer) peek() rune {
	r := l.next()
	if r != EOF {
		_ = l.reader.UnreadRune()
	}

	return r
}

func (l *Lexer) next() rune {
	r, size, err := l.reader.ReadRune()
	if err != nil {
		if err != io.EOF {
			l.err = err
		}

		return EOF
	}

	if r == utf8.RuneError && size == 1 {
		l.err = errInvalidEncoding
	}

	return r
}

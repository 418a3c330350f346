package rpn

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrMalformedExpression matches every error returned while building a
	// tree from an unbalanced or unreadable token stream.
	ErrMalformedExpression = errors.New("malformed expression")

	// ErrEvaluation matches the binding errors reported in strict mode.
	ErrEvaluation = errors.New("evaluation error")
)

// MalformedExpressionError reports a token stream that does not reduce to
// exactly one tree. Pos is the offending token, or 0 for end of input.
type MalformedExpressionError struct {
	Pos    int
	Token  string
	Depth  int
	Reason string
}

func (e *MalformedExpressionError) Error() string {
	if e.Pos == 0 {
		return fmt.Sprintf("malformed expression: %s at end of input", e.Reason)
	}

	if e.Token == "" {
		return fmt.Sprintf("malformed expression: %s at token %d", e.Reason, e.Pos)
	}

	return fmt.Sprintf("malformed expression: %s at token %d (%q)", e.Reason, e.Pos, e.Token)
}

func (e *MalformedExpressionError) Is(target error) bool {
	return target == ErrMalformedExpression
}

type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable %q", e.Name)
}

func (e *UnboundVariableError) Is(target error) bool {
	return target == ErrEvaluation
}

// CyclicBindingError reports a variable whose binding refers back to
// itself. Path starts and ends with Name.
type CyclicBindingError struct {
	Name string
	Path []string
}

func (e *CyclicBindingError) Error() string {
	return fmt.Sprintf("cyclic binding for %q: %s", e.Name, strings.Join(e.Path, " -> "))
}

func (e *CyclicBindingError) Is(target error) bool {
	return target == ErrEvaluation
}

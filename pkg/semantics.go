package rpn

import (
	"github.com/ahrtr/gocontainer/set"
)

// Analyzer walks a tree and every binding it reaches through a context,
// collecting the bindings strict evaluation rejects.
type Analyzer struct {
	ctx *Context

	path     []string
	visited  set.Interface
	reported set.Interface
	errors   []error
}

func NewAnalyzer(ctx *Context) *Analyzer {
	return &Analyzer{
		ctx:      ctx,
		visited:  set.New(),
		reported: set.New(),
	}
}

// Analyze reports every unbound variable and cyclic binding reachable
// from expr, in the order they are met, without duplicates.
func Analyze(expr Expr, ctx *Context) []error {
	return NewAnalyzer(ctx).Do(expr)
}

func (a *Analyzer) Do(expr Expr) []error {
	a.analyze(expr)

	return a.errors
}

func (a *Analyzer) analyze(expr Expr) {
	switch e := expr.(type) {
	case *VariableRef:
		a.variable(e.Name)
	case *BinaryExpr:
		a.analyze(e.Op1)
		a.analyze(e.Op2)
	}
}

func (a *Analyzer) variable(name string) {
	for i, n := range a.path {
		if n == name {
			cycle := make([]string, 0, len(a.path)-i+1)
			cycle = append(cycle, a.path[i:]...)

			a.addError(&CyclicBindingError{
				Name: name,
				Path: append(cycle, name),
			})
			return
		}
	}

	if a.visited.Contains(name) {
		return
	}

	bound, ok := a.ctx.Get(name)
	if !ok {
		a.addError(&UnboundVariableError{Name: name})
		a.visited.Add(name)
		return
	}

	a.path = append(a.path, name)
	a.analyze(bound)
	a.path = a.path[:len(a.path)-1]

	a.visited.Add(name)
}

func (a *Analyzer) addError(err error) {
	msg := err.Error()
	if a.reported.Contains(msg) {
		return
	}

	a.reported.Add(msg)
	a.errors = append(a.errors, err)
}

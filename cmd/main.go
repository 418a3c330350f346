package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"github.com/pkg/errors"

	"go.rpn.dev/pkg"
)

const usage = `usage: rpn [-hlstv] [-c context.yaml] [-D name=value]... expression...

  -c file        load variable bindings from a YAML file
  -D name=value  bind a variable to an integer or a postfix expression
  -h             show this help
  -l             print the LLVM IR for the expression instead of evaluating it
  -s             strict mode: fail on unbound or cyclic variables
  -t             print the expression tree before the result
  -v             trace every token read`

const (
	exitOK        = 0
	exitUsage     = 64
	exitMalformed = 65
	exitNoInput   = 66
	exitEval      = 70
)

type options struct {
	strict  bool
	tree    bool
	llvm    bool
	verbose bool
	ctx     *rpn.Context
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, optind, err := getopt.Getopts(args, "c:D:hlstv")
	if err != nil {
		printError(stderr, err)
		fmt.Fprintln(stderr, usage)
		return exitUsage
	}

	o := &options{ctx: rpn.NewContext()}
	for _, opt := range opts {
		switch opt.Option {
		case 'c':
			ctx, err := loadContextFile(opt.Value)
			if err != nil {
				printError(stderr, err)
				return exitNoInput
			}

			o.ctx.Inherit(ctx)
		case 'D':
			name, expr, err := rpn.ParseBinding(opt.Value)
			if err != nil {
				printError(stderr, err)
				return exitUsage
			}

			o.ctx.Set(name, expr)
		case 'h':
			fmt.Fprintln(stdout, usage)
			return exitOK
		case 'l':
			o.llvm = true
		case 's':
			o.strict = true
		case 't':
			o.tree = true
		case 'v':
			o.verbose = true
		}
	}

	expression := strings.Join(args[optind:], " ")
	if strings.TrimSpace(expression) == "" {
		printError(stderr, errors.New("no expression given"))
		fmt.Fprintln(stderr, usage)
		return exitUsage
	}

	return evaluate(o, expression, stdout, stderr)
}

func evaluate(o *options, expression string, stdout, stderr io.Writer) int {
	var tokenizer rpn.Tokenizer = rpn.NewLexerFromString(expression)
	if o.verbose {
		tokenizer = &tracer{Tokenizer: tokenizer, w: stderr}
	}

	ev, err := rpn.NewEvaluatorFromTokenizer(tokenizer)
	if err != nil {
		printError(stderr, err)
		if errors.Is(err, rpn.ErrMalformedExpression) {
			return exitMalformed
		}

		return exitNoInput
	}

	if o.tree {
		fmt.Fprintln(stdout, rpn.Infix(ev.Tree()))
	}

	if o.llvm {
		fmt.Fprint(stdout, ev.IR(o.ctx).String())
		return exitOK
	}

	if !o.strict {
		fmt.Fprintln(stdout, ev.Interpret(o.ctx))
		return exitOK
	}

	errs := ev.Analyze(o.ctx)
	for _, err := range errs {
		printError(stderr, err)
	}

	if len(errs) != 0 {
		return exitEval
	}

	fmt.Fprintln(stdout, ev.Interpret(o.ctx))
	return exitOK
}

func loadContextFile(path string) (*rpn.Context, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "context file")
	}
	defer f.Close()

	ctx, err := rpn.LoadContext(f)
	if err != nil {
		return nil, errors.Wrapf(err, "context file %s", path)
	}

	return ctx, nil
}

func printError(w io.Writer, err error) {
	color.New(color.FgRed).Fprintln(w, "error:", err)
}

// tracer echoes every token passing from the lexer to the builder.
type tracer struct {
	rpn.Tokenizer
	w io.Writer
}

func (t *tracer) Get() rpn.Token {
	tok := t.Tokenizer.Get()

	switch tok.Typ {
	case rpn.TokenPlus, rpn.TokenMinus:
		color.New(color.FgYellow).Fprintf(t.w, "token %d: %s %q\n", tok.Pos, tok.Typ, tok.Value)
	default:
		color.New(color.FgBlue).Fprintf(t.w, "token %d: %s %q\n", tok.Pos, tok.Typ, tok.Value)
	}

	return tok
}

package rpn

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/ahrtr/gocontainer/set"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Context binds variable names to expressions. A nil *Context is a valid,
// empty context.
type Context struct {
	vals map[string]Expr
}

func NewContext() *Context {
	return &Context{
		vals: make(map[string]Expr),
	}
}

// Inherit copies every binding of c2 into c, replacing existing names.
func (c *Context) Inherit(c2 *Context) {
	if c2 == nil {
		return
	}

	for k, v := range c2.vals {
		c.Set(k, v)
	}
}

func (c *Context) Get(name string) (Expr, bool) {
	if c == nil {
		return nil, false
	}

	val, ok := c.vals[name]
	return val, ok
}

func (c *Context) Set(name string, val Expr) {
	c.vals[name] = val
}

func (c *Context) SetInt(name string, val int32) {
	c.Set(name, &Constant{Value: val})
}

func (c *Context) Len() int {
	if c == nil {
		return 0
	}

	return len(c.vals)
}

func (c *Context) Names() []string {
	if c == nil {
		return nil
	}

	names := make([]string, 0, len(c.vals))
	for name := range c.vals {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// LoadContext reads a YAML mapping of bindings. Integer values are bound as
// constants, string values are postfix expressions built into trees.
//
//	w: 5
//	x: 10
//	y: "w x +"
func LoadContext(r io.Reader) (*Context, error) {
	ctx := NewContext()

	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return ctx, nil
		}

		return nil, errors.Wrap(err, "decode context")
	}

	if len(doc.Content) == 0 {
		return ctx, nil
	}

	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, errors.Errorf("line %d: context must be a mapping of name to value", m.Line)
	}

	seen := set.New()
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i], m.Content[i+1]
		if seen.Contains(key.Value) {
			return nil, errors.Errorf("line %d: binding %q defined twice", key.Line, key.Value)
		}
		seen.Add(key.Value)

		expr, err := bindingValue(val)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: binding %q", key.Line, key.Value)
		}

		ctx.Set(key.Value, expr)
	}

	return ctx, nil
}

func bindingValue(val *yaml.Node) (Expr, error) {
	if val.Kind != yaml.ScalarNode {
		return nil, errors.New("value must be an integer or a postfix expression")
	}

	switch val.Tag {
	case "!!int":
		var v int32
		if err := val.Decode(&v); err != nil {
			return nil, err
		}

		return &Constant{Value: v}, nil
	case "!!str":
		return Build(val.Value)
	default:
		return nil, errors.Errorf("unsupported value %q (%s)", val.Value, val.Tag)
	}
}

// ParseBinding parses a "name=value" pair. An integer value is bound as a
// constant, anything else is built as a postfix expression.
func ParseBinding(s string) (string, Expr, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", nil, errors.Errorf("binding %q: expected name=value", s)
	}

	if v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 32); err == nil {
		return name, &Constant{Value: int32(v)}, nil
	}

	expr, err := Build(value)
	if err != nil {
		return "", nil, errors.Wrapf(err, "binding %q", name)
	}

	return name, expr, nil
}

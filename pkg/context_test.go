package rpn

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext(t *testing.T) {
	ctx := NewContext()

	ctx.SetInt("id1", 1)
	ctx.Set("id2", &VariableRef{"id1"})

	v, ok := ctx.Get("id1")
	assert.True(t, ok)
	assert.Equal(t, &Constant{Value: 1}, v)

	v, ok = ctx.Get("id2")
	assert.True(t, ok)
	assert.Equal(t, &VariableRef{"id1"}, v)

	_, ok = ctx.Get("id3")
	assert.False(t, ok)

	assert.Equal(t, 2, ctx.Len())
	assert.Equal(t, []string{"id1", "id2"}, ctx.Names())
}

func TestContextInherit(t *testing.T) {
	ctx1 := NewContext()
	ctx1.SetInt("id1", 1)
	ctx1.SetInt("id2", 2)

	ctx2 := NewContext()
	ctx2.SetInt("id1", 3)
	ctx2.SetInt("id4", 4)

	ctx1.Inherit(ctx2)
	ctx1.Inherit(nil)

	for name, expect := range map[string]int32{"id1": 3, "id2": 2, "id4": 4} {
		v, ok := ctx1.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, &Constant{Value: expect}, v, name)
	}
}

func TestNilContext(t *testing.T) {
	var ctx *Context

	_, ok := ctx.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, ctx.Len())
	assert.Nil(t, ctx.Names())
}

func TestLoadContext(t *testing.T) {
	data := `
w: 5
x: 10
z: -42
sum: "w x +"
`

	ctx, err := LoadContext(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"sum", "w", "x", "z"}, ctx.Names())

	z, _ := ctx.Get("z")
	assert.Equal(t, &Constant{Value: -42}, z)

	sum, _ := ctx.Get("sum")
	assert.Equal(t, &BinaryExpr{
		Operation: BinaryAddition,
		Op1:       &VariableRef{"w"},
		Op2:       &VariableRef{"x"},
	}, sum)

	tree, err := Build("sum z -")
	require.NoError(t, err)
	assert.Equal(t, int32(57), Interpret(tree, ctx))
}

func TestLoadContextEmpty(t *testing.T) {
	ctx, err := LoadContext(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, ctx.Len())
}

func TestLoadContextErrors(t *testing.T) {
	cases := []struct {
		data   string
		expect string
	}{
		{"- 1\n- 2\n", "context must be a mapping"},
		{"a: [1, 2]\n", `binding "a"`},
		{"a: 1.5\n", "unsupported value"},
		{"a: 4294967296\n", `binding "a"`},
		{"a: \"b +\"\n", "malformed expression"},
		{"a: [1, 2\n", "decode context"},
		{"a: 1\nb: 2\na: 3\n", `line 3: binding "a" defined twice`},
	}

	for _, c := range cases {
		_, err := LoadContext(strings.NewReader(c.data))
		require.Error(t, err, c.data)
		assert.Contains(t, err.Error(), c.expect, c.data)
	}
}

func TestParseBinding(t *testing.T) {
	name, expr, err := ParseBinding("w=5")
	require.NoError(t, err)
	assert.Equal(t, "w", name)
	assert.Equal(t, &Constant{Value: 5}, expr)

	name, expr, err = ParseBinding(" neg = -3 ")
	require.NoError(t, err)
	assert.Equal(t, "neg", name)
	assert.Equal(t, &Constant{Value: -3}, expr)

	name, expr, err = ParseBinding("d=a b -")
	require.NoError(t, err)
	assert.Equal(t, "d", name)
	assert.Equal(t, &BinaryExpr{
		Operation: BinarySubtraction,
		Op1:       &VariableRef{"a"},
		Op2:       &VariableRef{"b"},
	}, expr)

	for _, bad := range []string{"w", "=5", "w=a +", "w="} {
		_, _, err := ParseBinding(bad)
		assert.Error(t, err, bad)
	}
}

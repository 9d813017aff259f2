package natives_test

import (
	"strings"
	"testing"

	"github.com/lumen-lang/lumen/lang/natives"
	"github.com/lumen-lang/lumen/lang/value"
	"github.com/stretchr/testify/require"
)

func defineAll(t *testing.T, stdin string) map[string]value.Value {
	t.Helper()
	bound := map[string]value.Value{}
	natives.Define(func(name string, v value.Value) { bound[name] = v }, strings.NewReader(stdin))
	return bound
}

func call(t *testing.T, bound map[string]value.Value, name string, args ...value.Value) value.Value {
	t.Helper()
	n, ok := bound[name].(*value.Native)
	require.True(t, ok, "native %q not bound", name)
	v, err := n.Fn(args)
	require.NoError(t, err)
	return v
}

func TestAbsAndSqrt(t *testing.T) {
	bound := defineAll(t, "")
	require.Equal(t, value.Number(3), call(t, bound, "abs", value.Number(-3)))
	require.Equal(t, value.Number(3), call(t, bound, "sqrt", value.Number(9)))
}

func TestLenCountsRunes(t *testing.T) {
	bound := defineAll(t, "")
	require.Equal(t, value.Number(5), call(t, bound, "len", value.NewString("hello")))
}

func TestTypeAndStr(t *testing.T) {
	bound := defineAll(t, "")
	require.Equal(t, value.NewString("number"), call(t, bound, "type", value.Number(1)))
	require.Equal(t, value.NewString("7"), call(t, bound, "str", value.Number(7)))
}

func TestInputReadsOneLineTrimmed(t *testing.T) {
	bound := defineAll(t, "hello world\nsecond\n")
	require.Equal(t, value.NewString("hello world"), call(t, bound, "input"))
	require.Equal(t, value.NewString("second"), call(t, bound, "input"))
}

func TestSqrtOfNegativeIsError(t *testing.T) {
	bound := defineAll(t, "")
	n := bound["sqrt"].(*value.Native)
	_, err := n.Fn([]value.Value{value.Number(-1)})
	require.Error(t, err)
}

func TestArithmeticNatives(t *testing.T) {
	bound := defineAll(t, "")
	require.Equal(t, value.Number(8), call(t, bound, "pow", value.Number(2), value.Number(3)))
	require.Equal(t, value.Number(2), call(t, bound, "floor", value.Number(2.7)))
	require.Equal(t, value.Number(3), call(t, bound, "ceil", value.Number(2.1)))
	require.Equal(t, value.Number(3), call(t, bound, "round", value.Number(2.6)))
}

func TestRandomIsWithinUnitRange(t *testing.T) {
	bound := defineAll(t, "")
	n := call(t, bound, "random").(value.Number)
	require.GreaterOrEqual(t, float64(n), 0.0)
	require.Less(t, float64(n), 1.0)
}

func TestTypePredicates(t *testing.T) {
	bound := defineAll(t, "")
	require.Equal(t, value.Bool(true), call(t, bound, "isNumber", value.Number(1)))
	require.Equal(t, value.Bool(false), call(t, bound, "isNumber", value.NewString("1")))
	require.Equal(t, value.Bool(true), call(t, bound, "isString", value.NewString("a")))
	require.Equal(t, value.Bool(true), call(t, bound, "isNull", value.Nil))
	require.Equal(t, value.Bool(true), call(t, bound, "isBool", value.Bool(false)))
}

func TestToNumberAndToBoolean(t *testing.T) {
	bound := defineAll(t, "")
	require.Equal(t, value.Number(42), call(t, bound, "toNumber", value.NewString("42")))
	require.Equal(t, value.Nil, call(t, bound, "toNumber", value.NewString("nope")))
	require.Equal(t, value.Bool(true), call(t, bound, "toBoolean", value.NewString("x")))
	require.Equal(t, value.Bool(false), call(t, bound, "toBoolean", value.NewString("")))
}

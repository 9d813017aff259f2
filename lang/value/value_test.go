package value_test

import (
	"testing"

	"github.com/lumen-lang/lumen/lang/value"
	"github.com/stretchr/testify/require"
)

func TestTruthy(t *testing.T) {
	cases := []struct {
		name string
		v    value.Value
		want bool
	}{
		{"nil", value.Nil, false},
		{"true", value.Bool(true), true},
		{"false", value.Bool(false), false},
		{"zero", value.Number(0), false},
		{"nonzero", value.Number(1), true},
		{"negative", value.Number(-1), true},
		{"empty string", value.NewString(""), false},
		{"nonempty string", value.NewString("a"), true},
		{"native is always true", &value.Native{NativeName: "x"}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, value.Truthy(c.v))
		})
	}
}

func TestEqualStringsByHandle(t *testing.T) {
	a := value.NewString("hello")
	b := value.NewString("hello")
	require.True(t, value.Equal(a, b))
	require.Same(t, a.Handle(), b.Handle())
}

func TestEqualNumbers(t *testing.T) {
	require.True(t, value.Equal(value.Number(1), value.Number(1)))
	require.False(t, value.Equal(value.Number(1), value.Number(2)))
}

func TestEqualAcrossTypesIsFalse(t *testing.T) {
	require.False(t, value.Equal(value.Number(0), value.Bool(false)))
	require.False(t, value.Equal(value.Nil, value.Bool(false)))
}

func TestNumberString(t *testing.T) {
	require.Equal(t, "3.5", value.Number(3.5).String())
	require.Equal(t, "7", value.Number(7).String())
}

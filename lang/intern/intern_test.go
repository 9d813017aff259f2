package intern_test

import (
	"testing"

	"github.com/lumen-lang/lumen/lang/intern"
	"github.com/stretchr/testify/require"
)

func TestInternReturnsSameHandleForEqualContents(t *testing.T) {
	tbl := intern.NewTable()
	a := tbl.Intern("hello")
	b := tbl.Intern("hello")
	require.Same(t, a, b)
}

func TestInternReturnsDifferentHandlesForDifferentContents(t *testing.T) {
	tbl := intern.NewTable()
	a := tbl.Intern("hello")
	b := tbl.Intern("world")
	require.NotSame(t, a, b)
}

func TestFindDoesNotInsert(t *testing.T) {
	tbl := intern.NewTable()
	_, ok := tbl.Find("nope")
	require.False(t, ok)
	require.Equal(t, 0, tbl.Len())
}

func TestFindAfterIntern(t *testing.T) {
	tbl := intern.NewTable()
	h := tbl.Intern("abc")
	found, ok := tbl.Find("abc")
	require.True(t, ok)
	require.Same(t, h, found)
}

func TestHandleString(t *testing.T) {
	tbl := intern.NewTable()
	h := tbl.Intern("xyz")
	require.Equal(t, "xyz", h.String())
}

func TestProcessWideIntern(t *testing.T) {
	a := intern.Intern("process-wide")
	b := intern.Intern("process-wide")
	require.Same(t, a, b)
}

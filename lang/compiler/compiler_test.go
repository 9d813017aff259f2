package compiler_test

import (
	"bytes"
	"testing"

	"github.com/lumen-lang/lumen/lang/chunk"
	"github.com/lumen-lang/lumen/lang/compiler"
	"github.com/lumen-lang/lumen/lang/lexer"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, src string) (*chunk.Function, string) {
	t.Helper()
	toks := lexer.ScanAll(src, nil)
	var diag bytes.Buffer
	fn, err := compiler.Compile(toks, &diag)
	if err != nil {
		return nil, diag.String()
	}
	return fn, diag.String()
}

func TestCompileSimpleExpressionStatement(t *testing.T) {
	fn, diag := compile(t, "print(1 + 2 * 3);")
	require.NotNil(t, fn, diag)

	var buf bytes.Buffer
	fn.Chunk.Disassemble(&buf, "<script>")
	out := buf.String()
	require.Contains(t, out, "OP_CONSTANT")
	require.Contains(t, out, "OP_MULT")
	require.Contains(t, out, "OP_ADD")
	require.Contains(t, out, "OP_PRINT")
}

func TestSubtractionUsesNegAddEconomy(t *testing.T) {
	fn, diag := compile(t, "print(5 - 2);")
	require.NotNil(t, fn, diag)

	var buf bytes.Buffer
	fn.Chunk.Disassemble(&buf, "<script>")
	out := buf.String()
	require.Contains(t, out, "OP_NEG")
	require.Contains(t, out, "OP_ADD")
	require.NotContains(t, out, "OP_SUB")
}

func TestGlobalVariableDeclarationAndAssignment(t *testing.T) {
	fn, diag := compile(t, "let x = 10; x = x + 5;")
	require.NotNil(t, fn, diag)

	var buf bytes.Buffer
	fn.Chunk.Disassemble(&buf, "<script>")
	out := buf.String()
	require.Contains(t, out, "OP_DEFINE_GLOBAL")
	require.Contains(t, out, "OP_SET_GLOBAL")
	require.Contains(t, out, "OP_GET_GLOBAL")
}

func TestConstWithoutInitializerIsError(t *testing.T) {
	_, diag := compile(t, "const x;")
	require.Contains(t, diag, "Const declaration requires an initializer.")
}

func TestAssigningToConstGlobalIsError(t *testing.T) {
	_, diag := compile(t, "const x = 1; x = 2;")
	require.Contains(t, diag, "Can't assign to const global.")
}

func TestAssigningToConstLocalIsError(t *testing.T) {
	_, diag := compile(t, "fn f() { const x = 1; x = 2; }")
	require.Contains(t, diag, "Can't assign to const local.")
}

func TestReadingVariableInOwnInitializerIsError(t *testing.T) {
	_, diag := compile(t, "fn f() { let x = x; }")
	require.Contains(t, diag, "Can't read variable in its own initializer.")
}

func TestRedeclaringLocalInSameScopeIsError(t *testing.T) {
	_, diag := compile(t, "fn f() { let x = 1; let x = 2; }")
	require.Contains(t, diag, "Already a variable with this name in this scope.")
}

func TestBreakOutsideLoopIsError(t *testing.T) {
	_, diag := compile(t, "break;")
	require.Contains(t, diag, "Can't use 'break' outside of a loop.")
}

func TestContinueOutsideLoopIsError(t *testing.T) {
	_, diag := compile(t, "continue;")
	require.Contains(t, diag, "Can't use 'continue' outside of a loop.")
}

func TestReturnAtTopLevelIsError(t *testing.T) {
	_, diag := compile(t, "return 1;")
	require.Contains(t, diag, "Can't return from top-level code.")
}

func TestInvalidAssignmentTargetIsError(t *testing.T) {
	_, diag := compile(t, "1 + 2 = 3;")
	require.Contains(t, diag, "Invalid assignment target.")
}

func TestFunctionDeclarationEmitsClosureAndCall(t *testing.T) {
	fn, diag := compile(t, "fn add(a, b) { return a + b; } print(add(1, 2));")
	require.NotNil(t, fn, diag)

	var buf bytes.Buffer
	fn.Chunk.Disassemble(&buf, "<script>")
	out := buf.String()
	require.Contains(t, out, "OP_CLOSURE")
	require.Contains(t, out, "OP_CALL")

	var nested *chunk.Function
	for _, v := range fn.Chunk.Pool {
		if f, ok := v.(*chunk.Function); ok {
			nested = f
		}
	}
	require.NotNil(t, nested)
	require.Equal(t, "add", nested.Name)
	require.Equal(t, 2, nested.Arity)
}

func TestClosureCapturesEnclosingLocalAsUpvalue(t *testing.T) {
	fn, diag := compile(t, `
		fn makeCounter() {
			let i = 0;
			fn c() { i = i + 1; return i; }
			return c;
		}
	`)
	require.NotNil(t, fn, diag)

	var outer *chunk.Function
	for _, v := range fn.Chunk.Pool {
		if f, ok := v.(*chunk.Function); ok && f.Name == "makeCounter" {
			outer = f
		}
	}
	require.NotNil(t, outer)

	var inner *chunk.Function
	for _, v := range outer.Chunk.Pool {
		if f, ok := v.(*chunk.Function); ok && f.Name == "c" {
			inner = f
		}
	}
	require.NotNil(t, inner)
	require.Equal(t, 1, inner.UpvalueCount)

	var buf bytes.Buffer
	inner.Chunk.Disassemble(&buf, "c")
	out := buf.String()
	require.Contains(t, out, "OP_GET_UPVALUE")
	require.Contains(t, out, "OP_SET_UPVALUE")
}

func TestWhileLoopEmitsLoopAndConditionalJump(t *testing.T) {
	fn, diag := compile(t, "let i = 0; while (i < 3) { print(i); i = i + 1; }")
	require.NotNil(t, fn, diag)

	var buf bytes.Buffer
	fn.Chunk.Disassemble(&buf, "<script>")
	out := buf.String()
	require.Contains(t, out, "OP_JUMP_IF_FALSE")
	require.Contains(t, out, "OP_LOOP")
}

func TestPostfixIncrementLeavesPreUpdateValue(t *testing.T) {
	fn, diag := compile(t, "fn f() { let x = 1; print(x++); }")
	require.NotNil(t, fn, diag)

	var outer *chunk.Function
	for _, v := range fn.Chunk.Pool {
		if f, ok := v.(*chunk.Function); ok {
			outer = f
		}
	}
	require.NotNil(t, outer)

	var buf bytes.Buffer
	outer.Chunk.Disassemble(&buf, "f")
	out := buf.String()
	require.Contains(t, out, "OP_DUP")
	require.Contains(t, out, "OP_POP")
}

func TestSwitchStatementCompiles(t *testing.T) {
	fn, diag := compile(t, `
		switch (1) {
			1 -> print(1);
			_ -> print(0);
		}
	`)
	require.NotNil(t, fn, diag)

	var buf bytes.Buffer
	fn.Chunk.Disassemble(&buf, "<script>")
	out := buf.String()
	require.Contains(t, out, "OP_DUP")
	require.Contains(t, out, "OP_EQUAL")
}

func TestShortCircuitAndOr(t *testing.T) {
	fn, diag := compile(t, "print(true and false); print(true or false);")
	require.NotNil(t, fn, diag)

	var buf bytes.Buffer
	fn.Chunk.Disassemble(&buf, "<script>")
	out := buf.String()
	require.Contains(t, out, "OP_JUMP_IF_FALSE")
	require.Contains(t, out, "OP_JUMP")
}

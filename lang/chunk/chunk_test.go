package chunk_test

import (
	"bytes"
	"testing"

	"github.com/lumen-lang/lumen/lang/chunk"
	"github.com/lumen-lang/lumen/lang/value"
	"github.com/stretchr/testify/require"
)

func TestWriteByteTracksLines(t *testing.T) {
	c := chunk.New()
	c.WriteByte(1, 1)
	c.WriteByte(2, 1)
	c.WriteByte(3, 2)

	require.Equal(t, 1, c.LineAt(0))
	require.Equal(t, 1, c.LineAt(1))
	require.Equal(t, 2, c.LineAt(2))
}

func TestWriteConstantShortForm(t *testing.T) {
	c := chunk.New()
	idx := c.WriteConstant(value.Number(42), 1)

	require.Equal(t, 0, idx)
	require.Equal(t, []byte{byte(chunk.OpConstant), 0}, c.Code)
	require.Equal(t, value.Number(42), c.Pool[0])
}

func TestWriteConstantLongFormAtBoundary(t *testing.T) {
	c := chunk.New()
	for i := 0; i < 256; i++ {
		c.AddConstant(value.Number(float64(i)))
	}
	idx := c.WriteConstant(value.Number(999), 1)

	require.Equal(t, 256, idx)
	require.Equal(t, chunk.OpConstantLong, chunk.Opcode(c.Code[0]))
	// little-endian 24-bit index
	require.Equal(t, byte(0), c.Code[1])
	require.Equal(t, byte(1), c.Code[2])
	require.Equal(t, byte(0), c.Code[3])
}

func TestPatchJumpComputesForwardOffset(t *testing.T) {
	c := chunk.New()
	at := c.WriteJumpPlaceholder(chunk.OpJump, 1)
	c.WriteOp(chunk.OpPop, 1)
	c.WriteOp(chunk.OpPop, 1)
	require.NoError(t, c.PatchJump(at))

	offset := chunk.ReadU16BE(c.Code, at)
	require.Equal(t, uint16(2), offset)
}

func TestWriteLoopComputesBackwardOffset(t *testing.T) {
	c := chunk.New()
	loopStart := len(c.Code)
	c.WriteOp(chunk.OpNil, 1)
	require.NoError(t, c.WriteLoop(loopStart, 1))

	offset := chunk.ReadU16BE(c.Code, len(c.Code)-2)
	require.Equal(t, uint16(4), offset)
}

func TestDisassembleDoesNotPanic(t *testing.T) {
	c := chunk.New()
	c.WriteConstant(value.Number(1), 1)
	c.WriteConstant(value.Number(2), 1)
	c.WriteOp(chunk.OpAdd, 1)
	c.WriteOp(chunk.OpReturn, 2)

	var buf bytes.Buffer
	c.Disassemble(&buf, "test")
	out := buf.String()
	require.Contains(t, out, "== test ==")
	require.Contains(t, out, "OP_CONSTANT")
	require.Contains(t, out, "OP_ADD")
	require.Contains(t, out, "OP_RETURN")
}

func TestFunctionStringsTopLevelVsNamed(t *testing.T) {
	top := chunk.NewFunction("", 0)
	require.Equal(t, "<script>", top.String())

	named := chunk.NewFunction("fib", 1)
	require.Equal(t, "<fn fib>", named.String())
	require.Equal(t, 1, named.Arity)
	require.Equal(t, "function", named.Type())
}

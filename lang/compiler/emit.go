package compiler

import (
	"github.com/lumen-lang/lumen/lang/chunk"
	"github.com/lumen-lang/lumen/lang/value"
)

func (c *Compiler) currentChunk() *chunk.Chunk { return c.cur.fn.Chunk }

func (c *Compiler) emitByte(b byte) {
	c.currentChunk().WriteByte(b, c.previous.Line)
}

func (c *Compiler) emitBytes(b1, b2 byte) {
	c.emitByte(b1)
	c.emitByte(b2)
}

func (c *Compiler) emitOp(op chunk.Opcode) {
	c.currentChunk().WriteOp(op, c.previous.Line)
}

func (c *Compiler) emitConstant(v value.Value) {
	c.currentChunk().WriteConstant(v, c.previous.Line)
}

// emitJump emits op followed by a placeholder offset and returns the
// patch location, per spec.md §4.3.3's jump-then-backpatch idiom.
func (c *Compiler) emitJump(op chunk.Opcode) int {
	return c.currentChunk().WriteJumpPlaceholder(op, c.previous.Line)
}

func (c *Compiler) patchJump(at int) {
	if err := c.currentChunk().PatchJump(at); err != nil {
		c.errorAtPrevious(err.Error())
	}
}

func (c *Compiler) emitLoop(start int) {
	if err := c.currentChunk().WriteLoop(start, c.previous.Line); err != nil {
		c.errorAtPrevious(err.Error())
	}
}

// emitReturn emits the implicit "return nil" every function falls through
// to at the end of its body, per spec.md §4.3.6.
func (c *Compiler) emitReturn() {
	c.emitOp(chunk.OpNil)
	c.emitOp(chunk.OpReturn)
}

func (c *Compiler) beginScope() { c.cur.scopeDepth++ }

func (c *Compiler) endScope() {
	c.cur.scopeDepth--
	locals := c.cur.locals
	for len(locals) > 0 && locals[len(locals)-1].Depth > c.cur.scopeDepth {
		if locals[len(locals)-1].IsCaptured {
			c.emitOp(chunk.OpCloseUpvalue)
		} else {
			c.emitOp(chunk.OpPop)
		}
		locals = locals[:len(locals)-1]
	}
	c.cur.locals = locals
}

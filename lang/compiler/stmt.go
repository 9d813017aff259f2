package compiler

import (
	"github.com/lumen-lang/lumen/lang/chunk"
	"github.com/lumen-lang/lumen/lang/token"
)

// statement dispatches on the leading token, per spec.md §4.3.4.
func (c *Compiler) statement() {
	switch {
	case c.match(token.PRINT):
		c.printStatement()
	case c.match(token.IF):
		c.ifStatement()
	case c.match(token.WHILE):
		c.whileStatement()
	case c.match(token.FOR):
		c.forStatement()
	case c.match(token.RETURN):
		c.returnStatement()
	case c.match(token.BREAK):
		c.breakStatement()
	case c.match(token.CONTINUE):
		c.continueStatement()
	case c.match(token.SWITCH):
		c.switchStatement()
	case c.match(token.LBRACE):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) block() {
	for !c.check(token.RBRACE) && !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.RBRACE, "Expect '}' after block.")
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "Expect ';' after expression.")
	c.emitOp(chunk.OpPop)
}

func (c *Compiler) printStatement() {
	c.consume(token.LPAREN, "Expect '(' after 'print'.")
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after value.")
	c.consume(token.SEMICOLON, "Expect ';' after value.")
	c.emitOp(chunk.OpPrint)
}

func (c *Compiler) ifStatement() {
	c.consume(token.LPAREN, "Expect '(' after 'if'.")
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after condition.")

	thenJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)
	c.statement()

	elseJump := c.emitJump(chunk.OpJump)
	c.patchJump(thenJump)
	c.emitOp(chunk.OpPop)

	if c.match(token.ELSE) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loop := &loopCtx{start: len(c.currentChunk().Code), scopeDepth: c.cur.scopeDepth}
	loop.continueTarget = loop.start
	c.cur.loops = append(c.cur.loops, loop)

	c.consume(token.LPAREN, "Expect '(' after 'while'.")
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after condition.")

	exitJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)
	c.statement()
	c.emitLoop(loop.start)

	c.patchJump(exitJump)
	c.emitOp(chunk.OpPop)
	for _, at := range loop.breakPatches {
		c.patchJump(at)
	}
	c.cur.loops = c.cur.loops[:len(c.cur.loops)-1]
}

func (c *Compiler) forStatement() {
	c.beginScope()
	c.consume(token.LPAREN, "Expect '(' after 'for'.")

	switch {
	case c.match(token.SEMICOLON):
	case c.match(token.LET):
		c.varDeclaration(false)
	case c.match(token.CONST):
		c.varDeclaration(true)
	default:
		c.expressionStatement()
	}

	loopStart := len(c.currentChunk().Code)
	exitJump := -1
	if !c.match(token.SEMICOLON) {
		c.expression()
		c.consume(token.SEMICOLON, "Expect ';' after loop condition.")
		exitJump = c.emitJump(chunk.OpJumpIfFalse)
		c.emitOp(chunk.OpPop)
	}

	if !c.check(token.RPAREN) {
		bodyJump := c.emitJump(chunk.OpJump)
		incrementStart := len(c.currentChunk().Code)
		c.expression()
		c.emitOp(chunk.OpPop)
		c.consume(token.RPAREN, "Expect ')' after for clauses.")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	} else {
		c.consume(token.RPAREN, "Expect ')' after for clauses.")
	}

	loop := &loopCtx{start: loopStart, scopeDepth: c.cur.scopeDepth, continueTarget: loopStart}
	c.cur.loops = append(c.cur.loops, loop)
	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(chunk.OpPop)
	}
	for _, at := range loop.breakPatches {
		c.patchJump(at)
	}
	c.cur.loops = c.cur.loops[:len(c.cur.loops)-1]
	c.endScope()
}

func (c *Compiler) returnStatement() {
	if c.cur.enclosing == nil {
		c.errorAtPrevious("Can't return from top-level code.")
	}
	if c.match(token.SEMICOLON) {
		c.emitReturn()
		return
	}
	c.expression()
	c.consume(token.SEMICOLON, "Expect ';' after return value.")
	c.emitOp(chunk.OpReturn)
}

// emitLoopLocalCleanup pops (or closes) every local declared since the
// loop body's enclosing scope, without removing them from the locals
// list: control is jumping past their scope, but the statements lexically
// following the break/continue (if any, in an unreachable tail) still see
// them declared.
func (c *Compiler) emitLoopLocalCleanup(loop *loopCtx) {
	for i := len(c.cur.locals) - 1; i >= 0 && c.cur.locals[i].Depth > loop.scopeDepth; i-- {
		if c.cur.locals[i].IsCaptured {
			c.emitOp(chunk.OpCloseUpvalue)
		} else {
			c.emitOp(chunk.OpPop)
		}
	}
}

func (c *Compiler) breakStatement() {
	if len(c.cur.loops) == 0 {
		c.errorAtPrevious("Can't use 'break' outside of a loop.")
	} else {
		loop := c.cur.loops[len(c.cur.loops)-1]
		c.emitLoopLocalCleanup(loop)
		at := c.emitJump(chunk.OpJump)
		loop.breakPatches = append(loop.breakPatches, at)
	}
	c.consume(token.SEMICOLON, "Expect ';' after 'break'.")
}

func (c *Compiler) continueStatement() {
	if len(c.cur.loops) == 0 {
		c.errorAtPrevious("Can't use 'continue' outside of a loop.")
	} else {
		loop := c.cur.loops[len(c.cur.loops)-1]
		c.emitLoopLocalCleanup(loop)
		c.emitLoop(loop.continueTarget)
	}
	c.consume(token.SEMICOLON, "Expect ';' after 'continue'.")
}

// switchStatement compiles `switch (expr) { pat -> stmt; _ -> stmt; }`,
// per spec.md §4.3.4. Each non-default arm duplicates the discriminator,
// compares, and pops both the comparison result and its own duplicate
// before running its statement; the default arm (pattern `_`) just pops
// the discriminator unconditionally.
func (c *Compiler) switchStatement() {
	c.consume(token.LPAREN, "Expect '(' after 'switch'.")
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after switch discriminator.")
	c.consume(token.LBRACE, "Expect '{' before switch body.")

	var endJumps []int
	nextJump := -1
	hasDefault := false
	armCount := 0

	for !c.check(token.RBRACE) && !c.check(token.EOF) {
		if nextJump != -1 {
			c.patchJump(nextJump)
			c.emitOp(chunk.OpPop)
			nextJump = -1
		}
		armCount++

		if c.match(token.UNDERSCORE) {
			if hasDefault {
				c.errorAtPrevious("Switch can have at most one default arm.")
			}
			hasDefault = true
			c.consume(token.ARROW, "Expect '->' after '_'.")
			c.emitOp(chunk.OpPop)
			c.statement()
			endJumps = append(endJumps, c.emitJump(chunk.OpJump))
			continue
		}

		c.emitOp(chunk.OpDup)
		c.expression()
		c.consume(token.ARROW, "Expect '->' after switch pattern.")
		c.emitOp(chunk.OpEqual)
		nextJump = c.emitJump(chunk.OpJumpIfFalse)
		c.emitOp(chunk.OpPop)
		c.emitOp(chunk.OpPop)
		c.statement()
		endJumps = append(endJumps, c.emitJump(chunk.OpJump))
	}

	if armCount == 0 {
		c.emitOp(chunk.OpPop)
	} else if nextJump != -1 {
		c.patchJump(nextJump)
		c.emitOp(chunk.OpPop)
		if !hasDefault {
			c.emitOp(chunk.OpPop)
		}
	}

	c.consume(token.RBRACE, "Expect '}' after switch body.")
	for _, j := range endJumps {
		c.patchJump(j)
	}
}

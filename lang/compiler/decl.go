package compiler

import (
	"github.com/lumen-lang/lumen/lang/chunk"
	"github.com/lumen-lang/lumen/lang/token"
)

// declaration dispatches to a function/variable declaration or falls
// through to a plain statement, per spec.md §4.3.4.
func (c *Compiler) declaration() {
	switch {
	case c.match(token.FN):
		c.funDeclaration()
	case c.match(token.LET):
		c.varDeclaration(false)
	case c.match(token.CONST):
		c.varDeclaration(true)
	default:
		c.statement()
	}
	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) varDeclaration(isConst bool) {
	c.consume(token.IDENT, "Expect variable name.")
	name := c.previous
	c.declareVariable(name, isConst)

	nameConst := 0
	if c.cur.scopeDepth == 0 {
		nameConst = c.identifierConstant(name)
	}

	if c.match(token.EQ) {
		c.expression()
	} else {
		if isConst {
			c.errorAtPrevious("Const declaration requires an initializer.")
		}
		c.emitOp(chunk.OpNil)
	}
	c.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	c.defineVariable(nameConst, name, isConst)
}

func (c *Compiler) funDeclaration() {
	c.consume(token.IDENT, "Expect function name.")
	name := c.previous
	c.declareVariable(name, false)
	c.markInitialized()

	nameConst := 0
	if c.cur.scopeDepth == 0 {
		nameConst = c.identifierConstant(name)
	}

	c.function(name.Lexeme)

	if c.cur.scopeDepth == 0 {
		c.emitBytes(byte(chunk.OpDefineGlobal), byte(nameConst))
	}
}

// function compiles one nested function body into its own chunk, then
// emits the CLOSURE instruction (and its upvalue descriptor bytes) into
// the enclosing function, per spec.md §4.3.6.
func (c *Compiler) function(name string) {
	c.cur = newFuncState(c.cur, name, 0)
	c.beginScope()

	c.consume(token.LPAREN, "Expect '(' after function name.")
	if !c.check(token.RPAREN) {
		for {
			c.cur.fn.Arity++
			if c.cur.fn.Arity > 255 {
				c.errorAtCurrent("Can't have more than 255 parameters.")
			}
			c.consume(token.IDENT, "Expect parameter name.")
			pname := c.previous
			c.declareVariable(pname, false)
			c.markInitialized()
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RPAREN, "Expect ')' after parameters.")
	c.consume(token.LBRACE, "Expect '{' before function body.")
	c.block()

	c.emitReturn()
	fn := c.cur.fn
	upvalues := c.cur.upvalues
	c.cur = c.cur.enclosing

	constIdx := c.currentChunk().AddConstant(fn)
	c.emitBytes(byte(chunk.OpClosure), byte(constIdx))
	for _, uv := range upvalues {
		isLocal := byte(0)
		if uv.IsLocal {
			isLocal = 1
		}
		c.emitByte(isLocal)
		c.emitByte(uv.Index)
	}
}

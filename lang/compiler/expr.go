package compiler

import (
	"strconv"

	"github.com/lumen-lang/lumen/lang/chunk"
	"github.com/lumen-lang/lumen/lang/token"
	"github.com/lumen-lang/lumen/lang/value"
)

func (c *Compiler) expression() { c.parsePrecedence(precAssignment) }

// parsePrecedence is the Pratt engine proper, per spec.md §4.3.2.
func (c *Compiler) parsePrecedence(p precedence) {
	c.advance()
	r := rules[c.previous.Kind]
	if r.prefix == prefixNone {
		c.errorAtPrevious("Expect expression.")
		return
	}
	canAssign := p <= precAssignment
	c.applyPrefix(r.prefix, canAssign)

	for p <= precedenceOf(c.peek().Kind) {
		c.advance()
		r := rules[c.previous.Kind]
		if r.infix != infixNone {
			c.applyInfix(r.infix, canAssign)
		} else if r.postfix != postfixNone {
			c.applyPostfix(r.postfix, canAssign)
		} else {
			break
		}
	}

	if canAssign && c.match(token.EQ) {
		c.errorAtPrevious("Invalid assignment target.")
	}
}

func (c *Compiler) applyPrefix(fn prefixFn, canAssign bool) {
	switch fn {
	case prefixGrouping:
		c.grouping()
	case prefixUnary:
		c.unary()
	case prefixLiteral:
		c.literal()
	case prefixNumber:
		c.number()
	case prefixString:
		c.str()
	case prefixVariable:
		c.variable(canAssign)
	case prefixIncDec:
		c.prefixIncDec()
	}
}

func (c *Compiler) applyInfix(fn infixFn, canAssign bool) {
	switch fn {
	case infixBinary:
		c.binary()
	case infixAnd:
		c.and_()
	case infixOr:
		c.or_()
	case infixCall:
		c.call()
	}
}

func (c *Compiler) applyPostfix(fn postfixFn, canAssign bool) {
	switch fn {
	case postfixIncDec:
		c.postfixIncDec(canAssign)
	}
}

func (c *Compiler) grouping() {
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after expression.")
}

func (c *Compiler) unary() {
	opType := c.previous.Kind
	c.parsePrecedence(precUnary)
	switch opType {
	case token.MINUS:
		c.emitOp(chunk.OpNeg)
	case token.BANG:
		c.emitOp(chunk.OpNot)
	}
}

// binary compiles an infix operator, using the NEG+ADD economy for
// subtraction and synthesizing !=, >=, <= from EQUAL/LESS/GREATER plus
// NOT, per spec.md §4.3.3.
func (c *Compiler) binary() {
	opType := c.previous.Kind
	r := rules[opType]
	c.parsePrecedence(r.prec + 1)
	switch opType {
	case token.PLUS:
		c.emitOp(chunk.OpAdd)
	case token.MINUS:
		c.emitOp(chunk.OpNeg)
		c.emitOp(chunk.OpAdd)
	case token.STAR:
		c.emitOp(chunk.OpMult)
	case token.SLASH:
		c.emitOp(chunk.OpDiv)
	case token.BANG_EQ:
		c.emitOp(chunk.OpEqual)
		c.emitOp(chunk.OpNot)
	case token.EQ_EQ:
		c.emitOp(chunk.OpEqual)
	case token.GT:
		c.emitOp(chunk.OpGreater)
	case token.GT_EQ:
		c.emitOp(chunk.OpLess)
		c.emitOp(chunk.OpNot)
	case token.LT:
		c.emitOp(chunk.OpLess)
	case token.LT_EQ:
		c.emitOp(chunk.OpGreater)
		c.emitOp(chunk.OpNot)
	}
}

func (c *Compiler) literal() {
	switch c.previous.Kind {
	case token.TRUE:
		c.emitOp(chunk.OpTrue)
	case token.FALSE:
		c.emitOp(chunk.OpFalse)
	case token.NIL:
		c.emitOp(chunk.OpNil)
	}
}

func (c *Compiler) number() {
	n, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		c.errorAtPrevious("Invalid number literal.")
		return
	}
	c.emitConstant(value.Number(n))
}

func (c *Compiler) str() {
	c.emitConstant(value.NewString(c.previous.Lexeme))
}

// and_ short-circuits: if the left operand is falsy, skip the right
// operand entirely, leaving the left (falsy) value as the result.
func (c *Compiler) and_() {
	endJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)
	c.parsePrecedence(precAnd)
	c.patchJump(endJump)
}

// or_ short-circuits the opposite way: skip the right operand when the
// left is already truthy.
func (c *Compiler) or_() {
	elseJump := c.emitJump(chunk.OpJumpIfFalse)
	endJump := c.emitJump(chunk.OpJump)
	c.patchJump(elseJump)
	c.emitOp(chunk.OpPop)
	c.parsePrecedence(precOr)
	c.patchJump(endJump)
}

func (c *Compiler) call() {
	argc := c.argumentList()
	c.emitBytes(byte(chunk.OpCall), byte(argc))
}

func (c *Compiler) argumentList() int {
	argc := 0
	if !c.check(token.RPAREN) {
		for {
			c.expression()
			if argc == 255 {
				c.errorAtPrevious("Can't have more than 255 arguments.")
			}
			argc++
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RPAREN, "Expect ')' after arguments.")
	return argc
}

package compiler

import (
	"errors"
	"fmt"

	"github.com/lumen-lang/lumen/lang/token"
)

var errCompile = errors.New("compile error")

func (c *Compiler) peek() token.Token { return c.tokens[c.pos] }

func (c *Compiler) check(k token.Kind) bool { return c.peek().Kind == k }

func (c *Compiler) advance() {
	c.previous = c.tokens[c.pos]
	if c.pos < len(c.tokens)-1 {
		c.pos++
	}
}

func (c *Compiler) match(k token.Kind) bool {
	if !c.check(k) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(k token.Kind, msg string) {
	if c.check(k) {
		c.advance()
		return
	}
	c.errorAtCurrent(msg)
}

func (c *Compiler) errorAtCurrent(msg string) { c.errorAt(c.peek(), msg) }
func (c *Compiler) errorAtPrevious(msg string) { c.errorAt(c.previous, msg) }

func (c *Compiler) errorAt(tok token.Token, msg string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	where := fmt.Sprintf(" at '%s'", tok.Lexeme)
	if tok.Kind == token.EOF {
		where = " at end"
	}
	fmt.Fprintf(c.out, "[line %d] Error%s: %s\n", tok.Line, where, msg)
}

// synchronize discards tokens after a compile error until one either
// follows a ';' or begins a new statement, per spec.md §4.3.7.
func (c *Compiler) synchronize() {
	c.panicMode = false
	for !c.check(token.EOF) {
		if c.previous.Kind == token.SEMICOLON {
			return
		}
		switch c.peek().Kind {
		case token.FN, token.LET, token.CONST, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		c.advance()
	}
}

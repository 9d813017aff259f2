package compiler

import (
	"github.com/lumen-lang/lumen/lang/chunk"
	"github.com/lumen-lang/lumen/lang/token"
	"github.com/lumen-lang/lumen/lang/value"
)

// identifierConstant interns name as a constant, caching per-function so
// repeated references to the same name share one pool slot, per spec.md
// §4.3.5's `string_constants` cache.
func (c *Compiler) identifierConstant(name token.Token) int {
	if idx, ok := c.cur.stringConstants[name.Lexeme]; ok {
		return idx
	}
	idx := c.currentChunk().AddConstant(value.NewString(name.Lexeme))
	c.cur.stringConstants[name.Lexeme] = idx
	return idx
}

// declareVariable registers name in the current scope. At global scope
// (depth 0) this is a no-op; definition happens later via DEFINE_GLOBAL.
func (c *Compiler) declareVariable(name token.Token, isConst bool) {
	if c.cur.scopeDepth == 0 {
		return
	}
	for i := len(c.cur.locals) - 1; i >= 0; i-- {
		l := c.cur.locals[i]
		if l.Depth != -1 && l.Depth < c.cur.scopeDepth {
			break
		}
		if l.Name == name.Lexeme {
			c.errorAt(name, "Already a variable with this name in this scope.")
		}
	}
	c.addLocal(name, isConst)
}

func (c *Compiler) addLocal(name token.Token, isConst bool) {
	if len(c.cur.locals) >= 256 {
		c.errorAt(name, "Too many local variables in function.")
		return
	}
	c.cur.locals = append(c.cur.locals, Local{Name: name.Lexeme, Depth: -1, IsConst: isConst})
}

func (c *Compiler) markInitialized() {
	if c.cur.scopeDepth == 0 {
		return
	}
	c.cur.locals[len(c.cur.locals)-1].Depth = c.cur.scopeDepth
}

// defineVariable finishes a declaration: locals just need their sentinel
// depth cleared; globals emit DEFINE_GLOBAL.
func (c *Compiler) defineVariable(nameConst int, name token.Token, isConst bool) {
	if c.cur.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	if isConst {
		c.constGlobals[name.Lexeme] = true
	}
	c.emitBytes(byte(chunk.OpDefineGlobal), byte(nameConst))
}

func resolveLocal(c *Compiler, fs *funcState, name token.Token) (int, bool) {
	for i := len(fs.locals) - 1; i >= 0; i-- {
		if fs.locals[i].Name == name.Lexeme {
			if fs.locals[i].Depth == -1 {
				c.errorAt(name, "Can't read variable in its own initializer.")
			}
			return i, true
		}
	}
	return -1, false
}

func resolveUpvalue(c *Compiler, fs *funcState, name token.Token) (int, bool) {
	if fs.enclosing == nil {
		return -1, false
	}
	if slot, ok := resolveLocal(c, fs.enclosing, name); ok {
		fs.enclosing.locals[slot].IsCaptured = true
		return addUpvalue(c, fs, uint8(slot), true), true
	}
	if idx, ok := resolveUpvalue(c, fs.enclosing, name); ok {
		return addUpvalue(c, fs, uint8(idx), false), true
	}
	return -1, false
}

func addUpvalue(c *Compiler, fs *funcState, index uint8, isLocal bool) int {
	for i, uv := range fs.upvalues {
		if uv.Index == index && uv.IsLocal == isLocal {
			return i
		}
	}
	if len(fs.upvalues) >= 256 {
		c.errorAtPrevious("Too many closure variables in function.")
		return 0
	}
	fs.upvalues = append(fs.upvalues, Upvalue{Index: index, IsLocal: isLocal})
	fs.fn.UpvalueCount = len(fs.upvalues)
	return len(fs.upvalues) - 1
}

// resolveTarget finds where name lives: a local slot, an upvalue, or (by
// default) a global, per spec.md §4.3.5's named_variable resolution order.
func (c *Compiler) resolveTarget(name token.Token) assignTarget {
	if slot, ok := resolveLocal(c, c.cur, name); ok {
		return assignTarget{kind: targetLocal, slot: slot, isConst: c.cur.locals[slot].IsConst}
	}
	if idx, ok := resolveUpvalue(c, c.cur, name); ok {
		return assignTarget{kind: targetUpvalue, slot: idx}
	}
	return assignTarget{
		kind:      targetGlobal,
		nameConst: c.identifierConstant(name),
		isConst:   c.constGlobals[name.Lexeme],
	}
}

func (c *Compiler) emitGet(t assignTarget) {
	switch t.kind {
	case targetLocal:
		c.emitBytes(byte(chunk.OpGetLocal), byte(t.slot))
	case targetUpvalue:
		c.emitBytes(byte(chunk.OpGetUpvalue), byte(t.slot))
	case targetGlobal:
		c.emitBytes(byte(chunk.OpGetGlobal), byte(t.nameConst))
	}
}

func (c *Compiler) emitSet(t assignTarget) {
	switch t.kind {
	case targetLocal:
		c.emitBytes(byte(chunk.OpSetLocal), byte(t.slot))
	case targetUpvalue:
		c.emitBytes(byte(chunk.OpSetUpvalue), byte(t.slot))
	case targetGlobal:
		c.emitBytes(byte(chunk.OpSetGlobal), byte(t.nameConst))
	}
}

func constErrorMessage(t assignTarget) string {
	if t.kind == targetGlobal {
		return "Can't assign to const global."
	}
	return "Can't assign to const local."
}

// variable is the prefix parse routine for a bare identifier: a read, or
// (when can_assign and the next token is '=') an assignment.
func (c *Compiler) variable(canAssign bool) {
	name := c.previous
	target := c.resolveTarget(name)
	if canAssign && c.match(token.EQ) {
		if target.isConst {
			c.errorAtPrevious(constErrorMessage(target))
		}
		c.expression()
		c.emitSet(target)
	} else {
		c.emitGet(target)
	}
	c.cur.lastTarget = &target
}

func incDecDelta(op token.Kind) float64 {
	if op == token.MINUS_MINUS {
		return -1
	}
	return 1
}

// prefixIncDec implements pre-increment/decrement: push the operand,
// push ±1, ADD, write back — leaving the updated value as the result.
func (c *Compiler) prefixIncDec() {
	op := c.previous.Kind
	if !c.check(token.IDENT) {
		c.errorAtCurrent("Expect variable name.")
		return
	}
	c.advance()
	name := c.previous
	target := c.resolveTarget(name)
	c.emitGet(target)
	c.emitConstant(value.Number(incDecDelta(op)))
	c.emitOp(chunk.OpAdd)
	if target.isConst {
		c.errorAtPrevious(constErrorMessage(target))
	}
	c.emitSet(target)
}

// postfixIncDec implements post-increment/decrement against the target
// most recently resolved by variable(): duplicate (the pre-update value
// is the expression's result), add ±1, write back, then discard the
// written-back copy.
func (c *Compiler) postfixIncDec(canAssign bool) {
	op := c.previous.Kind
	target := c.cur.lastTarget
	if target == nil {
		c.errorAtPrevious("Invalid assignment target.")
		return
	}
	c.emitOp(chunk.OpDup)
	c.emitConstant(value.Number(incDecDelta(op)))
	c.emitOp(chunk.OpAdd)
	if target.isConst {
		c.errorAtPrevious(constErrorMessage(*target))
	}
	c.emitSet(*target)
	c.emitOp(chunk.OpPop)
}

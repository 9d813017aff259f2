package compiler

import (
	"io"

	"github.com/lumen-lang/lumen/lang/chunk"
	"github.com/lumen-lang/lumen/lang/token"
)

// Local is one entry of a function compilation's locals list, ordered by
// declaration; its position in funcState.locals is its stack slot.
type Local struct {
	Name       string
	Depth      int // -1 means declared but not yet initialized
	IsConst    bool
	IsCaptured bool
}

// Upvalue is one entry of a function's upvalue list: either a capture of
// a local slot in the immediately enclosing function, or a re-export of
// one of that function's own upvalues.
type Upvalue struct {
	Index   uint8
	IsLocal bool
}

// loopCtx tracks the state `break`/`continue` need inside one loop body.
type loopCtx struct {
	start          int
	scopeDepth     int
	continueTarget int
	breakPatches   []int
}

// targetKind distinguishes the three places a name can resolve to.
type targetKind int8

const (
	targetLocal targetKind = iota
	targetUpvalue
	targetGlobal
)

// assignTarget is the resolved location of a named variable, sufficient
// to emit either its GET or its SET opcode.
type assignTarget struct {
	kind      targetKind
	slot      int // local slot or upvalue index
	nameConst int // global name constant pool index
	isConst   bool
}

// funcState holds the compiler state scoped to one in-progress Function,
// per spec.md §3's "Compiler state" (the `functions` stack entry).
type funcState struct {
	enclosing *funcState
	fn        *chunk.Function

	locals     []Local
	upvalues   []Upvalue
	scopeDepth int
	loops      []*loopCtx

	stringConstants map[string]int
	lastTarget      *assignTarget
}

// Compiler is a single-pass Pratt compiler: it consumes a finished token
// sequence and emits bytecode directly, maintaining no parse tree.
type Compiler struct {
	tokens   []token.Token
	pos      int
	previous token.Token

	cur *funcState

	constGlobals map[string]bool

	hadError  bool
	panicMode bool

	out io.Writer
}

func newFuncState(enclosing *funcState, name string, arity int) *funcState {
	fs := &funcState{
		enclosing:       enclosing,
		fn:              chunk.NewFunction(name, arity),
		stringConstants: make(map[string]int),
	}
	// Slot 0 is reserved for the callee itself, matching the call-frame
	// layout of spec.md §4.4.4. It has an empty name, so source code cannot
	// refer to it; a function reaches itself by name through the global
	// or enclosing local its declaration bound.
	fs.locals = append(fs.locals, Local{Name: "", Depth: 0, IsConst: true})
	return fs
}

// Compile lowers a complete token sequence (terminated by token.EOF) into
// the top-level script Function, per spec.md §4.3.1. Diagnostics are
// written to out; a non-nil error is returned iff any were recorded.
func Compile(tokens []token.Token, out io.Writer) (*chunk.Function, error) {
	c := &Compiler{
		tokens:       tokens,
		constGlobals: make(map[string]bool),
		out:          out,
	}
	c.cur = newFuncState(nil, "", 0)
	c.advance()
	for !c.check(token.EOF) {
		c.declaration()
	}
	c.emitReturn()

	if c.hadError {
		return nil, errCompile
	}
	return c.cur.fn, nil
}

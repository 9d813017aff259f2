// Package vm implements the stack-based virtual machine that executes
// chunks emitted by package compiler, per spec.md §4.4. It holds the
// runtime-only object kinds (Closure, Upvalue, CallFrame) that package
// chunk cannot define without importing back into vm.
package vm

import (
	"fmt"

	"github.com/lumen-lang/lumen/lang/chunk"
)

// Closure pairs a compiled Function prototype with the concrete Upvalue
// cells it closes over. It is the callable runtime object; a bare
// Function is wrapped in a zero-upvalue Closure at load time.
type Closure struct {
	Proto    *chunk.Function
	Upvalues []*Upvalue
}

func NewClosure(proto *chunk.Function) *Closure {
	return &Closure{Proto: proto, Upvalues: make([]*Upvalue, proto.UpvalueCount)}
}

func (c *Closure) String() string {
	if c.Proto.Name == "" {
		return "<script>"
	}
	return fmt.Sprintf("<fn %s>", c.Proto.Name)
}

func (*Closure) Type() string { return "function" }

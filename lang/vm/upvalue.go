package vm

import "github.com/lumen-lang/lumen/lang/value"

// Upvalue is an indirection cell letting a nested function reach a
// variable of an enclosing function. While open, it refers to a live
// stack slot by index (not by pointer: the VM's stack slice can grow and
// reallocate, so a raw pointer into it would dangle); once closed, its
// value has been evacuated into its own storage. The VM threads open
// upvalues in a singly-linked list ordered by descending stack address
// (newest/highest first), per spec.md §4.4.5.
type Upvalue struct {
	stackIndex int
	open       bool
	closed     value.Value
	next       *Upvalue
}

func (u *Upvalue) String() string { return "<upvalue>" }
func (*Upvalue) Type() string     { return "upvalue" }

// get reads the upvalue's current referent.
func (u *Upvalue) get(stack []value.Value) value.Value {
	if u.open {
		return stack[u.stackIndex]
	}
	return u.closed
}

// set writes through to the upvalue's current referent.
func (u *Upvalue) set(stack []value.Value, v value.Value) {
	if u.open {
		stack[u.stackIndex] = v
		return
	}
	u.closed = v
}

// close evacuates the referent at its stack slot into the cell's own
// storage, detaching the upvalue from the stack's lifetime.
func (u *Upvalue) close(stack []value.Value) {
	u.closed = stack[u.stackIndex]
	u.open = false
}

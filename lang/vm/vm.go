package vm

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dolthub/swiss"
	"github.com/lumen-lang/lumen/lang/chunk"
	"github.com/lumen-lang/lumen/lang/intern"
	"github.com/lumen-lang/lumen/lang/natives"
	"github.com/lumen-lang/lumen/lang/value"
)

// stepCheckInterval is how often (in dispatched instructions) Run checks
// ctx for cancellation, following the teacher's steps-counter pattern
// (machine.Thread.steps) without paying a context.Err() call per opcode.
const stepCheckInterval = 1024

// state is the VM's overall health, per spec.md §4.4.1.
type state int8

const (
	stateOK state = iota
	stateBad
)

// VM is the stack-based virtual machine that executes a loaded Function,
// per spec.md §4.4.
type VM struct {
	stack        []value.Value
	frames       []*CallFrame
	globals      *swiss.Map[*intern.Handle, value.Value]
	openUpvalues *Upvalue
	state        state

	// Stdout, Stderr and Stdin are the VM's standard I/O abstractions. If
	// nil, os.Stdout, os.Stderr and os.Stdin are used, respectively.
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	// MaxSteps bounds the number of instructions Run will dispatch before
	// aborting with a runtime error, mirroring machine.Thread.MaxSteps's
	// "<=0 means no limit" convention. Zero (the default) is unlimited.
	MaxSteps int
}

// New returns a VM ready to Load a top-level Function.
func New() *VM {
	return &VM{globals: swiss.NewMap[*intern.Handle, value.Value](64)}
}

func (vm *VM) init() {
	if vm.Stdout == nil {
		vm.Stdout = os.Stdout
	}
	if vm.Stderr == nil {
		vm.Stderr = os.Stderr
	}
	if vm.Stdin == nil {
		vm.Stdin = os.Stdin
	}
	if vm.globals == nil {
		vm.globals = swiss.NewMap[*intern.Handle, value.Value](64)
	}
}

// Define binds name in the globals table, for host-provided natives.
func (vm *VM) Define(name string, v value.Value) {
	vm.init()
	vm.globals.Put(intern.Intern(name), v)
}

// Load wraps top in a zero-upvalue Closure and pushes the initial call
// frame onto a clean stack, defining all native functions in globals,
// per spec.md §4.4.2. Globals and the open-upvalue list are left intact
// across Load calls, so a host (e.g. the REPL) can Load and Run several
// top-level scripts in sequence on one VM, sharing bindings between them.
func (vm *VM) Load(top *chunk.Function) {
	vm.init()
	vm.state = stateOK
	vm.stack = nil
	vm.frames = nil
	natives.Define(vm.Define, vm.Stdin)
	closure := NewClosure(top)
	vm.stack = append(vm.stack, closure)
	vm.frames = append(vm.frames, &CallFrame{Closure: closure, IP: 0, Base: 0})
}

func (vm *VM) frame() *CallFrame { return vm.frames[len(vm.frames)-1] }

func (vm *VM) push(v value.Value) { vm.stack = append(vm.stack, v) }

func (vm *VM) pop() value.Value {
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v
}

func (vm *VM) top() value.Value { return vm.stack[len(vm.stack)-1] }

// peekAt returns the value distance slots below the top (0 is the top).
func (vm *VM) peekAt(distance int) value.Value {
	return vm.stack[len(vm.stack)-1-distance]
}

func (vm *VM) readByte() byte {
	fr := vm.frame()
	b := fr.Closure.Proto.Chunk.Code[fr.IP]
	fr.IP++
	return b
}

func (vm *VM) readU16() uint16 {
	hi, lo := vm.readByte(), vm.readByte()
	return uint16(hi)<<8 | uint16(lo)
}

func (vm *VM) readConstant() value.Value {
	fr := vm.frame()
	return fr.Closure.Proto.Chunk.Pool[vm.readByte()]
}

func (vm *VM) readConstantLong() value.Value {
	fr := vm.frame()
	idx := int(vm.readByte()) | int(vm.readByte())<<8 | int(vm.readByte())<<16
	return fr.Closure.Proto.Chunk.Pool[idx]
}

// Run executes the loaded program's fetch-decode-execute loop until the
// outermost frame returns. ctx allows a host (e.g. the REPL on Ctrl-C) to
// cancel a running script; it is checked every stepCheckInterval
// instructions, not on every single one, per spec.md §4.4.2.
func (vm *VM) Run(ctx context.Context) error {
	steps := 0
	for {
		steps++
		if vm.MaxSteps > 0 && steps > vm.MaxSteps {
			return vm.runtimeError("execution exceeded maximum step count (%d)", vm.MaxSteps)
		}
		if steps%stepCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return vm.runtimeError("execution cancelled: %s", ctx.Err())
			default:
			}
		}

		fr := vm.frame()
		op := chunk.Opcode(vm.readByte())

		switch op {
		case chunk.OpConstant:
			vm.push(vm.readConstant())
		case chunk.OpConstantLong:
			vm.push(vm.readConstantLong())
		case chunk.OpNil:
			vm.push(value.Nil)
		case chunk.OpTrue:
			vm.push(value.Bool(true))
		case chunk.OpFalse:
			vm.push(value.Bool(false))
		case chunk.OpPop:
			vm.pop()
		case chunk.OpDup:
			vm.push(vm.top())
		case chunk.OpSwap:
			a, b := vm.pop(), vm.pop()
			vm.push(a)
			vm.push(b)

		case chunk.OpAdd:
			if err := vm.execAdd(); err != nil {
				return err
			}
		case chunk.OpMult:
			if err := vm.execNumericBinary(op); err != nil {
				return err
			}
		case chunk.OpDiv:
			if err := vm.execNumericBinary(op); err != nil {
				return err
			}
		case chunk.OpNeg:
			n, ok := vm.top().(value.Number)
			if !ok {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.pop()
			vm.push(-n)
		case chunk.OpNot:
			vm.push(value.Bool(!value.Truthy(vm.pop())))
		case chunk.OpEqual:
			b, a := vm.pop(), vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))
		case chunk.OpGreater:
			if err := vm.execCompare(op); err != nil {
				return err
			}
		case chunk.OpLess:
			if err := vm.execCompare(op); err != nil {
				return err
			}

		case chunk.OpPrint:
			fmt.Fprintln(vm.Stdout, vm.pop().String())

		case chunk.OpDefineGlobal:
			name := vm.readConstant().(*value.String)
			if _, exists := vm.globals.Get(name.Handle()); exists {
				return vm.runtimeError("Global '%s' is already defined.", name.String())
			}
			vm.globals.Put(name.Handle(), vm.pop())
		case chunk.OpGetGlobal:
			name := vm.readConstant().(*value.String)
			v, ok := vm.globals.Get(name.Handle())
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.String())
			}
			vm.push(v)
		case chunk.OpSetGlobal:
			name := vm.readConstant().(*value.String)
			if _, ok := vm.globals.Get(name.Handle()); !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.String())
			}
			vm.globals.Put(name.Handle(), vm.top())

		case chunk.OpGetLocal:
			slot := int(vm.readByte())
			vm.push(vm.stack[fr.Base+slot])
		case chunk.OpSetLocal:
			slot := int(vm.readByte())
			vm.stack[fr.Base+slot] = vm.top()
		case chunk.OpGetUpvalue:
			idx := int(vm.readByte())
			vm.push(fr.Closure.Upvalues[idx].get(vm.stack))
		case chunk.OpSetUpvalue:
			idx := int(vm.readByte())
			fr.Closure.Upvalues[idx].set(vm.stack, vm.top())
		case chunk.OpCloseUpvalue:
			vm.closeUpvalues(len(vm.stack) - 1)
			vm.pop()

		case chunk.OpJump:
			offset := vm.readU16()
			fr.IP += int(offset)
		case chunk.OpJumpIfFalse:
			offset := vm.readU16()
			if !value.Truthy(vm.top()) {
				fr.IP += int(offset)
			}
		case chunk.OpLoop:
			offset := vm.readU16()
			fr.IP -= int(offset)

		case chunk.OpCall:
			argc := int(vm.readByte())
			if err := vm.call(vm.peekAt(argc), argc); err != nil {
				return err
			}
		case chunk.OpClosure:
			proto := vm.readConstant().(*chunk.Function)
			closure := NewClosure(proto)
			for i := 0; i < proto.UpvalueCount; i++ {
				isLocal := vm.readByte()
				index := int(vm.readByte())
				if isLocal != 0 {
					closure.Upvalues[i] = vm.captureUpvalue(fr.Base + index)
				} else {
					closure.Upvalues[i] = fr.Closure.Upvalues[index]
				}
			}
			vm.push(closure)

		case chunk.OpReturn:
			result := vm.pop()
			vm.closeUpvalues(fr.Base)
			vm.stack = vm.stack[:fr.Base]
			vm.frames = vm.frames[:len(vm.frames)-1]
			if len(vm.frames) == 0 {
				return nil
			}
			vm.push(result)

		default:
			return vm.runtimeError("illegal opcode (%d)", byte(op))
		}
	}
}

func (vm *VM) execAdd() error {
	b, a := vm.pop(), vm.pop()
	an, aIsNum := a.(value.Number)
	bn, bIsNum := b.(value.Number)
	if aIsNum && bIsNum {
		vm.push(an + bn)
		return nil
	}
	_, aIsStr := a.(*value.String)
	_, bIsStr := b.(*value.String)
	if aIsStr || bIsStr {
		vm.push(value.NewString(a.String() + b.String()))
		return nil
	}
	return vm.runtimeError("Operands must be two numbers or two strings.")
}

func (vm *VM) execNumericBinary(op chunk.Opcode) error {
	b, ok := vm.pop().(value.Number)
	if !ok {
		return vm.runtimeError("Operands must be numbers.")
	}
	a, ok := vm.pop().(value.Number)
	if !ok {
		return vm.runtimeError("Operands must be numbers.")
	}
	switch op {
	case chunk.OpMult:
		vm.push(a * b)
	case chunk.OpDiv:
		if b == 0 {
			return vm.runtimeError("Division by zero.")
		}
		vm.push(a / b)
	}
	return nil
}

func (vm *VM) execCompare(op chunk.Opcode) error {
	b, ok := vm.pop().(value.Number)
	if !ok {
		return vm.runtimeError("Operands must be numbers.")
	}
	a, ok := vm.pop().(value.Number)
	if !ok {
		return vm.runtimeError("Operands must be numbers.")
	}
	switch op {
	case chunk.OpGreater:
		vm.push(value.Bool(a > b))
	case chunk.OpLess:
		vm.push(value.Bool(a < b))
	}
	return nil
}

package vm

import "github.com/lumen-lang/lumen/lang/value"

// call dispatches a call to callee with argc arguments already sitting on
// top of the stack (the callee itself lies argc+1 slots from the top),
// per spec.md §4.4.4.
func (vm *VM) call(callee value.Value, argc int) error {
	switch c := callee.(type) {
	case *Closure:
		return vm.callClosure(c, argc)
	case *value.Native:
		args := vm.stack[len(vm.stack)-argc:]
		result, err := c.Fn(args)
		if err != nil {
			return vm.runtimeError("%s", err.Error())
		}
		vm.stack = vm.stack[:len(vm.stack)-argc-1]
		vm.push(result)
		return nil
	default:
		return vm.runtimeError("Can only call functions and classes.")
	}
}

func (vm *VM) callClosure(c *Closure, argc int) error {
	if argc != c.Proto.Arity {
		return vm.runtimeError("Expected %d arguments but got %d.", c.Proto.Arity, argc)
	}
	if len(vm.frames) >= FramesMax {
		return vm.runtimeError("Stack overflow.")
	}
	vm.frames = append(vm.frames, &CallFrame{
		Closure: c,
		IP:      0,
		Base:    len(vm.stack) - argc - 1,
	})
	return nil
}

// captureUpvalue returns the open upvalue for stackIndex, creating and
// splicing one into the descending-address-ordered open list if none
// exists yet, per spec.md §4.4.5.
func (vm *VM) captureUpvalue(stackIndex int) *Upvalue {
	var prev *Upvalue
	cur := vm.openUpvalues
	for cur != nil && cur.stackIndex > stackIndex {
		prev = cur
		cur = cur.next
	}
	if cur != nil && cur.stackIndex == stackIndex {
		return cur
	}
	created := &Upvalue{stackIndex: stackIndex, open: true, next: cur}
	if prev == nil {
		vm.openUpvalues = created
	} else {
		prev.next = created
	}
	return created
}

// closeUpvalues closes every open upvalue at or above cutoff, evacuating
// each into its own storage and unlinking it from the open list.
func (vm *VM) closeUpvalues(cutoff int) {
	for vm.openUpvalues != nil && vm.openUpvalues.stackIndex >= cutoff {
		u := vm.openUpvalues
		u.close(vm.stack)
		vm.openUpvalues = u.next
		u.next = nil
	}
}

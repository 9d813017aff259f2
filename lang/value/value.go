// Package value implements lumen's runtime value model: a Value interface
// playing the role of spec.md's tagged union over {number, boolean, nil,
// heap object handle}, rendered as a Go interface the way the teacher
// renders its own Value type (lang/machine/value.go) rather than as a
// hand-rolled tag+union struct.
package value

import (
	"fmt"
	"strconv"

	"github.com/lumen-lang/lumen/lang/intern"
)

// Value is implemented by every value the VM can hold on its stack, bind
// to a local/global/upvalue, or store in a constant pool.
type Value interface {
	// String returns the value's lumen source-like textual form, used both
	// by the print statement and by string concatenation.
	String() string
	// Type returns a short name for the value's runtime type, as reported
	// by the type() native.
	Type() string
}

// Number is a numeric Value (IEEE-754 double).
type Number float64

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}
func (Number) Type() string { return "number" }

// Bool is a boolean Value.
type Bool bool

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (Bool) Type() string { return "boolean" }

// nilValue is the unit value's concrete type; Nil is its sole instance.
type nilValue struct{}

func (nilValue) String() string { return "nil" }
func (nilValue) Type() string   { return "nil" }

// Nil is lumen's unit value.
var Nil Value = nilValue{}

// Truthy implements spec.md's truthiness policy: nil is false, booleans
// are themselves, numbers are false iff 0.0, strings are false iff empty,
// and all other objects are true.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case nilValue:
		return false
	case Bool:
		return bool(v)
	case Number:
		return v != 0
	case *String:
		return v.handle.String() != ""
	default:
		return true
	}
}

// String is an interned-string heap object. Two Strings are equal (as
// Values) iff they share the same interned handle.
type String struct {
	handle *intern.Handle
}

// NewString interns s in the process-wide table and wraps it.
func NewString(s string) *String {
	return &String{handle: intern.Intern(s)}
}

// Handle returns the string's interner handle, the basis of its identity.
func (s *String) Handle() *intern.Handle { return s.handle }

func (s *String) String() string { return s.handle.String() }
func (*String) Type() string     { return "string" }

// Equal reports whether two Values are structurally equal, per spec.md's
// EQUAL opcode semantics: strings compare by interned handle, other
// values compare by Go equality of their concrete representation.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Number:
		b, ok := b.(Number)
		return ok && a == b
	case Bool:
		b, ok := b.(Bool)
		return ok && a == b
	case nilValue:
		_, ok := b.(nilValue)
		return ok
	case *String:
		b, ok := b.(*String)
		return ok && a.handle == b.handle
	default:
		return a == b
	}
}

// Native is a host-provided callable matching the native calling
// convention of spec.md §6, rendered as (args []Value) (Value, error):
// the argument count is len(args).
type Native struct {
	NativeName string
	Fn         func(args []Value) (Value, error)
}

func (n *Native) String() string { return fmt.Sprintf("<native fn %s>", n.NativeName) }
func (*Native) Type() string     { return "native" }
func (n *Native) Name() string   { return n.NativeName }

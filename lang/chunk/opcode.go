package chunk

import "fmt"

// Opcode identifies a single bytecode instruction, per spec.md §4.4.3.
type Opcode uint8

//nolint:revive
const (
	OpConstant     Opcode = iota // 1 byte index
	OpConstantLong               // 3 byte LE index
	OpNil
	OpTrue
	OpFalse
	OpPop
	OpDup
	OpSwap
	OpAdd
	OpMult
	OpDiv
	OpNeg
	OpNot
	OpEqual
	OpGreater
	OpLess
	OpPrint
	OpDefineGlobal // 1 byte name-const index
	OpGetGlobal    // 1 byte name-const index
	OpSetGlobal    // 1 byte name-const index
	OpGetLocal     // 1 byte slot
	OpSetLocal     // 1 byte slot
	OpGetUpvalue   // 1 byte index
	OpSetUpvalue   // 1 byte index
	OpCloseUpvalue
	OpJump         // 2 byte BE offset
	OpJumpIfFalse  // 2 byte BE offset
	OpLoop         // 2 byte BE offset
	OpCall         // 1 byte argc
	OpClosure      // 1 byte const index + 2*upvalueCount bytes
	OpReturn
)

var opcodeNames = [...]string{
	OpConstant:     "OP_CONSTANT",
	OpConstantLong: "OP_CONSTANT_LONG",
	OpNil:          "OP_NIL",
	OpTrue:         "OP_TRUE",
	OpFalse:        "OP_FALSE",
	OpPop:          "OP_POP",
	OpDup:          "OP_DUP",
	OpSwap:         "OP_SWAP",
	OpAdd:          "OP_ADD",
	OpMult:         "OP_MULT",
	OpDiv:          "OP_DIV",
	OpNeg:          "OP_NEG",
	OpNot:          "OP_NOT",
	OpEqual:        "OP_EQUAL",
	OpGreater:      "OP_GREATER",
	OpLess:         "OP_LESS",
	OpPrint:        "OP_PRINT",
	OpDefineGlobal: "OP_DEFINE_GLOBAL",
	OpGetGlobal:    "OP_GET_GLOBAL",
	OpSetGlobal:    "OP_SET_GLOBAL",
	OpGetLocal:     "OP_GET_LOCAL",
	OpSetLocal:     "OP_SET_LOCAL",
	OpGetUpvalue:   "OP_GET_UPVALUE",
	OpSetUpvalue:   "OP_SET_UPVALUE",
	OpCloseUpvalue: "OP_CLOSE_UPVALUE",
	OpJump:         "OP_JUMP",
	OpJumpIfFalse:  "OP_JUMP_IF_FALSE",
	OpLoop:         "OP_LOOP",
	OpCall:         "OP_CALL",
	OpClosure:      "OP_CLOSURE",
	OpReturn:       "OP_RETURN",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return fmt.Sprintf("illegal opcode (%d)", byte(op))
}

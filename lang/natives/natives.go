// Package natives implements lumen's host-provided callables: clock,
// abs, pow, sqrt, floor, ceil, round, random, input, len, type, str,
// isNumber, isString, isNull, isBool, toNumber, toBoolean, per
// SPEC_FULL.md §6. Each is a *value.Native bound into a VM's globals at
// load time, the way the teacher binds Universe/Predeclared identifiers
// into a Thread.
package natives

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/lumen-lang/lumen/lang/value"
)

// Define binds every native function this package provides into vm,
// using define to reach the VM's globals table without natives
// depending on package vm (which already depends on package value).
func Define(define func(name string, v value.Value), stdin io.Reader) {
	define("clock", &value.Native{NativeName: "clock", Fn: clock})
	define("abs", &value.Native{NativeName: "abs", Fn: abs})
	define("pow", &value.Native{NativeName: "pow", Fn: pow})
	define("sqrt", &value.Native{NativeName: "sqrt", Fn: sqrt})
	define("floor", &value.Native{NativeName: "floor", Fn: floor})
	define("ceil", &value.Native{NativeName: "ceil", Fn: ceil})
	define("round", &value.Native{NativeName: "round", Fn: round})
	define("random", &value.Native{NativeName: "random", Fn: random})
	define("len", &value.Native{NativeName: "len", Fn: length})
	define("type", &value.Native{NativeName: "type", Fn: typeOf})
	define("str", &value.Native{NativeName: "str", Fn: str})
	define("isNumber", &value.Native{NativeName: "isNumber", Fn: isNumber})
	define("isString", &value.Native{NativeName: "isString", Fn: isString})
	define("isNull", &value.Native{NativeName: "isNull", Fn: isNull})
	define("isBool", &value.Native{NativeName: "isBool", Fn: isBool})
	define("toNumber", &value.Native{NativeName: "toNumber", Fn: toNumber})
	define("toBoolean", &value.Native{NativeName: "toBoolean", Fn: toBoolean})
	define("input", &value.Native{NativeName: "input", Fn: inputReader(stdin)})
}

func arityError(name string, want, got int) error {
	return fmt.Errorf("%s() takes %d argument(s), got %d", name, want, got)
}

func numberArg(name string, args []value.Value, i int) (float64, error) {
	n, ok := args[i].(value.Number)
	if !ok {
		return 0, fmt.Errorf("%s() argument %d must be a number", name, i+1)
	}
	return float64(n), nil
}

func clock(args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return nil, arityError("clock", 0, len(args))
	}
	return value.Number(float64(time.Now().UnixNano()) / 1e9), nil
}

func abs(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("abs", 1, len(args))
	}
	n, err := numberArg("abs", args, 0)
	if err != nil {
		return nil, err
	}
	return value.Number(math.Abs(n)), nil
}

func sqrt(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("sqrt", 1, len(args))
	}
	n, err := numberArg("sqrt", args, 0)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("sqrt() argument must be non-negative")
	}
	return value.Number(math.Sqrt(n)), nil
}

func pow(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityError("pow", 2, len(args))
	}
	base, err := numberArg("pow", args, 0)
	if err != nil {
		return nil, err
	}
	exp, err := numberArg("pow", args, 1)
	if err != nil {
		return nil, err
	}
	return value.Number(math.Pow(base, exp)), nil
}

func floor(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("floor", 1, len(args))
	}
	n, err := numberArg("floor", args, 0)
	if err != nil {
		return nil, err
	}
	return value.Number(math.Floor(n)), nil
}

func ceil(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("ceil", 1, len(args))
	}
	n, err := numberArg("ceil", args, 0)
	if err != nil {
		return nil, err
	}
	return value.Number(math.Ceil(n)), nil
}

func round(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("round", 1, len(args))
	}
	n, err := numberArg("round", args, 0)
	if err != nil {
		return nil, err
	}
	return value.Number(math.Round(n)), nil
}

// random returns a pseudo-random number in [0, 1), matching the
// original's std::uniform_real_distribution<>(0, 1).
func random(args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return nil, arityError("random", 0, len(args))
	}
	return value.Number(rand.Float64()), nil
}

func length(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("len", 1, len(args))
	}
	s, ok := args[0].(*value.String)
	if !ok {
		return nil, fmt.Errorf("len() argument must be a string")
	}
	return value.Number(len([]rune(s.String()))), nil
}

func typeOf(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("type", 1, len(args))
	}
	return value.NewString(args[0].Type()), nil
}

func str(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("str", 1, len(args))
	}
	return value.NewString(args[0].String()), nil
}

func isNumber(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("isNumber", 1, len(args))
	}
	_, ok := args[0].(value.Number)
	return value.Bool(ok), nil
}

func isString(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("isString", 1, len(args))
	}
	_, ok := args[0].(*value.String)
	return value.Bool(ok), nil
}

func isNull(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("isNull", 1, len(args))
	}
	return value.Bool(args[0] == value.Nil), nil
}

func isBool(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("isBool", 1, len(args))
	}
	_, ok := args[0].(value.Bool)
	return value.Bool(ok), nil
}

// toNumber parses a string to a number, passes a number through
// unchanged, and returns nil for anything else or an unparsable
// string, matching toNumberNative's fall-through-to-null behavior.
func toNumber(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("toNumber", 1, len(args))
	}
	switch v := args[0].(type) {
	case value.Number:
		return v, nil
	case *value.String:
		if n, err := strconv.ParseFloat(v.String(), 64); err == nil {
			return value.Number(n), nil
		}
		return value.Nil, nil
	default:
		return value.Nil, nil
	}
}

func toBoolean(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("toBoolean", 1, len(args))
	}
	return value.Bool(value.Truthy(args[0])), nil
}

// inputReader closes over the VM's configured stdin (a Thread-equivalent
// abstraction, grounded on machine.Thread.Stdin) and returns a native
// that reads one line, trimming the trailing newline.
func inputReader(stdin io.Reader) func(args []value.Value) (value.Value, error) {
	reader := bufio.NewReader(stdin)
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 0 {
			return nil, arityError("input", 0, len(args))
		}
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return nil, fmt.Errorf("input(): %w", err)
		}
		for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
			line = line[:len(line)-1]
		}
		return value.NewString(line), nil
	}
}

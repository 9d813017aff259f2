// Package driver wires the lexer, compiler and VM together into the two
// ways lumen programs run: once from a file, or interactively from a
// REPL, per SPEC_FULL.md §6. It is the glue the teacher's
// internal/maincmd plays for nenuphar's parse/resolve/tokenize commands,
// adapted to lumen's single compile-then-run pipeline.
package driver

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lumen-lang/lumen/lang/compiler"
	"github.com/lumen-lang/lumen/lang/lexer"
	"github.com/lumen-lang/lumen/lang/vm"
)

// ExitCode mirrors spec.md §6: 0 on clean exit, non-zero on compile or
// runtime error.
type ExitCode int

const (
	Success ExitCode = 0
	Failure ExitCode = 1
)

// PrintError writes err to w in the diagnostics-stream style the
// compiler and VM already use, so callers that bypass stdout/stderr
// wiring (tests) can still assert on a single format.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s\n", err)
}

// RunSource compiles src and runs it on a fresh VM, writing compile
// diagnostics and program output/runtime errors to the given streams.
// It returns Failure if compilation or execution did not complete
// cleanly.
func RunSource(ctx context.Context, stdout, stderr io.Writer, stdin io.Reader, src string) ExitCode {
	machine := vm.New()
	machine.Stdout = stdout
	machine.Stderr = stderr
	machine.Stdin = stdin
	return runOn(ctx, machine, stderr, src)
}

// RunFile reads path and runs it as a lumen program.
func RunFile(ctx context.Context, stdout, stderr io.Writer, stdin io.Reader, path string) ExitCode {
	src, err := os.ReadFile(path)
	if err != nil {
		PrintError(stderr, err)
		return Failure
	}
	return RunSource(ctx, stdout, stderr, stdin, string(src))
}

// REPL runs an interactive read-eval-print loop. Each line is compiled
// and run as its own top-level script, but all lines share one VM
// instance so that globals (and thus `let`/`const`/`fn` bindings) persist
// across lines, the way a REPL user expects. A blank Ctrl-D (EOF) on
// stdin ends the loop cleanly.
func REPL(ctx context.Context, stdout, stderr io.Writer, stdin io.Reader) ExitCode {
	machine := vm.New()
	machine.Stdout = stdout
	machine.Stderr = stderr
	machine.Stdin = stdin

	scanner := bufio.NewScanner(stdin)
	for {
		fmt.Fprint(stdout, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(stdout)
			return Success
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		runOn(ctx, machine, stderr, line)
	}
}

func runOn(ctx context.Context, machine *vm.VM, stderr io.Writer, src string) ExitCode {
	toks := lexer.ScanAll(src, nil)

	var diag bytes.Buffer
	fn, err := compiler.Compile(toks, &diag)
	if diag.Len() > 0 {
		io.Copy(stderr, &diag) //nolint:errcheck
	}
	if err != nil {
		return Failure
	}

	machine.Load(fn)
	if err := machine.Run(ctx); err != nil {
		return Failure
	}
	return Success
}

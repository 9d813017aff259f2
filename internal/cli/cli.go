// Package cli implements lumen's command-line entry point: bare
// invocation starts a REPL, a single path argument executes that file,
// anything else prints usage and exits non-zero, per spec.md §6. Built
// on mna/mainer exactly as the teacher's internal/maincmd is.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/lumen-lang/lumen/internal/driver"
)

const binName = "lumen"

var shortUsage = fmt.Sprintf(`usage: %s [<path>]
Run '%[1]s --help' for details.
`, binName)

var longUsage = fmt.Sprintf(`usage: %s [<path>]
       %[1]s -h|--help
       %[1]s -v|--version

Compiler and virtual machine for the %[1]s scripting language.

With no <path>, starts an interactive REPL on stdin/stdout. With a
<path>, compiles and runs that file.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
`, binName)

// Cmd is lumen's mainer command: flags parsed via struct tags, a single
// positional path argument, and a Main entry point.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	args []string
}

func (c *Cmd) SetArgs(args []string) { c.args = args }

func (c *Cmd) SetFlags(map[string]bool) {}

func (c *Cmd) Validate() error {
	if len(c.args) > 1 {
		return fmt.Errorf("too many arguments: expected at most one <path>")
	}
	return nil
}

// Main is the mainer.Cmd entry point: parse flags, then dispatch to the
// REPL or file-execution driver.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)

	var code driver.ExitCode
	if len(c.args) == 1 {
		code = driver.RunFile(ctx, stdio.Stdout, stdio.Stderr, stdio.Stdin, c.args[0])
	} else {
		code = driver.REPL(ctx, stdio.Stdout, stdio.Stderr, stdio.Stdin)
	}

	if code != driver.Success {
		return mainer.Failure
	}
	return mainer.Success
}

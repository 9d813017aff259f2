package cli_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"

	"github.com/lumen-lang/lumen/internal/cli"
	"github.com/lumen-lang/lumen/internal/filetest"
)

func TestHelpMatchesGoldenUsage(t *testing.T) {
	c := cli.Cmd{BuildVersion: "0.0.0", BuildDate: "2026-07-31"}
	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdin: strings.NewReader(""), Stdout: &out, Stderr: &errOut}

	code := c.Main([]string{"lumen", "-h"}, stdio)
	require.Equal(t, mainer.Success, code)
	require.Empty(t, errOut.String())
	filetest.DiffCustom(t, "help", "testdata/help.golden", out.String())
}

func TestVersionPrintsBuildInfo(t *testing.T) {
	c := cli.Cmd{BuildVersion: "1.2.3", BuildDate: "2026-07-31"}
	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdin: strings.NewReader(""), Stdout: &out, Stderr: &errOut}

	code := c.Main([]string{"lumen", "-v"}, stdio)
	require.Equal(t, mainer.Success, code)
	require.Equal(t, "lumen 1.2.3 2026-07-31\n", out.String())
}

func TestRunningFileExecutesIt(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/prog.lm"
	require.NoError(t, os.WriteFile(path, []byte("print(1 + 1);"), 0o600))

	c := cli.Cmd{}
	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdin: strings.NewReader(""), Stdout: &out, Stderr: &errOut}

	code := c.Main([]string{"lumen", path}, stdio)
	require.Equal(t, mainer.Success, code, errOut.String())
	require.Equal(t, "2\n", out.String())
}

func TestTooManyArgumentsIsInvalidArgs(t *testing.T) {
	c := cli.Cmd{}
	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdin: strings.NewReader(""), Stdout: &out, Stderr: &errOut}

	code := c.Main([]string{"lumen", "a.lm", "b.lm"}, stdio)
	require.Equal(t, mainer.InvalidArgs, code)
}

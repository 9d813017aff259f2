// Package filetest provides golden-file comparison for tests, trimmed
// down from the teacher's internal/filetest to what lumen's CLI tests
// need: a single diff-against-file helper.
package filetest

import (
	"flag"
	"os"
	"testing"

	"github.com/kylelemons/godebug/diff"
)

var update = flag.Bool("test.update-golden", false, "If set, updates golden files with actual output.")

// DiffCustom validates that output matches the contents of goldFile,
// reporting a unified diff on mismatch. If the -test.update-golden flag
// is set, it rewrites goldFile with output instead of comparing.
func DiffCustom(t *testing.T, label, goldFile, output string) {
	t.Helper()

	if *update {
		if err := os.WriteFile(goldFile, []byte(output), 0o600); err != nil {
			t.Fatal(err)
		}
		return
	}

	wantb, err := os.ReadFile(goldFile)
	if err != nil {
		t.Fatal(err)
	}
	if patch := diff.Diff(string(wantb), output); patch != "" {
		t.Errorf("diff %s:\n%s\n", label, patch)
	}
}

// Package intern implements a process-wide string interner: a canonical
// store mapping a string's contents to a single owning storage cell, so
// that string equality reduces to handle identity.
package intern

import (
	"sync"

	"github.com/dolthub/swiss"
)

// A Handle is a stable reference to an interned string's canonical
// storage. Two handles are equal (as pointers) iff the strings they were
// interned from have equal contents.
type Handle struct {
	s string
}

// String returns the interned string's contents.
func (h *Handle) String() string { return h.s }

// Table is an interning table. The zero value is ready to use. Table is
// safe for concurrent use.
type Table struct {
	mu   sync.Mutex
	pool *swiss.Map[string, *Handle]
}

// NewTable returns an empty interning table.
func NewTable() *Table {
	return &Table{pool: swiss.NewMap[string, *Handle](64)}
}

// Intern inserts s if absent and returns a stable handle such that
// Intern(a) == Intern(b) iff a and b have equal contents.
func (t *Table) Intern(s string) *Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pool == nil {
		t.pool = swiss.NewMap[string, *Handle](64)
	}
	if h, ok := t.pool.Get(s); ok {
		return h
	}
	h := &Handle{s: s}
	t.pool.Put(s, h)
	return h
}

// Find returns an existing handle for s without inserting.
func (t *Table) Find(s string) (*Handle, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pool == nil {
		return nil, false
	}
	return t.pool.Get(s)
}

// Len returns the number of distinct interned strings.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pool == nil {
		return 0
	}
	return t.pool.Count()
}

// process is the process-wide interner instance the compiler and VM
// share, matching the single canonical store described in spec.md §4.1.
var process = NewTable()

// Intern inserts s in the process-wide table if absent and returns its
// stable handle.
func Intern(s string) *Handle { return process.Intern(s) }

// Find returns an existing handle for s in the process-wide table,
// without inserting.
func Find(s string) (*Handle, bool) { return process.Find(s) }

// Package symtable implements the two-scope symbol table used during
// compilation: class scope (static, field) and subroutine scope
// (argument, var). Subroutine scope shadows class scope and is reset
// at the start of every subroutine.
package symtable

// Kind is one of the four symbol kinds.
type Kind string

const (
	Static   Kind = "static"
	Field    Kind = "field"
	Argument Kind = "argument"
	Var      Kind = "var"
)

// Segment returns the VM memory segment a kind maps to during code
// generation.
func (k Kind) Segment() string {
	switch k {
	case Static:
		return "static"
	case Field:
		return "this"
	case Argument:
		return "argument"
	case Var:
		return "local"
	}
	return ""
}

// Entry is one symbol table row.
type Entry struct {
	Name  string
	Type  string
	Kind  Kind
	Index int
}

// Table holds class-scope and subroutine-scope symbols together, since
// the compiler always looks up through both at once.
type Table struct {
	class      map[string]Entry
	subroutine map[string]Entry
	counts     map[Kind]int
}

// New returns an empty table.
func New() *Table {
	return &Table{
		class:      make(map[string]Entry),
		subroutine: make(map[string]Entry),
		counts:     make(map[Kind]int),
	}
}

// StartSubroutine clears the subroutine scope and its argument/var
// counters, called at the start of every subroutine compilation.
func (t *Table) StartSubroutine() {
	t.subroutine = make(map[string]Entry)
	t.counts[Argument] = 0
	t.counts[Var] = 0
}

// Define adds a symbol to class or subroutine scope depending on its
// kind, assigning it the next dense index within that (scope, kind)
// group.
func (t *Table) Define(name, typ string, kind Kind) Entry {
	entry := Entry{Name: name, Type: typ, Kind: kind, Index: t.counts[kind]}
	t.counts[kind]++

	switch kind {
	case Static, Field:
		t.class[name] = entry
	case Argument, Var:
		t.subroutine[name] = entry
	}
	return entry
}

// Count returns how many symbols of the given kind have been defined in
// the scope that owns that kind.
func (t *Table) Count(kind Kind) int {
	return t.counts[kind]
}

// Lookup finds name in subroutine scope first, falling back to class
// scope.
func (t *Table) Lookup(name string) (Entry, bool) {
	if e, ok := t.subroutine[name]; ok {
		return e, true
	}
	if e, ok := t.class[name]; ok {
		return e, true
	}
	return Entry{}, false
}

// Package symtable implements the assembler's symbol table: the
// predefined entries, label addresses collected in pass 1, and
// variables allocated sequentially from RAM address 16 on their first
// reference in pass 2.
package symtable

import "fmt"

const firstVariableAddress = 16

// Table maps symbol names to 15-bit addresses.
type Table struct {
	entries map[string]int
	nextVar int
}

// New returns a table pre-seeded with SP, LCL, ARG, THIS, THAT, R0-R15,
// SCREEN and KBD.
func New() *Table {
	t := &Table{entries: make(map[string]int), nextVar: firstVariableAddress}

	for i := 0; i < 16; i++ {
		t.entries[fmt.Sprintf("R%d", i)] = i
	}
	t.entries["SP"] = 0
	t.entries["LCL"] = 1
	t.entries["ARG"] = 2
	t.entries["THIS"] = 3
	t.entries["THAT"] = 4
	t.entries["SCREEN"] = 16384
	t.entries["KBD"] = 24576

	return t
}

// Lookup returns the address bound to name, if any.
func (t *Table) Lookup(name string) (int, bool) {
	addr, ok := t.entries[name]
	return addr, ok
}

// DefineLabel binds name to a ROM address during pass 1. It reports an
// error if name is already bound, preserving the "each name has at
// most one entry; predefined entries are never overwritten" invariant.
func (t *Table) DefineLabel(name string, address int) error {
	if _, exists := t.entries[name]; exists {
		return fmt.Errorf("symbol %q already defined", name)
	}
	t.entries[name] = address
	return nil
}

// AllocateVariable returns the address for name, allocating the next
// free RAM address (starting at 16, monotonically) the first time name
// is seen.
func (t *Table) AllocateVariable(name string) int {
	if addr, ok := t.entries[name]; ok {
		return addr
	}
	addr := t.nextVar
	t.entries[name] = addr
	t.nextVar++
	return addr
}

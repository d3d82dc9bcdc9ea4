package translator

import (
	"strconv"
	"strings"
	"testing"

	"github.com/gabewblee/HackSoftware/asm/parser"
	"github.com/gabewblee/HackSoftware/asm/symtable"
)

// hackSim is a minimal Hack CPU used only to check the assembly this
// package emits against the concrete scenarios and invariants; it has
// no bearing on production behavior.
type hackSim struct {
	a, d int16
	mem  map[int]int16
}

func newHackSim() *hackSim {
	return &hackSim{mem: make(map[int]int16)}
}

func (s *hackSim) getMem(addr int) int16 { return s.mem[addr] }
func (s *hackSim) setMem(addr int, v int16) { s.mem[addr] = v }

var compFuncs = map[string]func(a, d, m int16) int16{
	"0":   func(a, d, m int16) int16 { return 0 },
	"1":   func(a, d, m int16) int16 { return 1 },
	"-1":  func(a, d, m int16) int16 { return -1 },
	"D":   func(a, d, m int16) int16 { return d },
	"A":   func(a, d, m int16) int16 { return a },
	"!D":  func(a, d, m int16) int16 { return ^d },
	"!A":  func(a, d, m int16) int16 { return ^a },
	"-D":  func(a, d, m int16) int16 { return -d },
	"-A":  func(a, d, m int16) int16 { return -a },
	"D+1": func(a, d, m int16) int16 { return d + 1 },
	"A+1": func(a, d, m int16) int16 { return a + 1 },
	"D-1": func(a, d, m int16) int16 { return d - 1 },
	"A-1": func(a, d, m int16) int16 { return a - 1 },
	"D+A": func(a, d, m int16) int16 { return d + a },
	"D-A": func(a, d, m int16) int16 { return d - a },
	"A-D": func(a, d, m int16) int16 { return a - d },
	"D&A": func(a, d, m int16) int16 { return d & a },
	"D|A": func(a, d, m int16) int16 { return d | a },
	"M":   func(a, d, m int16) int16 { return m },
	"!M":  func(a, d, m int16) int16 { return ^m },
	"-M":  func(a, d, m int16) int16 { return -m },
	"M+1": func(a, d, m int16) int16 { return m + 1 },
	"M-1": func(a, d, m int16) int16 { return m - 1 },
	"D+M": func(a, d, m int16) int16 { return d + m },
	"D-M": func(a, d, m int16) int16 { return d - m },
	"M-D": func(a, d, m int16) int16 { return m - d },
	"D&M": func(a, d, m int16) int16 { return d & m },
	"D|M": func(a, d, m int16) int16 { return d | m },
}

func jumpTaken(jump string, v int16) bool {
	switch jump {
	case "JGT":
		return v > 0
	case "JEQ":
		return v == 0
	case "JGE":
		return v >= 0
	case "JLT":
		return v < 0
	case "JNE":
		return v != 0
	case "JLE":
		return v <= 0
	case "JMP":
		return true
	}
	return false
}

func resolveSimAddress(symbol string, st *symtable.Table) int {
	if n, err := strconv.Atoi(symbol); err == nil {
		return n
	}
	if addr, ok := st.Lookup(symbol); ok {
		return addr
	}
	return st.AllocateVariable(symbol)
}

// runAssembly executes asm textually (not via the machine-code encoder)
// and returns the final CPU state.
func runAssembly(t *testing.T, asm string) *hackSim {
	t.Helper()

	var commands []*parser.Command
	for i, raw := range strings.Split(asm, "\n") {
		cmd, err := parser.ParseLine(raw, i+1)
		if err != nil {
			t.Fatalf("parsing line %d: %v", i+1, err)
		}
		if cmd != nil {
			commands = append(commands, cmd)
		}
	}

	st := symtable.New()
	rom := 0
	for _, cmd := range commands {
		if cmd.Kind == parser.L {
			if err := st.DefineLabel(cmd.Label, rom); err != nil {
				t.Fatalf("defining label %q: %v", cmd.Label, err)
			}
			continue
		}
		rom++
	}

	var exec []*parser.Command
	for _, cmd := range commands {
		if cmd.Kind != parser.L {
			exec = append(exec, cmd)
		}
	}

	sim := newHackSim()
	pc := 0
	for steps := 0; pc < len(exec); steps++ {
		if steps > 500000 {
			t.Fatalf("simulation did not halt within %d steps", steps)
		}
		cmd := exec[pc]
		switch cmd.Kind {
		case parser.A:
			sim.a = int16(resolveSimAddress(cmd.Symbol, st))
			pc++
		case parser.C:
			fn, ok := compFuncs[cmd.Comp]
			if !ok {
				t.Fatalf("line %d: unknown comp mnemonic %q", cmd.Line, cmd.Comp)
			}
			addr := int(sim.a)
			result := fn(sim.a, sim.d, sim.getMem(addr))
			if strings.Contains(cmd.Dest, "M") {
				sim.setMem(addr, result)
			}
			if strings.Contains(cmd.Dest, "A") {
				sim.a = result
			}
			if strings.Contains(cmd.Dest, "D") {
				sim.d = result
			}
			if cmd.Jump != "" && jumpTaken(cmd.Jump, result) {
				target := int(sim.a)
				if target == pc {
					// a jump-to-self is this fixture's halt idiom.
					return sim
				}
				pc = target
			} else {
				pc++
			}
		default:
			pc++
		}
	}
	return sim
}

// Package assembler is the two-pass driver: pass 1 collects label
// addresses, pass 2 resolves every symbol and encodes each instruction
// to its 16-bit binary string.
package assembler

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/gabewblee/HackSoftware/asm/codetable"
	"github.com/gabewblee/HackSoftware/asm/parser"
	"github.com/gabewblee/HackSoftware/asm/symtable"
	"github.com/gabewblee/HackSoftware/internal/diag"
)

const maxAddress = 32767

// Assemble reads Hack assembly from r and writes one 16-character
// binary line per instruction to w.
func Assemble(r io.Reader, w io.Writer) error {
	commands, err := readCommands(r)
	if err != nil {
		return err
	}

	st := symtable.New()
	if err := collectLabels(commands, st); err != nil {
		return err
	}

	return emit(commands, st, w)
}

func readCommands(r io.Reader) ([]*parser.Command, error) {
	scanner := bufio.NewScanner(r)
	var commands []*parser.Command

	line := 0
	for scanner.Scan() {
		line++
		cmd, err := parser.ParseLine(scanner.Text(), line)
		if err != nil {
			return nil, diag.Wrap(diag.Parse, err, "parsing line %d", line).At(line)
		}
		if cmd != nil {
			commands = append(commands, cmd)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, diag.Wrap(diag.IO, err, "reading assembly source")
	}
	return commands, nil
}

// collectLabels is pass 1: count ROM positions, recording each label's
// address without consuming a ROM slot for it.
func collectLabels(commands []*parser.Command, st *symtable.Table) error {
	rom := 0
	for _, cmd := range commands {
		if cmd.Kind == parser.L {
			if err := st.DefineLabel(cmd.Label, rom); err != nil {
				return diag.New(diag.Parse, "%s", err.Error()).At(cmd.Line)
			}
			continue
		}
		rom++
	}
	return nil
}

// emit is pass 2: resolve and encode every A- and C-command.
func emit(commands []*parser.Command, st *symtable.Table, w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, cmd := range commands {
		switch cmd.Kind {
		case parser.L:
			continue
		case parser.A:
			addr, err := resolveAddress(cmd.Symbol, st, cmd.Line)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(bw, "0%015b\n", addr); err != nil {
				return diag.Wrap(diag.IO, err, "writing instruction")
			}
		case parser.C:
			bits, err := encodeC(cmd)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(bw, "111%s\n", bits); err != nil {
				return diag.Wrap(diag.IO, err, "writing instruction")
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return diag.Wrap(diag.IO, err, "flushing assembly output")
	}
	return nil
}

func resolveAddress(symbol string, st *symtable.Table, line int) (int, error) {
	if n, err := strconv.Atoi(symbol); err == nil {
		if n < 0 || n > maxAddress {
			return 0, diag.New(diag.Encoding, "address %d out of range", n).At(line)
		}
		return n, nil
	}
	if addr, ok := st.Lookup(symbol); ok {
		return addr, nil
	}
	return st.AllocateVariable(symbol), nil
}

func encodeC(cmd *parser.Command) (string, error) {
	compBits, ok := codetable.EncodeComp(cmd.Comp)
	if !ok {
		return "", diag.New(diag.Encoding, "unknown comp mnemonic %q", cmd.Comp).At(cmd.Line)
	}
	destBits, ok := codetable.EncodeDest(cmd.Dest)
	if !ok {
		return "", diag.New(diag.Encoding, "unknown dest mnemonic %q", cmd.Dest).At(cmd.Line)
	}
	jumpBits, ok := codetable.EncodeJump(cmd.Jump)
	if !ok {
		return "", diag.New(diag.Encoding, "unknown jump mnemonic %q", cmd.Jump).At(cmd.Line)
	}
	return compBits + destBits + jumpBits, nil
}


package assembler

import (
	"strings"
	"testing"
)

func assembleString(t *testing.T, src string) []string {
	var out strings.Builder
	if err := Assemble(strings.NewReader(src), &out); err != nil {
		t.Fatalf("Assemble: unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	return lines
}

func TestAssembleComputeInstruction(t *testing.T) {
	lines := assembleString(t, "D=D+A\n")
	if len(lines) != 1 || lines[0] != "1110000010010000" {
		t.Errorf("got %v, want [1110000010010000]", lines)
	}
}

func TestAssembleLabelForwardJump(t *testing.T) {
	src := "@LOOP\n0;JMP\n(LOOP)\n@0\nD=A\n"
	lines := assembleString(t, src)
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4: %v", len(lines), lines)
	}
	// @LOOP resolves to ROM address 2, the instruction right after the jump
	if lines[0] != "0000000000000010" {
		t.Errorf("@LOOP encoding = %s, want 0000000000000010", lines[0])
	}
	if lines[1] != "1110101010000111" {
		t.Errorf("0;JMP encoding = %s, want 1110101010000111", lines[1])
	}
}

func TestAssembleVariableAllocation(t *testing.T) {
	src := "@i\nM=1\n@sum\nM=0\n"
	lines := assembleString(t, src)
	// i is the first variable reference, allocated to RAM 16; sum to RAM 17
	if lines[0] != "0000000000010000" {
		t.Errorf("@i encoding = %s, want RAM 16", lines[0])
	}
	if lines[2] != "0000000000010001" {
		t.Errorf("@sum encoding = %s, want RAM 17", lines[2])
	}
}

func TestAssembleRejectsUnknownComp(t *testing.T) {
	_, err := assembleErr("D=D+D\n")
	if err == nil {
		t.Fatal("expected an error for an invalid comp mnemonic")
	}
}

func assembleErr(src string) (string, error) {
	var out strings.Builder
	err := Assemble(strings.NewReader(src), &out)
	return out.String(), err
}

func TestAssembleSkipsCommentsAndBlankLines(t *testing.T) {
	src := "// header comment\n\n@100  // load literal\n   \nD=A\n"
	lines := assembleString(t, src)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %v", len(lines), lines)
	}
}

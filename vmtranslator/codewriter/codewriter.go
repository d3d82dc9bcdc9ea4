// Package codewriter lowers one VM command at a time to Hack assembly.
// The label and return-address counters live as fields on CodeWriter
// rather than package-level globals, so each translation unit gets a
// clean reset.
package codewriter

import (
	"fmt"
	"io"
)

const tempBase = 5

var segmentPointer = map[string]string{
	"local":    "LCL",
	"argument": "ARG",
	"this":     "THIS",
	"that":     "THAT",
}

// CodeWriter emits Hack assembly for VM commands belonging to one
// translation unit (possibly spanning several VM files in directory
// mode).
type CodeWriter struct {
	out        io.Writer
	err        error
	fileStem   string
	curFn      string
	compCount  map[string]int
	callCount  int
}

// New wraps w for assembly emission.
func New(w io.Writer) *CodeWriter {
	return &CodeWriter{
		out:       w,
		compCount: make(map[string]int),
	}
}

// Err returns the first write error encountered, if any.
func (cw *CodeWriter) Err() error {
	return cw.err
}

// SetFile records the VM file stem currently being translated, used for
// static-segment symbol naming (`<stem>.<i>`).
func (cw *CodeWriter) SetFile(stem string) {
	cw.fileStem = stem
}

func (cw *CodeWriter) line(format string, args ...any) {
	if cw.err != nil {
		return
	}
	_, err := fmt.Fprintf(cw.out, format+"\n", args...)
	if err != nil {
		cw.err = err
	}
}

// WriteBootstrap emits the fixed prologue that initializes SP and calls
// Sys.init. Only directory-mode (multi file) translations emit this.
func (cw *CodeWriter) WriteBootstrap() {
	cw.line("@256")
	cw.line("D=A")
	cw.line("@SP")
	cw.line("M=D")
	cw.WriteCall("Sys.init", 0)
}

func (cw *CodeWriter) pushD() {
	cw.line("@SP")
	cw.line("A=M")
	cw.line("M=D")
	cw.line("@SP")
	cw.line("M=M+1")
}

// WritePush emits the assembly for `push segment index`.
func (cw *CodeWriter) WritePush(segment string, index int) {
	switch segment {
	case "constant":
		cw.line("@%d", index)
		cw.line("D=A")

	case "local", "argument", "this", "that":
		cw.line("@%d", index)
		cw.line("D=A")
		cw.line("@%s", segmentPointer[segment])
		cw.line("A=D+M")
		cw.line("D=M")

	case "temp":
		cw.line("@%d", tempBase+index)
		cw.line("D=M")

	case "pointer":
		cw.line("@%s", pointerSymbol(index))
		cw.line("D=M")

	case "static":
		cw.line("@%s.%d", cw.fileStem, index)
		cw.line("D=M")
	}
	cw.pushD()
}

// WritePop emits the assembly for `pop segment index`.
func (cw *CodeWriter) WritePop(segment string, index int) {
	switch segment {
	case "local", "argument", "this", "that":
		cw.line("@%d", index)
		cw.line("D=A")
		cw.line("@%s", segmentPointer[segment])
		cw.line("D=D+M")
		cw.line("@R13")
		cw.line("M=D")
		cw.line("@SP")
		cw.line("M=M-1")
		cw.line("A=M")
		cw.line("D=M")
		cw.line("@R13")
		cw.line("A=M")
		cw.line("M=D")
		return

	case "temp":
		cw.line("@SP")
		cw.line("M=M-1")
		cw.line("A=M")
		cw.line("D=M")
		cw.line("@%d", tempBase+index)
		cw.line("M=D")
		return

	case "pointer":
		cw.line("@SP")
		cw.line("M=M-1")
		cw.line("A=M")
		cw.line("D=M")
		cw.line("@%s", pointerSymbol(index))
		cw.line("M=D")
		return

	case "static":
		cw.line("@SP")
		cw.line("M=M-1")
		cw.line("A=M")
		cw.line("D=M")
		cw.line("@%s.%d", cw.fileStem, index)
		cw.line("M=D")
		return
	}
}

func pointerSymbol(index int) string {
	if index == 1 {
		return "THAT"
	}
	return "THIS"
}

// WriteArithmetic emits the assembly for one of the nine arithmetic/
// logical/comparison commands.
func (cw *CodeWriter) WriteArithmetic(op string) {
	switch op {
	case "add":
		cw.binary("M=D+M")
	case "sub":
		cw.binary("M=M-D")
	case "and":
		cw.binary("M=D&M")
	case "or":
		cw.binary("M=D|M")
	case "neg":
		cw.unary("M=-M")
	case "not":
		cw.unary("M=!M")
	case "eq":
		cw.compare("JEQ")
	case "gt":
		cw.compare("JGT")
	case "lt":
		cw.compare("JLT")
	}
}

func (cw *CodeWriter) binary(comp string) {
	cw.line("@SP")
	cw.line("AM=M-1")
	cw.line("D=M")
	cw.line("A=A-1")
	cw.line(comp)
}

func (cw *CodeWriter) unary(comp string) {
	cw.line("@SP")
	cw.line("A=M-1")
	cw.line(comp)
}

func (cw *CodeWriter) compare(jump string) {
	n := cw.compCount[jump]
	cw.compCount[jump] = n + 1
	trueLabel := fmt.Sprintf("%s_TRUE_%d", jump, n)
	endLabel := fmt.Sprintf("%s_END_%d", jump, n)

	cw.line("@SP")
	cw.line("AM=M-1")
	cw.line("D=M")
	cw.line("A=A-1")
	cw.line("D=M-D")
	cw.line("@%s", trueLabel)
	cw.line("D;%s", jump)
	cw.line("@SP")
	cw.line("A=M-1")
	cw.line("M=0")
	cw.line("@%s", endLabel)
	cw.line("0;JMP")
	cw.line("(%s)", trueLabel)
	cw.line("@SP")
	cw.line("A=M-1")
	cw.line("M=-1")
	cw.line("(%s)", endLabel)
}

// scopedLabel applies the `F$label` scoping rule for label/goto/if-goto
// inside a function, falling back to the bare name when no function is
// currently open (freestanding test fixtures).
func (cw *CodeWriter) scopedLabel(name string) string {
	if cw.curFn == "" {
		return name
	}
	return fmt.Sprintf("%s$%s", cw.curFn, name)
}

// WriteLabel emits `(F$label)`.
func (cw *CodeWriter) WriteLabel(name string) {
	cw.line("(%s)", cw.scopedLabel(name))
}

// WriteGoto emits an unconditional jump to a scoped label.
func (cw *CodeWriter) WriteGoto(name string) {
	cw.line("@%s", cw.scopedLabel(name))
	cw.line("0;JMP")
}

// WriteIfGoto pops the top of the stack and jumps to a scoped label if
// it is non-zero.
func (cw *CodeWriter) WriteIfGoto(name string) {
	cw.line("@SP")
	cw.line("AM=M-1")
	cw.line("D=M")
	cw.line("@%s", cw.scopedLabel(name))
	cw.line("D;JNE")
}

// WriteFunction emits `(F)` and zero-initializes nLocals local slots,
// and records F as the current function for subsequent label scoping.
func (cw *CodeWriter) WriteFunction(name string, nLocals int) {
	cw.curFn = name
	cw.line("(%s)", name)
	for i := 0; i < nLocals; i++ {
		cw.line("@SP")
		cw.line("A=M")
		cw.line("M=0")
		cw.line("@SP")
		cw.line("M=M+1")
	}
}

// WriteCall emits the five-step call sequence: push a unique return
// address, push the four saved segment pointers, set ARG/LCL, jump to
// the callee, and emit the return-address label.
func (cw *CodeWriter) WriteCall(name string, nArgs int) {
	retLabel := fmt.Sprintf("RET_ADDRESS_%d", cw.callCount)
	cw.callCount++

	cw.line("@%s", retLabel)
	cw.line("D=A")
	cw.pushD()

	for _, seg := range []string{"LCL", "ARG", "THIS", "THAT"} {
		cw.line("@%s", seg)
		cw.line("D=M")
		cw.pushD()
	}

	cw.line("@SP")
	cw.line("D=M")
	cw.line("@%d", nArgs+5)
	cw.line("D=D-A")
	cw.line("@ARG")
	cw.line("M=D")

	cw.line("@SP")
	cw.line("D=M")
	cw.line("@LCL")
	cw.line("M=D")

	cw.line("@%s", name)
	cw.line("0;JMP")

	cw.line("(%s)", retLabel)
}

// WriteReturn emits the epilogue: restore the caller's frame, place the
// return value at the old ARG base, reset SP, and jump back to the
// caller.
func (cw *CodeWriter) WriteReturn() {
	cw.line("@LCL")
	cw.line("D=M")
	cw.line("@R13")
	cw.line("M=D") // R13 = FRAME

	cw.line("@5")
	cw.line("D=D-A")
	cw.line("A=D")
	cw.line("D=M")
	cw.line("@R14")
	cw.line("M=D") // R14 = RET

	cw.line("@SP")
	cw.line("M=M-1")
	cw.line("A=M")
	cw.line("D=M")
	cw.line("@ARG")
	cw.line("A=M")
	cw.line("M=D") // *ARG = pop()

	cw.line("@ARG")
	cw.line("D=M+1")
	cw.line("@SP")
	cw.line("M=D") // SP = ARG+1

	cw.restoreFromFrame(1, "THAT")
	cw.restoreFromFrame(2, "THIS")
	cw.restoreFromFrame(3, "ARG")
	cw.restoreFromFrame(4, "LCL")

	cw.line("@R14")
	cw.line("A=M")
	cw.line("0;JMP")
}

func (cw *CodeWriter) restoreFromFrame(offset int, dest string) {
	cw.line("@R13")
	cw.line("D=M")
	cw.line("@%d", offset)
	cw.line("A=D-A")
	cw.line("D=M")
	cw.line("@%s", dest)
	cw.line("M=D")
}

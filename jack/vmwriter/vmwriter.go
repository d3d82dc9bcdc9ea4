// Package vmwriter emits textual VM commands, one per line, covering
// the full VM command set: arithmetic, push/pop over every segment,
// labels, branches, and call/function/return.
package vmwriter

import (
	"fmt"
	"io"
)

var arithmeticOps = map[string]string{
	"+": "add",
	"-": "sub",
	"=": "eq",
	">": "gt",
	"<": "lt",
	"&": "and",
	"|": "or",
}

var unaryOps = map[string]string{
	"-": "neg",
	"~": "not",
}

// Writer streams VM commands to an underlying io.Writer.
type Writer struct {
	out io.Writer
	err error
}

// New wraps w for VM command emission.
func New(w io.Writer) *Writer {
	return &Writer{out: w}
}

// Err returns the first write error encountered, if any.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) writeLine(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, err := fmt.Fprintf(w.out, format+"\n", args...)
	if err != nil {
		w.err = err
	}
}

// WritePush emits `push segment index`.
func (w *Writer) WritePush(segment string, index int) {
	w.writeLine("push %s %d", segment, index)
}

// WritePop emits `pop segment index`.
func (w *Writer) WritePop(segment string, index int) {
	w.writeLine("pop %s %d", segment, index)
}

// WriteArithmetic translates a Jack binary operator token to its VM
// command. Multiply and divide are not arithmetic VM commands; the
// caller must instead emit the Math.multiply/Math.divide call per spec
// §4.2, so this function is only called for the other seven operators.
func (w *Writer) WriteArithmetic(op string) {
	if cmd, ok := arithmeticOps[op]; ok {
		w.writeLine(cmd)
		return
	}
	w.writeLine("%s", op)
}

// WriteUnary translates a Jack unary operator token to `neg` or `not`.
func (w *Writer) WriteUnary(op string) {
	w.writeLine(unaryOps[op])
}

// WriteLabel emits `label name`.
func (w *Writer) WriteLabel(name string) {
	w.writeLine("label %s", name)
}

// WriteGoto emits `goto name`.
func (w *Writer) WriteGoto(name string) {
	w.writeLine("goto %s", name)
}

// WriteIfGoto emits `if-goto name`.
func (w *Writer) WriteIfGoto(name string) {
	w.writeLine("if-goto %s", name)
}

// WriteCall emits `call name nArgs`.
func (w *Writer) WriteCall(name string, nArgs int) {
	w.writeLine("call %s %d", name, nArgs)
}

// WriteFunction emits `function name nLocals`.
func (w *Writer) WriteFunction(name string, nLocals int) {
	w.writeLine("function %s %d", name, nLocals)
}

// WriteReturn emits `return`.
func (w *Writer) WriteReturn() {
	w.writeLine("return")
}

// Package diag defines the error-kind taxonomy shared by the Jack
// compiler, the VM translator and the assembler, and formats diagnostics
// the way all three drivers report them on the error stream.
package diag

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is one of the abstract error kinds a translation stage can raise.
type Kind string

const (
	Argument  Kind = "ArgumentError"
	IO        Kind = "IoError"
	Lex       Kind = "LexError"
	Parse     Kind = "ParseError"
	Semantic  Kind = "SemanticError"
	Encoding  Kind = "EncodingError"
)

// Error is a positioned diagnostic. File and Line are optional; Line of 0
// means "not applicable".
type Error struct {
	Kind   Kind
	File   string
	Line   int
	Detail string
	cause  error
}

func (e *Error) Error() string {
	loc := ""
	switch {
	case e.File != "" && e.Line > 0:
		loc = fmt.Sprintf(" (%s:%d)", e.File, e.Line)
	case e.File != "":
		loc = fmt.Sprintf(" (%s)", e.File)
	case e.Line > 0:
		loc = fmt.Sprintf(" (line %d)", e.Line)
	}
	return fmt.Sprintf("Error: %s: %s%s", e.Kind, e.Detail, loc)
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Cause() error { return e.cause }

// New builds a diagnostic with no line/file context attached yet.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// At attaches a line number to a diagnostic, used once the caller knows
// which source line produced it.
func (e *Error) At(line int) *Error {
	e.Line = line
	return e
}

// In attaches the source file name to a diagnostic.
func (e *Error) In(file string) *Error {
	e.File = file
	return e
}

// Wrap turns an arbitrary error into a diagnostic of the given kind,
// keeping the original error, annotated with a stack trace via
// pkg/errors, as the cause reachable through Cause and Unwrap. The
// diagnostic's own text (under %v and %+v alike) does not include the
// cause or its stack trace.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
		cause:  errors.WithStack(err),
	}
}

// As reports whether err is a *Error of the given kind.
func As(err error, kind Kind) bool {
	var d *Error
	if !errors.As(err, &d) {
		return false
	}
	return d.Kind == kind
}

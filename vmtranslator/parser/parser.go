// Package parser turns VM source lines into typed commands, stripping
// comments and blank lines and splitting each remaining line into its
// command kind and operands.
package parser

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/gabewblee/HackSoftware/internal/diag"
)

// Kind is one of the nine VM command variants.
type Kind string

const (
	Arithmetic Kind = "arithmetic"
	Push       Kind = "push"
	Pop        Kind = "pop"
	Label      Kind = "label"
	Goto       Kind = "goto"
	IfGoto     Kind = "if-goto"
	Function   Kind = "function"
	Call       Kind = "call"
	Return     Kind = "return"
)

var arithmeticOps = []string{"add", "sub", "neg", "eq", "gt", "lt", "and", "or", "not"}

var segments = []string{"constant", "local", "argument", "this", "that", "static", "temp", "pointer"}

// Command is a parsed VM instruction.
type Command struct {
	Kind    Kind
	Op      string // set when Kind == Arithmetic
	Segment string // set when Kind == Push or Pop
	Index   int    // set when Kind == Push or Pop
	Name    string // set when Kind == Label, Goto, IfGoto, Function, Call
	N       int    // nLocals for Function, nArgs for Call
	Line    int
}

// Parser reads whitespace-separated VM commands one line at a time.
type Parser struct {
	scanner *bufio.Scanner
	line    int
}

// New wraps r for line-oriented VM parsing.
func New(r io.Reader) *Parser {
	return &Parser{scanner: bufio.NewScanner(r)}
}

// Next returns the next command. ok is false once input is exhausted.
func (p *Parser) Next() (Command, bool, error) {
	for p.scanner.Scan() {
		p.line++
		line := stripComment(p.scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, err := parseFields(fields, p.line)
		return cmd, true, err
	}
	if err := p.scanner.Err(); err != nil {
		return Command{}, false, diag.Wrap(diag.IO, err, "reading VM source")
	}
	return Command{}, false, nil
}

func stripComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

func parseFields(fields []string, line int) (Command, error) {
	head := fields[0]

	if slices.Contains(arithmeticOps, head) {
		if len(fields) != 1 {
			return Command{}, diag.New(diag.Parse, "unexpected operands for %q", head).At(line)
		}
		return Command{Kind: Arithmetic, Op: head, Line: line}, nil
	}

	switch head {
	case "push", "pop":
		if len(fields) != 3 {
			return Command{}, diag.New(diag.Parse, "%q requires segment and index", head).At(line)
		}
		if !slices.Contains(segments, fields[1]) {
			return Command{}, diag.New(diag.Parse, "unknown segment %q", fields[1]).At(line)
		}
		idx, err := strconv.Atoi(fields[2])
		if err != nil || idx < 0 {
			return Command{}, diag.New(diag.Parse, "invalid index %q", fields[2]).At(line)
		}
		kind := Push
		if head == "pop" {
			kind = Pop
		}
		return Command{Kind: kind, Segment: fields[1], Index: idx, Line: line}, nil

	case "label", "goto", "if-goto":
		if len(fields) != 2 {
			return Command{}, diag.New(diag.Parse, "%q requires a label name", head).At(line)
		}
		kind := Label
		switch head {
		case "goto":
			kind = Goto
		case "if-goto":
			kind = IfGoto
		}
		return Command{Kind: kind, Name: fields[1], Line: line}, nil

	case "function", "call":
		if len(fields) != 3 {
			return Command{}, diag.New(diag.Parse, "%q requires a name and a count", head).At(line)
		}
		n, err := strconv.Atoi(fields[2])
		if err != nil || n < 0 {
			return Command{}, diag.New(diag.Parse, "invalid count %q", fields[2]).At(line)
		}
		kind := Function
		if head == "call" {
			kind = Call
		}
		return Command{Kind: kind, Name: fields[1], N: n, Line: line}, nil

	case "return":
		if len(fields) != 1 {
			return Command{}, diag.New(diag.Parse, "%q takes no operands", head).At(line)
		}
		return Command{Kind: Return, Line: line}, nil

	default:
		return Command{}, diag.New(diag.Parse, "unknown command %q", head).At(line)
	}
}

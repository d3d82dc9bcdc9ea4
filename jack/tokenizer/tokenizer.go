// Package tokenizer turns a Jack source byte stream into a one-token
// lookahead stream: Current holds the lookahead token, and Advance
// consumes it and loads the next one. The whole input is tokenized up
// front rather than line-by-line, since Jack string constants and
// comments need more context than a single line gives cleanly.
package tokenizer

import (
	"io"
	"strconv"

	"golang.org/x/exp/slices"

	"github.com/gabewblee/HackSoftware/internal/diag"
	"github.com/gabewblee/HackSoftware/jack/token"
)

// Tokenizer exposes a single token of lookahead over Jack source text.
type Tokenizer struct {
	src     []rune
	pos     int
	line    int
	Current token.Token
	more    bool
}

// New reads all of r and tokenizes it eagerly, positioning Current at
// the first token (if any). Reading is eager because the grammar never
// needs to re-wind past a token, and eager tokenization lets lex errors
// surface before any code generation begins.
func New(r io.Reader) (*Tokenizer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, diag.Wrap(diag.IO, err, "reading source")
	}

	tk := &Tokenizer{src: []rune(string(data)), line: 1}

	// scan the whole input once on a copy so any lex error is reported here
	probe := *tk
	for {
		if err := probe.Advance(); err != nil {
			return nil, err
		}
		if !probe.more {
			break
		}
	}

	if err := tk.Advance(); err != nil {
		return nil, err
	}
	return tk, nil
}

// Peek returns the current lookahead token without consuming it.
func (tk *Tokenizer) Peek() token.Token {
	return tk.Current
}

// More reports whether Current holds a real token (false once input is
// exhausted).
func (tk *Tokenizer) More() bool {
	return tk.more
}

// Advance consumes Current and scans the next token into it.
func (tk *Tokenizer) Advance() error {
	if err := tk.skipTrivia(); err != nil {
		return err
	}
	if tk.pos >= len(tk.src) {
		tk.Current = token.Token{}
		tk.more = false
		return nil
	}

	startLine := tk.line
	c := tk.src[tk.pos]

	switch {
	case c == '"':
		return tk.scanString(startLine)
	case isDigit(c):
		return tk.scanInt(startLine)
	case isSymbolRune(c):
		tk.pos++
		tk.Current = token.Token{Type: token.Symbol, Raw: string(c), Line: startLine}
		tk.more = true
		return nil
	case isIdentStart(c):
		return tk.scanIdentOrKeyword(startLine)
	default:
		return diag.New(diag.Lex, "unexpected character %q", c).At(startLine)
	}
}

func (tk *Tokenizer) skipTrivia() error {
	for tk.pos < len(tk.src) {
		c := tk.src[tk.pos]
		switch {
		case c == '\n':
			tk.line++
			tk.pos++
		case c == ' ' || c == '\t' || c == '\r':
			tk.pos++
		case c == '/' && tk.peekAt(1) == '/':
			for tk.pos < len(tk.src) && tk.src[tk.pos] != '\n' {
				tk.pos++
			}
		case c == '/' && tk.peekAt(1) == '*':
			startLine := tk.line
			tk.pos += 2
			for {
				if tk.pos >= len(tk.src) {
					return diag.New(diag.Lex, "unterminated block comment").At(startLine)
				}
				if tk.src[tk.pos] == '*' && tk.peekAt(1) == '/' {
					tk.pos += 2
					break
				}
				if tk.src[tk.pos] == '\n' {
					tk.line++
				}
				tk.pos++
			}
		default:
			return nil
		}
	}
	return nil
}

func (tk *Tokenizer) peekAt(offset int) rune {
	if tk.pos+offset >= len(tk.src) {
		return 0
	}
	return tk.src[tk.pos+offset]
}

func (tk *Tokenizer) scanString(startLine int) error {
	tk.pos++ // opening quote
	var raw []rune
	for {
		if tk.pos >= len(tk.src) || tk.src[tk.pos] == '\n' {
			return diag.New(diag.Lex, "unterminated string constant").At(startLine)
		}
		if tk.src[tk.pos] == '"' {
			tk.pos++
			break
		}
		raw = append(raw, tk.src[tk.pos])
		tk.pos++
	}
	tk.Current = token.Token{Type: token.StringConst, Raw: string(raw), Line: startLine}
	tk.more = true
	return nil
}

func (tk *Tokenizer) scanInt(startLine int) error {
	start := tk.pos
	for tk.pos < len(tk.src) && isDigit(tk.src[tk.pos]) {
		tk.pos++
	}
	raw := string(tk.src[start:tk.pos])
	n, err := strconv.Atoi(raw)
	if err != nil || n > 32767 {
		return diag.New(diag.Lex, "integer constant %q out of range", raw).At(startLine)
	}
	tk.Current = token.Token{Type: token.IntConst, Raw: raw, Line: startLine}
	tk.more = true
	return nil
}

func (tk *Tokenizer) scanIdentOrKeyword(startLine int) error {
	start := tk.pos
	for tk.pos < len(tk.src) && isIdentRune(tk.src[tk.pos]) {
		tk.pos++
	}
	raw := string(tk.src[start:tk.pos])

	typ := token.Identifier
	if slices.Contains(token.Keywords, raw) {
		typ = token.Keyword
	}
	tk.Current = token.Token{Type: typ, Raw: raw, Line: startLine}
	tk.more = true
	return nil
}

func isDigit(c rune) bool      { return c >= '0' && c <= '9' }
func isIdentStart(c rune) bool { return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isIdentRune(c rune) bool  { return isIdentStart(c) || isDigit(c) }

func isSymbolRune(c rune) bool {
	return slices.Contains(token.Symbols, string(c))
}

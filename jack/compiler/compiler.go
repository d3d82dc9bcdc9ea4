// Package compiler is the single-pass recursive-descent compilation
// engine: it parses one Jack class and emits VM code as it recognizes
// constructs, with no AST retained.
package compiler

import (
	"fmt"
	"io"

	"github.com/gabewblee/HackSoftware/internal/diag"
	"github.com/gabewblee/HackSoftware/jack/symtable"
	"github.com/gabewblee/HackSoftware/jack/token"
	"github.com/gabewblee/HackSoftware/jack/tokenizer"
	"github.com/gabewblee/HackSoftware/jack/vmwriter"
)

// CompileFile reads one Jack class from r and writes its VM translation
// to w. This is the entry point cmd/jackc drives.
func CompileFile(r io.Reader, w io.Writer) error {
	tk, err := tokenizer.New(r)
	if err != nil {
		return err
	}
	if !tk.More() {
		return diag.New(diag.Parse, "empty source file")
	}

	vw := vmwriter.New(w)
	c := New(tk, vw)
	if err := c.CompileClass(); err != nil {
		return err
	}
	if vw.Err() != nil {
		return diag.Wrap(diag.IO, vw.Err(), "writing VM output")
	}
	return nil
}

// Compiler holds the per-class state a compilation needs: the token
// source, the VM code sink, the symbol table, and the counters the
// teacher's "global counters" note says should live on the component
// rather than in package-level mutable state.
type Compiler struct {
	tk      *tokenizer.Tokenizer
	vw      *vmwriter.Writer
	symbols *symtable.Table

	className    string
	labelCounter int

	subroutineKind       string // constructor, function, method
	subroutineReturnType string
}

// New builds a Compiler that reads tokens from tk and writes VM code to
// vw.
func New(tk *tokenizer.Tokenizer, vw *vmwriter.Writer) *Compiler {
	return &Compiler{tk: tk, vw: vw, symbols: symtable.New()}
}

func (c *Compiler) current() token.Token {
	return c.tk.Peek()
}

func (c *Compiler) advance() error {
	if err := c.tk.Advance(); err != nil {
		return err
	}
	return nil
}

func (c *Compiler) parseErrorf(format string, args ...any) error {
	return diag.New(diag.Parse, format, args...).At(c.current().Line)
}

func (c *Compiler) semanticErrorf(format string, args ...any) error {
	return diag.New(diag.Semantic, format, args...).At(c.current().Line)
}

// expectSymbol consumes Current if it is the symbol raw, else returns a
// ParseError.
func (c *Compiler) expectSymbol(raw string) error {
	cur := c.current()
	if cur.Type != token.Symbol || cur.Raw != raw {
		return c.parseErrorf("expected %q, got %q", raw, cur.Raw)
	}
	return c.advance()
}

// atSymbol reports whether Current is the given symbol, without
// consuming it.
func (c *Compiler) atSymbol(raw string) bool {
	cur := c.current()
	return cur.Type == token.Symbol && cur.Raw == raw
}

func (c *Compiler) atKeyword(words ...string) bool {
	cur := c.current()
	if cur.Type != token.Keyword {
		return false
	}
	for _, w := range words {
		if cur.Raw == w {
			return true
		}
	}
	return false
}

// expectKeyword consumes Current if it is one of words, returning the
// matched keyword text.
func (c *Compiler) expectKeyword(words ...string) (string, error) {
	cur := c.current()
	if !c.atKeyword(words...) {
		return "", c.parseErrorf("expected one of %v, got %q", words, cur.Raw)
	}
	if err := c.advance(); err != nil {
		return "", err
	}
	return cur.Raw, nil
}

func (c *Compiler) expectIdentifier() (token.Token, error) {
	cur := c.current()
	if cur.Type != token.Identifier {
		return token.Token{}, c.parseErrorf("expected identifier, got %q", cur.Raw)
	}
	if err := c.advance(); err != nil {
		return token.Token{}, err
	}
	return cur, nil
}

// expectType consumes a Jack type: int, char, boolean, or a class name.
func (c *Compiler) expectType() (string, error) {
	cur := c.current()
	if cur.Type == token.Keyword && (cur.Raw == "int" || cur.Raw == "char" || cur.Raw == "boolean") {
		return cur.Raw, c.advance()
	}
	if cur.Type == token.Identifier {
		return cur.Raw, c.advance()
	}
	return "", c.parseErrorf("expected type, got %q", cur.Raw)
}

func (c *Compiler) newLabel(tag string) string {
	l := fmt.Sprintf("%s_%s_%d", c.className, tag, c.labelCounter)
	c.labelCounter++
	return l
}

// CompileClass compiles exactly one class: `class ident { classVarDec*
// subroutineDec* }`.
func (c *Compiler) CompileClass() error {
	if _, err := c.expectKeyword("class"); err != nil {
		return err
	}
	nameTok, err := c.expectIdentifier()
	if err != nil {
		return err
	}
	c.className = nameTok.Raw

	if err := c.expectSymbol("{"); err != nil {
		return err
	}

	for c.atKeyword("static", "field") {
		if err := c.compileClassVarDec(); err != nil {
			return err
		}
	}
	for c.atKeyword("constructor", "function", "method") {
		if err := c.compileSubroutine(); err != nil {
			return err
		}
	}

	return c.expectSymbol("}")
}

func (c *Compiler) compileClassVarDec() error {
	kindWord, err := c.expectKeyword("static", "field")
	if err != nil {
		return err
	}
	kind := symtable.Static
	if kindWord == "field" {
		kind = symtable.Field
	}

	typ, err := c.expectType()
	if err != nil {
		return err
	}

	for {
		nameTok, err := c.expectIdentifier()
		if err != nil {
			return err
		}
		c.symbols.Define(nameTok.Raw, typ, kind)

		if c.atSymbol(",") {
			if err := c.advance(); err != nil {
				return err
			}
			continue
		}
		break
	}

	return c.expectSymbol(";")
}

func (c *Compiler) compileSubroutine() error {
	kind, err := c.expectKeyword("constructor", "function", "method")
	if err != nil {
		return err
	}
	c.subroutineKind = kind

	var retType string
	if c.atKeyword("void") {
		retType = "void"
		if err := c.advance(); err != nil {
			return err
		}
	} else {
		retType, err = c.expectType()
		if err != nil {
			return err
		}
	}
	c.subroutineReturnType = retType

	nameTok, err := c.expectIdentifier()
	if err != nil {
		return err
	}

	c.symbols.StartSubroutine()
	c.labelCounter = 0

	if kind == "method" {
		// implicit `this` occupies argument 0.
		c.symbols.Define("this", c.className, symtable.Argument)
	}

	if err := c.expectSymbol("("); err != nil {
		return err
	}
	if err := c.compileParameterList(); err != nil {
		return err
	}
	if err := c.expectSymbol(")"); err != nil {
		return err
	}

	return c.compileSubroutineBody(nameTok.Raw, kind)
}

func (c *Compiler) compileParameterList() error {
	if c.atSymbol(")") {
		return nil
	}
	for {
		typ, err := c.expectType()
		if err != nil {
			return err
		}
		nameTok, err := c.expectIdentifier()
		if err != nil {
			return err
		}
		c.symbols.Define(nameTok.Raw, typ, symtable.Argument)

		if c.atSymbol(",") {
			if err := c.advance(); err != nil {
				return err
			}
			continue
		}
		break
	}
	return nil
}

func (c *Compiler) compileSubroutineBody(subroutineName string, kind string) error {
	if err := c.expectSymbol("{"); err != nil {
		return err
	}

	for c.atKeyword("var") {
		if err := c.compileVarDec(); err != nil {
			return err
		}
	}

	nLocals := c.symbols.Count(symtable.Var)
	c.vw.WriteFunction(fmt.Sprintf("%s.%s", c.className, subroutineName), nLocals)

	switch kind {
	case "constructor":
		c.vw.WritePush("constant", c.symbols.Count(symtable.Field))
		c.vw.WriteCall("Memory.alloc", 1)
		c.vw.WritePop("pointer", 0)
	case "method":
		c.vw.WritePush("argument", 0)
		c.vw.WritePop("pointer", 0)
	}

	if err := c.compileStatements(); err != nil {
		return err
	}

	return c.expectSymbol("}")
}

func (c *Compiler) compileVarDec() error {
	if _, err := c.expectKeyword("var"); err != nil {
		return err
	}
	typ, err := c.expectType()
	if err != nil {
		return err
	}
	for {
		nameTok, err := c.expectIdentifier()
		if err != nil {
			return err
		}
		c.symbols.Define(nameTok.Raw, typ, symtable.Var)

		if c.atSymbol(",") {
			if err := c.advance(); err != nil {
				return err
			}
			continue
		}
		break
	}
	return c.expectSymbol(";")
}

func (c *Compiler) compileStatements() error {
	for {
		switch {
		case c.atKeyword("let"):
			if err := c.compileLet(); err != nil {
				return err
			}
		case c.atKeyword("if"):
			if err := c.compileIf(); err != nil {
				return err
			}
		case c.atKeyword("while"):
			if err := c.compileWhile(); err != nil {
				return err
			}
		case c.atKeyword("do"):
			if err := c.compileDo(); err != nil {
				return err
			}
		case c.atKeyword("return"):
			if err := c.compileReturn(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (c *Compiler) compileLet() error {
	if _, err := c.expectKeyword("let"); err != nil {
		return err
	}
	nameTok, err := c.expectIdentifier()
	if err != nil {
		return err
	}
	entry, ok := c.symbols.Lookup(nameTok.Raw)
	if !ok {
		return c.semanticErrorf("undeclared identifier %q", nameTok.Raw)
	}

	indexed := false
	if c.atSymbol("[") {
		indexed = true
		if err := c.advance(); err != nil {
			return err
		}
		if err := c.compileExpression(); err != nil {
			return err
		}
		if err := c.expectSymbol("]"); err != nil {
			return err
		}
		c.vw.WritePush(entry.Kind.Segment(), entry.Index)
		c.vw.WriteArithmetic("+")
	}

	if err := c.expectSymbol("="); err != nil {
		return err
	}
	if err := c.compileExpression(); err != nil {
		return err
	}
	if err := c.expectSymbol(";"); err != nil {
		return err
	}

	if indexed {
		// RHS may itself reference an array, so stash it in temp
		// before reassigning pointer 1.
		c.vw.WritePop("temp", 0)
		c.vw.WritePop("pointer", 1)
		c.vw.WritePush("temp", 0)
		c.vw.WritePop("that", 0)
	} else {
		c.vw.WritePop(entry.Kind.Segment(), entry.Index)
	}

	return nil
}

func (c *Compiler) compileIf() error {
	if _, err := c.expectKeyword("if"); err != nil {
		return err
	}
	if err := c.expectSymbol("("); err != nil {
		return err
	}
	if err := c.compileExpression(); err != nil {
		return err
	}
	if err := c.expectSymbol(")"); err != nil {
		return err
	}

	falseLabel := c.newLabel("IF_FALSE")
	endLabel := c.newLabel("IF_END")

	c.vw.WriteUnary("~")
	c.vw.WriteIfGoto(falseLabel)

	if err := c.expectSymbol("{"); err != nil {
		return err
	}
	if err := c.compileStatements(); err != nil {
		return err
	}
	if err := c.expectSymbol("}"); err != nil {
		return err
	}
	c.vw.WriteGoto(endLabel)
	c.vw.WriteLabel(falseLabel)

	if c.atKeyword("else") {
		if err := c.advance(); err != nil {
			return err
		}
		if err := c.expectSymbol("{"); err != nil {
			return err
		}
		if err := c.compileStatements(); err != nil {
			return err
		}
		if err := c.expectSymbol("}"); err != nil {
			return err
		}
	}
	c.vw.WriteLabel(endLabel)
	return nil
}

func (c *Compiler) compileWhile() error {
	if _, err := c.expectKeyword("while"); err != nil {
		return err
	}

	topLabel := c.newLabel("WHILE_TOP")
	endLabel := c.newLabel("WHILE_END")

	c.vw.WriteLabel(topLabel)

	if err := c.expectSymbol("("); err != nil {
		return err
	}
	if err := c.compileExpression(); err != nil {
		return err
	}
	if err := c.expectSymbol(")"); err != nil {
		return err
	}

	c.vw.WriteUnary("~")
	c.vw.WriteIfGoto(endLabel)

	if err := c.expectSymbol("{"); err != nil {
		return err
	}
	if err := c.compileStatements(); err != nil {
		return err
	}
	if err := c.expectSymbol("}"); err != nil {
		return err
	}

	c.vw.WriteGoto(topLabel)
	c.vw.WriteLabel(endLabel)
	return nil
}

func (c *Compiler) compileDo() error {
	if _, err := c.expectKeyword("do"); err != nil {
		return err
	}
	if err := c.compileSubroutineCall(); err != nil {
		return err
	}
	if err := c.expectSymbol(";"); err != nil {
		return err
	}
	c.vw.WritePop("temp", 0)
	return nil
}

func (c *Compiler) compileReturn() error {
	if _, err := c.expectKeyword("return"); err != nil {
		return err
	}
	if c.atSymbol(";") {
		c.vw.WritePush("constant", 0)
	} else if err := c.compileExpression(); err != nil {
		return err
	}
	if err := c.expectSymbol(";"); err != nil {
		return err
	}
	c.vw.WriteReturn()
	return nil
}

func (c *Compiler) compileExpression() error {
	if err := c.compileTerm(); err != nil {
		return err
	}
	for {
		cur := c.current()
		if cur.Type != token.Symbol || !token.IsBinaryOp(cur.Raw) {
			return nil
		}
		op := cur.Raw
		if err := c.advance(); err != nil {
			return err
		}
		if err := c.compileTerm(); err != nil {
			return err
		}
		switch op {
		case "*":
			c.vw.WriteCall("Math.multiply", 2)
		case "/":
			c.vw.WriteCall("Math.divide", 2)
		default:
			c.vw.WriteArithmetic(op)
		}
	}
}

func (c *Compiler) compileTerm() error {
	cur := c.current()

	switch {
	case cur.Type == token.IntConst:
		c.vw.WritePush("constant", atoiMust(cur.Raw))
		return c.advance()

	case cur.Type == token.StringConst:
		return c.compileStringConstant(cur.Raw)

	case cur.Type == token.Keyword && token.IsKeywordConstant(cur.Raw):
		return c.compileKeywordConstant(cur.Raw)

	case cur.Type == token.Symbol && cur.Raw == "(":
		if err := c.advance(); err != nil {
			return err
		}
		if err := c.compileExpression(); err != nil {
			return err
		}
		return c.expectSymbol(")")

	case cur.Type == token.Symbol && token.IsUnaryOp(cur.Raw):
		op := cur.Raw
		if err := c.advance(); err != nil {
			return err
		}
		if err := c.compileTerm(); err != nil {
			return err
		}
		c.vw.WriteUnary(op)
		return nil

	case cur.Type == token.Identifier:
		return c.compileIdentifierTerm()

	default:
		return c.parseErrorf("unexpected token %q in expression", cur.Raw)
	}
}

func (c *Compiler) compileStringConstant(s string) error {
	c.vw.WritePush("constant", len(s))
	c.vw.WriteCall("String.new", 1)
	for _, ch := range s {
		c.vw.WritePush("constant", int(ch))
		c.vw.WriteCall("String.appendChar", 2)
	}
	return c.advance()
}

func (c *Compiler) compileKeywordConstant(word string) error {
	switch word {
	case "true":
		c.vw.WritePush("constant", 0)
		c.vw.WriteUnary("~")
	case "false", "null":
		c.vw.WritePush("constant", 0)
	case "this":
		c.vw.WritePush("pointer", 0)
	}
	return c.advance()
}

// compileIdentifierTerm handles the three identifier-led term shapes:
// a bare variable, an array access `a[e]`, and a subroutine call
// (`foo(...)`, `x.foo(...)`), disambiguated by looking at the token
// after the identifier.
func (c *Compiler) compileIdentifierTerm() error {
	nameTok, err := c.expectIdentifier()
	if err != nil {
		return err
	}

	switch {
	case c.atSymbol("["):
		entry, ok := c.symbols.Lookup(nameTok.Raw)
		if !ok {
			return c.semanticErrorf("undeclared identifier %q", nameTok.Raw)
		}
		if err := c.advance(); err != nil {
			return err
		}
		if err := c.compileExpression(); err != nil {
			return err
		}
		if err := c.expectSymbol("]"); err != nil {
			return err
		}
		c.vw.WritePush(entry.Kind.Segment(), entry.Index)
		c.vw.WriteArithmetic("+")
		c.vw.WritePop("pointer", 1)
		c.vw.WritePush("that", 0)
		return nil

	case c.atSymbol("(") || c.atSymbol("."):
		return c.compileCallTail(nameTok.Raw)

	default:
		entry, ok := c.symbols.Lookup(nameTok.Raw)
		if !ok {
			return c.semanticErrorf("undeclared identifier %q", nameTok.Raw)
		}
		c.vw.WritePush(entry.Kind.Segment(), entry.Index)
		return nil
	}
}

// compileSubroutineCall parses a statement-position subroutine call
// (used by `do`), which has the same shape as a call term.
func (c *Compiler) compileSubroutineCall() error {
	nameTok, err := c.expectIdentifier()
	if err != nil {
		return err
	}
	return c.compileCallTail(nameTok.Raw)
}

// compileCallTail handles everything after the leading identifier of a
// subroutine call, one of three shapes:
//   - receiver.foo(...) where receiver is a variable (instance method)
//   - ClassName.foo(...) where ClassName is a class (static call)
//   - foo(...) (implicit `this.foo(...)`)
func (c *Compiler) compileCallTail(leading string) error {
	var target string
	nArgs := 0

	if c.atSymbol(".") {
		if err := c.advance(); err != nil {
			return err
		}
		methodTok, err := c.expectIdentifier()
		if err != nil {
			return err
		}

		if entry, ok := c.symbols.Lookup(leading); ok {
			c.vw.WritePush(entry.Kind.Segment(), entry.Index)
			target = fmt.Sprintf("%s.%s", entry.Type, methodTok.Raw)
			nArgs++
		} else {
			target = fmt.Sprintf("%s.%s", leading, methodTok.Raw)
		}
	} else {
		c.vw.WritePush("pointer", 0)
		target = fmt.Sprintf("%s.%s", c.className, leading)
		nArgs++
	}

	if err := c.expectSymbol("("); err != nil {
		return err
	}
	n, err := c.compileExpressionList()
	if err != nil {
		return err
	}
	nArgs += n
	if err := c.expectSymbol(")"); err != nil {
		return err
	}

	c.vw.WriteCall(target, nArgs)
	return nil
}

func (c *Compiler) compileExpressionList() (int, error) {
	if c.atSymbol(")") {
		return 0, nil
	}
	n := 0
	for {
		if err := c.compileExpression(); err != nil {
			return n, err
		}
		n++
		if c.atSymbol(",") {
			if err := c.advance(); err != nil {
				return n, err
			}
			continue
		}
		break
	}
	return n, nil
}

func atoiMust(s string) int {
	n := 0
	for _, ch := range s {
		n = n*10 + int(ch-'0')
	}
	return n
}

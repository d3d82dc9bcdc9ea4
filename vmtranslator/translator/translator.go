// Package translator drives the VM-to-assembly translation: per-file
// setup (so static segments resolve to the right stem), optional
// bootstrap emission for directory-mode programs, and dispatch of each
// parsed command to the code writer.
package translator

import (
	"io"
	"os"

	"github.com/gabewblee/HackSoftware/internal/diag"
	"github.com/gabewblee/HackSoftware/internal/srcfile"
	"github.com/gabewblee/HackSoftware/vmtranslator/codewriter"
	"github.com/gabewblee/HackSoftware/vmtranslator/parser"
)

// File translates a single .vm file, without the bootstrap prologue.
func File(vmPath string, w io.Writer) error {
	cw := codewriter.New(w)
	if err := translateOne(vmPath, cw); err != nil {
		return err
	}
	return flush(cw)
}

// Directory translates every .vm file directly inside dir, alphabetically
// ordered, emitting the bootstrap first.
func Directory(dir string, w io.Writer) error {
	files, err := srcfile.WithExt(dir, ".vm")
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return diag.New(diag.Argument, "directory %q contains no .vm files", dir)
	}

	cw := codewriter.New(w)
	cw.WriteBootstrap()

	for _, f := range files {
		if err := translateOne(f, cw); err != nil {
			return err
		}
	}
	return flush(cw)
}

func translateOne(vmPath string, cw *codewriter.CodeWriter) error {
	in, err := os.Open(vmPath)
	if err != nil {
		return diag.Wrap(diag.IO, err, "opening %q", vmPath).In(vmPath)
	}
	defer in.Close()

	cw.SetFile(srcfile.Stem(vmPath))

	p := parser.New(in)
	for {
		cmd, ok, err := p.Next()
		if err != nil {
			return diag.Wrap(diag.Parse, err, "in %q", vmPath).In(vmPath)
		}
		if !ok {
			return nil
		}
		dispatch(cw, cmd)
	}
}

func dispatch(cw *codewriter.CodeWriter, cmd parser.Command) {
	switch cmd.Kind {
	case parser.Arithmetic:
		cw.WriteArithmetic(cmd.Op)
	case parser.Push:
		cw.WritePush(cmd.Segment, cmd.Index)
	case parser.Pop:
		cw.WritePop(cmd.Segment, cmd.Index)
	case parser.Label:
		cw.WriteLabel(cmd.Name)
	case parser.Goto:
		cw.WriteGoto(cmd.Name)
	case parser.IfGoto:
		cw.WriteIfGoto(cmd.Name)
	case parser.Function:
		cw.WriteFunction(cmd.Name, cmd.N)
	case parser.Call:
		cw.WriteCall(cmd.Name, cmd.N)
	case parser.Return:
		cw.WriteReturn()
	}
}

func flush(cw *codewriter.CodeWriter) error {
	if cw.Err() != nil {
		return diag.Wrap(diag.IO, cw.Err(), "writing assembly output")
	}
	return nil
}

// Command jackc compiles Jack source to VM code: one positional
// argument naming a `.jack` file or a directory of them. Each
// `Foo.jack` produces a sibling `Foo.vm`.
package main

import (
	"flag"
	"os"

	"github.com/gabewblee/HackSoftware/internal/diag"
	"github.com/gabewblee/HackSoftware/internal/srcfile"
	"github.com/gabewblee/HackSoftware/jack/compiler"
	"github.com/gabewblee/HackSoftware/logger"
	"github.com/gabewblee/HackSoftware/onerror"
)

func main() {
	var verbose bool
	flag.BoolVar(&verbose, "v", false, "verbose progress output")
	flag.Parse()
	logger.Toggle(verbose)

	if flag.NArg() != 1 {
		onerror.Exit(diag.New(diag.Argument, "expected exactly one input path"))
	}
	input := flag.Arg(0)

	isDir, err := srcfile.IsDir(input)
	onerror.Exit(err)

	var files []string
	if isDir {
		files, err = srcfile.WithExt(input, ".jack")
		onerror.Exit(err)
	} else {
		files = []string{input}
	}

	for _, f := range files {
		onerror.Exit(compileOne(f))
	}
}

func compileOne(jackPath string) error {
	logger.Stage("input", jackPath)

	in, err := os.Open(jackPath)
	if err != nil {
		return diag.Wrap(diag.IO, err, "opening %q", jackPath).In(jackPath)
	}
	defer in.Close()

	vmPath := srcfile.SwapExt(jackPath, ".vm")
	out, err := os.Create(vmPath)
	if err != nil {
		return diag.Wrap(diag.IO, err, "creating %q", vmPath).In(vmPath)
	}
	defer out.Close()

	if err := compiler.CompileFile(in, out); err != nil {
		return err
	}

	logger.Stage("output", vmPath)
	return nil
}

// Command vmtranslate lowers VM code to Hack assembly: one positional
// argument naming a `.vm` file or a directory of them. A single file
// produces a sibling `.asm`; a directory `Dir/` produces `Dir/Dir.asm`
// with the bootstrap prologue.
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/gabewblee/HackSoftware/internal/diag"
	"github.com/gabewblee/HackSoftware/internal/srcfile"
	"github.com/gabewblee/HackSoftware/logger"
	"github.com/gabewblee/HackSoftware/onerror"
	"github.com/gabewblee/HackSoftware/vmtranslator/translator"
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

	if isDir {
		onerror.Exit(translateDir(input))
	} else {
		onerror.Exit(translateFile(input))
	}
}

func translateFile(vmPath string) error {
	logger.Stage("input", vmPath)

	asmPath := srcfile.SwapExt(vmPath, ".asm")
	out, err := os.Create(asmPath)
	if err != nil {
		return diag.Wrap(diag.IO, err, "creating %q", asmPath).In(asmPath)
	}
	defer out.Close()

	if err := translator.File(vmPath, out); err != nil {
		return err
	}

	logger.Stage("output", asmPath)
	return nil
}

func translateDir(dir string) error {
	logger.Stage("input", dir)

	base := filepath.Base(filepath.Clean(dir))
	asmPath := filepath.Join(dir, base+".asm")
	out, err := os.Create(asmPath)
	if err != nil {
		return diag.Wrap(diag.IO, err, "creating %q", asmPath).In(asmPath)
	}
	defer out.Close()

	if err := translator.Directory(dir, out); err != nil {
		return err
	}

	logger.Stage("output", asmPath)
	return nil
}

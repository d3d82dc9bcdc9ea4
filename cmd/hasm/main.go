// Command hasm assembles Hack assembly to machine code: one positional
// argument naming a `.asm` file, producing a sibling `.hack` file of
// one 16-character binary line per instruction.
package main

import (
	"flag"
	"os"

	"github.com/gabewblee/HackSoftware/asm/assembler"
	"github.com/gabewblee/HackSoftware/internal/diag"
	"github.com/gabewblee/HackSoftware/internal/srcfile"
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
	onerror.Exit(assembleFile(flag.Arg(0)))
}

func assembleFile(asmPath string) error {
	logger.Stage("input", asmPath)

	in, err := os.Open(asmPath)
	if err != nil {
		return diag.Wrap(diag.IO, err, "opening %q", asmPath).In(asmPath)
	}
	defer in.Close()

	hackPath := srcfile.SwapExt(asmPath, ".hack")
	out, err := os.Create(hackPath)
	if err != nil {
		return diag.Wrap(diag.IO, err, "creating %q", hackPath).In(hackPath)
	}
	defer out.Close()

	if err := assembler.Assemble(in, out); err != nil {
		return err
	}

	logger.Stage("output", hackPath)
	return nil
}

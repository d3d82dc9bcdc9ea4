// Package logger provides the verbose-gated progress tracing shared by
// the three translation drivers. It does nothing unless a driver has
// turned verbose mode on via Toggle, mirroring how little each stage
// needs to say on a successful run.
package logger

import "fmt"

var verbose = false

// Toggle enables or disables verbose progress output.
func Toggle(flag bool) {
	verbose = flag
}

func Print(values ...any) {
	if !verbose {
		return
	}
	fmt.Print(values...)
}

func Printf(format string, values ...any) {
	if !verbose {
		return
	}
	fmt.Printf(format, values...)
}

func Println(values ...any) {
	if !verbose {
		return
	}
	fmt.Println(values...)
}

// Stage logs one "<verb>:\t<subject>" progress line, e.g. Stage("input", "Main.jack").
func Stage(verb string, subject string) {
	Printf("%s:\t%s\n", verb, subject)
}

// Package onerror is the fatal-on-error convention shared by the three
// cmd/ drivers: any non-nil error aborts the process with exit code 1
// after printing a diagnostic, per spec's "first error aborts" policy.
package onerror

import (
	"log"
	"os"
)

func Log(err error) {
	Logf("", err)
}

func Logf(msg string, err error) {
	if err != nil {
		log.Fatalf("\n%s%s", msg, err)
	}
}

// Exit prints err (if non-nil) to the standard logger and exits with
// status 1, the exit code spec mandates for every error kind.
func Exit(err error) {
	if err == nil {
		return
	}
	log.Print(err)
	os.Exit(1)
}

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTranslateFileWritesSiblingAsm(t *testing.T) {
	dir := t.TempDir()
	vmPath := filepath.Join(dir, "Main.vm")
	if err := os.WriteFile(vmPath, []byte("push constant 7\n"), 0o644); err != nil {
		t.Fatalf("writing source: %v", err)
	}

	if err := translateFile(vmPath); err != nil {
		t.Fatalf("translateFile: unexpected error: %v", err)
	}

	out, err := os.ReadFile(filepath.Join(dir, "Main.asm"))
	if err != nil {
		t.Fatalf("reading Main.asm: %v", err)
	}
	if strings.Contains(string(out), "Sys.init") {
		t.Error("single-file translation should not emit the bootstrap")
	}
}

func TestTranslateDirNamesOutputAfterDirectory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "MyProgram")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "Main.vm"), []byte("function Main.main 0\npush constant 1\n"), 0o644); err != nil {
		t.Fatalf("writing source: %v", err)
	}

	if err := translateDir(sub); err != nil {
		t.Fatalf("translateDir: unexpected error: %v", err)
	}

	out, err := os.ReadFile(filepath.Join(sub, "MyProgram.asm"))
	if err != nil {
		t.Fatalf("reading MyProgram.asm: %v", err)
	}
	if !strings.Contains(string(out), "Sys.init") {
		t.Error("directory-mode translation should emit the bootstrap call to Sys.init")
	}
}

// Package srcfile centralizes the file and directory discovery rules
// shared by the three translation drivers: extension filtering,
// alphabetical ordering (spec mandates this so directory-mode output is
// reproducible regardless of the OS's directory-entry order), and the
// filename-stem computation the VM translator needs for static-segment
// linkage.
package srcfile

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// WithExt lists the regular files directly inside dir whose name ends in
// ext (e.g. ".jack" or ".vm"), sorted alphabetically by name.
func WithExt(dir string, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading directory %q", dir)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ext) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

// Stem returns the base name of path with its extension removed, e.g.
// "src/Main.vm" -> "Main". This is the name the VM translator must use
// for static-segment symbols; using the raw filename (including any dot
// before the extension) is the known bug the redesign fixes.
func Stem(path string) string {
	base := filepath.Base(path)
	if dot := strings.LastIndex(base, "."); dot >= 0 {
		return base[:dot]
	}
	return base
}

// SwapExt replaces the extension of path with newExt (which should
// include the leading dot, e.g. ".vm").
func SwapExt(path string, newExt string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + newExt
}

// IsDir reports whether path names a directory.
func IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, errors.Wrapf(err, "statting %q", path)
	}
	return info.IsDir(), nil
}

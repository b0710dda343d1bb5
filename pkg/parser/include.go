package parser

import (
	"path/filepath"

	"github.com/NomisIV/sand/pkg/ast"
)

// ResolveInclude computes the canonical path of an include written as raw in
// the file from. Relative paths are taken from the directory of from. Symlinks
// are resolved when the target exists; a missing file is left for the loader
// to report.
func ResolveInclude(from, raw string) string {
	path := raw
	if !filepath.IsAbs(path) {
		base := "."
		if from != "" && from != ast.IntrinsicFile {
			base = filepath.Dir(from)
		}
		path = filepath.Join(base, raw)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	return filepath.Clean(path)
}

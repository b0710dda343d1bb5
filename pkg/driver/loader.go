package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/NomisIV/sand/pkg/ast"
	"github.com/NomisIV/sand/pkg/lexer"
	"github.com/NomisIV/sand/pkg/parser"
)

// Loader reads sand sources from disk. Includes are resolved next to the
// including file first; when nothing is there, a path whose first segment
// names an installed package resolves inside that package, and finally each
// search root is tried in order.
type Loader struct {
	roots    []string
	packages map[string]string
}

// NewLoader constructs a loader over the given search roots and package
// directories (package name to install dir).
func NewLoader(roots []string, packages map[string]string) (*Loader, error) {
	unique := make([]string, 0, len(roots))
	seen := make(map[string]struct{}, len(roots))
	for _, root := range roots {
		if strings.TrimSpace(root) == "" {
			continue
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("loader: resolve search path %q: %w", root, err)
		}
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}
		unique = append(unique, abs)
	}
	pkgs := make(map[string]string, len(packages))
	for name, dir := range packages {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("loader: resolve package %s: %w", name, err)
		}
		pkgs[sanitizeSegment(name)] = abs
	}
	return &Loader{roots: unique, packages: pkgs}, nil
}

// Roots returns the absolute search roots in lookup order.
func (l *Loader) Roots() []string {
	out := make([]string, len(l.roots))
	copy(out, l.roots)
	return out
}

// ReadFile reads an entry file and returns its absolute path with the contents.
func (l *Loader) ReadFile(path string) (string, []byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fmt.Errorf("loader: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", nil, fmt.Errorf("loader: read %s: %w", abs, err)
	}
	return abs, data, nil
}

// Tokens reads and tokenizes path.
func (l *Loader) Tokens(path string) ([]lexer.Token, error) {
	abs, data, err := l.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return lexer.Tokenize(string(data), ast.Start(abs))
}

// Parse reads and parses path.
func (l *Loader) Parse(path string) (string, ast.Statements, error) {
	abs, data, err := l.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	stmts, err := parser.ParseSource(string(data), ast.Start(abs))
	if err != nil {
		return "", nil, err
	}
	return abs, stmts, nil
}

// ReadInclude satisfies interpreter.SourceReader.
func (l *Loader) ReadInclude(inc *ast.Include) (string, []byte, error) {
	candidates := l.candidates(inc)
	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if err == nil {
			return canonical(candidate), data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", nil, fmt.Errorf("loader: read %s: %w", candidate, err)
		}
	}
	return "", nil, fmt.Errorf("loader: %s not found (searched %s): %w",
		inc.Raw, strings.Join(candidates, ", "), fs.ErrNotExist)
}

func (l *Loader) candidates(inc *ast.Include) []string {
	out := []string{inc.Path}
	if filepath.IsAbs(inc.Raw) {
		return out
	}
	rel := filepath.Clean(filepath.FromSlash(inc.Raw))
	if head, rest, ok := strings.Cut(filepath.ToSlash(rel), "/"); ok {
		if dir, found := l.packages[sanitizeSegment(head)]; found {
			out = append(out, filepath.Join(dir, filepath.FromSlash(rest)))
		}
	}
	for _, root := range l.roots {
		out = append(out, filepath.Join(root, rel))
	}
	return out
}

func canonical(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	return path
}

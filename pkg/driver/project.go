package driver

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/NomisIV/sand/pkg/ast"
	"github.com/NomisIV/sand/pkg/interpreter"
	"github.com/NomisIV/sand/pkg/intrinsics"
	"github.com/NomisIV/sand/pkg/parser"
)

// Project is the context an entry file runs in: the nearest manifest and its
// lockfile, if any, plus the environment configuration.
type Project struct {
	Manifest *Manifest
	Lock     *Lockfile
	Config   Config
}

// OpenProject locates the manifest governing entry. Files outside any
// project get a Project with a nil Manifest.
func OpenProject(entry string, cfg Config) (*Project, error) {
	project := &Project{Config: cfg}
	manifestPath, err := FindManifest(entry)
	if err != nil {
		return nil, err
	}
	if manifestPath == "" {
		return project, nil
	}
	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	project.Manifest = manifest
	lock, err := LoadLockfile(project.LockPath())
	switch {
	case err == nil:
		project.Lock = lock
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}
	return project, nil
}

// LockPath is the lockfile location, next to the manifest.
func (p *Project) LockPath() string {
	if p.Manifest == nil {
		return ""
	}
	return filepath.Join(p.Manifest.Dir(), LockFileName)
}

// Loader builds a loader whose roots are the manifest include paths followed
// by SAND_PATH, and whose packages are the locked installs plus local path
// dependencies.
func (p *Project) Loader() (*Loader, error) {
	var roots []string
	packages := make(map[string]string)
	if p.Manifest != nil {
		roots = append(roots, p.Manifest.IncludeRoots()...)
		for _, name := range p.Manifest.DependencyNames() {
			if dep := p.Manifest.Dependencies[name]; dep != nil && dep.Path != "" {
				packages[name] = p.Manifest.resolve(dep.Path)
			}
		}
	}
	for name, dir := range p.Lock.PackageDirs() {
		if _, local := packages[name]; !local {
			packages[name] = dir
		}
	}
	roots = append(roots, p.Config.SearchPaths...)
	return NewLoader(roots, packages)
}

// MaxDepth prefers SAND_MAX_DEPTH over the manifest; zero selects the
// interpreter default.
func (p *Project) MaxDepth() int {
	if p.Config.MaxDepth > 0 {
		return p.Config.MaxDepth
	}
	if p.Manifest != nil {
		return p.Manifest.MaxDepth
	}
	return 0
}

// Session is an interpreter with its seeded top-level scope. The REPL keeps
// one alive across inputs.
type Session struct {
	Interp *interpreter.Interpreter
	Scope  *ast.Scope
	Loader *Loader
}

// NewSession prepares an interpreter writing to stdout and stderr.
func (p *Project) NewSession(stdout, stderr io.Writer) (*Session, error) {
	loader, err := p.Loader()
	if err != nil {
		return nil, err
	}
	interp := interpreter.New(interpreter.Options{
		Stdout:   stdout,
		Stderr:   stderr,
		Reader:   loader,
		MaxDepth: p.MaxDepth(),
	})
	return &Session{Interp: interp, Scope: intrinsics.Scope(interp), Loader: loader}, nil
}

// Eval parses src as if it were the file named file and runs it in the
// session scope.
func (s *Session) Eval(src, file string) (ast.Literal, error) {
	stmts, err := parser.ParseSource(src, ast.Start(file))
	if err != nil {
		return nil, err
	}
	return s.Interp.Run(stmts, s.Scope)
}

// Run executes path and then its main function, returning main's exit code.
func (p *Project) Run(path string, args []string, stdout, stderr io.Writer) (int, error) {
	session, err := p.NewSession(stdout, stderr)
	if err != nil {
		return 1, err
	}
	abs, stmts, err := session.Loader.Parse(path)
	if err != nil {
		return 1, err
	}
	if _, err := session.Interp.RunFile(abs, stmts, session.Scope); err != nil {
		return 1, err
	}
	code, err := session.Interp.RunMain(session.Scope, args, ast.Start(abs))
	if err != nil {
		return 1, err
	}
	return code, nil
}

// RunFile opens the project around path and runs it.
func RunFile(path string, args []string, cfg Config, stdout, stderr io.Writer) (int, error) {
	project, err := OpenProject(path, cfg)
	if err != nil {
		return 1, fmt.Errorf("run %s: %w", path, err)
	}
	return project.Run(path, args, stdout, stderr)
}

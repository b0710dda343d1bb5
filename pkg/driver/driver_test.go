package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/NomisIV/sand/pkg/ast"
	"github.com/NomisIV/sand/pkg/interpreter"
	"github.com/NomisIV/sand/pkg/parser"
)

func writeFile(t *testing.T, path, contents string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	return writeFile(t, filepath.Join(t.TempDir(), ManifestFileName), contents)
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `
name: hello-world
version: "0.1.0"
main: src/main.sand
include_paths:
  - lib
max_depth: 500
dependencies:
  utils:
    git: https://example.com/utils.git
    tag: v1.0.0
  local:
    path: ../local
`)
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	if got, want := manifest.Name, "hello_world"; got != want {
		t.Fatalf("Name = %q, want %q", got, want)
	}
	if manifest.Version != "0.1.0" || manifest.MaxDepth != 500 {
		t.Fatalf("unexpected manifest %#v", manifest)
	}
	dir := filepath.Dir(path)
	if got, want := manifest.MainPath(), filepath.Join(dir, "src", "main.sand"); got != want {
		t.Fatalf("MainPath = %q, want %q", got, want)
	}
	if diff := cmp.Diff([]string{filepath.Join(dir, "lib")}, manifest.IncludeRoots()); diff != "" {
		t.Fatalf("IncludeRoots mismatch (-want +got):\n%s", diff)
	}
	utils := manifest.Dependencies["utils"]
	if utils == nil || utils.Git == "" || utils.Revision() != "v1.0.0" {
		t.Fatalf("git dependency not parsed: %#v", utils)
	}
	if manifest.Dependencies["local"].Path != "../local" {
		t.Fatalf("path dependency missing: %#v", manifest.Dependencies["local"])
	}
	if diff := cmp.Diff([]string{"local", "utils"}, manifest.DependencyNames()); diff != "" {
		t.Fatalf("DependencyNames mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadManifestValidation(t *testing.T) {
	path := writeManifest(t, `
name: ""
max_depth: -1
dependencies:
  empty: {}
  both:
    git: https://example.com/x.git
    path: ../x
  pinned:
    git: https://example.com/y.git
    rev: abc
    branch: main
`)
	_, err := LoadManifest(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{
		"name must be provided",
		"max_depth must not be negative",
		"dependencies.both: git and path are mutually exclusive",
		"dependencies.empty: must specify git or path",
		"dependencies.pinned: specify at most one of rev, tag or branch",
	}
	if diff := cmp.Diff(want, verr.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	path := writeManifest(t, "name: x\nmystery: 1\n")
	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestFindManifest(t *testing.T) {
	path := writeManifest(t, "name: proj")
	entry := writeFile(t, filepath.Join(filepath.Dir(path), "src", "deep", "main.sand"), "let main = () { 0 }")
	found, err := FindManifest(entry)
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if found != path {
		t.Fatalf("FindManifest = %q, want %q", found, path)
	}
}

func TestLockfileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), LockFileName)
	lock := NewLockfile("demo", "sand test")
	lock.Put(&LockedPackage{Name: "zeta", Source: "path:../zeta", Dir: "/tmp/zeta"})
	lock.Put(&LockedPackage{Name: "alpha", Source: "git:https://example.com/a.git", Revision: "deadbeef", Checksum: "sha256:00", Dir: "/tmp/alpha"})
	lock.Put(&LockedPackage{Name: "alpha", Source: "git:https://example.com/a.git", Revision: "cafef00d", Dir: "/tmp/alpha2"})
	if err := WriteLockfile(lock, path); err != nil {
		t.Fatalf("WriteLockfile: %v", err)
	}
	loaded, err := LoadLockfile(path)
	if err != nil {
		t.Fatalf("LoadLockfile: %v", err)
	}
	if diff := cmp.Diff(lock.Packages, loaded.Packages); diff != "" {
		t.Fatalf("packages mismatch (-want +got):\n%s", diff)
	}
	if loaded.Packages[0].Name != "alpha" || loaded.Packages[0].Revision != "cafef00d" {
		t.Fatalf("expected sorted, replaced entries, got %#v", loaded.Packages[0])
	}
	if diff := cmp.Diff(map[string]string{"alpha": "/tmp/alpha2", "zeta": "/tmp/zeta"}, loaded.PackageDirs()); diff != "" {
		t.Fatalf("PackageDirs mismatch (-want +got):\n%s", diff)
	}
}

func TestLoaderIncludeFallback(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "roots", "std")
	pkg := filepath.Join(dir, "pkgs", "mathx")
	writeFile(t, filepath.Join(root, "strings.sand"), `let from_root = True`)
	writeFile(t, filepath.Join(pkg, "ops.sand"), `let from_pkg = True`)
	writeFile(t, filepath.Join(dir, "app", "local.sand"), `let from_local = True`)

	loader, err := NewLoader([]string{root, root, ""}, map[string]string{"mathx": pkg})
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	if len(loader.Roots()) != 1 {
		t.Fatalf("expected deduplicated roots, got %v", loader.Roots())
	}

	from := filepath.Join(dir, "app", "main.sand")
	cases := map[string]string{
		"local.sand":     "from_local",
		"strings.sand":   "from_root",
		"mathx/ops.sand": "from_pkg",
	}
	for raw, binding := range cases {
		inc := &ast.Include{Path: parser.ResolveInclude(from, raw), Raw: raw}
		path, data, err := loader.ReadInclude(inc)
		if err != nil {
			t.Fatalf("ReadInclude %q: %v", raw, err)
		}
		if !strings.Contains(string(data), binding) || !filepath.IsAbs(path) {
			t.Fatalf("ReadInclude %q read %s: %q", raw, path, data)
		}
	}

	_, _, err = loader.ReadInclude(&ast.Include{Path: parser.ResolveInclude(from, "nope.sand"), Raw: "nope.sand"})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ManifestFileName), `
name: app
include_paths: [lib]
`)
	writeFile(t, filepath.Join(dir, "lib", "util.sand"), `let twice = (n) { n.mul(2) }`)
	entry := writeFile(t, filepath.Join(dir, "main.sand"), `
include "util.sand";
let main = (args) {
  Main.write(Main.STDOUT, "args: ".concat(args.len()));
  twice(args.len())
}
`)
	var stdout, stderr bytes.Buffer
	code, err := RunFile(entry, []string{"a", "b", "c"}, Config{}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if code != 6 {
		t.Fatalf("exit code = %d, want 6", code)
	}
	if stdout.String() != "args: 3\n" {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
}

func TestRunFileErrors(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, filepath.Join(dir, "main.sand"), `let main = () { missing }`)
	_, err := RunFile(entry, nil, Config{}, &bytes.Buffer{}, &bytes.Buffer{})
	if !interpreter.IsKind(err, interpreter.NotInScope) {
		t.Fatalf("expected NotInScope, got %v", err)
	}
	abs, _ := filepath.Abs(entry)
	want := fmt.Sprintf("%s:1:17: InterpretingError: missing is not in scope", abs)
	if got := Describe(err, false); got != want {
		t.Fatalf("Describe = %q, want %q", got, want)
	}

	deep := writeFile(t, filepath.Join(dir, "deep.sand"), `let f = () { f() }; let main = () { f() }`)
	_, err = RunFile(deep, nil, Config{MaxDepth: 20}, &bytes.Buffer{}, &bytes.Buffer{})
	if !interpreter.IsKind(err, interpreter.DepthExceeded) {
		t.Fatalf("expected DepthExceeded, got %v", err)
	}

	_, err = RunFile(filepath.Join(dir, "absent.sand"), nil, Config{}, &bytes.Buffer{}, &bytes.Buffer{})
	if err == nil || IsStageError(err) {
		t.Fatalf("expected an I/O error, got %v", err)
	}
	if !strings.HasPrefix(Describe(err, false), "error: ") {
		t.Fatalf("unexpected description %q", Describe(err, false))
	}
}

func TestDescribeColor(t *testing.T) {
	err := &interpreter.Error{Kind: interpreter.NotInScope, Pos: ast.Pos("a.sand", 2, 3), Msg: "x is not in scope"}
	got := Describe(err, true)
	want := ansiGrey + "a.sand:2:3" + ansiReset + ": " + ansiBold + ansiRed + "InterpretingError" + ansiReset + ": x is not in scope"
	if got != want {
		t.Fatalf("Describe = %q, want %q", got, want)
	}
}

func TestSessionKeepsScope(t *testing.T) {
	project := &Project{}
	var stdout bytes.Buffer
	session, err := project.NewSession(&stdout, &stdout)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if _, err := session.Eval("let x = 41", "<repl>"); err != nil {
		t.Fatalf("eval: %v", err)
	}
	got, err := session.Eval("x.add(1)", "<repl>")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !ast.Equal(ast.Num(42), got) {
		t.Fatalf("unexpected result %s", ast.Inspect(got))
	}
}

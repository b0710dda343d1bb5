package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/NomisIV/sand/pkg/driver"
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

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}

func TestRunExitCodes(t *testing.T) {
	t.Setenv(driver.EnvHome, t.TempDir())
	t.Setenv(driver.EnvNoColor, "1")
	dir := t.TempDir()
	ok := writeFile(t, filepath.Join(dir, "ok.sand"), `let main = () { 0 }`)
	three := writeFile(t, filepath.Join(dir, "three.sand"), `let main = (args) { args.len() }`)
	broken := writeFile(t, filepath.Join(dir, "broken.sand"), `let main = () { "zero" }`)

	cases := []struct {
		name string
		args []string
		want int
	}{
		{"version", []string{"version"}, 0},
		{"bare file", []string{ok}, 0},
		{"run with args", []string{"run", three, "a", "b", "c"}, 3},
		{"depth flag", []string{"run", "-max-depth", "50", ok}, 0},
		{"non-integer exit", []string{broken}, 1},
		{"missing file", []string{filepath.Join(dir, "absent.sand")}, 1},
		{"tokens", []string{"tokens", ok}, 0},
		{"ast", []string{"ast", ok}, 0},
		{"tokens too many files", []string{"tokens", ok, three}, 1},
		{"unknown deps subcommand", []string{"deps", "frobnicate"}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := run(tc.args); got != tc.want {
				t.Fatalf("run(%v) = %d, want %d", tc.args, got, tc.want)
			}
		})
	}
}

func TestRunFallsBackToManifestMain(t *testing.T) {
	t.Setenv(driver.EnvHome, t.TempDir())
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, driver.ManifestFileName), "name: app\nmain: src/app.sand\n")
	writeFile(t, filepath.Join(dir, "src", "app.sand"), `let main = () { 4 }`)
	chdir(t, dir)
	if got := run([]string{"run"}); got != 4 {
		t.Fatalf("run = %d, want 4", got)
	}
}

func TestDependencyInstallerPathDependency(t *testing.T) {
	root := t.TempDir()
	appDir := filepath.Join(root, "app")
	writeFile(t, filepath.Join(appDir, driver.ManifestFileName), `
name: app
dependencies:
  shapes:
    path: ../shapes
`)
	writeFile(t, filepath.Join(root, "shapes", "square.sand"), `let square = (n) { n.mul(n) }`)

	manifest, err := driver.LoadManifest(filepath.Join(appDir, driver.ManifestFileName))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	installer := newDependencyInstaller(manifest, driver.Config{Home: filepath.Join(root, ".sand")})
	lock, logs, err := installer.Install(nil)
	if err != nil {
		t.Fatalf("Install returned error: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected one log line, got %v", logs)
	}
	pkg, ok := lock.Find("shapes")
	if !ok {
		t.Fatalf("missing shapes entry: %#v", lock.Packages)
	}
	if pkg.Source != "path:../shapes" || !strings.HasPrefix(pkg.Checksum, "sha256:") {
		t.Fatalf("unexpected locked package %#v", pkg)
	}
	if pkg.Dir != filepath.Join(root, "shapes") {
		t.Fatalf("Dir = %q", pkg.Dir)
	}

	writeFile(t, filepath.Join(appDir, "main.sand"), `
include "shapes/square.sand";
let main = () { square(3).sub(9) }
`)
	if err := driver.WriteLockfile(lock, filepath.Join(appDir, driver.LockFileName)); err != nil {
		t.Fatalf("WriteLockfile: %v", err)
	}
	t.Setenv(driver.EnvHome, filepath.Join(root, ".sand"))
	if got := run([]string{filepath.Join(appDir, "main.sand")}); got != 0 {
		t.Fatalf("run = %d, want 0", got)
	}
}

func TestDependencyInstallerMissingPath(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, filepath.Join(root, driver.ManifestFileName), `
name: app
dependencies:
  ghost:
    path: ./ghost
`)
	manifest, err := driver.LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	_, _, err = newDependencyInstaller(manifest, driver.Config{Home: root}).Install(nil)
	if err == nil || !strings.Contains(err.Error(), "dependency ghost") {
		t.Fatalf("expected ghost failure, got %v", err)
	}
}

func TestDirChecksumTracksContents(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.sand"), "let a = 1")
	first, err := dirChecksum(dir)
	if err != nil {
		t.Fatalf("dirChecksum: %v", err)
	}
	again, _ := dirChecksum(dir)
	if first != again {
		t.Fatalf("checksum not stable: %s vs %s", first, again)
	}
	writeFile(t, filepath.Join(dir, "a.sand"), "let a = 2")
	changed, _ := dirChecksum(dir)
	if changed == first {
		t.Fatalf("checksum did not change after edit")
	}
}

func TestGitRevision(t *testing.T) {
	cases := []struct {
		spec driver.DependencySpec
		want plumbing.Revision
	}{
		{driver.DependencySpec{Git: "u", Rev: "abc123"}, "abc123"},
		{driver.DependencySpec{Git: "u", Tag: "v1.0.0"}, "refs/tags/v1.0.0"},
		{driver.DependencySpec{Git: "u", Branch: "main"}, "refs/remotes/origin/main"},
		{driver.DependencySpec{Git: "u"}, "HEAD"},
	}
	for _, tc := range cases {
		spec := tc.spec
		if got := gitRevision(&spec); got != tc.want {
			t.Fatalf("gitRevision(%+v) = %q, want %q", tc.spec, got, tc.want)
		}
	}
	if got := gitSource(&driver.DependencySpec{Git: " https://x/y.git ", Tag: "v2"}); got != "git:https://x/y.git#v2" {
		t.Fatalf("gitSource = %q", got)
	}
}

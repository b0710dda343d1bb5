package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/NomisIV/sand/pkg/driver"
)

// dependencyInstaller resolves the manifest's dependencies into a fresh
// lockfile. Entries already locked are reused while their install directory
// is intact and their source is unchanged.
type dependencyInstaller struct {
	manifest *driver.Manifest
	git      *gitFetcher
}

func newDependencyInstaller(manifest *driver.Manifest, cfg driver.Config) *dependencyInstaller {
	return &dependencyInstaller{manifest: manifest, git: newGitFetcher(cfg)}
}

func (i *dependencyInstaller) Install(previous *driver.Lockfile) (*driver.Lockfile, []string, error) {
	lock := driver.NewLockfile(i.manifest.Name, cliToolVersion)
	var logs []string
	for _, name := range i.manifest.DependencyNames() {
		spec := i.manifest.Dependencies[name]
		var (
			pkg *driver.LockedPackage
			msg string
			err error
		)
		switch {
		case spec.Path != "":
			pkg, msg, err = i.installPath(name, spec)
		case previous != nil && i.reusable(previous, name, spec):
			pkg, _ = previous.Find(name)
			msg = fmt.Sprintf("%s: using locked %s", name, shortHash(pkg.Revision))
		default:
			pkg, msg, err = i.git.Fetch(name, spec)
		}
		if err != nil {
			return nil, logs, fmt.Errorf("dependency %s: %w", name, err)
		}
		lock.Put(pkg)
		logs = append(logs, msg)
	}
	return lock, logs, nil
}

func (i *dependencyInstaller) reusable(previous *driver.Lockfile, name string, spec *driver.DependencySpec) bool {
	locked, ok := previous.Find(name)
	if !ok || locked.Source != gitSource(spec) || locked.Revision == "" {
		return false
	}
	if spec.Rev != "" && !strings.HasPrefix(locked.Revision, spec.Rev) {
		return false
	}
	info, err := os.Stat(locked.Dir)
	return err == nil && info.IsDir()
}

func (i *dependencyInstaller) installPath(name string, spec *driver.DependencySpec) (*driver.LockedPackage, string, error) {
	dir := spec.Path
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(i.manifest.Dir(), dir)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, "", err
	}
	if !info.IsDir() {
		return nil, "", fmt.Errorf("%s is not a directory", dir)
	}
	sum, err := dirChecksum(dir)
	if err != nil {
		return nil, "", err
	}
	pkg := &driver.LockedPackage{
		Name:     name,
		Source:   "path:" + spec.Path,
		Checksum: "sha256:" + sum,
		Dir:      dir,
	}
	return pkg, fmt.Sprintf("%s: linked %s", name, dir), nil
}

func dirChecksum(path string) (string, error) {
	h := sha256.New()
	err := filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(path, p)
		if err != nil {
			return err
		}
		h.Write([]byte(filepath.ToSlash(rel)))
		h.Write(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

type gitFetcher struct {
	cfg driver.Config
}

func newGitFetcher(cfg driver.Config) *gitFetcher {
	if cfg.Home == "" {
		return nil
	}
	return &gitFetcher{cfg: cfg}
}

func (g *gitFetcher) Fetch(name string, spec *driver.DependencySpec) (*driver.LockedPackage, string, error) {
	if g == nil {
		return nil, "", errors.New("git fetcher unavailable (SAND_HOME not set)")
	}
	url := strings.TrimSpace(spec.Git)
	if url == "" {
		return nil, "", errors.New("git URL required")
	}
	dir, commit, fresh, err := g.ensureCheckout(name, url, gitRevision(spec))
	if err != nil {
		return nil, "", err
	}
	sum, err := dirChecksum(dir)
	if err != nil {
		return nil, "", err
	}
	pkg := &driver.LockedPackage{
		Name:     name,
		Source:   gitSource(spec),
		Revision: commit,
		Checksum: "sha256:" + sum,
		Dir:      dir,
	}
	verb := "cached"
	if fresh {
		verb = "fetched"
	}
	return pkg, fmt.Sprintf("%s: %s %s@%s", name, verb, url, shortHash(commit)), nil
}

// ensureCheckout clones url into a scratch directory under the package cache,
// resolves revision and moves the checkout to its commit-addressed home.
func (g *gitFetcher) ensureCheckout(name, url string, revision plumbing.Revision) (string, string, bool, error) {
	baseDir := filepath.Dir(g.cfg.PackageDir(name, "x"))
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", false, err
	}
	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return "", "", false, err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", "", false, err
	}

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{
		URL:               url,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
	})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", false, fmt.Errorf("git clone %s: %w", url, err)
	}

	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", false, fmt.Errorf("resolve revision %s: %w", revision, err)
	}

	commit := hash.String()
	targetDir := g.cfg.PackageDir(name, commit)
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return targetDir, commit, false, nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", false, err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", false, fmt.Errorf("git checkout %s: %w", revision, err)
	}
	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", false, err
	}
	return targetDir, commit, true, nil
}

// gitRevision maps the manifest pin onto a revision go-git can resolve in a
// fresh clone. Branches only exist as remote-tracking refs there.
func gitRevision(spec *driver.DependencySpec) plumbing.Revision {
	switch {
	case strings.TrimSpace(spec.Rev) != "":
		return plumbing.Revision(strings.TrimSpace(spec.Rev))
	case strings.TrimSpace(spec.Tag) != "":
		return plumbing.Revision("refs/tags/" + strings.TrimSpace(spec.Tag))
	case strings.TrimSpace(spec.Branch) != "":
		return plumbing.Revision("refs/remotes/origin/" + strings.TrimSpace(spec.Branch))
	default:
		return plumbing.Revision(plumbing.HEAD)
	}
}

func gitSource(spec *driver.DependencySpec) string {
	return "git:" + strings.TrimSpace(spec.Git) + "#" + spec.Revision()
}

func shortHash(commit string) string {
	if len(commit) > 12 {
		return commit[:12]
	}
	return commit
}

package driver

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LockFileName sits next to sand.yml and pins every resolved dependency.
const LockFileName = "sand.lock"

// Lockfile models the sand.lock contents. Path is where it was read from and
// is not serialised.
type Lockfile struct {
	Path      string           `yaml:"-"`
	Root      string           `yaml:"root"`
	Generated string           `yaml:"generated"`
	Tool      string           `yaml:"tool"`
	Packages  []*LockedPackage `yaml:"packages"`
}

// LockedPackage is one resolved dependency. Dir is where its sources were
// installed; includes prefixed with Name resolve inside it.
type LockedPackage struct {
	Name     string `yaml:"name"`
	Source   string `yaml:"source"`
	Revision string `yaml:"revision,omitempty"`
	Checksum string `yaml:"checksum,omitempty"`
	Dir      string `yaml:"dir"`
}

// NewLockfile starts an empty lockfile for the named root package.
func NewLockfile(root, tool string) *Lockfile {
	return &Lockfile{
		Root:      sanitizeSegment(root),
		Generated: time.Now().UTC().Format(time.RFC3339),
		Tool:      strings.TrimSpace(tool),
		Packages:  []*LockedPackage{},
	}
}

// LoadLockfile parses sand.lock from disk. A missing file surfaces as an
// fs.ErrNotExist error.
func LoadLockfile(path string) (*Lockfile, error) {
	if path == "" {
		return nil, fmt.Errorf("lockfile: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("lockfile: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	lock := &Lockfile{}
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(lock); err != nil {
		return nil, fmt.Errorf("lockfile: parse %s: %w", abs, err)
	}
	lock.Path = abs
	lock.normalize()
	return lock, nil
}

// WriteLockfile serialises lock to path, or to lock.Path when path is empty.
func WriteLockfile(lock *Lockfile, path string) error {
	if lock == nil {
		return fmt.Errorf("lockfile: nil lockfile")
	}
	if path == "" {
		path = lock.Path
	}
	if path == "" {
		return fmt.Errorf("lockfile: missing path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("lockfile: resolve %s: %w", path, err)
	}
	if lock.Generated == "" {
		lock.Generated = time.Now().UTC().Format(time.RFC3339)
	}
	lock.Path = abs
	lock.normalize()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(lock); err != nil {
		return fmt.Errorf("lockfile: marshal %s: %w", abs, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("lockfile: encoder close: %w", err)
	}
	if err := os.WriteFile(abs, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("lockfile: write %s: %w", abs, err)
	}
	return nil
}

// Find returns the locked entry for name.
func (l *Lockfile) Find(name string) (*LockedPackage, bool) {
	if l == nil {
		return nil, false
	}
	name = sanitizeSegment(name)
	for _, pkg := range l.Packages {
		if pkg.Name == name {
			return pkg, true
		}
	}
	return nil, false
}

// Put adds pkg, replacing any entry with the same name.
func (l *Lockfile) Put(pkg *LockedPackage) {
	for idx, existing := range l.Packages {
		if existing.Name == pkg.Name {
			l.Packages[idx] = pkg
			return
		}
	}
	l.Packages = append(l.Packages, pkg)
}

// PackageDirs maps each locked package name to its install directory.
func (l *Lockfile) PackageDirs() map[string]string {
	dirs := make(map[string]string)
	if l == nil {
		return dirs
	}
	for _, pkg := range l.Packages {
		if pkg.Dir != "" {
			dirs[pkg.Name] = pkg.Dir
		}
	}
	return dirs
}

// normalize trims every field, drops null entries and sorts by name so the
// file diffs cleanly between installs.
func (l *Lockfile) normalize() {
	l.Root = sanitizeSegment(l.Root)
	l.Generated = strings.TrimSpace(l.Generated)
	l.Tool = strings.TrimSpace(l.Tool)
	kept := l.Packages[:0]
	for _, pkg := range l.Packages {
		if pkg == nil {
			continue
		}
		pkg.Name = sanitizeSegment(pkg.Name)
		pkg.Source = strings.TrimSpace(pkg.Source)
		pkg.Revision = strings.TrimSpace(pkg.Revision)
		pkg.Checksum = strings.TrimSpace(pkg.Checksum)
		pkg.Dir = strings.TrimSpace(pkg.Dir)
		kept = append(kept, pkg)
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Name < kept[j].Name })
	if kept == nil {
		kept = []*LockedPackage{}
	}
	l.Packages = kept
}

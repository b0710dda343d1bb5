package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the project manifest looked up next to the entry file
// and in its parent directories.
const ManifestFileName = "sand.yml"

// Manifest represents the parsed contents of sand.yml.
type Manifest struct {
	Path         string
	Name         string
	Version      string
	Main         string
	IncludePaths []string
	MaxDepth     int
	Dependencies map[string]*DependencySpec
}

// DependencySpec describes where a dependency comes from: a git remote pinned
// by at most one of rev, tag or branch, or a local path.
type DependencySpec struct {
	Git    string
	Rev    string
	Tag    string
	Branch string
	Path   string
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses sand.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// FindManifest walks up from start looking for sand.yml. It returns an empty
// path and no error when none exists.
func FindManifest(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", start, err)
	}
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}
	for dir := abs; ; dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, ManifestFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		if parent := filepath.Dir(dir); parent == dir {
			return "", nil
		}
	}
}

// Dir is the directory holding the manifest; relative paths in it are taken
// from here.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// MainPath resolves the manifest's entry file, or "" when none is declared.
func (m *Manifest) MainPath() string {
	if m == nil || m.Main == "" {
		return ""
	}
	return m.resolve(m.Main)
}

// IncludeRoots resolves include_paths against the manifest directory.
func (m *Manifest) IncludeRoots() []string {
	if m == nil {
		return nil
	}
	roots := make([]string, 0, len(m.IncludePaths))
	for _, p := range m.IncludePaths {
		roots = append(roots, m.resolve(p))
	}
	return roots
}

// DependencyNames lists the declared dependencies in sorted order.
func (m *Manifest) DependencyNames() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Manifest) resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(m.Dir(), p)
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.MaxDepth < 0 {
		errs.Issues = append(errs.Issues, "max_depth must not be negative")
	}
	for i, p := range m.IncludePaths {
		if p == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("include_paths[%d] must be a non-empty string", i))
		}
	}
	for _, name := range m.DependencyNames() {
		dep := m.Dependencies[name]
		if dep == nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("dependencies.%s: must specify git or path", name))
			continue
		}
		for _, issue := range dep.validate() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("dependencies.%s: %s", name, issue))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func (d *DependencySpec) validate() []string {
	var errs []string
	if d.Git == "" && d.Path == "" {
		errs = append(errs, "must specify git or path")
	}
	if d.Git != "" && d.Path != "" {
		errs = append(errs, "git and path are mutually exclusive")
	}
	pins := 0
	for _, pin := range []string{d.Rev, d.Tag, d.Branch} {
		if pin != "" {
			pins++
		}
	}
	if pins > 1 {
		errs = append(errs, "specify at most one of rev, tag or branch")
	}
	if pins > 0 && d.Git == "" {
		errs = append(errs, "rev, tag and branch apply only to git dependencies")
	}
	return errs
}

// Revision is the git revision to check out, "HEAD" when unpinned.
func (d *DependencySpec) Revision() string {
	switch {
	case d.Rev != "":
		return d.Rev
	case d.Tag != "":
		return d.Tag
	case d.Branch != "":
		return d.Branch
	default:
		return "HEAD"
	}
}

type manifestFile struct {
	Name         string                    `yaml:"name"`
	Version      string                    `yaml:"version"`
	Main         string                    `yaml:"main"`
	IncludePaths []string                  `yaml:"include_paths"`
	MaxDepth     int                       `yaml:"max_depth"`
	Dependencies map[string]*dependencyYAML `yaml:"dependencies"`
}

type dependencyYAML struct {
	Git    string `yaml:"git"`
	Rev    string `yaml:"rev"`
	Tag    string `yaml:"tag"`
	Branch string `yaml:"branch"`
	Path   string `yaml:"path"`
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path:         path,
		Name:         sanitizeSegment(mf.Name),
		Version:      strings.TrimSpace(mf.Version),
		Main:         strings.TrimSpace(mf.Main),
		MaxDepth:     mf.MaxDepth,
		IncludePaths: make([]string, 0, len(mf.IncludePaths)),
		Dependencies: make(map[string]*DependencySpec, len(mf.Dependencies)),
	}
	for _, p := range mf.IncludePaths {
		result.IncludePaths = append(result.IncludePaths, strings.TrimSpace(p))
	}
	for name, dep := range mf.Dependencies {
		key := sanitizeSegment(name)
		if dep == nil {
			result.Dependencies[key] = nil
			continue
		}
		result.Dependencies[key] = &DependencySpec{
			Git:    strings.TrimSpace(dep.Git),
			Rev:    strings.TrimSpace(dep.Rev),
			Tag:    strings.TrimSpace(dep.Tag),
			Branch: strings.TrimSpace(dep.Branch),
			Path:   strings.TrimSpace(dep.Path),
		}
	}
	return result
}

func sanitizeSegment(seg string) string {
	seg = strings.TrimSpace(seg)
	seg = strings.ReplaceAll(seg, "-", "_")
	return seg
}

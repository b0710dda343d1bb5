package driver

import (
	"path/filepath"
	"strings"

	"github.com/xyproto/env/v2"
)

// Environment variables consulted by Environment.
const (
	EnvHome     = "SAND_HOME"
	EnvPath     = "SAND_PATH"
	EnvMaxDepth = "SAND_MAX_DEPTH"
	EnvNoColor  = "NO_COLOR"
)

// Config is the process-level configuration read from the environment.
type Config struct {
	// Home is the cache root; git dependencies are installed under Home/pkg.
	Home        string
	SearchPaths []string
	MaxDepth    int
	NoColor     bool
}

// Environment reads Config from the process environment.
func Environment() Config {
	home := env.Str(EnvHome)
	if home == "" {
		home = filepath.Join(env.HomeDir(), ".sand")
	}
	var paths []string
	for _, p := range filepath.SplitList(env.Str(EnvPath)) {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return Config{
		Home:        home,
		SearchPaths: paths,
		MaxDepth:    env.Int(EnvMaxDepth, 0),
		NoColor:     env.Has(EnvNoColor),
	}
}

// PackageDir is where a git dependency is installed.
func (c Config) PackageDir(name, revision string) string {
	return filepath.Join(c.Home, "pkg", sanitizePathSegment(name), sanitizePathSegment(revision))
}

func sanitizePathSegment(seg string) string {
	seg = strings.TrimSpace(seg)
	if seg == "" {
		return "_"
	}
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return replacer.Replace(seg)
}

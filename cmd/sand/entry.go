package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/NomisIV/sand/pkg/ast"
	"github.com/NomisIV/sand/pkg/driver"
	"github.com/NomisIV/sand/pkg/lexer"
)

var errNoEntry = errors.New("no entry file given and no main declared in sand.yml")

// runFlags parses the options shared by the file-taking subcommands. Parsing
// stops at the first positional argument so script arguments pass through.
func runFlags(name string, args []string, cfg *driver.Config) ([]string, bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.IntVar(&cfg.MaxDepth, "max-depth", cfg.MaxDepth, "call depth limit (overrides sand.yml)")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable coloured diagnostics")
	if err := fs.Parse(args); err != nil {
		return nil, false
	}
	return fs.Args(), true
}

// resolveEntry picks the file named on the command line, falling back to the
// main file of the manifest above the working directory.
func resolveEntry(args []string) (string, []string, error) {
	if len(args) > 0 {
		return args[0], args[1:], nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", nil, fmt.Errorf("determine working directory: %w", err)
	}
	manifestPath, err := driver.FindManifest(cwd)
	if err != nil {
		return "", nil, err
	}
	if manifestPath == "" {
		return "", nil, errNoEntry
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		return "", nil, err
	}
	if manifest.MainPath() == "" {
		return "", nil, errNoEntry
	}
	return manifest.MainPath(), nil, nil
}

func report(err error, cfg driver.Config) {
	fmt.Fprintln(os.Stderr, driver.Describe(err, driver.UseColor(os.Stderr, cfg)))
}

func runEntry(args []string) int {
	cfg := driver.Environment()
	rest, ok := runFlags("sand run", args, &cfg)
	if !ok {
		return 2
	}
	entry, scriptArgs, err := resolveEntry(rest)
	if err != nil {
		if errors.Is(err, errNoEntry) {
			printUsage()
		}
		report(err, cfg)
		return 1
	}
	code, err := driver.RunFile(entry, scriptArgs, cfg, os.Stdout, os.Stderr)
	if err != nil {
		report(err, cfg)
		return 1
	}
	if code != 0 {
		fmt.Fprintf(os.Stderr, "%s exited with code %d\n", entry, code)
	}
	return code
}

func runTokens(args []string) int {
	return inspectEntry("sand tokens", args, func(w io.Writer, loader *driver.Loader, path string) error {
		tokens, err := loader.Tokens(path)
		if err != nil {
			return err
		}
		return lexer.Fprint(w, tokens)
	})
}

func runAST(args []string) int {
	return inspectEntry("sand ast", args, func(w io.Writer, loader *driver.Loader, path string) error {
		_, stmts, err := loader.Parse(path)
		if err != nil {
			return err
		}
		return ast.DumpYAML(w, stmts)
	})
}

func inspectEntry(name string, args []string, dump func(io.Writer, *driver.Loader, string) error) int {
	cfg := driver.Environment()
	rest, ok := runFlags(name, args, &cfg)
	if !ok {
		return 2
	}
	if len(rest) > 1 {
		fmt.Fprintf(os.Stderr, "%s takes a single file\n", name)
		return 1
	}
	entry, _, err := resolveEntry(rest)
	if err != nil {
		report(err, cfg)
		return 1
	}
	project, err := driver.OpenProject(entry, cfg)
	if err != nil {
		report(err, cfg)
		return 1
	}
	loader, err := project.Loader()
	if err != nil {
		report(err, cfg)
		return 1
	}
	if err := dump(os.Stdout, loader, entry); err != nil {
		report(err, cfg)
		return 1
	}
	return 0
}

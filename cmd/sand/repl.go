package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/xyproto/env/v2"

	"github.com/NomisIV/sand/pkg/ast"
	"github.com/NomisIV/sand/pkg/driver"
	"github.com/NomisIV/sand/pkg/lexer"
)

const (
	historyFile = ".sand_history"
	replFile    = "<repl>"
	promptMain  = "sand> "
	promptCont  = "....> "
)

func runRepl(args []string) int {
	cfg := driver.Environment()
	rest, ok := runFlags("sand repl", args, &cfg)
	if !ok {
		return 2
	}
	if len(rest) > 0 {
		fmt.Fprintf(os.Stderr, "sand repl does not take arguments (received %s)\n", strings.Join(rest, " "))
		return 1
	}
	cwd, err := os.Getwd()
	if err != nil {
		report(fmt.Errorf("determine working directory: %w", err), cfg)
		return 1
	}
	// The project context only contributes include roots and the depth limit.
	project, err := driver.OpenProject(filepath.Join(cwd, replFile), cfg)
	if err != nil {
		report(err, cfg)
		return 1
	}
	session, err := project.NewSession(os.Stdout, os.Stderr)
	if err != nil {
		report(err, cfg)
		return 1
	}
	color := driver.UseColor(os.Stderr, cfg)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := filepath.Join(env.HomeDir(), historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	fmt.Fprintf(os.Stdout, "%s (:help for commands)\n", cliToolVersion)
	for {
		src, ok := readInput(ln)
		if !ok {
			fmt.Fprintln(os.Stdout)
			break
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if strings.HasPrefix(trimmed, ":") {
			if replCommand(session, trimmed) {
				break
			}
			continue
		}
		value, err := session.Eval(src, filepath.Join(cwd, replFile))
		if err != nil {
			fmt.Fprintln(os.Stderr, driver.Describe(err, color))
			continue
		}
		if value.Kind() != ast.KindNope {
			fmt.Fprintln(os.Stdout, ast.Inspect(value))
		}
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return 0
}

// readInput keeps prompting while the buffer ends inside an open group,
// string or char literal.
func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C drops the pending input.
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

func incomplete(src string) bool {
	_, err := lexer.Tokenize(src, ast.Start(replFile))
	var tokErr *lexer.TokenError
	return errors.As(err, &tokErr) && tokErr.Incomplete
}

func replCommand(session *driver.Session, line string) (exit bool) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true
	case ":help":
		fmt.Fprintln(os.Stdout, ":help         show this message")
		fmt.Fprintln(os.Stdout, ":names        list bindings in scope")
		fmt.Fprintln(os.Stdout, ":quit         leave the repl")
	case ":names":
		for _, name := range session.Scope.Names() {
			value, _ := session.Scope.Get(name)
			fmt.Fprintf(os.Stdout, "%s = %s\n", name, ast.Inspect(value))
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %s (try :help)\n", fields[0])
	}
	return false
}

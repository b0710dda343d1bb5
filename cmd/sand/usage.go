package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  sand [run] <file.sand> [args...]")
	fmt.Fprintln(os.Stderr, "  sand run                  (runs the main file named in sand.yml)")
	fmt.Fprintln(os.Stderr, "  sand tokens <file.sand>")
	fmt.Fprintln(os.Stderr, "  sand ast <file.sand>")
	fmt.Fprintln(os.Stderr, "  sand repl")
	fmt.Fprintln(os.Stderr, "  sand deps install")
	fmt.Fprintln(os.Stderr, "  sand version")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Environment:")
	fmt.Fprintln(os.Stderr, "  SAND_HOME       cache directory for installed dependencies (default ~/.sand)")
	fmt.Fprintln(os.Stderr, "  SAND_PATH       extra include search roots, separated by the OS list separator")
	fmt.Fprintln(os.Stderr, "  SAND_MAX_DEPTH  call depth limit")
	fmt.Fprintln(os.Stderr, "  NO_COLOR        disable coloured diagnostics")
}

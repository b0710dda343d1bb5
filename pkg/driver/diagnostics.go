package driver

import (
	"errors"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/NomisIV/sand/pkg/interpreter"
	"github.com/NomisIV/sand/pkg/lexer"
	"github.com/NomisIV/sand/pkg/parser"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiGrey  = "\033[90m"
)

var stageKinds = []string{"TokenError", "ParseError", "InterpretingError", "ConversionError"}

// IsStageError reports whether err came out of the tokenizer, parser or
// interpreter, as opposed to I/O or configuration.
func IsStageError(err error) bool {
	var tokErr *lexer.TokenError
	var parseErr *parser.ParseError
	var interpErr *interpreter.Error
	var convErr *interpreter.ConversionError
	return errors.As(err, &tokErr) || errors.As(err, &parseErr) ||
		errors.As(err, &interpErr) || errors.As(err, &convErr)
}

// Describe renders err for the terminal as `<file>:<row>:<col>: <KIND>: <msg>`.
// Errors from outside the pipeline are prefixed with "error: ".
func Describe(err error, color bool) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if !IsStageError(err) {
		if color {
			return ansiBold + ansiRed + "error:" + ansiReset + " " + msg
		}
		return "error: " + msg
	}
	if !color {
		return msg
	}
	at, kind := -1, ""
	for _, candidate := range stageKinds {
		idx := strings.Index(msg, ": "+candidate+": ")
		if idx >= 0 && (at < 0 || idx < at) {
			at, kind = idx, candidate
		}
	}
	if at >= 0 {
		rest := msg[at+len(kind)+4:]
		return ansiGrey + msg[:at] + ansiReset + ": " + ansiBold + ansiRed + kind + ansiReset + ": " + rest
	}
	return msg
}

// UseColor decides whether diagnostics written to f get ANSI colours.
func UseColor(f *os.File, cfg Config) bool {
	if cfg.NoColor || f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

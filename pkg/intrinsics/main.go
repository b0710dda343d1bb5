package intrinsics

import (
	"fmt"
	"io"

	"github.com/NomisIV/sand/pkg/ast"
	"github.com/NomisIV/sand/pkg/interpreter"
)

// Stream ids accepted by Main.write.
const (
	Stdout = 1
	Stderr = 2
)

func mainTable(interp *interpreter.Interpreter) *table {
	t := newTable("Main")
	t.constant("STDOUT", ast.Num(Stdout))
	t.constant("STDERR", ast.Num(Stderr))

	t.method("write", []string{"stream", "string"}, func(scope *ast.Scope) (ast.Literal, error) {
		stream, err := intArg(scope, "stream")
		if err != nil {
			return nil, err
		}
		text, err := strArg(scope, "string")
		if err != nil {
			return nil, err
		}
		var w io.Writer
		switch stream {
		case Stdout:
			w = interp.Stdout()
		case Stderr:
			w = interp.Stderr()
		default:
			return nil, interpreter.Errorf(interpreter.TypeMismatch, ast.Position{}, "unknown stream %d", stream)
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			return nil, err
		}
		return ast.Nope{}, nil
	})

	t.method("print", []string{"value"}, func(scope *ast.Scope) (ast.Literal, error) {
		val, err := arg(scope, "value")
		if err != nil {
			return nil, err
		}
		if _, err := fmt.Fprintln(interp.Stdout(), ast.Display(val)); err != nil {
			return nil, err
		}
		return ast.Nope{}, nil
	})

	t.method("new_set", nil, func(*ast.Scope) (ast.Literal, error) {
		return ast.NewSet(), nil
	})

	// dump prints every binding visible at the call site and then aborts the
	// program.
	t.method("dump", nil, func(scope *ast.Scope) (ast.Literal, error) {
		out := interp.Stdout()
		fmt.Fprintln(out, "Dumping scope:")
		scope.Each(func(name string, val ast.Literal) {
			fmt.Fprintf(out, "== %s: %s\n", name, ast.Inspect(val))
		})
		return nil, interpreter.Errorf(interpreter.Dumped, ast.Position{}, "Exiting after dumping scope")
	})

	return t
}

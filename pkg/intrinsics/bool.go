package intrinsics

import (
	"github.com/NomisIV/sand/pkg/ast"
	"github.com/NomisIV/sand/pkg/interpreter"
)

func boolTable(interp *interpreter.Interpreter) *table {
	t := newTable(ast.KindBool.String())

	// branch runs f with no arguments when self equals want.
	branch := func(name string, want bool) {
		t.method(name, []string{"f"}, func(scope *ast.Scope) (ast.Literal, error) {
			cond, err := boolArg(scope, interpreter.SelfName)
			if err != nil {
				return nil, err
			}
			fn, err := funArg(scope, "f")
			if err != nil {
				return nil, err
			}
			if cond == want {
				if _, err := interp.Call(fn, nil, scope, ast.Position{}); err != nil {
					return nil, err
				}
			}
			return ast.Nope{}, nil
		})
	}
	branch("then", true)
	branch("else", false)

	t.method("not", nil, func(scope *ast.Scope) (ast.Literal, error) {
		b, err := boolArg(scope, interpreter.SelfName)
		if err != nil {
			return nil, err
		}
		return ast.Bool(!b), nil
	})

	logic := func(name string, op func(a, b bool) bool) {
		t.method(name, []string{"other"}, func(scope *ast.Scope) (ast.Literal, error) {
			a, err := boolArg(scope, interpreter.SelfName)
			if err != nil {
				return nil, err
			}
			b, err := boolArg(scope, "other")
			if err != nil {
				return nil, err
			}
			return ast.Bool(op(a, b)), nil
		})
	}
	logic("and", func(a, b bool) bool { return a && b })
	logic("or", func(a, b bool) bool { return a || b })

	equality(t)
	stringer(t)
	return t
}

package intrinsics

import (
	"math"

	"github.com/NomisIV/sand/pkg/ast"
	"github.com/NomisIV/sand/pkg/interpreter"
)

func numTable(interp *interpreter.Interpreter) *table {
	t := newTable(ast.KindNum.String())

	arith := func(name string, op func(a, b float64) ast.Literal) {
		t.method(name, []string{"n"}, func(scope *ast.Scope) (ast.Literal, error) {
			a, err := numArg(scope, interpreter.SelfName)
			if err != nil {
				return nil, err
			}
			b, err := numArg(scope, "n")
			if err != nil {
				return nil, err
			}
			return op(a, b), nil
		})
	}
	arith("add", func(a, b float64) ast.Literal { return ast.Num(a + b) })
	arith("sub", func(a, b float64) ast.Literal { return ast.Num(a - b) })
	arith("mul", func(a, b float64) ast.Literal { return ast.Num(a * b) })
	arith("div", func(a, b float64) ast.Literal { return ast.Num(a / b) })
	arith("mod", func(a, b float64) ast.Literal { return ast.Num(math.Mod(a, b)) })
	arith("pow", func(a, b float64) ast.Literal { return ast.Num(math.Pow(a, b)) })
	arith("eq", func(a, b float64) ast.Literal { return ast.Bool(a == b) })
	arith("ne", func(a, b float64) ast.Literal { return ast.Bool(a != b) })
	arith("lt", func(a, b float64) ast.Literal { return ast.Bool(a < b) })
	arith("gt", func(a, b float64) ast.Literal { return ast.Bool(a > b) })

	t.method("floor", nil, func(scope *ast.Scope) (ast.Literal, error) {
		n, err := numArg(scope, interpreter.SelfName)
		if err != nil {
			return nil, err
		}
		return ast.Num(math.Floor(n)), nil
	})

	// times calls f(n) for n in 0..self; each call gets its own copy of the
	// scope and the first failure stops the loop.
	t.method("times", []string{"f"}, func(scope *ast.Scope) (ast.Literal, error) {
		count, err := intArg(scope, interpreter.SelfName)
		if err != nil {
			return nil, err
		}
		fn, err := funArg(scope, "f")
		if err != nil {
			return nil, err
		}
		for n := 0; n < count; n++ {
			if _, err := interp.Call(fn, []ast.Literal{ast.Num(n)}, scope, ast.Position{}); err != nil {
				return nil, err
			}
		}
		return ast.Nope{}, nil
	})

	stringer(t)
	return t
}

package intrinsics

import (
	"github.com/NomisIV/sand/pkg/ast"
	"github.com/NomisIV/sand/pkg/interpreter"
)

func listTable(interp *interpreter.Interpreter) *table {
	t := newTable(ast.KindList.String())

	t.method("len", nil, func(scope *ast.Scope) (ast.Literal, error) {
		items, err := listArg(scope, interpreter.SelfName)
		if err != nil {
			return nil, err
		}
		return ast.Num(len(items)), nil
	})

	t.method("get", []string{"index"}, func(scope *ast.Scope) (ast.Literal, error) {
		items, err := listArg(scope, interpreter.SelfName)
		if err != nil {
			return nil, err
		}
		idx, err := intArg(scope, "index")
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(items) {
			return nil, interpreter.Errorf(interpreter.NoSuchMember, ast.Position{}, "index %d out of range for list of length %d", idx, len(items))
		}
		return items[idx], nil
	})

	// push returns a new list; lists are values like every other literal.
	t.method("push", []string{"item"}, func(scope *ast.Scope) (ast.Literal, error) {
		items, err := listArg(scope, interpreter.SelfName)
		if err != nil {
			return nil, err
		}
		item, err := arg(scope, "item")
		if err != nil {
			return nil, err
		}
		out := make(ast.List, len(items), len(items)+1)
		copy(out, items)
		return append(out, item), nil
	})

	t.method("each", []string{"f"}, func(scope *ast.Scope) (ast.Literal, error) {
		items, err := listArg(scope, interpreter.SelfName)
		if err != nil {
			return nil, err
		}
		fn, err := funArg(scope, "f")
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if _, err := interp.Call(fn, []ast.Literal{item}, scope, ast.Position{}); err != nil {
				return nil, err
			}
		}
		return ast.Nope{}, nil
	})

	return t
}

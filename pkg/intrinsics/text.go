package intrinsics

import (
	"unicode/utf8"

	"github.com/NomisIV/sand/pkg/ast"
	"github.com/NomisIV/sand/pkg/interpreter"
)

func strTable() *table {
	t := newTable(ast.KindStr.String())

	t.method("concat", []string{"other"}, func(scope *ast.Scope) (ast.Literal, error) {
		s, err := strArg(scope, interpreter.SelfName)
		if err != nil {
			return nil, err
		}
		other, err := arg(scope, "other")
		if err != nil {
			return nil, err
		}
		return ast.Str(s + ast.Display(other)), nil
	})

	// len counts characters, not bytes.
	t.method("len", nil, func(scope *ast.Scope) (ast.Literal, error) {
		s, err := strArg(scope, interpreter.SelfName)
		if err != nil {
			return nil, err
		}
		return ast.Num(utf8.RuneCountInString(s)), nil
	})

	equality(t)
	stringer(t)
	return t
}

func charTable() *table {
	t := newTable(ast.KindChar.String())
	equality(t)
	stringer(t)
	return t
}

func nopeTable() *table {
	t := newTable(ast.KindNope.String())
	equality(t)
	stringer(t)
	return t
}

func funTable() *table {
	t := newTable(ast.KindFun.String())
	t.method("arity", nil, func(scope *ast.Scope) (ast.Literal, error) {
		fn, err := funArg(scope, interpreter.SelfName)
		if err != nil {
			return nil, err
		}
		return ast.Num(len(fn.Callable.Params())), nil
	})
	return t
}

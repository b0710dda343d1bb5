// Package intrinsics builds the seed scope of a sand program: one method
// table per built-in kind plus the Main namespace.
package intrinsics

import (
	"github.com/NomisIV/sand/pkg/ast"
	"github.com/NomisIV/sand/pkg/interpreter"
)

// table accumulates the native methods of one global record.
type table struct {
	name string
	set  ast.Set
}

func newTable(name string) *table {
	return &table{name: name, set: ast.NewSet()}
}

func (t *table) method(name string, params []string, fn ast.NativeFunc) {
	t.set = t.set.With(name, ast.Native(t.name+"."+name, params, fn))
}

func (t *table) constant(name string, val ast.Literal) {
	t.set = t.set.With(name, val)
}

// Scope returns a fresh top-level scope. Methods that call back into user
// code, such as Num.times, go through interp.
func Scope(interp *interpreter.Interpreter) *ast.Scope {
	scope := ast.NewScope()
	for _, t := range []*table{
		mainTable(interp),
		nopeTable(),
		strTable(),
		charTable(),
		numTable(interp),
		boolTable(interp),
		listTable(interp),
		funTable(),
	} {
		scope.Set(t.name, t.set)
	}
	return scope
}

// Names lists the globals Scope defines.
func Names() []string {
	return []string{"Bool", "Char", "Fun", "List", "Main", "Nope", "Num", "Str"}
}

func arg(scope *ast.Scope, name string) (ast.Literal, error) {
	return interpreter.Lookup(scope, name)
}

func self(scope *ast.Scope) (ast.Literal, error) {
	return arg(scope, interpreter.SelfName)
}

func numArg(scope *ast.Scope, name string) (float64, error) {
	lit, err := arg(scope, name)
	if err != nil {
		return 0, err
	}
	return interpreter.AsNum(lit)
}

func intArg(scope *ast.Scope, name string) (int, error) {
	lit, err := arg(scope, name)
	if err != nil {
		return 0, err
	}
	return interpreter.AsInt(lit)
}

func strArg(scope *ast.Scope, name string) (string, error) {
	lit, err := arg(scope, name)
	if err != nil {
		return "", err
	}
	return interpreter.AsStr(lit)
}

func boolArg(scope *ast.Scope, name string) (bool, error) {
	lit, err := arg(scope, name)
	if err != nil {
		return false, err
	}
	return interpreter.AsBool(lit)
}

func funArg(scope *ast.Scope, name string) (ast.Fun, error) {
	lit, err := arg(scope, name)
	if err != nil {
		return ast.Fun{}, err
	}
	return interpreter.AsFun(lit)
}

func listArg(scope *ast.Scope, name string) (ast.List, error) {
	lit, err := arg(scope, name)
	if err != nil {
		return nil, err
	}
	return interpreter.AsList(lit)
}

// equality gives a kind an eq method comparing self with any other value.
func equality(t *table) {
	t.method("eq", []string{"other"}, func(scope *ast.Scope) (ast.Literal, error) {
		lhs, err := self(scope)
		if err != nil {
			return nil, err
		}
		rhs, err := arg(scope, "other")
		if err != nil {
			return nil, err
		}
		return ast.Bool(ast.Equal(lhs, rhs)), nil
	})
}

// stringer gives a kind a to_str method rendering self for display.
func stringer(t *table) {
	t.method("to_str", nil, func(scope *ast.Scope) (ast.Literal, error) {
		lit, err := self(scope)
		if err != nil {
			return nil, err
		}
		return ast.Str(ast.Display(lit)), nil
	})
}

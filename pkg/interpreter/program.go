package interpreter

import (
	"github.com/NomisIV/sand/pkg/ast"
)

// MainName is the binding a program must define to be runnable.
const MainName = "main"

// RunMain calls the program's main function and converts its result into a
// process exit code. main may take no parameters, or one which receives args
// as a List of Str. Errors that have no better location are reported at pos.
func (i *Interpreter) RunMain(scope *ast.Scope, args []string, pos ast.Position) (int, error) {
	lit, ok := scope.Get(MainName)
	if !ok {
		return 0, Errorf(NotInScope, pos, "no %s function defined", MainName)
	}
	fn, err := AsFun(lit)
	if err != nil {
		return 0, Errorf(TypeMismatch, pos, "%s must be a function, found %s", MainName, kindOf(lit))
	}
	var callArgs []ast.Literal
	switch arity := len(fn.Callable.Params()); arity {
	case 0:
	case 1:
		list := make(ast.List, 0, len(args))
		for _, arg := range args {
			list = append(list, ast.Str(arg))
		}
		callArgs = []ast.Literal{list}
	default:
		return 0, Errorf(MismatchedArity, fn.Callable.Position(), "%s must take zero or one parameter, takes %d", MainName, arity)
	}
	result, err := i.Call(fn, callArgs, scope, pos)
	if err != nil {
		return 0, err
	}
	code, err := AsInt(result)
	if err != nil {
		cerr := err.(*ConversionError)
		cerr.Pos = pos
		cerr.Msg = "exit code: " + cerr.Msg
		return 0, cerr
	}
	return code, nil
}

package interpreter

import (
	"github.com/NomisIV/sand/pkg/ast"
)

func (i *Interpreter) call(n *ast.FunCall, scope *ast.Scope) (ast.Literal, error) {
	callee, err := i.Eval(n.Callee, scope)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(ast.Fun)
	if !ok || fn.Callable == nil {
		return nil, Errorf(TypeMismatch, n.Pos, "cannot call a %s", kindOf(callee))
	}
	if err := checkArity(fn, len(n.Args), n.Pos); err != nil {
		return nil, err
	}
	// The call scope is taken before any argument runs; bindings made while
	// evaluating arguments (self, for one) never reach the callee.
	callScope := scope.Clone()
	args := make([]ast.Literal, 0, len(n.Args))
	for _, arg := range n.Args {
		val, err := i.Eval(arg, scope)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	return i.invoke(fn, args, callScope, n.Pos)
}

// Call applies fn to already evaluated arguments in a copy of scope. Native
// methods use it to call back into user code.
func (i *Interpreter) Call(fn ast.Fun, args []ast.Literal, scope *ast.Scope, pos ast.Position) (ast.Literal, error) {
	if fn.Callable == nil {
		return nil, Errorf(TypeMismatch, pos, "cannot call an empty function value")
	}
	if err := checkArity(fn, len(args), pos); err != nil {
		return nil, err
	}
	return i.invoke(fn, args, scope.Clone(), pos)
}

func checkArity(fn ast.Fun, got int, pos ast.Position) error {
	want := len(fn.Callable.Params())
	if want != got {
		return Errorf(MismatchedArity, pos, "expected %d arguments, got %d", want, got)
	}
	return nil
}

func (i *Interpreter) invoke(fn ast.Fun, args []ast.Literal, callScope *ast.Scope, pos ast.Position) (ast.Literal, error) {
	if i.depth >= i.maxDepth {
		return nil, Errorf(DepthExceeded, pos, "maximum call depth of %d exceeded", i.maxDepth)
	}
	i.depth++
	defer func() { i.depth-- }()

	for idx, name := range fn.Callable.Params() {
		callScope.Set(name, args[idx])
	}
	switch c := fn.Callable.(type) {
	case *ast.Intrinsic:
		result, err := c.Native(callScope)
		if err != nil {
			return nil, locate(err, pos)
		}
		if result == nil {
			result = ast.Nope{}
		}
		return result, nil
	case *ast.Function:
		return i.Run(c.Body, callScope)
	default:
		return nil, Errorf(TypeMismatch, pos, "unsupported callable %T", fn.Callable)
	}
}

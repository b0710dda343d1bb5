package interpreter

import (
	"github.com/NomisIV/sand/pkg/ast"
)

// SelfName is the binding through which methods of the built-in tables see
// their receiver.
const SelfName = "self"

// member resolves n.Field. Records answer from their own fields; every other
// value is bound as self in scope and answers from the global table named
// after its kind.
func (i *Interpreter) member(n *ast.Member, scope *ast.Scope) (ast.Literal, error) {
	target, err := i.Eval(n.Target, scope)
	if err != nil {
		return nil, err
	}
	table, err := tableFor(target, scope, n.Pos)
	if err != nil {
		return nil, err
	}
	field, ok := table.Get(n.Field.Name)
	if !ok {
		return nil, Errorf(NoSuchMember, n.Field.Pos, "%s has no member %s", kindOf(target), n.Field.Name)
	}
	return field, nil
}

func tableFor(target ast.Literal, scope *ast.Scope, pos ast.Position) (ast.Set, error) {
	if set, ok := target.(ast.Set); ok {
		return set, nil
	}
	scope.Set(SelfName, target)
	name := target.Kind().String()
	lit, ok := scope.Get(name)
	if !ok {
		return ast.Set{}, Errorf(NotInScope, pos, "method table %s is not in scope", name)
	}
	table, ok := lit.(ast.Set)
	if !ok {
		return ast.Set{}, Errorf(TypeMismatch, pos, "method table %s is a %s, not a Set", name, kindOf(lit))
	}
	return table, nil
}

// assign binds the value of n.Val. Only a plain name or a single field of a
// record held by a plain name can be assigned.
func (i *Interpreter) assign(n *ast.Assignment, scope *ast.Scope) (ast.Literal, error) {
	switch target := n.Target.(type) {
	case *ast.Var:
		val, err := i.Eval(n.Val, scope.Clone())
		if err != nil {
			return nil, err
		}
		scope.Set(target.Name, val)
	case *ast.Member:
		base, ok := target.Target.(*ast.Var)
		if !ok {
			return nil, Errorf(UnsupportedReference, target.Pos, "Complex referencing is not supported yet")
		}
		current, ok := scope.Get(base.Name)
		if !ok {
			return nil, Errorf(NotInScope, base.Pos, "%s is not in scope", base.Name)
		}
		set, ok := current.(ast.Set)
		if !ok {
			return nil, Errorf(TypeMismatch, base.Pos, "cannot assign field %s on %s", target.Field.Name, kindOf(current))
		}
		val, err := i.Eval(n.Val, scope.Clone())
		if err != nil {
			return nil, err
		}
		scope.Set(base.Name, set.With(target.Field.Name, val))
	default:
		return nil, Errorf(UnsupportedReference, n.Pos, "Complex referencing is not supported yet")
	}
	return ast.Nope{}, nil
}

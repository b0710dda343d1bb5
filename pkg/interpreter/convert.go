package interpreter

import (
	"fmt"
	"math"

	"github.com/NomisIV/sand/pkg/ast"
)

func kindOf(lit ast.Literal) string {
	if lit == nil {
		return "nothing"
	}
	return lit.Kind().String()
}

func mismatch(want string, lit ast.Literal) *ConversionError {
	return &ConversionError{Msg: fmt.Sprintf("expected %s, found %s", want, kindOf(lit))}
}

func AsNum(lit ast.Literal) (float64, error) {
	if n, ok := lit.(ast.Num); ok {
		return float64(n), nil
	}
	return 0, mismatch("Num", lit)
}

// AsInt accepts only integral numbers that fit in an int32.
func AsInt(lit ast.Literal) (int, error) {
	n, err := AsNum(lit)
	if err != nil {
		return 0, err
	}
	if n != math.Trunc(n) || math.IsInf(n, 0) {
		return 0, &ConversionError{Msg: fmt.Sprintf("%s is not an integer", ast.FormatNum(n))}
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, &ConversionError{Msg: fmt.Sprintf("%s is out of range for an integer", ast.FormatNum(n))}
	}
	return int(n), nil
}

func AsStr(lit ast.Literal) (string, error) {
	if s, ok := lit.(ast.Str); ok {
		return string(s), nil
	}
	return "", mismatch("Str", lit)
}

func AsChar(lit ast.Literal) (rune, error) {
	if c, ok := lit.(ast.Char); ok {
		return rune(c), nil
	}
	return 0, mismatch("Char", lit)
}

func AsBool(lit ast.Literal) (bool, error) {
	if b, ok := lit.(ast.Bool); ok {
		return bool(b), nil
	}
	return false, mismatch("Bool", lit)
}

func AsFun(lit ast.Literal) (ast.Fun, error) {
	if f, ok := lit.(ast.Fun); ok && f.Callable != nil {
		return f, nil
	}
	return ast.Fun{}, mismatch("Fun", lit)
}

func AsList(lit ast.Literal) (ast.List, error) {
	if l, ok := lit.(ast.List); ok {
		return l, nil
	}
	return nil, mismatch("List", lit)
}

func AsSet(lit ast.Literal) (ast.Set, error) {
	if s, ok := lit.(ast.Set); ok {
		return s, nil
	}
	return ast.Set{}, mismatch("Set", lit)
}

// Lookup reads name from scope, failing with NotInScope.
func Lookup(scope *ast.Scope, name string) (ast.Literal, error) {
	val, ok := scope.Get(name)
	if !ok {
		return nil, Errorf(NotInScope, ast.Position{}, "%s is not in scope", name)
	}
	return val, nil
}

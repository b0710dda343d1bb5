package ast

import (
	"fmt"

	"github.com/benbjohnson/immutable"
)

// Kind identifies the runtime category of a literal. The string form doubles as
// the name of the global method table for that category.
type Kind int

const (
	KindNope Kind = iota
	KindStr
	KindChar
	KindNum
	KindBool
	KindList
	KindFun
	KindSet
)

func (k Kind) String() string {
	switch k {
	case KindNope:
		return "Nope"
	case KindStr:
		return "Str"
	case KindChar:
		return "Char"
	case KindNum:
		return "Num"
	case KindBool:
		return "Bool"
	case KindList:
		return "List"
	case KindFun:
		return "Fun"
	case KindSet:
		return "Set"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Literal is a runtime value. The set of implementations is closed.
type Literal interface {
	Kind() Kind
	isLiteral()
}

type (
	// Nope is the unit value.
	Nope struct{}
	Str  string
	Char rune
	Num  float64
	Bool bool
	List []Literal
	// Fun wraps a user function or an intrinsic.
	Fun struct {
		Callable Callable
	}
	// Set is the record type. Its fields live in a persistent map, so a Set
	// behaves as a value: With returns a new Set and leaves the receiver alone.
	Set struct {
		fields *immutable.SortedMap[string, Literal]
	}
)

func (Nope) Kind() Kind { return KindNope }
func (Str) Kind() Kind  { return KindStr }
func (Char) Kind() Kind { return KindChar }
func (Num) Kind() Kind  { return KindNum }
func (Bool) Kind() Kind { return KindBool }
func (List) Kind() Kind { return KindList }
func (Fun) Kind() Kind  { return KindFun }
func (Set) Kind() Kind  { return KindSet }

func (Nope) isLiteral() {}
func (Str) isLiteral()  {}
func (Char) isLiteral() {}
func (Num) isLiteral()  {}
func (Bool) isLiteral() {}
func (List) isLiteral() {}
func (Fun) isLiteral()  {}
func (Set) isLiteral()  {}

// NewSet returns an empty record.
func NewSet() Set {
	return Set{fields: immutable.NewSortedMap[string, Literal](nil)}
}

// SetOf builds a record from a plain map.
func SetOf(fields map[string]Literal) Set {
	s := NewSet()
	for name, val := range fields {
		s = s.With(name, val)
	}
	return s
}

func (s Set) Get(name string) (Literal, bool) {
	if s.fields == nil {
		return nil, false
	}
	return s.fields.Get(name)
}

// With returns a copy of s with name bound to val.
func (s Set) With(name string, val Literal) Set {
	fields := s.fields
	if fields == nil {
		fields = immutable.NewSortedMap[string, Literal](nil)
	}
	return Set{fields: fields.Set(name, val)}
}

func (s Set) Len() int {
	if s.fields == nil {
		return 0
	}
	return s.fields.Len()
}

// Each visits the fields in name order.
func (s Set) Each(fn func(name string, val Literal)) {
	if s.fields == nil {
		return
	}
	itr := s.fields.Iterator()
	for !itr.Done() {
		name, val, _ := itr.Next()
		fn(name, val)
	}
}

// Names lists the field names in order.
func (s Set) Names() []string {
	names := make([]string, 0, s.Len())
	s.Each(func(name string, _ Literal) {
		names = append(names, name)
	})
	return names
}

// Equal reports structural equality. Functions compare by identity.
func Equal(a, b Literal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Nope:
		return true
	case Str:
		return av == b.(Str)
	case Char:
		return av == b.(Char)
	case Num:
		return av == b.(Num)
	case Bool:
		return av == b.(Bool)
	case List:
		bv := b.(List)
		if len(av) != len(bv) {
			return false
		}
		for idx := range av {
			if !Equal(av[idx], bv[idx]) {
				return false
			}
		}
		return true
	case Fun:
		return av.Callable == b.(Fun).Callable
	case Set:
		bv := b.(Set)
		if av.Len() != bv.Len() {
			return false
		}
		equal := true
		av.Each(func(name string, val Literal) {
			other, ok := bv.Get(name)
			if !ok || !Equal(val, other) {
				equal = false
			}
		})
		return equal
	}
	return false
}

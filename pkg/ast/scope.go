package ast

import "github.com/benbjohnson/immutable"

// Scope is the mutable name environment threaded through evaluation.
//
// Scopes are flat: there is no parent chain. Calls work on Clone()s of the
// caller's scope, so a callee sees every binding visible at the call site and
// its writes never reach the caller. The bindings live in a persistent map, so
// Clone is constant time and the copies share structure.
type Scope struct {
	bindings *immutable.SortedMap[string, Literal]
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{bindings: immutable.NewSortedMap[string, Literal](nil)}
}

func (s *Scope) Get(name string) (Literal, bool) {
	if s == nil || s.bindings == nil {
		return nil, false
	}
	return s.bindings.Get(name)
}

// Set binds or rebinds name in this scope only.
func (s *Scope) Set(name string, val Literal) {
	if s.bindings == nil {
		s.bindings = immutable.NewSortedMap[string, Literal](nil)
	}
	s.bindings = s.bindings.Set(name, val)
}

func (s *Scope) Delete(name string) {
	if s.bindings == nil {
		return
	}
	s.bindings = s.bindings.Delete(name)
}

// Clone returns an independent copy.
func (s *Scope) Clone() *Scope {
	if s == nil {
		return NewScope()
	}
	return &Scope{bindings: s.bindings}
}

func (s *Scope) Len() int {
	if s == nil || s.bindings == nil {
		return 0
	}
	return s.bindings.Len()
}

// Each visits the bindings in name order.
func (s *Scope) Each(fn func(name string, val Literal)) {
	if s == nil || s.bindings == nil {
		return
	}
	itr := s.bindings.Iterator()
	for !itr.Done() {
		name, val, _ := itr.Next()
		fn(name, val)
	}
}

// Names returns the bound names in sorted order.
func (s *Scope) Names() []string {
	names := make([]string, 0, s.Len())
	s.Each(func(name string, _ Literal) {
		names = append(names, name)
	})
	return names
}

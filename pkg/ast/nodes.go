package ast

// Node is anything that can be blamed in a diagnostic.
type Node interface {
	Position() Position
}

// Callable is implemented by *Function and *Intrinsic.
type Callable interface {
	Node
	Params() []string
	isCallable()
}

// Function is a user-defined callable. Its body runs against a copy of the
// caller's scope; nothing from the definition site is captured.
type Function struct {
	Args []string
	Body Statements
	Pos  Position
}

func (f *Function) Params() []string   { return f.Args }
func (f *Function) Position() Position { return f.Pos }
func (*Function) isCallable()          {}

// NativeFunc is the body of an intrinsic. It receives the call scope, which
// already holds the declared parameters and, for methods, self.
type NativeFunc func(scope *Scope) (Literal, error)

// Intrinsic is a callable implemented in Go.
type Intrinsic struct {
	Name   string
	Args   []string
	Native NativeFunc
}

func (f *Intrinsic) Params() []string { return f.Args }
func (*Intrinsic) Position() Position { return Internal() }
func (*Intrinsic) isCallable()        {}

// Value is an expression node.
type Value interface {
	Node
	isValue()
}

// Reference is a Value that names a location: *Var or *Member.
type Reference interface {
	Value
	isReference()
}

// Lit is a constant.
type Lit struct {
	Val Literal
	Pos Position
}

// Var looks up a binding by name.
type Var struct {
	Name string
	Pos  Position
}

// Member reads Field from the value produced by Target.
type Member struct {
	Target Value
	Field  *Var
	Pos    Position
}

// FunCall applies Callee to Args.
type FunCall struct {
	Callee Value
	Args   []Value
	Pos    Position
}

func (n *Lit) Position() Position     { return n.Pos }
func (n *Var) Position() Position     { return n.Pos }
func (n *Member) Position() Position  { return n.Pos }
func (n *FunCall) Position() Position { return n.Pos }

func (*Lit) isValue()     {}
func (*Var) isValue()     {}
func (*Member) isValue()  {}
func (*FunCall) isValue() {}

func (*Var) isReference()    {}
func (*Member) isReference() {}

// Statement is one `;`-separated piece of a statement sequence.
type Statement interface {
	Node
	isStatement()
}

// Assignment binds the result of Val to Target.
type Assignment struct {
	Target Reference
	Val    Value
	Pos    Position
}

// ValueStatement evaluates an expression for its result.
type ValueStatement struct {
	Val Value
}

// Include splices the statements of another file into the running scope.
// Path is the canonical location computed at parse time; Raw is the text
// written in the source, kept for search-root fallback and messages.
type Include struct {
	Path string
	Raw  string
	Pos  Position
}

func (n *Assignment) Position() Position     { return n.Pos }
func (n *ValueStatement) Position() Position { return n.Val.Position() }
func (n *Include) Position() Position        { return n.Pos }

func (*Assignment) isStatement()     {}
func (*ValueStatement) isStatement() {}
func (*Include) isStatement()        {}

// Statements is a non-empty statement sequence; the last statement's result is
// the result of the whole sequence.
type Statements []Statement

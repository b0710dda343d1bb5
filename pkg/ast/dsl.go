package ast

// Node construction helpers. Positions are left zero; the parser sets them.

func V(name string) *Var {
	return &Var{Name: name}
}

func L(lit Literal) *Lit {
	return &Lit{Val: lit}
}

func Dot(target Value, field string) *Member {
	return &Member{Target: target, Field: V(field)}
}

func Call(callee Value, args ...Value) *FunCall {
	if args == nil {
		args = []Value{}
	}
	return &FunCall{Callee: callee, Args: args}
}

func Let(target Reference, val Value) *Assignment {
	return &Assignment{Target: target, Val: val}
}

func Expr(val Value) *ValueStatement {
	return &ValueStatement{Val: val}
}

func Block(stmts ...Statement) Statements {
	if len(stmts) == 0 {
		return Statements{Expr(L(Nope{}))}
	}
	return Statements(stmts)
}

func Fn(args []string, body ...Statement) Fun {
	if args == nil {
		args = []string{}
	}
	return Fun{Callable: &Function{Args: args, Body: Block(body...)}}
}

// Native wraps a Go function as an intrinsic literal.
func Native(name string, args []string, fn NativeFunc) Fun {
	if args == nil {
		args = []string{}
	}
	return Fun{Callable: &Intrinsic{Name: name, Args: args, Native: fn}}
}

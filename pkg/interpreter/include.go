package interpreter

import (
	"fmt"

	"github.com/NomisIV/sand/pkg/ast"
	"github.com/NomisIV/sand/pkg/parser"
)

// include runs another file's statements against the current scope, so its
// top-level bindings become visible to the including program.
func (i *Interpreter) include(n *ast.Include, scope *ast.Scope) (ast.Literal, error) {
	path, src, err := i.reader.ReadInclude(n)
	if err != nil {
		return nil, &Error{Kind: IncludeFailed, Pos: n.Pos, Msg: fmt.Sprintf("include %q", n.Raw), Err: err}
	}
	for _, active := range i.including {
		if active == path {
			return nil, Errorf(IncludeFailed, n.Pos, "include %q: cycle through %s", n.Raw, path)
		}
	}
	stmts, err := parser.ParseSource(string(src), ast.Start(path))
	if err != nil {
		return nil, &Error{Kind: IncludeFailed, Pos: n.Pos, Msg: fmt.Sprintf("include %q", n.Raw), Err: err}
	}
	return i.RunFile(path, stmts, scope)
}

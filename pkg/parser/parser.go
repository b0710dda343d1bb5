package parser

import (
	"fmt"

	"github.com/NomisIV/sand/pkg/ast"
	"github.com/NomisIV/sand/pkg/lexer"
)

// ParseError reports a token slice that matches no production, or one that
// matched a production but was malformed inside it.
type ParseError struct {
	Pos ast.Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: ParseError: %s", e.Pos, e.Msg)
}

func errorAt(tok lexer.Token, format string, args ...any) error {
	return &ParseError{Pos: tok.Pos, Msg: fmt.Sprintf(format, args...)}
}

// Parse turns a token stream into a statement sequence. A stream made of a
// single brace group is parsed as the contents of that group, so whole files
// may be wrapped in `{ ... }`.
func Parse(tokens []lexer.Token) (ast.Statements, error) {
	return parse(tokens, ast.Position{})
}

// ParseSource tokenizes and parses src in one step.
func ParseSource(src string, start ast.Position) (ast.Statements, error) {
	tokens, err := lexer.Tokenize(src, start)
	if err != nil {
		return nil, err
	}
	return parse(tokens, start)
}

func parse(tokens []lexer.Token, fallback ast.Position) (ast.Statements, error) {
	if len(tokens) > 0 {
		fallback = tokens[0].Pos
	}
	if len(tokens) == 1 && tokens[0].IsGroup(lexer.Brace) {
		tokens = tokens[0].Children
	}
	return parseStatements(tokens, fallback)
}

// split cuts tokens at every top-level sep punctuation. Groups are single
// tokens here, so nested separators are never seen. The separators
// themselves are returned alongside for error positions.
func split(tokens []lexer.Token, sep rune) ([][]lexer.Token, []lexer.Token) {
	var segments [][]lexer.Token
	var seps []lexer.Token
	start := 0
	for idx, tok := range tokens {
		if tok.IsPunct(sep) {
			segments = append(segments, tokens[start:idx])
			seps = append(seps, tok)
			start = idx + 1
		}
	}
	segments = append(segments, tokens[start:])
	return segments, seps
}

func parseStatements(tokens []lexer.Token, fallback ast.Position) (ast.Statements, error) {
	segments, seps := split(tokens, ';')
	stmts := make(ast.Statements, 0, len(segments))
	for idx, seg := range segments {
		last := idx == len(segments)-1
		if len(seg) == 0 {
			if !last {
				return nil, errorAt(seps[idx], "empty statement")
			}
			pos := fallback
			if idx > 0 {
				pos = seps[idx-1].Pos
			}
			stmts = append(stmts, &ast.ValueStatement{Val: &ast.Lit{Val: ast.Nope{}, Pos: pos}})
			continue
		}
		stmt, ok, err := parseStatement(seg)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errorAt(seg[0], "cannot parse statement starting with %s", seg[0])
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func parseStatement(tokens []lexer.Token) (ast.Statement, bool, error) {
	if stmt, ok, err := parseAssignment(tokens); ok || err != nil {
		return stmt, ok, err
	}
	if stmt, ok, err := parseInclude(tokens); ok || err != nil {
		return stmt, ok, err
	}
	val, ok, err := parseValue(tokens)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &ast.ValueStatement{Val: val}, true, nil
}

func parseAssignment(tokens []lexer.Token) (ast.Statement, bool, error) {
	if len(tokens) == 0 || !tokens[0].IsWord("let") {
		return nil, false, nil
	}
	rest := tokens[1:]
	eq := -1
	for idx, tok := range rest {
		if tok.IsPunct('=') {
			eq = idx
			break
		}
	}
	if eq < 0 {
		return nil, true, errorAt(tokens[0], "expected '=' in let statement")
	}
	left, right := rest[:eq], rest[eq+1:]
	if len(left) == 0 {
		return nil, true, errorAt(rest[eq], "missing assignment target")
	}
	if len(right) == 0 {
		return nil, true, errorAt(rest[eq], "missing value after '='")
	}
	target, ok, err := parseReference(left)
	if err != nil {
		return nil, true, err
	}
	if !ok {
		return nil, true, errorAt(left[0], "cannot assign to %s", left[0])
	}
	val, ok, err := parseValue(right)
	if err != nil {
		return nil, true, err
	}
	if !ok {
		return nil, true, errorAt(right[0], "cannot parse value starting with %s", right[0])
	}
	return &ast.Assignment{Target: target, Val: val, Pos: tokens[0].Pos}, true, nil
}

func parseInclude(tokens []lexer.Token) (ast.Statement, bool, error) {
	if len(tokens) == 0 || !tokens[0].IsWord("include") {
		return nil, false, nil
	}
	if len(tokens) != 2 || tokens[1].Kind != lexer.StringLit {
		return nil, true, errorAt(tokens[0], "include expects a single quoted path")
	}
	raw := tokens[1].Text
	return &ast.Include{Path: ResolveInclude(tokens[0].Pos.File, raw), Raw: raw, Pos: tokens[0].Pos}, true, nil
}

// parseReference accepts a single word, or a value followed by `. word`. The
// split is anchored at the right so `a.b.c` reads as (a.b).c.
func parseReference(tokens []lexer.Token) (ast.Reference, bool, error) {
	switch {
	case len(tokens) == 1 && tokens[0].Kind == lexer.Word:
		return &ast.Var{Name: tokens[0].Text, Pos: tokens[0].Pos}, true, nil
	case len(tokens) >= 3:
		n := len(tokens)
		field, dot := tokens[n-1], tokens[n-2]
		if field.Kind != lexer.Word || !dot.IsPunct('.') {
			return nil, false, nil
		}
		target, ok, err := parseValue(tokens[:n-2])
		if !ok || err != nil {
			return nil, false, err
		}
		return &ast.Member{
			Target: target,
			Field:  &ast.Var{Name: field.Text, Pos: field.Pos},
			Pos:    tokens[0].Pos,
		}, true, nil
	default:
		return nil, false, nil
	}
}

func parseValue(tokens []lexer.Token) (ast.Value, bool, error) {
	if len(tokens) == 0 {
		return nil, false, nil
	}
	lit, ok, err := parseLiteral(tokens)
	if err != nil {
		return nil, false, err
	}
	if ok {
		return &ast.Lit{Val: lit, Pos: tokens[0].Pos}, true, nil
	}
	ref, ok, err := parseReference(tokens)
	if err != nil {
		return nil, false, err
	}
	if ok {
		return ref, true, nil
	}
	return parseCall(tokens)
}

// parseCall treats a trailing paren group as the argument list and
// everything before it as the callee.
func parseCall(tokens []lexer.Token) (ast.Value, bool, error) {
	n := len(tokens)
	if n < 2 || !tokens[n-1].IsGroup(lexer.Paren) {
		return nil, false, nil
	}
	callee, ok, err := parseValue(tokens[:n-1])
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, errorAt(tokens[0], "cannot parse into function call")
	}
	pieces, _ := split(tokens[n-1].Children, ',')
	args := make([]ast.Value, 0, len(pieces))
	for _, piece := range pieces {
		if len(piece) == 0 {
			continue
		}
		arg, ok, err := parseValue(piece)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, errorAt(piece[0], "cannot parse argument starting with %s", piece[0])
		}
		args = append(args, arg)
	}
	return &ast.FunCall{Callee: callee, Args: args, Pos: tokens[0].Pos}, true, nil
}

func parseLiteral(tokens []lexer.Token) (ast.Literal, bool, error) {
	switch len(tokens) {
	case 1:
		tok := tokens[0]
		switch tok.Kind {
		case lexer.Number:
			return ast.Num(tok.Num), true, nil
		case lexer.StringLit:
			return ast.Str(tok.Text), true, nil
		case lexer.CharLit:
			return ast.Char(tok.Char), true, nil
		case lexer.Word:
			switch tok.Text {
			case "Nope":
				return ast.Nope{}, true, nil
			case "True":
				return ast.Bool(true), true, nil
			case "False":
				return ast.Bool(false), true, nil
			}
		}
		return nil, false, nil
	case 2:
		if !tokens[0].IsGroup(lexer.Paren) || !tokens[1].IsGroup(lexer.Brace) {
			return nil, false, nil
		}
		fn, err := parseFunction(tokens[0], tokens[1])
		if err != nil {
			return nil, false, err
		}
		return ast.Fun{Callable: fn}, true, nil
	default:
		return nil, false, nil
	}
}

func parseFunction(params, body lexer.Token) (*ast.Function, error) {
	pieces, _ := split(params.Children, ',')
	args := make([]string, 0, len(pieces))
	seen := make(map[string]bool, len(pieces))
	for _, piece := range pieces {
		if len(piece) == 0 {
			continue
		}
		if len(piece) != 1 || piece[0].Kind != lexer.Word {
			return nil, errorAt(piece[0], "function parameters must be plain names")
		}
		name := piece[0].Text
		if seen[name] {
			return nil, errorAt(piece[0], "duplicate parameter %q", name)
		}
		seen[name] = true
		args = append(args, name)
	}
	stmts, err := parseStatements(body.Children, body.Pos)
	if err != nil {
		return nil, err
	}
	return &ast.Function{Args: args, Body: stmts, Pos: params.Pos}, nil
}

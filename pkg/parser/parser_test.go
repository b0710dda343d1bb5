package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/NomisIV/sand/pkg/ast"
)

// ignorePositions compares node shapes only; position tests live below.
var ignorePositions = cmp.Options{
	cmpopts.IgnoreTypes(ast.Position{}),
	cmp.Comparer(func(a, b ast.Set) bool { return ast.Equal(a, b) }),
}

func mustParse(t *testing.T, src string) ast.Statements {
	t.Helper()
	stmts, err := ParseSource(src, ast.Start("test.sand"))
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return stmts
}

func parseErr(t *testing.T, src string) *ParseError {
	t.Helper()
	_, err := ParseSource(src, ast.Start("test.sand"))
	if err == nil {
		t.Fatalf("parse %q: expected error", src)
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("parse %q: expected *ParseError, got %T: %v", src, err, err)
	}
	return parseErr
}

func TestParseFunCallArguments(t *testing.T) {
	stmts := mustParse(t, `foo(1, "hello", bar())`)
	want := ast.Statements{
		ast.Expr(ast.Call(ast.V("foo"),
			ast.L(ast.Num(1)),
			ast.L(ast.Str("hello")),
			ast.Call(ast.V("bar")),
		)),
	}
	if diff := cmp.Diff(want, stmts, ignorePositions); diff != "" {
		t.Fatalf("call mismatch (-want +got):\n%s", diff)
	}
	call := stmts[0].(*ast.ValueStatement).Val.(*ast.FunCall)
	if len(call.Args) != 3 {
		t.Fatalf("expected 3 arguments, got %d", len(call.Args))
	}
}

func TestParseStatements(t *testing.T) {
	stmts := mustParse(t, `let foo = "Hello World!"; foo`)
	want := ast.Statements{
		ast.Let(ast.V("foo"), ast.L(ast.Str("Hello World!"))),
		ast.Expr(ast.V("foo")),
	}
	if diff := cmp.Diff(want, stmts, ignorePositions); diff != "" {
		t.Fatalf("statements mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTrailingSemicolonAddsNope(t *testing.T) {
	stmts := mustParse(t, `let a = 1;`)
	want := ast.Statements{
		ast.Let(ast.V("a"), ast.L(ast.Num(1))),
		ast.Expr(ast.L(ast.Nope{})),
	}
	if diff := cmp.Diff(want, stmts, ignorePositions); diff != "" {
		t.Fatalf("statements mismatch (-want +got):\n%s", diff)
	}

	empty := mustParse(t, "")
	if diff := cmp.Diff(ast.Block(), empty, ignorePositions); diff != "" {
		t.Fatalf("empty program mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBraceWrappedProgram(t *testing.T) {
	stmts := mustParse(t, "{ let a = True; a }")
	want := ast.Statements{
		ast.Let(ast.V("a"), ast.L(ast.Bool(true))),
		ast.Expr(ast.V("a")),
	}
	if diff := cmp.Diff(want, stmts, ignorePositions); diff != "" {
		t.Fatalf("statements mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMembersAndChains(t *testing.T) {
	cases := []struct {
		src  string
		want ast.Value
	}{
		{"1.add(1)", ast.Call(ast.Dot(ast.L(ast.Num(1)), "add"), ast.L(ast.Num(1)))},
		{"a.b.c", ast.Dot(ast.Dot(ast.V("a"), "b"), "c")},
		{"foo.bar()()", ast.Call(ast.Call(ast.Dot(ast.V("foo"), "bar")))},
		{"f(x).y", ast.Dot(ast.Call(ast.V("f"), ast.V("x")), "y")},
		{"'c'", ast.L(ast.Char('c'))},
		{"Nope", ast.L(ast.Nope{})},
		{"False", ast.L(ast.Bool(false))},
	}
	for _, tc := range cases {
		stmts := mustParse(t, tc.src)
		if diff := cmp.Diff(ast.Statements{ast.Expr(tc.want)}, stmts, ignorePositions); diff != "" {
			t.Fatalf("%q mismatch (-want +got):\n%s", tc.src, diff)
		}
	}
}

func TestParseFunctionLiteral(t *testing.T) {
	stmts := mustParse(t, `(var) { var } ("foo")`)
	want := ast.Statements{
		ast.Expr(ast.Call(
			ast.L(ast.Fn([]string{"var"}, ast.Expr(ast.V("var")))),
			ast.L(ast.Str("foo")),
		)),
	}
	if diff := cmp.Diff(want, stmts, ignorePositions); diff != "" {
		t.Fatalf("function mismatch (-want +got):\n%s", diff)
	}

	fn := stmts[0].(*ast.ValueStatement).Val.(*ast.FunCall).Callee.(*ast.Lit).Val.(ast.Fun).Callable.(*ast.Function)
	if fn.Pos != ast.Pos("test.sand", 1, 1) {
		t.Fatalf("unexpected function position %v", fn.Pos)
	}

	empty := mustParse(t, "() {}")
	wantEmpty := ast.Statements{ast.Expr(ast.L(ast.Fn(nil)))}
	if diff := cmp.Diff(wantEmpty, empty, ignorePositions); diff != "" {
		t.Fatalf("empty function mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMemberAssignment(t *testing.T) {
	stmts := mustParse(t, `let Foo.bar = "x"`)
	want := ast.Statements{ast.Let(ast.Dot(ast.V("Foo"), "bar"), ast.L(ast.Str("x")))}
	if diff := cmp.Diff(want, stmts, ignorePositions); diff != "" {
		t.Fatalf("assignment mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInclude(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "main.sand")
	lib := filepath.Join(dir, "lib", "util.sand")
	if err := os.MkdirAll(filepath.Dir(lib), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(lib, []byte("let x = 1"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	stmts, err := ParseSource(`include "lib/../lib/util.sand"`, ast.Start(main))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	inc, ok := stmts[0].(*ast.Include)
	if !ok {
		t.Fatalf("expected *ast.Include, got %T", stmts[0])
	}
	want, err := filepath.EvalSymlinks(lib)
	if err != nil {
		t.Fatalf("eval symlinks: %v", err)
	}
	if inc.Path != want {
		t.Fatalf("expected path %q, got %q", want, inc.Path)
	}
	if inc.Raw != "lib/../lib/util.sand" {
		t.Fatalf("unexpected raw path %q", inc.Raw)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src string
		pos ast.Position
	}{
		{"let = 1", ast.Pos("test.sand", 1, 5)},
		{"let a", ast.Pos("test.sand", 1, 1)},
		{"let a = ", ast.Pos("test.sand", 1, 7)},
		{"a b", ast.Pos("test.sand", 1, 1)},
		{"a;;b", ast.Pos("test.sand", 1, 3)},
		{"include foo", ast.Pos("test.sand", 1, 1)},
		{"x y (1)", ast.Pos("test.sand", 1, 1)},
		{"f(1, a b)", ast.Pos("test.sand", 1, 6)},
		{"(1) { }", ast.Pos("test.sand", 1, 2)},
		{"(a, a) { a }", ast.Pos("test.sand", 1, 5)},
		{"() { let }", ast.Pos("test.sand", 1, 6)},
	}
	for _, tc := range cases {
		err := parseErr(t, tc.src)
		if err.Pos != tc.pos {
			t.Fatalf("%q: expected error at %v, got %v (%v)", tc.src, tc.pos, err.Pos, err)
		}
	}
}

func TestParseErrorFormat(t *testing.T) {
	err := parseErr(t, "a;;b")
	want := "test.sand:1:3: ParseError: empty statement"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

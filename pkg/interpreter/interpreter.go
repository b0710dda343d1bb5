package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/NomisIV/sand/pkg/ast"
)

// DefaultMaxDepth bounds nested calls when Options.MaxDepth is unset.
const DefaultMaxDepth = 10000

// SourceReader loads the file named by an include statement. It returns the
// path the contents were read from, which becomes the file of every position
// in the included program.
type SourceReader interface {
	ReadInclude(inc *ast.Include) (string, []byte, error)
}

// FileReader reads includes straight from the resolved path.
type FileReader struct{}

func (FileReader) ReadInclude(inc *ast.Include) (string, []byte, error) {
	data, err := os.ReadFile(inc.Path)
	if err != nil {
		return "", nil, err
	}
	return inc.Path, data, nil
}

// Options configures a new Interpreter. Zero values select stdout, stderr,
// FileReader and DefaultMaxDepth.
type Options struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Reader   SourceReader
	MaxDepth int
}

// Interpreter evaluates statement trees. It is not safe for concurrent use.
type Interpreter struct {
	stdout    io.Writer
	stderr    io.Writer
	reader    SourceReader
	maxDepth  int
	depth     int
	including []string
}

func New(opts Options) *Interpreter {
	interp := &Interpreter{
		stdout:   opts.Stdout,
		stderr:   opts.Stderr,
		reader:   opts.Reader,
		maxDepth: opts.MaxDepth,
	}
	if interp.stdout == nil {
		interp.stdout = os.Stdout
	}
	if interp.stderr == nil {
		interp.stderr = os.Stderr
	}
	if interp.reader == nil {
		interp.reader = FileReader{}
	}
	if interp.maxDepth <= 0 {
		interp.maxDepth = DefaultMaxDepth
	}
	return interp
}

// SetOutput redirects program output. Nil writers leave the current one.
func (i *Interpreter) SetOutput(stdout, stderr io.Writer) {
	if stdout != nil {
		i.stdout = stdout
	}
	if stderr != nil {
		i.stderr = stderr
	}
}

func (i *Interpreter) Stdout() io.Writer { return i.stdout }
func (i *Interpreter) Stderr() io.Writer { return i.stderr }

// RunFile runs the statements parsed from path. The path is tracked so an
// include that leads back to it is reported as a cycle.
func (i *Interpreter) RunFile(path string, stmts ast.Statements, scope *ast.Scope) (ast.Literal, error) {
	if path != "" {
		i.including = append(i.including, path)
		defer i.popInclude()
	}
	return i.Run(stmts, scope)
}

func (i *Interpreter) popInclude() {
	i.including = i.including[:len(i.including)-1]
}

// Run executes stmts in order against scope and returns the result of the
// last one.
func (i *Interpreter) Run(stmts ast.Statements, scope *ast.Scope) (ast.Literal, error) {
	var result ast.Literal = ast.Nope{}
	for _, stmt := range stmts {
		val, err := i.Exec(stmt, scope)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}

// Exec executes one statement.
func (i *Interpreter) Exec(stmt ast.Statement, scope *ast.Scope) (ast.Literal, error) {
	switch n := stmt.(type) {
	case *ast.Assignment:
		return i.assign(n, scope)
	case *ast.ValueStatement:
		return i.Eval(n.Val, scope)
	case *ast.Include:
		return i.include(n, scope)
	default:
		return nil, fmt.Errorf("interpreter: unsupported statement %T", stmt)
	}
}

// Eval evaluates one expression.
func (i *Interpreter) Eval(val ast.Value, scope *ast.Scope) (ast.Literal, error) {
	switch n := val.(type) {
	case *ast.Lit:
		return n.Val, nil
	case *ast.Var:
		lit, ok := scope.Get(n.Name)
		if !ok {
			return nil, Errorf(NotInScope, n.Pos, "%s is not in scope", n.Name)
		}
		return lit, nil
	case *ast.Member:
		return i.member(n, scope)
	case *ast.FunCall:
		return i.call(n, scope)
	default:
		return nil, fmt.Errorf("interpreter: unsupported value %T", val)
	}
}

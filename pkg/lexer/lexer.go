package lexer

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/NomisIV/sand/pkg/ast"
)

// TokenError reports malformed lexical input. Incomplete is set when the
// input simply ended too early (an open group or string), which lets
// interactive callers ask for more lines instead of failing.
type TokenError struct {
	Pos        ast.Position
	Msg        string
	Incomplete bool
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("%s: TokenError: %s", e.Pos, e.Msg)
}

// frame is an open group waiting for its closer.
type frame struct {
	kind     GroupKind
	pos      ast.Position
	children []Token
}

type lexer struct {
	src    []rune
	idx    int
	file   string
	row    int
	col    int
	frames *arraystack.Stack
	out    []Token
}

// Tokenize splits src into tokens. start is the position of src's first
// character; included files pass their own path here.
func Tokenize(src string, start ast.Position) ([]Token, error) {
	row, col := start.Row, start.Col
	if row <= 0 {
		row = 1
	}
	if col <= 0 {
		col = 1
	}
	lx := &lexer{
		src:    []rune(src),
		file:   start.File,
		row:    row,
		col:    col,
		frames: arraystack.New(),
	}
	if err := lx.run(); err != nil {
		return nil, err
	}
	if lx.out == nil {
		lx.out = []Token{}
	}
	return lx.out, nil
}

func (lx *lexer) pos() ast.Position {
	return ast.Position{File: lx.file, Row: lx.row, Col: lx.col}
}

func (lx *lexer) peek(offset int) (rune, bool) {
	at := lx.idx + offset
	if at >= len(lx.src) {
		return 0, false
	}
	return lx.src[at], true
}

func (lx *lexer) advance() rune {
	r := lx.src[lx.idx]
	lx.idx++
	if r == '\n' {
		lx.row++
		lx.col = 1
	} else {
		lx.col++
	}
	return r
}

func (lx *lexer) fail(pos ast.Position, format string, args ...any) error {
	return &TokenError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (lx *lexer) emit(tok Token) {
	if top, ok := lx.frames.Peek(); ok {
		fr := top.(*frame)
		fr.children = append(fr.children, tok)
		return
	}
	lx.out = append(lx.out, tok)
}

func (lx *lexer) run() error {
	for lx.idx < len(lx.src) {
		r, _ := lx.peek(0)
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			lx.advance()
		case r == '#':
			for lx.idx < len(lx.src) && lx.src[lx.idx] != '\n' {
				lx.advance()
			}
		case r == '(' || r == '[' || r == '{':
			lx.frames.Push(&frame{kind: groupFor(r), pos: lx.pos()})
			lx.advance()
		case r == ')' || r == ']' || r == '}':
			if err := lx.closeGroup(r); err != nil {
				return err
			}
		case isDigit(r):
			if err := lx.number(); err != nil {
				return err
			}
		case r == '_' || unicode.IsLetter(r):
			lx.word()
		case r == '"':
			if err := lx.str(); err != nil {
				return err
			}
		case r == '\'':
			if err := lx.char(); err != nil {
				return err
			}
		default:
			lx.emit(Token{Kind: Punct, Pos: lx.pos(), Char: r})
			lx.advance()
		}
	}
	if top, ok := lx.frames.Peek(); ok {
		fr := top.(*frame)
		return &TokenError{
			Pos:        fr.pos,
			Msg:        fmt.Sprintf("unclosed %q", fr.kind.Open()),
			Incomplete: true,
		}
	}
	return nil
}

func groupFor(open rune) GroupKind {
	switch open {
	case '[', ']':
		return Bracket
	case '{', '}':
		return Brace
	default:
		return Paren
	}
}

func (lx *lexer) closeGroup(closer rune) error {
	pos := lx.pos()
	top, ok := lx.frames.Pop()
	if !ok {
		return lx.fail(pos, "unexpected %q", closer)
	}
	fr := top.(*frame)
	if fr.kind != groupFor(closer) {
		return lx.fail(pos, "expected %q to close %q opened at %s, found %q",
			fr.kind.Close(), fr.kind.Open(), fr.pos, closer)
	}
	lx.advance()
	children := fr.children
	if children == nil {
		children = []Token{}
	}
	lx.emit(Token{Kind: Group, Pos: fr.pos, Delim: fr.kind, Children: children})
	return nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (lx *lexer) number() error {
	pos := lx.pos()
	startIdx := lx.idx
	for lx.idx < len(lx.src) && isDigit(lx.src[lx.idx]) {
		lx.advance()
	}
	// A dot belongs to the number only when a digit follows it; `5.add` is a
	// method call on 5.
	if dot, ok := lx.peek(0); ok && dot == '.' {
		if next, ok := lx.peek(1); ok && isDigit(next) {
			lx.advance()
			for lx.idx < len(lx.src) && isDigit(lx.src[lx.idx]) {
				lx.advance()
			}
		}
	}
	text := string(lx.src[startIdx:lx.idx])
	num, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return lx.fail(pos, "malformed number %q", text)
	}
	lx.emit(Token{Kind: Number, Pos: pos, Num: num})
	return nil
}

func (lx *lexer) word() {
	pos := lx.pos()
	startIdx := lx.idx
	for lx.idx < len(lx.src) {
		r := lx.src[lx.idx]
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		lx.advance()
	}
	lx.emit(Token{Kind: Word, Pos: pos, Text: string(lx.src[startIdx:lx.idx])})
}

// escape decodes the character after a backslash. The backslash has already
// been consumed.
func (lx *lexer) escape(at ast.Position) (rune, error) {
	r, ok := lx.peek(0)
	if !ok {
		return 0, &TokenError{Pos: at, Msg: "unterminated escape sequence", Incomplete: true}
	}
	lx.advance()
	switch r {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case '0':
		return 0, nil
	case '"', '\'', '\\':
		return r, nil
	default:
		return 0, lx.fail(at, "unknown escape sequence \\%c", r)
	}
}

func (lx *lexer) str() error {
	pos := lx.pos()
	lx.advance()
	var buf []rune
	for {
		r, ok := lx.peek(0)
		if !ok {
			return &TokenError{Pos: pos, Msg: "unterminated string literal", Incomplete: true}
		}
		if r == '"' {
			lx.advance()
			break
		}
		if r == '\\' {
			at := lx.pos()
			lx.advance()
			decoded, err := lx.escape(at)
			if err != nil {
				return err
			}
			buf = append(buf, decoded)
			continue
		}
		buf = append(buf, lx.advance())
	}
	lx.emit(Token{Kind: StringLit, Pos: pos, Text: string(buf)})
	return nil
}

func (lx *lexer) char() error {
	pos := lx.pos()
	lx.advance()
	r, ok := lx.peek(0)
	if !ok {
		return &TokenError{Pos: pos, Msg: "unterminated char literal", Incomplete: true}
	}
	var value rune
	switch r {
	case '\'':
		return lx.fail(pos, "empty char literal")
	case '\n':
		return lx.fail(pos, "newline in char literal")
	case '\\':
		at := lx.pos()
		lx.advance()
		decoded, err := lx.escape(at)
		if err != nil {
			return err
		}
		value = decoded
	default:
		value = lx.advance()
	}
	closer, ok := lx.peek(0)
	if !ok {
		return &TokenError{Pos: pos, Msg: "unterminated char literal", Incomplete: true}
	}
	if closer != '\'' {
		return lx.fail(pos, "char literal must contain exactly one character")
	}
	lx.advance()
	lx.emit(Token{Kind: CharLit, Pos: pos, Char: value})
	return nil
}

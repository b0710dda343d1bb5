package lexer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/NomisIV/sand/pkg/ast"
)

// TokenKind tags the variant held by a Token.
type TokenKind int

const (
	StringLit TokenKind = iota
	CharLit
	Number
	Word
	Punct
	Group
)

func (k TokenKind) String() string {
	switch k {
	case StringLit:
		return "string"
	case CharLit:
		return "char"
	case Number:
		return "number"
	case Word:
		return "word"
	case Punct:
		return "punct"
	case Group:
		return "group"
	default:
		return fmt.Sprintf("token_kind_%d", int(k))
	}
}

// GroupKind records which bracket pair produced a Group token.
type GroupKind int

const (
	Paren GroupKind = iota
	Bracket
	Brace
)

func (g GroupKind) Open() rune {
	switch g {
	case Bracket:
		return '['
	case Brace:
		return '{'
	default:
		return '('
	}
}

func (g GroupKind) Close() rune {
	switch g {
	case Bracket:
		return ']'
	case Brace:
		return '}'
	default:
		return ')'
	}
}

func (g GroupKind) String() string {
	switch g {
	case Bracket:
		return "bracket"
	case Brace:
		return "brace"
	default:
		return "paren"
	}
}

// Token is a positioned lexical unit. Only the fields relevant to Kind are set:
// Text for StringLit and Word, Char for CharLit and Punct, Num for Number, and
// Delim plus Children for Group.
type Token struct {
	Kind     TokenKind
	Pos      ast.Position
	Text     string
	Char     rune
	Num      float64
	Delim    GroupKind
	Children []Token
}

// IsPunct reports whether t is the punctuation character r.
func (t Token) IsPunct(r rune) bool {
	return t.Kind == Punct && t.Char == r
}

// IsWord reports whether t is the bare word w.
func (t Token) IsWord(w string) bool {
	return t.Kind == Word && t.Text == w
}

// IsGroup reports whether t is a group delimited by kind.
func (t Token) IsGroup(kind GroupKind) bool {
	return t.Kind == Group && t.Delim == kind
}

func (t Token) String() string {
	switch t.Kind {
	case StringLit:
		return strconv.Quote(t.Text)
	case CharLit:
		return strconv.QuoteRune(t.Char)
	case Number:
		return ast.FormatNum(t.Num)
	case Word:
		return t.Text
	case Punct:
		return string(t.Char)
	case Group:
		parts := make([]string, 0, len(t.Children))
		for _, child := range t.Children {
			parts = append(parts, child.String())
		}
		return string(t.Delim.Open()) + strings.Join(parts, " ") + string(t.Delim.Close())
	default:
		return "?"
	}
}

// Fprint writes one token per line, children indented under their group.
func Fprint(w io.Writer, tokens []Token) error {
	return fprint(w, tokens, 0)
}

func fprint(w io.Writer, tokens []Token, depth int) error {
	indent := strings.Repeat("  ", depth)
	for _, tok := range tokens {
		var err error
		if tok.Kind == Group {
			_, err = fmt.Fprintf(w, "%s%s %s %c\n", indent, tok.Pos, tok.Delim, tok.Delim.Open())
			if err == nil {
				err = fprint(w, tok.Children, depth+1)
			}
			if err == nil {
				_, err = fmt.Fprintf(w, "%s%c\n", indent, tok.Delim.Close())
			}
		} else {
			_, err = fmt.Fprintf(w, "%s%s %s %s\n", indent, tok.Pos, tok.Kind, tok.String())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

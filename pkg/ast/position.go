package ast

import "fmt"

// IntrinsicFile names the pseudo-file used for positions that originate in
// native code rather than in a source file.
const IntrinsicFile = "<intrinsic>"

// Position locates a token or node in a source file. Rows and columns are 1-based.
type Position struct {
	File string `json:"file"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

// Pos builds a position value.
func Pos(file string, row, col int) Position {
	return Position{File: file, Row: row, Col: col}
}

// Start returns the position of the first character of file.
func Start(file string) Position {
	return Position{File: file, Row: 1, Col: 1}
}

// Internal is the position attached to nodes synthesized by intrinsics.
func Internal() Position {
	return Position{File: IntrinsicFile}
}

func (p Position) IsZero() bool {
	return p == Position{}
}

func (p Position) String() string {
	file := p.File
	if file == "" {
		file = "<unknown>"
	}
	if p.Row <= 0 {
		return file
	}
	return fmt.Sprintf("%s:%d:%d", file, p.Row, p.Col)
}

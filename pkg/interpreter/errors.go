package interpreter

import (
	"errors"
	"fmt"

	"github.com/NomisIV/sand/pkg/ast"
)

// ErrorKind classifies runtime failures.
type ErrorKind int

const (
	NotInScope ErrorKind = iota
	NoSuchMember
	MismatchedArity
	TypeMismatch
	UnsupportedReference
	IncludeFailed
	DepthExceeded
	Dumped
	NativeFailure
)

func (k ErrorKind) String() string {
	switch k {
	case NotInScope:
		return "NotInScope"
	case NoSuchMember:
		return "NoSuchMember"
	case MismatchedArity:
		return "MismatchedArity"
	case TypeMismatch:
		return "TypeMismatch"
	case UnsupportedReference:
		return "UnsupportedReference"
	case IncludeFailed:
		return "IncludeFailed"
	case DepthExceeded:
		return "DepthExceeded"
	case Dumped:
		return "Dumped"
	case NativeFailure:
		return "NativeFailure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is an interpreting error. Err holds the underlying failure for
// errors that wrap another stage, such as a bad include.
type Error struct {
	Kind ErrorKind
	Pos  ast.Position
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return fmt.Sprintf("%s: InterpretingError: %s", e.Pos, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an *Error. Native code may pass a zero position; the
// interpreter fills in the call site.
func Errorf(kind ErrorKind, pos ast.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// ConversionError reports a literal of the wrong kind where a specific kind
// was required, for example a non-integral exit code.
type ConversionError struct {
	Pos ast.Position
	Msg string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: ConversionError: %s", e.Pos, e.Msg)
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		var ierr *Error
		if !errors.As(err, &ierr) {
			return false
		}
		if ierr.Kind == kind {
			return true
		}
		err = ierr.Err
	}
	return false
}

// locate attaches pos to errors raised by native code without a position,
// and wraps foreign errors as NativeFailure.
func locate(err error, pos ast.Position) error {
	var ierr *Error
	if errors.As(err, &ierr) {
		if ierr.Pos.IsZero() {
			ierr.Pos = pos
		}
		return err
	}
	var cerr *ConversionError
	if errors.As(err, &cerr) {
		if cerr.Pos.IsZero() {
			cerr.Pos = pos
		}
		return err
	}
	return &Error{Kind: NativeFailure, Pos: pos, Msg: "intrinsic failed", Err: err}
}

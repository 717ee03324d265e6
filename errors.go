package styml

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/dfeneyrou/styml-go/convert"
	"github.com/dfeneyrou/styml-go/internal/parse"
)

// ParseError is returned by Parse/ParseBytes when the input is malformed.
// It carries the 1-based line number and a copy of the offending line.
type ParseError struct {
	Line    int
	Column  int
	Snippet string
	cause   error
}

func (e *ParseError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.cause)
	}
	return fmt.Sprintf("parse error at line %d: %s: %s", e.Line, e.cause, e.Snippet)
}

func (e *ParseError) Unwrap() error { return e.cause }

func wrapParseError(err error) *ParseError {
	if pe, ok := err.(*parse.Error); ok {
		return &ParseError{Line: pe.Line + 1, Column: pe.Column, Snippet: pe.Snippet, cause: pe}
	}
	return &ParseError{Line: 0, cause: err}
}

// AccessKind identifies why an AccessError was raised, so callers can
// branch on AccessError.Kind (after errors.As) against the constants
// below.
type AccessKind int

const (
	WrongKind AccessKind = iota
	OutOfBounds
	DuplicateKey
	AbsentKey
	BadConversion
)

// AccessError is returned by Node operations applied to the wrong kind,
// out-of-bounds sequence indices, duplicate-key inserts, and reads
// through a Node obtained from an absent key.
type AccessError struct {
	Kind    AccessKind
	Message string
	cause   error
}

func (e *AccessError) Error() string {
	if e.cause != nil {
		return errors.Wrap(e.cause, e.Message).Error()
	}
	return e.Message
}

func (e *AccessError) Unwrap() error { return e.cause }

func newAccessError(kind AccessKind, format string, args ...any) *AccessError {
	return &AccessError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ConvertError is raised by the external conversion layer (int/float/bool
// decoding) and surfaced at the Node boundary wrapped as an AccessError
// with the original message attached, per §7.
type ConvertError = convert.Error

func wrapConvertError(err error) *AccessError {
	return &AccessError{Kind: BadConversion, Message: "scalar conversion failed", cause: err}
}

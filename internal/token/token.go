// Package token implements the indentation-driven tokenizer: it consumes
// source text and emits Key | Value | Caret | Comment | Newline | Eos
// tokens with column and a materialized scalar payload, threading
// comments, block openings, and caret-prefixed sequences through the
// parser driver's indentation stack.
package token

import "github.com/dfeneyrou/styml-go/internal/tree"

// Kind identifies a token type.
type Kind uint8

const (
	Newline Kind = iota
	CaretTok
	CommentTok
	KeyTok
	StringValue
	Eos
)

func (k Kind) String() string {
	switch k {
	case Newline:
		return "Newline"
	case CaretTok:
		return "Caret"
	case CommentTok:
		return "Comment"
	case KeyTok:
		return "Key"
	case StringValue:
		return "StringValue"
	default:
		return "Eos"
	}
}

// Token is one lexical unit. Column is the 0-based column at which the
// token's content begins. For Key/StringValue/Comment, StrOff/StrLen
// locate the materialized payload in the shared Arena.
type Token struct {
	Kind   Kind
	Line   int
	Column int
	StrOff uint32
	StrLen uint32
	// Standalone is set on Comment tokens that began their own line.
	Standalone bool
}

// Text resolves a token's materialized payload.
func (t Token) Text(a *tree.Arena) string {
	return a.String(t.StrOff, t.StrLen)
}

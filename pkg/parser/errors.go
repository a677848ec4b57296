package parser

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/naolduga/mvir/pkg/ast"
)

// Error is a parse failure. It carries the byte span of the offending
// input alongside the file/line/column position. All failures are fatal;
// the parser never recovers past the first one.
type Error struct {
	Pos  lexer.Position
	Span ast.Span
	Msg  string
}

func (e *Error) Error() string {
	if e.Pos.Filename != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename, e.Pos.Line, e.Pos.Column, e.Msg)
	}
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

func errAt(t lexer.Token, format string, args ...interface{}) *Error {
	return &Error{
		Pos:  t.Pos,
		Span: tokenSpan(t),
		Msg:  fmt.Sprintf(format, args...),
	}
}

// describe renders a token for error messages.
func describe(t lexer.Token) string {
	if t.EOF() {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Value)
}

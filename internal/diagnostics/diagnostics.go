// Package diagnostics defines the structured errors reported by the
// lexer and parser. Runtime failures (evaluation, solving) use plain
// wrapped errors instead; diagnostics carry source positions and are
// meant for user-facing reporting.
package diagnostics

import (
	"fmt"

	"github.com/equalang/equa/internal/token"
)

type ErrorCode string

const (
	// Lexer
	ErrL001 ErrorCode = "L001" // illegal character
	ErrL002 ErrorCode = "L002" // malformed number literal

	// Parser
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // no prefix parse rule
	ErrP003 ErrorCode = "P003" // unterminated parenthesis
	ErrP004 ErrorCode = "P004" // malformed function call
	ErrP005 ErrorCode = "P005" // chained '=' in a statement
	ErrP000 ErrorCode = "P000" // internal: missing pipeline input
)

type DiagnosticError struct {
	Code    ErrorCode
	File    string
	Line    int
	Column  int
	Message string
}

func NewError(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Line:    tok.Line,
		Column:  tok.Column,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d %s: %s", e.File, e.Line, e.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("%d:%d %s: %s", e.Line, e.Column, e.Code, e.Message)
}

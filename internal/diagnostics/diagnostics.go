// Package diagnostics defines the structured errors surfaced by the
// translation pipeline. Formatting for human consumption lives with the
// callers (CLI, expander); this package only carries codes and positions.
package diagnostics

import (
	"fmt"

	"github.com/ShihHsuanChen/gocomp/internal/token"
)

type ErrorCode string

const (
	// ErrC000 is an internal safeguard: a pipeline stage ran without its
	// input being populated by the stage before it.
	ErrC000 ErrorCode = "C000"

	// ErrC001 MalformedComprehension: the mapping expression at the start
	// of the fragment is missing or not a valid host expression.
	ErrC001 ErrorCode = "C001"

	// ErrC002 MissingForClause: the grammar requires at least one 'for'
	// clause after the mapping.
	ErrC002 ErrorCode = "C002"

	// ErrC003 MalformedPattern: 'for' not followed by a valid
	// comma-separated name list.
	ErrC003 ErrorCode = "C003"

	// ErrC004 MalformedClause: missing 'in', missing or invalid sequence
	// expression, or 'if' without a valid predicate.
	ErrC004 ErrorCode = "C004"

	// ErrC005 TrailingInput: input remains after a complete comprehension.
	ErrC005 ErrorCode = "C005"

	// ErrX001 covers host-side expander failures: file I/O, unterminated
	// markers, bad configuration.
	ErrX001 ErrorCode = "X001"
)

// DiagnosticError is one error produced during translation. Line and Column
// are positions inside the comprehension fragment; the expander rebases them
// onto the enclosing file before presentation.
type DiagnosticError struct {
	Code    ErrorCode
	Message string
	Line    int
	Column  int
	File    string
}

func NewError(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: [%s] %s", e.File, e.Line, e.Column, e.Code, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: [%s] %s", e.Line, e.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

package todo

import (
	"errors"
	"fmt"

	"github.com/mytec0l/ToDoListParser/internal/grammar"
)

type ErrorKind int

const (
	KindSyntax ErrorKind = iota
	KindEmptyFile
	KindMissingStatus
)

func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindEmptyFile:
		return "empty file"
	case KindMissingStatus:
		return "missing status"
	}
	return "unknown"
}

// Sentinels for errors.Is checks against a *ParseError.
var (
	ErrSyntax        = errors.New("syntax error")
	ErrEmptyFile     = errors.New("empty file")
	ErrMissingStatus = errors.New("task has no status")
)

// ParseError is the only error ParseFile returns.
type ParseError struct {
	Kind   ErrorKind
	Syntax *grammar.SyntaxError // set for KindSyntax
	Line   int                  // 1-based line of the offending task, 0 when unknown
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindSyntax:
		return fmt.Sprintf("syntax error: %v", e.Syntax)
	case KindMissingStatus:
		if e.Line > 0 {
			return fmt.Sprintf("line %d: %v", e.Line, ErrMissingStatus)
		}
		return ErrMissingStatus.Error()
	}
	return e.sentinel().Error()
}

// Unwrap returns the underlying *grammar.SyntaxError, if any.
func (e *ParseError) Unwrap() error {
	if e.Syntax != nil {
		return e.Syntax
	}
	return nil
}

// Is matches the sentinel of the error's kind.
func (e *ParseError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *ParseError) sentinel() error {
	switch e.Kind {
	case KindSyntax:
		return ErrSyntax
	case KindEmptyFile:
		return ErrEmptyFile
	case KindMissingStatus:
		return ErrMissingStatus
	}
	return nil
}

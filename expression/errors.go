package expression

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies pipeline failures. It implements error so that
// failures can be matched with errors.Is.
type ErrorKind int

const (
	InvalidNumber ErrorKind = iota + 1
	UnexpectedCharacter
	MismatchedParenthesis
	DivisionByZero
	MalformedExpression
)

var kindNames = map[ErrorKind]string{
	InvalidNumber:         "invalid number",
	UnexpectedCharacter:   "unexpected character",
	MismatchedParenthesis: "mismatched parenthesis",
	DivisionByZero:        "division by zero",
	MalformedExpression:   "malformed expression",
}

func (k ErrorKind) Error() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown error"
}

// Error is a pipeline failure of a given kind, e.g.
// `invalid number: "1.2.3" at offset 0`.
type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	return e.Kind.Error() + ": " + e.Detail
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func kindErrorf(kind ErrorKind, format string, args ...interface{}) error {
	return errors.WithStack(&Error{
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
	})
}

// KindOf returns the kind of a pipeline error, or 0 if err did not come
// from the pipeline.
func KindOf(err error) ErrorKind {
	var kind ErrorKind
	if errors.As(err, &kind) {
		return kind
	}
	return 0
}

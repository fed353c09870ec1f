package sgf

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSgf      = errors.New("invalid sgf")
	ErrInvalidGameTree = errors.New("invalid game tree")
	ErrInvalidNode     = errors.New("invalid node")
	ErrInvalidProperty = errors.New("invalid property")
	ErrInvalidString   = errors.New("invalid string")
)

// ParseError describes where a record stopped parsing. Kind is one of the
// Err* values above and is what errors.Is matches against.
type ParseError struct {
	Kind error
	Line int
	Col  int
	Err  error // detail, if any
}

func (e *ParseError) Error() string {
	msg := e.Kind.Error()
	switch {
	case e.Err == nil:
	case errors.Is(e.Err, e.Kind):
		msg = e.Err.Error()
	default:
		msg += ": " + e.Err.Error()
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, msg)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// propertyError wraps ErrInvalidProperty with a reason for the constructor.
func propertyError(ident, format string, args ...interface{}) error {
	return fmt.Errorf("%w %s: %s", ErrInvalidProperty, ident, fmt.Sprintf(format, args...))
}

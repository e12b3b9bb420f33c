package roundpeg

import (
	"errors"
	"fmt"
)

// Error kinds. Callers branch on cause with errors.Is.
var (
	// ErrInvalidArgument reports a type or contract violation: a value of
	// the wrong kind was supplied.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDomain reports a value of the right kind that violates a domain
	// constraint, such as a negative radius.
	ErrDomain = errors.New("domain error")

	// ErrNotWidthReporter reports that an object handed to a fit-test does
	// not implement WidthReporter. It is a contract violation.
	ErrNotWidthReporter = fmt.Errorf("%w: does not implement WidthReporter", ErrInvalidArgument)
)

// ValueError records the operation and the value that failed validation.
type ValueError struct {
	Op    string // e.g. "NewCircle"
	Value any    // offending value as supplied
	Msg   string // constraint in words
	Err   error  // one of the sentinel kinds above
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("roundpeg: %s: %s (got %v of type %T)", e.Op, e.Msg, e.Value, e.Value)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

func invalidArgument(op string, v any, msg string) error {
	return &ValueError{Op: op, Value: v, Msg: msg, Err: ErrInvalidArgument}
}

func domainError(op string, v any, msg string) error {
	return &ValueError{Op: op, Value: v, Msg: msg, Err: ErrDomain}
}

func notWidthReporter(op string, v any) error {
	return &ValueError{Op: op, Value: v, Msg: "object does not implement Width() float64", Err: ErrNotWidthReporter}
}

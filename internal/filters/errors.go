// Package filters provides the built-in template value filters.
// This file defines the structured error type shared by all filters.
package filters

import (
	"fmt"

	"github.com/verso-run/verso/internal/value"
)

// ErrorKind classifies a filter failure.
type ErrorKind string

// Filter error kinds.
const (
	// KindTypeMismatch means the primary value or a named argument did not
	// have the primitive type the filter requires.
	KindTypeMismatch ErrorKind = "type_mismatch"

	// KindInvalidArgument means an argument had the right type but an
	// unsupported value (e.g. an unrecognized rounding method).
	KindInvalidArgument ErrorKind = "invalid_argument"

	// KindNegativeSize means a size-formatting filter received a number
	// outside the representable non-negative integer range.
	KindNegativeSize ErrorKind = "negative_size"

	// KindScript means a script-defined filter failed to execute.
	KindScript ErrorKind = "script"
)

// Error is a structured filter failure. It always names the filter and the
// offending argument ("value" for the primary input) so that the renderer
// can report exactly which invocation failed.
type Error struct {
	Kind     ErrorKind
	Filter   string
	Arg      string
	Expected string      // expected type, set for type mismatches
	Got      value.Value // actual value, set for type mismatches
	Message  string      // domain message, set for the other kinds
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTypeMismatch:
		return fmt.Sprintf("filter %q received an incorrect type for arg %q: got %s but expected %s",
			e.Filter, e.Arg, e.Got.Repr(), e.Expected)
	case KindInvalidArgument:
		return fmt.Sprintf("filter %q received an incorrect value for arg %q: %s",
			e.Filter, e.Arg, e.Message)
	default:
		return fmt.Sprintf("filter %q: %s", e.Filter, e.Message)
	}
}

// newTypeMismatch builds a type-mismatch error for the given call site.
func newTypeMismatch(filter, arg, expected string, got value.Value) *Error {
	return &Error{
		Kind:     KindTypeMismatch,
		Filter:   filter,
		Arg:      arg,
		Expected: expected,
		Got:      got,
	}
}

// newInvalidArgument builds an invalid-argument error for an argument that
// had the right type but an unsupported value.
func newInvalidArgument(filter, arg, message string) *Error {
	return &Error{
		Kind:    KindInvalidArgument,
		Filter:  filter,
		Arg:     arg,
		Message: message,
	}
}

// newNegativeSize builds the error returned when a size filter is handed a
// number that cannot be represented as a non-negative integer.
func newNegativeSize(filter string, got value.Value) *Error {
	return &Error{
		Kind:    KindNegativeSize,
		Filter:  filter,
		Arg:     "value",
		Message: fmt.Sprintf("was called on a negative or fractional number: %s", got.Repr()),
	}
}

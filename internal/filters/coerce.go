// Package filters provides the built-in template value filters.
// This file implements the coercion helper that extracts a concretely typed
// Go value from a dynamic value, used by every filter call site.
package filters

import (
	"math"

	"github.com/verso-run/verso/internal/value"
)

// coerce extracts a value of type T from a dynamic value, failing with a
// type-mismatch error that names the filter and the argument ("value" for
// the primary input). Extraction is exact-variant only: no string-to-number
// or number-to-string conversion is attempted. The float64 target accepts
// the integer variant as a lossless widening; the int64 target does not
// accept floats. The uint64 target additionally rejects negative and
// fractional numbers with a negative-size error, distinct from a type
// mismatch.
func coerce[T float64 | int64 | uint64 | string](filter, arg string, v value.Value) (T, error) {
	var zero T
	switch any(zero).(type) {
	case float64:
		f, ok := v.AsFloat()
		if !ok {
			return zero, newTypeMismatch(filter, arg, "a number", v)
		}
		return any(f).(T), nil
	case int64:
		i, ok := v.AsInt()
		if !ok {
			return zero, newTypeMismatch(filter, arg, "an integer", v)
		}
		return any(i).(T), nil
	case uint64:
		if !v.IsNumber() {
			return zero, newTypeMismatch(filter, arg, "a non-negative integer", v)
		}
		if i, ok := v.AsInt(); ok {
			if i < 0 {
				return zero, newNegativeSize(filter, v)
			}
			return any(uint64(i)).(T), nil
		}
		f, _ := v.AsFloat()
		if f < 0 || f != math.Trunc(f) || f > math.MaxUint64 {
			return zero, newNegativeSize(filter, v)
		}
		return any(uint64(f)).(T), nil
	case string:
		s, ok := v.AsString()
		if !ok {
			return zero, newTypeMismatch(filter, arg, "a string", v)
		}
		return any(s).(T), nil
	default:
		// Unreachable: the constraint admits no other types.
		return zero, newTypeMismatch(filter, arg, "a supported type", v)
	}
}

// coerceArg looks up a named argument and coerces it, falling back to a
// default when the argument is absent. Present arguments must have the
// expected type; absence is never an error.
func coerceArg[T float64 | int64 | uint64 | string](filter, arg string, args Args, def T) (T, error) {
	v, ok := args[arg]
	if !ok {
		return def, nil
	}
	return coerce[T](filter, arg, v)
}

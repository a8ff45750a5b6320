// Package filters provides the built-in template value filters.
// This file implements the numeric filters: pluralize, round, and
// filesizeformat.
package filters

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/verso-run/verso/internal/value"
)

// float64Epsilon is the machine epsilon of float64: the gap between 1.0 and
// the next representable value.
var float64Epsilon = math.Nextafter(1, 2) - 1

// Rounding methods accepted by the round filter.
const (
	RoundCommon = "common"
	RoundCeil   = "ceil"
	RoundFloor  = "floor"
)

// Pluralize returns a plural suffix when the value is not equal to ±1, and a
// singular suffix otherwise. The plural suffix defaults to "s" and the
// singular suffix defaults to the empty string.
//
// Arguments:
//   - plural (string, default "s"): suffix used when the value is not singular
//   - singular (string, default ""): suffix used when the value is ±1
func Pluralize(v value.Value, args Args) (value.Value, error) {
	num, err := coerce[float64]("pluralize", "value", v)
	if err != nil {
		return value.Null(), err
	}

	plural, err := coerceArg("pluralize", "plural", args, "s")
	if err != nil {
		return value.Null(), err
	}
	singular, err := coerceArg("pluralize", "singular", args, "")
	if err != nil {
		return value.Null(), err
	}

	// English uses the plural form whenever the count isn't one.
	if math.Abs(math.Abs(num)-1) > float64Epsilon {
		return value.String(plural), nil
	}
	return value.String(singular), nil
}

// Round rounds a number using the given method and precision.
//
// Arguments:
//   - method (string, default "common"): "common" rounds to the nearest value
//     with ties away from zero; "ceil" rounds toward positive infinity;
//     "floor" rounds toward negative infinity
//   - precision (integer, default 0): decimal digits to keep; negative values
//     round to tens, hundreds, and so on
//
// The result is always a float, even at precision 0. Scaled rounding through
// a power-of-ten multiplier inherits ordinary binary floating-point
// representation error; exact decimal rounding is not guaranteed.
func Round(v value.Value, args Args) (value.Value, error) {
	num, err := coerce[float64]("round", "value", v)
	if err != nil {
		return value.Null(), err
	}
	method, err := coerceArg("round", "method", args, RoundCommon)
	if err != nil {
		return value.Null(), err
	}
	precision, err := coerceArg[int64]("round", "precision", args, 0)
	if err != nil {
		return value.Null(), err
	}

	multiplier := 1.0
	if precision != 0 {
		multiplier = math.Pow(10, float64(precision))
	}

	switch method {
	case RoundCommon:
		return value.Float(math.Round(num*multiplier) / multiplier), nil
	case RoundCeil:
		return value.Float(math.Ceil(num*multiplier) / multiplier), nil
	case RoundFloor:
		return value.Float(math.Floor(num*multiplier) / multiplier), nil
	default:
		return value.Null(), newInvalidArgument("round", "method",
			fmt.Sprintf("got %q, only common, ceil and floor are allowed", method))
	}
}

// sizeUnits are the conventional byte-size unit labels, in ascending order.
var sizeUnits = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// Filesizeformat returns a human-readable file size (e.g. "117.74 MB") from
// a non-negative byte count. Arguments are accepted and ignored. Negative or
// fractional inputs fail with a negative-size error.
func Filesizeformat(v value.Value, _ Args) (value.Value, error) {
	num, err := coerce[uint64]("filesizeformat", "value", v)
	if err != nil {
		return value.Null(), err
	}
	return value.String(formatSize(num)), nil
}

// formatSize renders a byte count using the conventional format: unit steps
// of 1024 with decimal unit labels and at most two decimal places, trailing
// zeros trimmed.
func formatSize(n uint64) string {
	size := float64(n)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	s := strconv.FormatFloat(size, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s + " " + sizeUnits[unit]
}

// Verify filter signatures at compile time
var (
	_ Func = Pluralize
	_ Func = Round
	_ Func = Filesizeformat
)

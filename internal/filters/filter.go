// Package filters provides the built-in template value filters.
// A filter is a pure function: it takes a dynamic value and a map of named
// arguments and produces a new dynamic value or a structured error. Filters
// never mutate their input and hold no state, so any filter may be invoked
// concurrently by multiple renderers without coordination.
package filters

import "github.com/verso-run/verso/internal/value"

// Args holds the named arguments of a single filter invocation. Keys are
// unique and order is irrelevant; an absent key means the filter's default
// applies.
type Args map[string]value.Value

// Func is a template value filter.
type Func func(v value.Value, args Args) (value.Value, error)

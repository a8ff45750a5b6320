// Package registry provides the named filter registry.
// This file registers the built-in filters.
package registry

import (
	"github.com/verso-run/verso/internal/filters"
	"github.com/verso-run/verso/internal/logger"
)

// Options controls which optional built-in filters are registered.
type Options struct {
	// Filesizeformat enables the filesizeformat filter. When false the
	// filter is not registered and resolving it is an ordinary lookup
	// failure.
	Filesizeformat bool
}

// RegisterBuiltins registers the built-in filters. The pluralize and round
// filters are always available; filesizeformat is an optional capability.
func RegisterBuiltins(opts Options) {
	Register("pluralize", filters.Pluralize)
	Register("round", filters.Round)
	if opts.Filesizeformat {
		Register("filesizeformat", filters.Filesizeformat)
	}
	logger.Debug("built-in filters registered",
		"filesizeformat", opts.Filesizeformat,
	)
}

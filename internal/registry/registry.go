// Package registry provides the named filter registry used by the template
// renderer.
//
// # Overview
//
// Filters register by name; the renderer resolves filter names at call time
// through Lookup. An unregistered name is a lookup failure, never a special
// case inside a filter: optional filters (such as filesizeformat) are simply
// not registered when their feature is disabled.
//
// # Adding a Filter
//
// Implement filters.Func and register it by name:
//
//	registry.Register("reverse", reverseFilter)
//
// Built-in filters are registered via RegisterBuiltins, typically once at
// startup after the job configuration decides which optional capabilities
// are enabled.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/verso-run/verso/internal/filters"
)

// filterRegistry holds registered filters by name.
var (
	filterMu       sync.RWMutex
	filterRegistry = make(map[string]filters.Func)
)

// Register registers a filter by name. Registering an already registered
// name overwrites the previous filter.
//
// Safe for concurrent use.
func Register(name string, fn filters.Func) {
	filterMu.Lock()
	defer filterMu.Unlock()
	filterRegistry[name] = fn
}

// Lookup resolves a filter by name. Unknown names return an error; the
// caller decides how to report it.
func Lookup(name string) (filters.Func, error) {
	filterMu.RLock()
	defer filterMu.RUnlock()
	fn, ok := filterRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown filter %q", name)
	}
	return fn, nil
}

// List returns all registered filter names in sorted order. Useful for
// documentation and the CLI filters command.
func List() []string {
	filterMu.RLock()
	defer filterMu.RUnlock()
	names := make([]string, 0, len(filterRegistry))
	for name := range filterRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear removes all registered filters. Intended for tests.
func Clear() {
	filterMu.Lock()
	defer filterMu.Unlock()
	filterRegistry = make(map[string]filters.Func)
}

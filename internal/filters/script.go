// Package filters provides the built-in template value filters.
// This file implements script-defined filters: filters written in JavaScript
// and executed with the Goja engine. A job configuration can add custom
// filters without recompiling the runtime.
package filters

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/dop251/goja"

	"github.com/verso-run/verso/internal/logger"
	"github.com/verso-run/verso/internal/value"
)

// MaxScriptLength is the maximum allowed script length in bytes (100KB).
const MaxScriptLength = 100 * 1024

// applyFunctionName is the function a filter script must define.
const applyFunctionName = "apply"

// ScriptFilter wraps a JavaScript snippet defining an apply(value, args)
// function as a filter. The script is compiled once at construction.
//
// Goja runtimes are not goroutine-safe, so calls are serialized with a
// mutex; the filter itself stays safe for concurrent invocation like every
// other filter.
type ScriptFilter struct {
	name    string
	applyFn goja.Callable
	mu      sync.Mutex
	runtime *goja.Runtime
}

// NewScriptFilter compiles a JavaScript source defining apply(value, args)
// and returns the resulting filter. The script is validated for length and
// must define apply as a function.
func NewScriptFilter(name, script string) (*ScriptFilter, error) {
	if strings.TrimSpace(script) == "" {
		return nil, fmt.Errorf("filter %q: script cannot be empty", name)
	}
	if len(script) > MaxScriptLength {
		return nil, fmt.Errorf("filter %q: script exceeds maximum length of %d bytes", name, MaxScriptLength)
	}

	vm := goja.New()
	if _, err := vm.RunString(script); err != nil {
		return nil, fmt.Errorf("filter %q: script compilation failed: %w", name, err)
	}

	applyValue := vm.Get(applyFunctionName)
	if applyValue == nil || goja.IsUndefined(applyValue) || goja.IsNull(applyValue) {
		return nil, fmt.Errorf("filter %q: script does not define an %s function", name, applyFunctionName)
	}
	applyFn, ok := goja.AssertFunction(applyValue)
	if !ok {
		return nil, fmt.Errorf("filter %q: %s is not a function", name, applyFunctionName)
	}

	logger.Debug("script filter compiled",
		slog.String("filter", name),
		slog.Int("script_length", len(script)),
	)

	return &ScriptFilter{
		name:    name,
		applyFn: applyFn,
		runtime: vm,
	}, nil
}

// Apply implements the filter contract: it converts the dynamic value and
// arguments into JavaScript values, calls apply(value, args), and converts
// the result back.
func (f *ScriptFilter) Apply(v value.Value, args Args) (value.Value, error) {
	plainArgs := make(map[string]any, len(args))
	for k, a := range args {
		plainArgs[k] = a.Interface()
	}

	f.mu.Lock()
	result, err := f.applyFn(goja.Undefined(), f.runtime.ToValue(v.Interface()), f.runtime.ToValue(plainArgs))
	f.mu.Unlock()
	if err != nil {
		return value.Null(), &Error{
			Kind:    KindScript,
			Filter:  f.name,
			Arg:     "value",
			Message: fmt.Sprintf("script execution failed: %v", err),
		}
	}
	return value.From(result.Export()), nil
}

// Func returns the filter function for registry registration.
func (f *ScriptFilter) Func() Func {
	return f.Apply
}

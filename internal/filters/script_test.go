package filters

import (
	"errors"
	"strings"
	"testing"

	"github.com/verso-run/verso/internal/value"
)

func TestNewScriptFilter_Validation(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "empty script",
			script:  "   ",
			wantErr: true,
			errMsg:  "script cannot be empty",
		},
		{
			name:    "syntax error",
			script:  "function apply(value, args) {",
			wantErr: true,
			errMsg:  "compilation failed",
		},
		{
			name:    "missing apply",
			script:  "function transform(value) { return value; }",
			wantErr: true,
			errMsg:  "does not define an apply function",
		},
		{
			name:    "apply is not a function",
			script:  "var apply = 42;",
			wantErr: true,
			errMsg:  "apply is not a function",
		},
		{
			name:    "valid script",
			script:  "function apply(value, args) { return value; }",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScriptFilter("custom", tt.script)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errMsg)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestScriptFilter_Apply(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		input    value.Value
		args     Args
		expected value.Value
	}{
		{
			name:     "uppercase string",
			script:   "function apply(value, args) { return String(value).toUpperCase(); }",
			input:    value.String("hello"),
			expected: value.String("HELLO"),
		},
		{
			name:     "numeric transform",
			script:   "function apply(value, args) { return value * 2; }",
			input:    value.Int(21),
			expected: value.Int(42),
		},
		{
			name:     "reads named argument",
			script:   "function apply(value, args) { return value + (args.suffix || ''); }",
			input:    value.String("item"),
			args:     Args{"suffix": value.String("s")},
			expected: value.String("items"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewScriptFilter("custom", tt.script)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			args := tt.args
			if args == nil {
				args = Args{}
			}
			out, err := f.Apply(tt.input, args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !out.Equal(tt.expected) {
				t.Errorf("expected %s, got %s", tt.expected.Repr(), out.Repr())
			}
		})
	}
}

func TestScriptFilter_ExecutionError(t *testing.T) {
	f, err := NewScriptFilter("boom", "function apply(value, args) { throw new Error('nope'); }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = f.Apply(value.Int(1), Args{})
	if err == nil {
		t.Fatal("expected execution error, got nil")
	}
	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *filters.Error, got %T", err)
	}
	if fe.Kind != KindScript {
		t.Errorf("expected kind %s, got %s", KindScript, fe.Kind)
	}
	if fe.Filter != "boom" {
		t.Errorf("expected filter %q, got %q", "boom", fe.Filter)
	}
	if !strings.Contains(fe.Error(), "nope") {
		t.Errorf("expected script error message in %q", fe.Error())
	}
}

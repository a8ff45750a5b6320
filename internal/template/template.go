// Package template provides the expression-pipeline renderer for dynamic
// string construction. It supports {{ expression }} substitution with
// optional filter chains: {{ count | pluralize }} or
// {{ size | round(method="ceil", precision=2) }}.
package template

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/verso-run/verso/internal/filters"
	"github.com/verso-run/verso/internal/logger"
	"github.com/verso-run/verso/internal/registry"
	"github.com/verso-run/verso/internal/value"
)

// Template syntax constants.
const (
	// ExprPrefix is the opening delimiter for template expressions
	ExprPrefix = "{{"
	// ExprSuffix is the closing delimiter for template expressions
	ExprSuffix = "}}"
)

// exprRegex matches template expressions like {{ count }} or
// {{ count * 2 | round(precision=1) }}. Group 1 is the expression body.
var exprRegex = regexp.MustCompile(`\{\{([^{}]*)\}\}`)

// filterCallRegex matches a single filter segment: a name optionally
// followed by a parenthesized argument list.
// Group 1: filter name. Group 2: raw argument list (may be empty).
var filterCallRegex = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*(?:\((.*)\))?$`)

// Renderer renders template strings against a context map. The head of each
// {{ ... }} pipeline is evaluated as an expression over the context; the
// remaining segments name filters resolved through the registry and applied
// left to right.
//
// Performance: compiled expression programs are cached per renderer, keyed
// by expression source. The cache is unbounded and grows with the number of
// unique expressions rendered. The cache is not thread-safe; each goroutine
// should use its own Renderer instance.
type Renderer struct {
	cache map[string]*vm.Program
}

// NewRenderer creates a new template renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		cache: make(map[string]*vm.Program),
	}
}

// HasExpressions checks if a string contains template expressions.
func HasExpressions(s string) bool {
	return strings.Contains(s, ExprPrefix) && strings.Contains(s, ExprSuffix)
}

// ValidateSyntax validates that a template string has balanced expression
// delimiters and non-empty expression bodies.
func ValidateSyntax(tmpl string) error {
	openCount := strings.Count(tmpl, ExprPrefix)
	closeCount := strings.Count(tmpl, ExprSuffix)
	if openCount != closeCount {
		return fmt.Errorf("invalid template syntax: unmatched delimiters (found %d '{{' and %d '}}')",
			openCount, closeCount)
	}
	for _, match := range exprRegex.FindAllStringSubmatch(tmpl, -1) {
		if strings.TrimSpace(match[1]) == "" {
			return fmt.Errorf("invalid template syntax: empty expression")
		}
	}
	remainder := exprRegex.ReplaceAllString(tmpl, "")
	if strings.Contains(remainder, ExprPrefix) || strings.Contains(remainder, ExprSuffix) {
		return fmt.Errorf("invalid template syntax: delimiters must form valid {{...}} expressions")
	}
	return nil
}

// Render renders a template string against the given context. Every
// {{ ... }} expression is replaced by its evaluated, filtered, stringified
// result. The first error aborts rendering and is returned immediately.
func (r *Renderer) Render(tmpl string, ctx map[string]any) (string, error) {
	if !strings.Contains(tmpl, ExprPrefix) && !strings.Contains(tmpl, ExprSuffix) {
		return tmpl, nil
	}
	if err := ValidateSyntax(tmpl); err != nil {
		return "", err
	}

	matches := exprRegex.FindAllStringSubmatchIndex(tmpl, -1)
	if len(matches) == 0 {
		return tmpl, nil
	}

	logger.Debug("rendering template",
		slog.Int("expression_count", len(matches)),
	)

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		sb.WriteString(tmpl[last:m[0]])
		body := tmpl[m[2]:m[3]]
		result, err := r.evalPipeline(body, ctx)
		if err != nil {
			return "", err
		}
		sb.WriteString(Stringify(result))
		last = m[1]
	}
	sb.WriteString(tmpl[last:])
	return sb.String(), nil
}

// evalPipeline evaluates one expression pipeline: a head expression followed
// by zero or more filter segments.
func (r *Renderer) evalPipeline(body string, ctx map[string]any) (value.Value, error) {
	segments := splitPipeline(body)
	head := strings.TrimSpace(segments[0])
	if head == "" {
		return value.Null(), fmt.Errorf("invalid template syntax: empty expression")
	}

	out, err := r.evalExpression(head, ctx)
	if err != nil {
		return value.Null(), err
	}
	current := value.From(out)

	for _, segment := range segments[1:] {
		segment = strings.TrimSpace(segment)
		name, args, err := parseFilterCall(segment)
		if err != nil {
			return value.Null(), err
		}
		fn, err := registry.Lookup(name)
		if err != nil {
			return value.Null(), err
		}
		current, err = fn(current, args)
		if err != nil {
			return value.Null(), err
		}
	}
	return current, nil
}

// evalExpression compiles (with caching) and runs a head expression against
// the context.
func (r *Renderer) evalExpression(src string, ctx map[string]any) (any, error) {
	program, ok := r.cache[src]
	if !ok {
		var err error
		program, err = expr.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("invalid expression %q: %w", src, err)
		}
		r.cache[src] = program
	}

	env := ctx
	if env == nil {
		env = map[string]any{}
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("evaluating expression %q: %w", src, err)
	}
	return out, nil
}

// splitPipeline splits an expression body on top-level '|' characters,
// leaving '||' (boolean or), quoted strings, and parenthesized argument
// lists intact.
func splitPipeline(body string) []string {
	var segments []string
	var quote byte
	depth := 0
	start := 0

	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case c == '|' && depth == 0:
			if i+1 < len(body) && body[i+1] == '|' {
				i++
				continue
			}
			segments = append(segments, body[start:i])
			start = i + 1
		}
	}
	return append(segments, body[start:])
}

// parseFilterCall parses a filter segment like `round(precision=2)` into a
// filter name and its named arguments.
func parseFilterCall(segment string) (string, filters.Args, error) {
	match := filterCallRegex.FindStringSubmatch(segment)
	if match == nil {
		return "", nil, fmt.Errorf("invalid filter call %q", segment)
	}
	name := match[1]
	rawArgs := strings.TrimSpace(match[2])
	args := filters.Args{}
	if rawArgs == "" {
		return name, args, nil
	}

	for _, part := range splitArgs(rawArgs) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		eq := strings.Index(part, "=")
		if eq <= 0 {
			return "", nil, fmt.Errorf("invalid filter argument %q in %q: expected name=value", part, name)
		}
		argName := strings.TrimSpace(part[:eq])
		argValue, err := parseLiteral(strings.TrimSpace(part[eq+1:]))
		if err != nil {
			return "", nil, fmt.Errorf("invalid filter argument %q in %q: %w", argName, name, err)
		}
		args[argName] = argValue
	}
	return name, args, nil
}

// splitArgs splits an argument list on commas outside quotes.
func splitArgs(raw string) []string {
	var parts []string
	var quote byte
	start := 0
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ',':
			parts = append(parts, raw[start:i])
			start = i + 1
		}
	}
	return append(parts, raw[start:])
}

// parseLiteral parses a filter argument literal: a quoted string, an
// integer, a float, or a boolean.
func parseLiteral(raw string) (value.Value, error) {
	if raw == "" {
		return value.Null(), fmt.Errorf("empty value")
	}
	if raw[0] == '"' || raw[0] == '\'' {
		if len(raw) < 2 || raw[len(raw)-1] != raw[0] {
			return value.Null(), fmt.Errorf("unterminated string %s", raw)
		}
		if raw[0] == '\'' {
			return value.String(raw[1 : len(raw)-1]), nil
		}
		s, err := strconv.Unquote(raw)
		if err != nil {
			return value.Null(), fmt.Errorf("invalid string %s", raw)
		}
		return value.String(s), nil
	}
	switch raw {
	case "true":
		return value.Bool(true), nil
	case "false":
		return value.Bool(false), nil
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return value.Int(i), nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return value.Float(f), nil
	}
	return value.Null(), fmt.Errorf("unsupported literal %q", raw)
}

// Stringify converts a rendered value to its output string representation.
// Whole-number floats are formatted without a decimal point; null renders as
// the empty string; arrays and maps render as compact JSON.
func Stringify(v value.Value) string {
	switch v.Kind() {
	case value.KindNull:
		return ""
	case value.KindBool:
		b, _ := v.AsBool()
		return strconv.FormatBool(b)
	case value.KindInt:
		i, _ := v.AsInt()
		return strconv.FormatInt(i, 10)
	case value.KindFloat:
		f, _ := v.AsFloat()
		if f == math.Trunc(f) && math.Abs(f) < 1e15 {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	case value.KindString:
		s, _ := v.AsString()
		return s
	default:
		b, err := json.Marshal(v.Interface())
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// Package config provides functionality for parsing and validating
// render job configuration files (YAML).
package config

import (
	"fmt"
	"strings"
)

// Job is a render job configuration: the templates to render, the context
// they are rendered against, optional feature toggles, and optional
// script-defined filters.
type Job struct {
	// Templates are the named templates to render, in order.
	Templates []Template `yaml:"templates"`
	// Context is the data the template expressions are evaluated against.
	Context map[string]any `yaml:"context"`
	// Features toggles optional built-in filters.
	Features Features `yaml:"features"`
	// Filters are custom filters defined as JavaScript snippets.
	Filters []ScriptFilter `yaml:"filters"`
}

// Template is a single named template.
type Template struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
}

// Features toggles optional built-in filters.
type Features struct {
	// Filesizeformat enables the filesizeformat filter.
	Filesizeformat bool `yaml:"filesizeformat"`
}

// ScriptFilter is a custom filter defined by a JavaScript snippet that
// exposes an apply(value, args) function.
type ScriptFilter struct {
	Name   string `yaml:"name"`
	Script string `yaml:"script"`
}

// ValidationResult contains the result of validating a job configuration
// against the schema.
type ValidationResult struct {
	// Valid is true when the configuration passed validation
	Valid bool
	// Errors contains validation errors (empty when Valid)
	Errors []ValidationError
}

// ValidationError represents a single schema validation failure.
type ValidationError struct {
	// Path is the JSON pointer to the offending location
	Path string
	// Type categorizes the error (required, schema, validation)
	Type string
	// Message is the human-readable error message
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path != "" && e.Path != "/" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidationFailure aggregates schema validation errors so callers can
// distinguish them from parse errors (different exit codes in the CLI).
type ValidationFailure struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (e *ValidationFailure) Error() string {
	messages := make([]string, 0, len(e.Errors))
	for _, ve := range e.Errors {
		messages = append(messages, ve.Error())
	}
	return "invalid configuration: " + strings.Join(messages, "; ")
}

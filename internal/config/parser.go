// Package config provides functionality for parsing and validating
// render job configuration files (YAML).
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseFile reads, parses, and validates a job configuration file.
func ParseFile(path string) (*Job, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	job, err := ParseString(string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return job, nil
}

// ParseString parses and validates a job configuration from YAML content.
// The document is validated against the embedded schema before being decoded
// into a Job, so decoding never sees structurally invalid data.
func ParseString(content string) (*Job, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("empty configuration: expected a YAML document")
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	result := ValidateConfig(raw)
	if !result.Valid {
		return nil, &ValidationFailure{Errors: result.Errors}
	}

	var job Job
	if err := yaml.Unmarshal([]byte(content), &job); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if job.Context == nil {
		job.Context = map[string]any{}
	}
	return &job, nil
}

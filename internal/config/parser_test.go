package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validJob = `
templates:
  - name: summary
    source: "{{ count }} item{{ count | pluralize }}"
context:
  count: 2
features:
  filesizeformat: true
filters:
  - name: shout
    script: |
      function apply(value, args) { return String(value).toUpperCase(); }
`

func TestParseString_Valid(t *testing.T) {
	job, err := ParseString(validJob)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(job.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(job.Templates))
	}
	if job.Templates[0].Name != "summary" {
		t.Errorf("expected template name %q, got %q", "summary", job.Templates[0].Name)
	}
	if got := job.Context["count"]; got != 2 {
		t.Errorf("expected context count 2, got %v", got)
	}
	if !job.Features.Filesizeformat {
		t.Error("expected filesizeformat feature enabled")
	}
	if len(job.Filters) != 1 || job.Filters[0].Name != "shout" {
		t.Errorf("expected one script filter named shout, got %+v", job.Filters)
	}
}

func TestParseString_Minimal(t *testing.T) {
	job, err := ParseString("templates:\n  - name: t\n    source: hi\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Context == nil {
		t.Error("expected non-nil default context")
	}
	if job.Features.Filesizeformat {
		t.Error("expected filesizeformat disabled by default")
	}
}

func TestParseString_Errors(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		isValidation bool
		errMsg       string
	}{
		{
			name:    "empty content",
			content: "   \n",
			errMsg:  "empty configuration",
		},
		{
			name:    "invalid yaml",
			content: "templates: [unclosed",
			errMsg:  "invalid YAML",
		},
		{
			name:         "missing templates",
			content:      "context:\n  a: 1\n",
			isValidation: true,
			errMsg:       "templates",
		},
		{
			name:         "template missing source",
			content:      "templates:\n  - name: t\n",
			isValidation: true,
			errMsg:       "source",
		},
		{
			name:         "unknown top-level key",
			content:      "templates:\n  - name: t\n    source: hi\nextra: 1\n",
			isValidation: true,
			errMsg:       "extra",
		},
		{
			name:         "bad filter name",
			content:      "templates:\n  - name: t\n    source: hi\nfilters:\n  - name: \"not a name\"\n    script: \"function apply(v, a) { return v; }\"\n",
			isValidation: true,
			errMsg:       "filters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.content)
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.errMsg)
			}
			var failure *ValidationFailure
			if got := errors.As(err, &failure); got != tt.isValidation {
				t.Errorf("validation failure = %v, expected %v (error: %v)", got, tt.isValidation, err)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.yaml")
	if err := os.WriteFile(path, []byte(validJob), 0o600); err != nil {
		t.Fatalf("failed to write job file: %v", err)
	}

	job, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(job.Templates) != 1 {
		t.Errorf("expected 1 template, got %d", len(job.Templates))
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("expected read error, got %q", err.Error())
	}
}

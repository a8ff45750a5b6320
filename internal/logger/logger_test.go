package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func reset() {
	currentLevel = slog.LevelInfo
	currentFormat = FormatJSON
	SetOutput(os.Stdout)
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer reset()

	Info("template rendered", "template", "summary", "expressions", 2)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log output, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "template rendered" {
		t.Errorf("expected msg field, got %v", entry["msg"])
	}
	if entry["template"] != "summary" {
		t.Errorf("expected template attribute, got %v", entry["template"])
	}
}

func TestHumanFormat(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetFormat(FormatHuman)
	defer reset()

	Warn("something odd", "detail", "x")

	out := buf.String()
	if !strings.Contains(out, "WARN") {
		t.Errorf("expected WARN prefix in %q", out)
	}
	if !strings.Contains(out, "something odd") {
		t.Errorf("expected message in %q", out)
	}
	if !strings.Contains(out, "detail=x") {
		t.Errorf("expected attribute in %q", out)
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer reset()

	Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug suppressed at info level, got %q", buf.String())
	}

	SetLevel(slog.LevelDebug)
	Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected debug output at debug level, got %q", buf.String())
	}
}

func TestWithTemplate(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer reset()

	WithTemplate("summary").Info("rendering")

	if !strings.Contains(buf.String(), `"template":"summary"`) {
		t.Errorf("expected template context in %q", buf.String())
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	engine := NewComponentLogger(logger, "engine")
	engine.Info("frames rendered", slog.Int("frames", 1080), slog.String("dir", "out dir"))

	line := buf.String()
	if !strings.Contains(line, " INFO engine: frames rendered") {
		t.Errorf("unexpected prefix: %q", line)
	}
	if !strings.Contains(line, "frames=1080") {
		t.Errorf("missing int attr: %q", line)
	}
	if !strings.Contains(line, `dir="out dir"`) {
		t.Errorf("value with spaces should be quoted: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Errorf("component should not repeat as attr: %q", line)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown", slog.Any("error", errors.New("boom")))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "WARN shown error=boom") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}
	logger.With(slog.Group("scene", slog.Int("index", 2))).Info("scene ready")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid json: %v (%s)", err, buf.String())
	}
	if rec["level"] != "info" {
		t.Errorf("expected lowercase level, got %v", rec["level"])
	}
	if _, ok := rec["ts"]; !ok {
		t.Error("expected ts key")
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestNilComponentLogger(t *testing.T) {
	logger := NewComponentLogger(nil, "noop")
	logger.Error("discarded")
}

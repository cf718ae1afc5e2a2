package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestConsoleHandlerFoldsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	NewComponentLogger(logger, "selector").Info("cache miss", String(FieldEpisode, "ep01"), Int(FieldSegmentIndex, 2))

	line := buf.String()
	if !strings.Contains(line, "INFO selector: cache miss") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "episode=ep01") || !strings.Contains(line, "segment_index=2") {
		t.Fatalf("missing attributes in line: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should be folded into prefix, got: %q", line)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Warn("write failed", String("path", "/tmp/a b.json"))

	if !strings.Contains(buf.String(), `path="/tmp/a b.json"`) {
		t.Fatalf("expected quoted value, got: %q", buf.String())
	}
}

func TestJSONHandlerEmitsLowercaseLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Debug("hello", String("k", "v"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json record: %v", err)
	}
	if record["level"] != "debug" {
		t.Fatalf("expected level debug, got %v", record["level"])
	}
	if record["k"] != "v" {
		t.Fatalf("missing attribute, got %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info record should have been filtered: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if _, err := New(Options{Format: "xml", Writer: &buf}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"trace", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func newBufferLogger(level string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(LoggerConfig{ServiceName: "test", Level: level, Format: "json", Output: &buf}), &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestLogger_KeyValues(t *testing.T) {
	logger, buf := newBufferLogger("debug")
	logger.Info("calculated", "bracket", "8M+", "periods", 12)

	entries := decodeLines(t, buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e["msg"] != "calculated" {
		t.Errorf("msg = %v", e["msg"])
	}
	if e["bracket"] != "8M+" {
		t.Errorf("bracket = %v", e["bracket"])
	}
	if e["periods"] != float64(12) {
		t.Errorf("periods = %v", e["periods"])
	}
	if e["logger"] != "test" {
		t.Errorf("logger = %v", e["logger"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger("warn")
	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown")

	if got := len(decodeLines(t, buf)); got != 2 {
		t.Errorf("got %d entries, want 2", got)
	}
}

func TestLogger_WithKeepsName(t *testing.T) {
	logger, buf := newBufferLogger("debug")
	child := logger.With("component", "engine")
	child.Debug("visible")

	entries := decodeLines(t, buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0]["component"] != "engine" {
		t.Errorf("component = %v", entries[0]["component"])
	}
	if child.Name() != "test" {
		t.Errorf("Name() = %q", child.Name())
	}
}

func TestSetDefaults(t *testing.T) {
	var buf bytes.Buffer
	SetDefaults("debug", "console", &buf)
	defer SetDefaults("info", "json", nil)

	New("defaults").Debug("console entry", "k", "v")
	if !strings.Contains(buf.String(), "console entry") {
		t.Errorf("output = %q", buf.String())
	}
	if !strings.Contains(buf.String(), "DEBUG") {
		t.Errorf("console format should use capital levels: %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	Nop().Info("dropped", "k", "v")
	if err := Nop().Sync(); err != nil {
		t.Errorf("Nop().Sync() error = %v", err)
	}
}

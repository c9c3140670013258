package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestLogger_AttachesComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("store", "info", &buf)

	log.Info("hello", "key", "value")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["component"] != "store" {
		t.Errorf("expected component 'store', got %v", entry["component"])
	}
	if entry["key"] != "value" {
		t.Errorf("expected key 'value', got %v", entry["key"])
	}
	if entry["msg"] != "hello" {
		t.Errorf("expected msg 'hello', got %v", entry["msg"])
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("test", "warn", &buf)

	log.Debug("dropped")
	log.Info("dropped too")
	if buf.Len() != 0 {
		t.Fatalf("expected debug/info to be filtered at warn level, got %q", buf.String())
	}

	log.Warn("kept")
	if buf.Len() == 0 {
		t.Error("expected warn line to be emitted")
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("server", "info", &buf).With("request_id", "abc")

	log.Info("scoped")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["request_id"] != "abc" {
		t.Errorf("expected persistent field request_id, got %v", entry["request_id"])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"ERROR":   slog.LevelError,
		"unknown": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

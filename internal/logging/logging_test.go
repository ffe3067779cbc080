package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

// captureLogOutput captures log output for testing by temporarily
// redirecting the logger to write to a buffer
func captureLogOutput(f func()) string {
	var buf bytes.Buffer

	oldLogger := defaultLogger
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	defaultLogger = slog.New(handler)

	f()

	defaultLogger = oldLogger
	return buf.String()
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("json") != FormatJSON {
		t.Error("ParseFormat(json) should be FormatJSON")
	}
	if ParseFormat("text") != FormatText {
		t.Error("ParseFormat(text) should be FormatText")
	}
	if ParseFormat("bogus") != FormatText {
		t.Error("unknown format should fall back to text")
	}
}

func TestHelpers(t *testing.T) {
	out := captureLogOutput(func() {
		Info("hello", "key", "value")
	})
	if !strings.Contains(out, "hello") || !strings.Contains(out, "value") {
		t.Errorf("Info output missing fields: %s", out)
	}

	out = captureLogOutput(func() {
		Warn("careful")
	})
	if !strings.Contains(out, "WARN") {
		t.Errorf("Warn output missing level: %s", out)
	}
}

func TestSplitStarted(t *testing.T) {
	out := captureLogOutput(func() {
		SplitStarted("run-1", "src.mbtiles", "tiles", 5, 1024)
	})

	var entry map[string]any
	if err := json.Unmarshal([]byte(out), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "split_started" {
		t.Errorf("msg = %v, want split_started", entry["msg"])
	}
	if entry["run_id"] != "run-1" {
		t.Errorf("run_id = %v", entry["run_id"])
	}
	if entry["schema"] != "tiles" {
		t.Errorf("schema = %v", entry["schema"])
	}
	if entry["zoom_count"] != float64(5) {
		t.Errorf("zoom_count = %v", entry["zoom_count"])
	}
}

func TestGroupWritten(t *testing.T) {
	out := captureLogOutput(func() {
		GroupWritten("run-1", "out_z0-2.mbtiles", 0, 2, 2048, true)
	})

	var entry map[string]any
	if err := json.Unmarshal([]byte(out), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "group_written" {
		t.Errorf("msg = %v, want group_written", entry["msg"])
	}
	if entry["over_limit"] != true {
		t.Errorf("over_limit = %v, want true", entry["over_limit"])
	}
	if entry["min_zoom"] != float64(0) || entry["max_zoom"] != float64(2) {
		t.Errorf("zoom range = %v-%v", entry["min_zoom"], entry["max_zoom"])
	}
}

func TestZoomOversized(t *testing.T) {
	out := captureLogOutput(func() {
		ZoomOversized("run-1", 12, 5000, 1000)
	})

	var entry map[string]any
	if err := json.Unmarshal([]byte(out), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", entry["level"])
	}
	if entry["zoom"] != float64(12) {
		t.Errorf("zoom = %v, want 12", entry["zoom"])
	}
}

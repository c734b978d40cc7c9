package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestInfoWritesJSONFields(t *testing.T) {
	var buf bytes.Buffer
	restore := Use(New(&buf, zapcore.InfoLevel))
	defer restore()

	Info("report.saved", map[string]any{"artifact": "Asha_Career_Report.pdf", "bytes": 42})
	Error("report.failed", map[string]any{"error": errors.New("boom")})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %q", len(lines), buf.String())
	}

	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("decode log json: %v", err)
	}
	for _, key := range []string{"ts", "level", "msg", "artifact", "bytes"} {
		if _, ok := first[key]; !ok {
			t.Fatalf("missing field %s in %v", key, first)
		}
	}
	if first["level"] != "info" || first["msg"] != "report.saved" {
		t.Fatalf("unexpected entry: %v", first)
	}

	var second map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("decode log json: %v", err)
	}
	if second["error"] != "boom" || second["level"] != "error" {
		t.Fatalf("unexpected error entry: %v", second)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for raw, want := range tests {
		if got := parseLevel(raw); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestConfigureTeesToLogFile(t *testing.T) {
	restore := Use(L())
	defer restore()

	path := filepath.Join(t.TempDir(), "career_guidance.log")
	closeLog, err := Configure("info", path)
	if err != nil {
		t.Fatalf("configure: %v", err)
	}
	Info("report.completed", map[string]any{"artifact": "Asha_Career_Report.pdf"})
	Warn("report.slow", nil)
	if err := closeLog(); err != nil {
		t.Fatalf("close log: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines in log file, got %d: %q", len(lines), data)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode log json: %v", err)
	}
	if entry["msg"] != "report.completed" || entry["artifact"] != "Asha_Career_Report.pdf" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestConfigureRejectsUnwritableLogFile(t *testing.T) {
	restore := Use(L())
	defer restore()

	if _, err := Configure("info", filepath.Join(t.TempDir(), "missing", "app.log")); err == nil {
		t.Fatal("expected error for log file in missing directory")
	}
}

func TestNewWritesToEveryWriter(t *testing.T) {
	var a, b bytes.Buffer
	logger := New(&a, zapcore.InfoLevel, &b)
	logger.Info("report.saved")
	if !strings.Contains(a.String(), "report.saved") || a.String() != b.String() {
		t.Fatalf("expected identical lines, got %q and %q", a.String(), b.String())
	}
}

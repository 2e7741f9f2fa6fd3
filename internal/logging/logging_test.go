package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", FileName)
	logger, err := New("debug", path)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("draft saved")
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(raw)
	if !strings.Contains(out, "DEBUG") || !strings.Contains(out, "draft saved") {
		t.Fatalf("unexpected log output %q", out)
	}
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	logger, err := New("chatty", path)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown")
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(raw), "hidden") {
		t.Fatalf("debug entry should be filtered at info level: %q", raw)
	}
	if !strings.Contains(string(raw), "shown") {
		t.Fatalf("info entry missing: %q", raw)
	}
}

func TestNewRequiresPath(t *testing.T) {
	if _, err := New("info", " "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestDefaultPath(t *testing.T) {
	if got := DefaultPath("/state"); got != filepath.Join("/state", FileName) {
		t.Fatalf("unexpected default path %q", got)
	}
}

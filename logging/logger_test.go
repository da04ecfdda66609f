package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileSinkWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, err := New(Options{Level: "debug", File: path, MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log.With("component", "test").Info("prediction saved", "id", 7)
	log.Sync()

	payload, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	line := string(payload)
	if !strings.Contains(line, `"msg":"prediction saved"`) || !strings.Contains(line, `"component":"test"`) {
		t.Fatalf("unexpected log line: %s", line)
	}
}

func TestInvalidLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestNop(t *testing.T) {
	log := NewNop()
	log.Info("ignored", "k", "v")
	log.Sync()
}

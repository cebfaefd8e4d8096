package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTraceWritesJSONWhenEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "padnav.log")
	Configure(path)
	defer Configure("-")
	SetTraceEnabled(true)
	defer SetTraceEnabled(false)

	Trace("pad.transition", map[string]interface{}{"to": "opening"})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var entry struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
	if entry.Event != "pad.transition" || entry.Payload["to"] != "opening" {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestTraceSkippedWhenDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "padnav.log")
	Configure(path)
	defer Configure("-")
	SetTraceEnabled(false)

	Trace("ignored", nil)
	Printf("pad(%d,%d): link ok", 0, 0)
	Error(errors.New("boom"))
	Error(nil)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	text := string(data)
	if strings.Contains(text, "ignored") {
		t.Fatalf("expected no trace entry, got %q", text)
	}
	if !strings.Contains(text, "pad(0,0): link ok") || strings.Count(text, "error:") != 1 {
		t.Fatalf("unexpected log contents %q", text)
	}
}

func TestConfigureDash(t *testing.T) {
	Configure("-")
	if Path() != "" {
		t.Fatalf("expected logging disabled, got %q", Path())
	}
	Configure("")
	defer Configure("-")
	if Path() != defaultLogFile {
		t.Fatalf("expected default path, got %q", Path())
	}
}

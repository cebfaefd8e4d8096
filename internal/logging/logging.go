package logging

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "padnav.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	disabled     bool
)

// Error appends err to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	write(func(f *os.File) {
		logger := log.New(f, "", log.LstdFlags)
		logger.Println("error:", err)
	})
}

// Printf appends a plain text line to the shared log file. The negotiation
// transcript is mirrored here so it survives the alternate screen.
func Printf(format string, args ...interface{}) {
	write(func(f *os.File) {
		logger := log.New(f, "", log.LstdFlags)
		logger.Printf(format, args...)
	})
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether Trace writes entries.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}

	entry := struct {
		Time    time.Time   `json:"time"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Event:   event,
		Payload: payload,
	}

	write(func(f *os.File) {
		enc := json.NewEncoder(f)
		if err := enc.Encode(entry); err != nil {
			fmt.Fprintf(os.Stderr, "trace encoding failed: %v\n", err)
		}
	})
}

// Configure sets the log destination. Empty values fall back to the default
// path; "-" disables the log file entirely. Directories are created
// automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	trimmed := strings.TrimSpace(path)
	disabled = trimmed == "-"
	switch {
	case trimmed == "" || disabled:
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = trimmed
}

// Path returns the active log file path, or "" when logging is disabled.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	if disabled {
		return ""
	}
	return logPath
}

func write(fn func(*os.File)) {
	mu.Lock()
	defer mu.Unlock()
	if disabled {
		return
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	defer f.Close()
	fn(f)
}

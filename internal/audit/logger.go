// Package audit appends gateway mutations to a JSONL trail, one event per
// line, so parish staff can review who changed what.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event is a single audit entry.
type Event struct {
	At      string `json:"at"`
	Actor   string `json:"actor,omitempty"`
	Action  string `json:"action"`
	Target  string `json:"target,omitempty"`
	Outcome string `json:"outcome"`
	Detail  string `json:"detail,omitempty"`
}

// Logger appends events to a file. A nil Logger or an empty path disables
// the trail entirely.
type Logger struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// NewLogger returns a logger writing to path.
func NewLogger(path string) *Logger {
	return &Logger{path: path, now: time.Now}
}

// NewLoggerWithClock returns a logger with an injected time source.
func NewLoggerWithClock(path string, now func() time.Time) *Logger {
	if now == nil {
		now = time.Now
	}
	return &Logger{path: path, now: now}
}

// Record appends one event to the trail.
func (l *Logger) Record(actor, action, target, outcome, detail string) error {
	if l == nil || l.path == "" {
		return nil
	}

	event := Event{
		At:      l.now().UTC().Format(time.RFC3339),
		Actor:   actor,
		Action:  action,
		Target:  target,
		Outcome: outcome,
		Detail:  detail,
	}
	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("mkdir audit log dir: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write audit log entry: %w", err)
	}
	return nil
}

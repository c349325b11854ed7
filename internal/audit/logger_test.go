package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLogger_Record(t *testing.T) {
	t.Run("appends one JSON object per line", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "audit", "trail.jsonl")
		reference := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
		logger := NewLoggerWithClock(path, func() time.Time { return reference })

		if err := logger.Record("ana", "login", "user-1", "ok", ""); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
		if err := logger.Record("", "delete_room", "room-1", "ok", "cascaded 2 bookings"); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}

		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("failed to open trail: %v", err)
		}
		defer f.Close()

		var events []Event
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			var event Event
			if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
				t.Fatalf("line is not valid JSON: %v", err)
			}
			events = append(events, event)
		}
		if err := scanner.Err(); err != nil {
			t.Fatalf("failed to scan trail: %v", err)
		}

		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].Actor != "ana" || events[0].Action != "login" || events[0].Outcome != "ok" {
			t.Fatalf("unexpected first event: %+v", events[0])
		}
		if events[0].At != "2026-03-01T10:00:00Z" {
			t.Fatalf("unexpected timestamp: %q", events[0].At)
		}
		if events[1].Action != "delete_room" || events[1].Detail != "cascaded 2 bookings" {
			t.Fatalf("unexpected second event: %+v", events[1])
		}
	})

	t.Run("nil logger and empty path are no-ops", func(t *testing.T) {
		var logger *Logger
		if err := logger.Record("a", "b", "c", "d", "e"); err != nil {
			t.Fatalf("nil logger should be a no-op, got %v", err)
		}
		if err := NewLogger("").Record("a", "b", "c", "d", "e"); err != nil {
			t.Fatalf("empty path should be a no-op, got %v", err)
		}
	})
}

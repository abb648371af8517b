package commands

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/Snyder005/govisa/pkg/log"
)

func readAllEvents(t *testing.T, path string) []log.Event {
	t.Helper()

	reader, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("failed to open trace file: %v", err)
	}
	defer reader.Close()

	var events []log.Event
	for {
		ev, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read event: %v", err)
		}
		events = append(events, ev)
	}
	return events
}

func TestFilterBySession(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Timestamp: ts, SessionID: "session-a", Category: log.CategoryTransfer, Operation: "viWrite"},
		{Timestamp: ts, SessionID: "session-b", Category: log.CategoryTransfer, Operation: "viWrite"},
		{Timestamp: ts, SessionID: "session-a", Category: log.CategoryTransfer, Operation: "viRead"},
	}
	path := createTestTraceFile(t, events)
	output := filepath.Join(t.TempDir(), "filtered.cbor")

	err := RunFilter(path, FilterOptions{Output: output, SessionID: "session-a"})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	got := readAllEvents(t, output)
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	for _, ev := range got {
		if ev.SessionID != "session-a" {
			t.Errorf("event from session %q leaked through", ev.SessionID)
		}
	}
}

func TestFilterByOperationAndDirection(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Timestamp: ts, SessionID: "s1", Direction: log.DirectionOut, Category: log.CategoryTransfer, Operation: "viWrite"},
		{Timestamp: ts, SessionID: "s1", Direction: log.DirectionIn, Category: log.CategoryTransfer, Operation: "viRead"},
		{Timestamp: ts, SessionID: "s1", Direction: log.DirectionLocal, Category: log.CategoryState},
	}
	path := createTestTraceFile(t, events)
	output := filepath.Join(t.TempDir(), "filtered.cbor")

	err := RunFilter(path, FilterOptions{Output: output, Operation: "viRead", Direction: "in"})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	got := readAllEvents(t, output)
	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	if got[0].Operation != "viRead" {
		t.Errorf("operation = %q, want viRead", got[0].Operation)
	}
}

func TestFilterByTimeWindow(t *testing.T) {
	base := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Timestamp: base, SessionID: "s1", Category: log.CategoryTransfer},
		{Timestamp: base.Add(time.Minute), SessionID: "s1", Category: log.CategoryTransfer},
		{Timestamp: base.Add(2 * time.Minute), SessionID: "s1", Category: log.CategoryTransfer},
	}
	path := createTestTraceFile(t, events)
	output := filepath.Join(t.TempDir(), "filtered.cbor")

	err := RunFilter(path, FilterOptions{
		Output:    output,
		TimeStart: base.Add(30 * time.Second).Format(time.RFC3339),
		TimeEnd:   base.Add(90 * time.Second).Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	got := readAllEvents(t, output)
	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	if !got[0].Timestamp.Equal(base.Add(time.Minute)) {
		t.Errorf("wrong event selected: %s", got[0].Timestamp)
	}
}

func TestFilterInvalidTime(t *testing.T) {
	path := createTestTraceFile(t, nil)
	output := filepath.Join(t.TempDir(), "filtered.cbor")

	err := RunFilter(path, FilterOptions{Output: output, TimeStart: "yesterday"})
	if err == nil {
		t.Error("expected error for invalid time format")
	}
}

func TestFilterInvalidDirection(t *testing.T) {
	path := createTestTraceFile(t, nil)
	output := filepath.Join(t.TempDir(), "filtered.cbor")

	err := RunFilter(path, FilterOptions{Output: output, Direction: "sideways"})
	if err == nil {
		t.Error("expected error for invalid direction")
	}
}

package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Snyder005/govisa/pkg/driver"
	"github.com/Snyder005/govisa/pkg/log"
)

// createTestTraceFile writes events to a temporary trace file and
// returns its path.
func createTestTraceFile(t *testing.T, events []log.Event) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.cbor")
	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create trace file: %v", err)
	}
	for _, ev := range events {
		logger.Log(ev)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("failed to close trace file: %v", err)
	}
	return path
}

func TestFormatTransferEvent(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	event := log.Event{
		Timestamp: ts,
		SessionID: "abc12345-6789-0123-4567-890abcdef012",
		Resource:  "USB0::0x1234::0x5678::SN0042::INSTR",
		Direction: log.DirectionOut,
		Category:  log.CategoryTransfer,
		Operation: "viWrite",
		Transfer: &log.TransferEvent{
			Requested: 5,
			Actual:    5,
			Data:      []byte("*IDN?"),
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "2026-01-28T10:15:32.123456Z") {
		t.Errorf("expected microsecond timestamp, got: %s", output)
	}
	if !strings.Contains(output, "[sess:abc12345]") {
		t.Errorf("expected shortened session ID, got: %s", output)
	}
	if !strings.Contains(output, "OUT") {
		t.Errorf("expected OUT direction, got: %s", output)
	}
	if !strings.Contains(output, "viWrite") {
		t.Errorf("expected operation name, got: %s", output)
	}
	if !strings.Contains(output, "5 of 5 requested") {
		t.Errorf("expected byte counts, got: %s", output)
	}
	if !strings.Contains(output, "*IDN?") {
		t.Errorf("expected command text, got: %s", output)
	}
}

func TestFormatTransferEscapesControlChars(t *testing.T) {
	event := log.Event{
		Timestamp: time.Now(),
		Direction: log.DirectionIn,
		Category:  log.CategoryTransfer,
		Operation: "viRead",
		Transfer: &log.TransferEvent{
			Requested: 64,
			Actual:    7,
			Data:      []byte("+1.0\r\n\x07"),
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, `+1.0\r\n\x07`) {
		t.Errorf("expected escaped control characters, got: %s", output)
	}
}

func TestFormatErrorEvent(t *testing.T) {
	code := driver.StatusErrorTimeout
	event := log.Event{
		Timestamp: time.Now(),
		Direction: log.DirectionLocal,
		Category:  log.CategoryError,
		Operation: "viRead",
		Status:    code,
		Error: &log.ErrorEventData{
			Message: code.Description(),
			Code:    &code,
			Context: "reading response",
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "VI_ERROR_TMO") {
		t.Errorf("expected status name, got: %s", output)
	}
	if !strings.Contains(output, "-1073807339") {
		t.Errorf("expected numeric code, got: %s", output)
	}
	if !strings.Contains(output, "reading response") {
		t.Errorf("expected context, got: %s", output)
	}
}

func TestFormatStateEvent(t *testing.T) {
	event := log.Event{
		Timestamp: time.Now(),
		Direction: log.DirectionLocal,
		Category:  log.CategoryState,
		State: &log.StateChangeEvent{
			OldState: "OPEN",
			NewState: "CLOSED",
			Reason:   "session closed",
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "OPEN -> CLOSED") {
		t.Errorf("expected state transition, got: %s", output)
	}
	if !strings.Contains(output, "session closed") {
		t.Errorf("expected reason, got: %s", output)
	}
}

func TestFormatHandlerEvent(t *testing.T) {
	event := log.Event{
		Timestamp: time.Now(),
		Direction: log.DirectionLocal,
		Category:  log.CategoryEvent,
		Operation: "viInstallHandler",
		Handler: &log.HandlerEvent{
			Type:   driver.EventServiceRequest,
			Action: "install",
			Token:  "deadbeef-0000-4000-8000-000000000001",
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "VI_EVENT_SERVICE_REQ") {
		t.Errorf("expected event type name, got: %s", output)
	}
	if !strings.Contains(output, "install") {
		t.Errorf("expected action, got: %s", output)
	}
}

func TestRunViewFiltersByDirection(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := []log.Event{
		{Timestamp: ts, SessionID: "s1", Direction: log.DirectionOut, Category: log.CategoryTransfer, Operation: "viWrite"},
		{Timestamp: ts, SessionID: "s1", Direction: log.DirectionIn, Category: log.CategoryTransfer, Operation: "viRead"},
	}
	path := createTestTraceFile(t, events)

	var buf bytes.Buffer
	dir := log.DirectionIn
	if err := RunView(path, ViewFilter{Direction: &dir}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}

	output := buf.String()
	if strings.Contains(output, "viWrite") {
		t.Errorf("write event not filtered out: %s", output)
	}
	if !strings.Contains(output, "viRead") {
		t.Errorf("read event missing: %s", output)
	}
}

func TestParseDirectionFlag(t *testing.T) {
	tests := []struct {
		input   string
		want    log.Direction
		wantErr bool
	}{
		{"in", log.DirectionIn, false},
		{"OUT", log.DirectionOut, false},
		{"local", log.DirectionLocal, false},
		{"sideways", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDirectionFlag(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDirectionFlag(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDirectionFlag(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDirectionFlag(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseCategoryFlag(t *testing.T) {
	tests := []struct {
		input   string
		want    log.Category
		wantErr bool
	}{
		{"transfer", log.CategoryTransfer, false},
		{"Attribute", log.CategoryAttribute, false},
		{"event", log.CategoryEvent, false},
		{"state", log.CategoryState, false},
		{"error", log.CategoryError, false},
		{"bogus", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseCategoryFlag(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCategoryFlag(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCategoryFlag(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCategoryFlag(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

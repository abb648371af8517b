// Package commands implements the visatrace CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/Snyder005/govisa/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view
// command.
type ViewFilter struct {
	Direction *log.Direction
	Category  *log.Category
	Operation string
}

// RunView prints the trace file in human-readable form.
func RunView(path string, filter ViewFilter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, log.Filter{
		Direction: filter.Direction,
		Category:  filter.Category,
		Operation: filter.Operation,
	})
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
	return nil
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [sess:id] DIRECTION CATEGORY operation
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	sessID := shortenSessionID(event.SessionID)
	op := event.Operation
	if op == "" {
		op = "-"
	}

	fmt.Fprintf(w, "%s [sess:%s] %-5s %-9s %s\n", ts, sessID, event.Direction, event.Category, op)

	if event.Status != 0 {
		fmt.Fprintf(w, "  Status: %s\n", event.Status)
	}

	switch {
	case event.Transfer != nil:
		formatTransferDetails(w, event.Transfer)
	case event.Attribute != nil:
		formatAttributeDetails(w, event.Attribute)
	case event.Handler != nil:
		formatHandlerDetails(w, event.Handler)
	case event.State != nil:
		formatStateDetails(w, event.State)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatTransferDetails writes transfer-specific details.
func formatTransferDetails(w io.Writer, transfer *log.TransferEvent) {
	fmt.Fprintf(w, "  Bytes: %d of %d requested\n", transfer.Actual, transfer.Requested)
	if len(transfer.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s", printableData(transfer.Data))
		if transfer.Truncated {
			fmt.Fprintf(w, " (truncated)")
		}
		fmt.Fprintln(w)
	}
}

// formatAttributeDetails writes attribute-specific details.
func formatAttributeDetails(w io.Writer, attr *log.AttributeEvent) {
	fmt.Fprintf(w, "  Attribute: %s\n", attr.ID)
	if attr.Value != "" {
		fmt.Fprintf(w, "  Value: %s\n", attr.Value)
	}
}

// formatHandlerDetails writes event-subscription details.
func formatHandlerDetails(w io.Writer, handler *log.HandlerEvent) {
	fmt.Fprintf(w, "  Event: %s\n", handler.Type)
	fmt.Fprintf(w, "  Action: %s\n", handler.Action)
	if handler.Token != "" {
		fmt.Fprintf(w, "  Token: %s\n", shortenSessionID(handler.Token))
	}
}

// formatStateDetails writes lifecycle details.
func formatStateDetails(w io.Writer, state *log.StateChangeEvent) {
	if state.OldState != "" {
		fmt.Fprintf(w, "  State: %s -> %s\n", state.OldState, state.NewState)
	} else {
		fmt.Fprintf(w, "  State: %s\n", state.NewState)
	}
	if state.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", state.Reason)
	}
}

// formatErrorDetails writes failure details.
func formatErrorDetails(w io.Writer, errEvent *log.ErrorEventData) {
	fmt.Fprintf(w, "  Message: %s\n", errEvent.Message)
	if errEvent.Code != nil {
		fmt.Fprintf(w, "  Code: %s (%d)\n", errEvent.Code, int32(*errEvent.Code))
	}
	if errEvent.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", errEvent.Context)
	}
}

// printableData renders transfer bytes, escaping control characters so
// instrument commands stay readable.
func printableData(data []byte) string {
	var b strings.Builder
	for _, c := range data {
		switch {
		case c == '\n':
			b.WriteString("\\n")
		case c == '\r':
			b.WriteString("\\r")
		case c == '\t':
			b.WriteString("\\t")
		case c < 0x20 || c > 0x7E:
			fmt.Fprintf(&b, "\\x%02X", c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ParseDirectionFlag parses a direction flag value.
func ParseDirectionFlag(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	case "local":
		return log.DirectionLocal, nil
	default:
		return 0, fmt.Errorf("unknown direction %q (in, out, local)", s)
	}
}

// ParseCategoryFlag parses a category flag value.
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "transfer":
		return log.CategoryTransfer, nil
	case "attribute":
		return log.CategoryAttribute, nil
	case "event":
		return log.CategoryEvent, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("unknown category %q (transfer, attribute, event, state, error)", s)
	}
}

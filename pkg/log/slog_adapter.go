package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see session traffic in the
// console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given
// slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.String("category", event.Category.String()),
	}

	if event.Resource != "" {
		attrs = append(attrs, slog.String("resource", event.Resource))
	}
	if event.Operation != "" {
		attrs = append(attrs, slog.String("operation", event.Operation))
	}
	if event.Status != 0 {
		attrs = append(attrs, slog.String("status", event.Status.String()))
	}

	switch {
	case event.Transfer != nil:
		attrs = append(attrs,
			slog.Int("requested", event.Transfer.Requested),
			slog.Int("actual", event.Transfer.Actual),
		)
		if event.Transfer.Truncated {
			attrs = append(attrs, slog.Bool("truncated", true))
		}
	case event.Attribute != nil:
		attrs = append(attrs, slog.String("attribute", event.Attribute.ID.String()))
		if event.Attribute.Value != "" {
			attrs = append(attrs, slog.String("value", event.Attribute.Value))
		}
	case event.Handler != nil:
		attrs = append(attrs,
			slog.String("event_type", event.Handler.Type.String()),
			slog.String("action", event.Handler.Action),
		)
		if event.Handler.Token != "" {
			attrs = append(attrs, slog.String("token", event.Handler.Token))
		}
	case event.State != nil:
		attrs = append(attrs,
			slog.String("old_state", event.State.OldState),
			slog.String("new_state", event.State.NewState),
		)
		if event.State.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.State.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Code != nil {
			attrs = append(attrs, slog.String("error_code", event.Error.Code.String()))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "session", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)

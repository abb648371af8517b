package session

import (
	"time"

	"github.com/Snyder005/govisa/pkg/driver"
	"github.com/Snyder005/govisa/pkg/log"
)

// traceDataMax caps the transfer payload stored in a trace event.
const traceDataMax = 64

// emit stamps and logs a trace event.
func (s *Session) emit(ev log.Event) {
	ev.Timestamp = time.Now()
	ev.SessionID = s.id
	ev.Resource = s.resource
	s.logger.Log(ev)
}

func (s *Session) traceTransfer(op string, dir log.Direction, requested, actual int, st driver.Status, data []byte) {
	transfer := &log.TransferEvent{
		Requested: requested,
		Actual:    actual,
	}
	if len(data) > traceDataMax {
		transfer.Data = data[:traceDataMax]
		transfer.Truncated = true
	} else if len(data) > 0 {
		transfer.Data = data
	}

	s.emit(log.Event{
		Direction: dir,
		Category:  log.CategoryTransfer,
		Operation: op,
		Status:    st,
		Transfer:  transfer,
	})
}

func (s *Session) traceAttribute(op string, attr driver.Attribute, value string, st driver.Status) {
	s.emit(log.Event{
		Direction: log.DirectionLocal,
		Category:  log.CategoryAttribute,
		Operation: op,
		Status:    st,
		Attribute: &log.AttributeEvent{ID: attr, Value: value},
	})
}

func (s *Session) traceHandler(op string, eventType driver.EventType, action, token string, st driver.Status) {
	s.emit(log.Event{
		Direction: log.DirectionLocal,
		Category:  log.CategoryEvent,
		Operation: op,
		Status:    st,
		Handler:   &log.HandlerEvent{Type: eventType, Action: action, Token: token},
	})
}

func (s *Session) traceState(oldState, newState, reason string) {
	s.emit(log.Event{
		Direction: log.DirectionLocal,
		Category:  log.CategoryState,
		State:     &log.StateChangeEvent{OldState: oldState, NewState: newState, Reason: reason},
	})
}

func (s *Session) traceError(op, context string, st driver.Status) {
	code := st
	s.emit(log.Event{
		Direction: log.DirectionLocal,
		Category:  log.CategoryError,
		Operation: op,
		Status:    st,
		Error: &log.ErrorEventData{
			Message: st.Description(),
			Code:    &code,
			Context: context,
		},
	})
}

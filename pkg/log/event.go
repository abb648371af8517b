package log

import (
	"time"

	"github.com/Snyder005/govisa/pkg/driver"
)

// Event represents a session trace event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies the session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Resource is the resource name of the instrument.
	Resource string `cbor:"3,keyasint,omitempty"`

	// Direction indicates data flow relative to the host.
	Direction Direction `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Operation is the native call that produced the event, e.g. "viRead".
	Operation string `cbor:"6,keyasint,omitempty"`

	// Status is the raw native status code of the operation.
	Status driver.Status `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Transfer  *TransferEvent    `cbor:"8,keyasint,omitempty"`  // Write/read data
	Attribute *AttributeEvent   `cbor:"9,keyasint,omitempty"`  // Attribute access
	Handler   *HandlerEvent     `cbor:"10,keyasint,omitempty"` // Event subscription changes
	State     *StateChangeEvent `cbor:"11,keyasint,omitempty"` // Session lifecycle
	Error     *ErrorEventData   `cbor:"12,keyasint,omitempty"` // Failures
}

// Direction indicates the direction of data flow relative to the host.
type Direction uint8

const (
	// DirectionIn indicates data read from the instrument.
	DirectionIn Direction = 0
	// DirectionOut indicates data written to the instrument.
	DirectionOut Direction = 1
	// DirectionLocal indicates an operation with no data transfer,
	// such as a state change or subscription change.
	DirectionLocal Direction = 2
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	case DirectionLocal:
		return "LOCAL"
	default:
		return "UNKNOWN"
	}
}

// Ptr returns a pointer to d, convenient for Filter fields.
func (d Direction) Ptr() *Direction { return &d }

// Category classifies the event type.
type Category uint8

const (
	// CategoryTransfer indicates a data transfer (write or read).
	CategoryTransfer Category = 0
	// CategoryAttribute indicates an attribute get or set.
	CategoryAttribute Category = 1
	// CategoryEvent indicates an event subscription change or delivery.
	CategoryEvent Category = 2
	// CategoryState indicates a session lifecycle change.
	CategoryState Category = 3
	// CategoryError indicates a failed operation.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryTransfer:
		return "TRANSFER"
	case CategoryAttribute:
		return "ATTRIBUTE"
	case CategoryEvent:
		return "EVENT"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Ptr returns a pointer to c, convenient for Filter fields.
func (c Category) Ptr() *Category { return &c }

// TransferEvent captures one write or read transfer.
type TransferEvent struct {
	// Requested is the byte count asked of the driver: the command
	// length for writes, the buffer capacity for reads.
	Requested int `cbor:"1,keyasint"`

	// Actual is the byte count the driver reported transferred.
	Actual int `cbor:"2,keyasint"`

	// Data is the transferred bytes (may be truncated for large
	// transfers).
	Data []byte `cbor:"3,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"4,keyasint,omitempty"`
}

// AttributeEvent captures an attribute get or set.
type AttributeEvent struct {
	// ID is the attribute identifier.
	ID driver.Attribute `cbor:"1,keyasint"`

	// Value is the attribute value read or written, rendered as text.
	Value string `cbor:"2,keyasint,omitempty"`
}

// HandlerEvent captures event subscription changes.
type HandlerEvent struct {
	// Type is the event type affected.
	Type driver.EventType `cbor:"1,keyasint"`

	// Action describes the change: "install", "uninstall", "enable",
	// "disable" or "discard".
	Action string `cbor:"2,keyasint"`

	// Token is the registration token for install/uninstall actions.
	Token string `cbor:"3,keyasint,omitempty"`
}

// StateChangeEvent captures session lifecycle transitions.
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures a failed operation.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Code is the raw status code (if the failure came from the
	// driver).
	Code *driver.Status `cbor:"2,keyasint,omitempty"`

	// Context describes what was being attempted.
	Context string `cbor:"3,keyasint,omitempty"`
}

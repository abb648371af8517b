package driver

// EventType identifies a class of asynchronous device event.
// Values follow visa.h.
type EventType uint32

const (
	// EventIOCompletion signals completion of an asynchronous I/O
	// operation (VI_EVENT_IO_COMPLETION).
	EventIOCompletion EventType = 0x3FFF2009

	// EventTrigger signals a hardware or software trigger
	// (VI_EVENT_TRIG).
	EventTrigger EventType = 0xBFFF200A

	// EventServiceRequest signals a device service request
	// (VI_EVENT_SERVICE_REQ).
	EventServiceRequest EventType = 0x3FFF200B

	// EventClear signals that the device received a clear
	// (VI_EVENT_CLEAR).
	EventClear EventType = 0x3FFF200D

	// EventException signals an error condition during a call
	// (VI_EVENT_EXCEPTION).
	EventException EventType = 0xBFFF200E
)

// String returns the canonical visa.h event type name.
func (e EventType) String() string {
	switch e {
	case EventIOCompletion:
		return "VI_EVENT_IO_COMPLETION"
	case EventTrigger:
		return "VI_EVENT_TRIG"
	case EventServiceRequest:
		return "VI_EVENT_SERVICE_REQ"
	case EventClear:
		return "VI_EVENT_CLEAR"
	case EventException:
		return "VI_EVENT_EXCEPTION"
	default:
		return "UNKNOWN"
	}
}

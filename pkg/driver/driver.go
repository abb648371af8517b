package driver

// Handle is an opaque native session handle returned by a resource
// manager when a resource is opened. A Handle is only valid between a
// successful open and the close of the session that owns it; it must
// never be shared between sessions.
type Handle uint32

// EventCallback is invoked by the driver when an enabled event fires
// on a session. Callbacks run on a driver-managed context, possibly
// concurrently with the session owner's own calls; they must not issue
// session operations and should treat userData as the only shared
// mutable state.
type EventCallback func(h Handle, eventType EventType, userData any)

// Mechanism selects how events are delivered to the application.
type Mechanism uint16

const (
	// MechanismQueue delivers events to a queue drained by viWaitOnEvent.
	MechanismQueue Mechanism = 0x0001

	// MechanismHandler delivers events by invoking installed callbacks.
	MechanismHandler Mechanism = 0x0002

	// MechanismSuspendHandler queues events for later callback delivery.
	MechanismSuspendHandler Mechanism = 0x0004

	// MechanismAll addresses every delivery mechanism at once.
	// Only meaningful for DiscardEvents.
	MechanismAll Mechanism = 0xFFFF
)

// String returns the mechanism name.
func (m Mechanism) String() string {
	switch m {
	case MechanismQueue:
		return "VI_QUEUE"
	case MechanismHandler:
		return "VI_HNDLR"
	case MechanismSuspendHandler:
		return "VI_SUSPEND_HNDLR"
	case MechanismAll:
		return "VI_ALL_MECH"
	default:
		return "UNKNOWN"
	}
}

// Driver is the native call surface of a VISA-style instrument driver.
//
// Every method is a thin mirror of the corresponding vi* call: it
// operates on a raw Handle and reports a raw Status. Implementations
// must not translate status codes themselves; callers pass the result
// through Check. Write and Read additionally report the actual number
// of bytes transferred, which may be smaller than requested.
//
// All methods block up to the session's configured timeout attribute.
type Driver interface {
	// Write transfers data to the device and reports the byte count
	// actually written. Mirrors viWrite.
	Write(h Handle, data []byte) (count uint32, st Status)

	// Read fills buf with data from the device and reports the byte
	// count actually read (<= len(buf)). Mirrors viRead.
	Read(h Handle, buf []byte) (count uint32, st Status)

	// Clear clears the device input and output buffers. Mirrors viClear.
	Clear(h Handle) Status

	// Close releases the session handle. Mirrors viClose. The handle
	// must not be used afterward.
	Close(h Handle) Status

	// SetAttribute sets a numeric session attribute. Mirrors
	// viSetAttribute.
	SetAttribute(h Handle, attr Attribute, value uint32) Status

	// GetAttribute reads a string-valued session attribute into buf,
	// NUL-terminated. Mirrors viGetAttribute with a caller-allocated
	// buffer.
	GetAttribute(h Handle, attr Attribute, buf []byte) Status

	// InstallHandler registers cb for eventType on the session.
	// Mirrors viInstallHandler.
	InstallHandler(h Handle, eventType EventType, cb EventCallback, userData any) Status

	// UninstallHandler removes a previously installed registration.
	// The (eventType, cb, userData) triple must match what was
	// installed. Mirrors viUninstallHandler.
	UninstallHandler(h Handle, eventType EventType, cb EventCallback, userData any) Status

	// EnableEvent enables delivery of eventType via mech. Mirrors
	// viEnableEvent.
	EnableEvent(h Handle, eventType EventType, mech Mechanism) Status

	// DisableEvent disables delivery of eventType via mech. Mirrors
	// viDisableEvent.
	DisableEvent(h Handle, eventType EventType, mech Mechanism) Status

	// DiscardEvents flushes pending occurrences of eventType for the
	// given mechanisms. Mirrors viDiscardEvents.
	DiscardEvents(h Handle, eventType EventType, mech Mechanism) Status
}

// Opener opens instrument resources. Implemented by resource managers,
// which are external collaborators of this layer.
type Opener interface {
	// Open opens the named resource and returns its session handle.
	Open(resource string) (Handle, Status)
}

package sim

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/Snyder005/govisa/pkg/driver"
)

// Responder produces the scripted reaction to one command. The
// returned bytes are queued as the pending response; the status is
// what the simulated viWrite reports.
type Responder func(command string) (response []byte, st driver.Status)

// installedHandler records one handler installed through the driver
// surface. Callbacks are matched for uninstall by code pointer plus
// user data, the closest Go gets to the native triple match.
type installedHandler struct {
	eventType driver.EventType
	cb        driver.EventCallback
	cbPtr     uintptr
	userData  any
}

// Instrument is a simulated instrument reachable through the
// driver.Driver surface. It is safe for concurrent use.
type Instrument struct {
	mu sync.Mutex

	resource     string
	manufacturer string
	model        string
	serial       string

	responders map[string]Responder
	fallback   Responder

	// pending is the response data not yet read.
	pending []byte

	// timeoutMS mirrors the VI_ATTR_TMO_VALUE attribute.
	timeoutMS uint32

	handle driver.Handle
	opened bool

	handlers []installedHandler
	enabled  map[driver.EventType]bool
	queued   map[driver.EventType]int

	// One-shot fault injection.
	injectStatus map[string]driver.Status
	shortWrite   *uint32
	emptyRead    bool
}

// Option configures an Instrument.
type Option func(*Instrument)

// WithIdentity sets the manufacturer, model and serial number reported
// through identification attributes and the default *IDN? response.
func WithIdentity(manufacturer, model, serial string) Option {
	return func(i *Instrument) {
		i.manufacturer = manufacturer
		i.model = model
		i.serial = serial
	}
}

// WithResponse scripts a fixed response for a command.
func WithResponse(command, response string) Option {
	return func(i *Instrument) {
		i.responders[command] = func(string) ([]byte, driver.Status) {
			return []byte(response), driver.StatusSuccess
		}
	}
}

// WithResponder scripts a dynamic responder for a command.
func WithResponder(command string, r Responder) Option {
	return func(i *Instrument) {
		i.responders[command] = r
	}
}

// WithFallback sets the responder for commands with no scripted entry.
// The default accepts the command and queues no response.
func WithFallback(r Responder) Option {
	return func(i *Instrument) {
		i.fallback = r
	}
}

// New creates a simulated instrument for the given resource string.
func New(resource string, opts ...Option) *Instrument {
	i := &Instrument{
		resource:     resource,
		manufacturer: "govisa",
		model:        "SIM-1000",
		serial:       "00000001",
		responders:   make(map[string]Responder),
		timeoutMS:    2000,
		enabled:      make(map[driver.EventType]bool),
		queued:       make(map[driver.EventType]int),
		injectStatus: make(map[string]driver.Status),
	}
	for _, opt := range opts {
		opt(i)
	}

	// Standard identification query, unless the script overrides it.
	if _, ok := i.responders["*IDN?"]; !ok {
		idn := fmt.Sprintf("%s,%s,%s,1.0\n", i.manufacturer, i.model, i.serial)
		i.responders["*IDN?"] = func(string) ([]byte, driver.Status) {
			return []byte(idn), driver.StatusSuccess
		}
	}
	return i
}

// Open opens the simulated resource. Only the configured resource
// string is known; anything else reports VI_ERROR_RSRC_NFOUND. A
// second open while a session is active reports VI_ERROR_RSRC_LOCKED.
func (i *Instrument) Open(resource string) (driver.Handle, driver.Status) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if resource != i.resource {
		return 0, driver.StatusErrorResourceNotFound
	}
	if i.opened {
		return 0, driver.StatusErrorResourceLocked
	}

	i.handle++
	i.opened = true
	return i.handle, driver.StatusSuccess
}

// InjectStatus makes the next call of the named native operation
// (e.g. "viRead") report st instead of running normally. One-shot.
func (i *Instrument) InjectStatus(op string, st driver.Status) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.injectStatus[op] = st
}

// InjectShortWrite makes the next write report n bytes written while
// otherwise succeeding. One-shot.
func (i *Instrument) InjectShortWrite(n uint32) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.shortWrite = &n
}

// InjectEmptyRead makes the next read report zero bytes with a success
// status. One-shot.
func (i *Instrument) InjectEmptyRead() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.emptyRead = true
}

// PendingEvents returns the count of fired but undelivered occurrences
// of eventType.
func (i *Instrument) PendingEvents(eventType driver.EventType) int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.queued[eventType]
}

// FireEvent simulates the device raising eventType. If the event is
// enabled, installed handlers for it are invoked synchronously on the
// caller's goroutine and FireEvent returns the number of handlers
// invoked; otherwise the occurrence is queued for DiscardEvents and
// FireEvent returns 0.
func (i *Instrument) FireEvent(eventType driver.EventType) int {
	i.mu.Lock()
	if !i.opened || !i.enabled[eventType] {
		if i.opened {
			i.queued[eventType]++
		}
		i.mu.Unlock()
		return 0
	}

	h := i.handle
	var targets []installedHandler
	for _, ih := range i.handlers {
		if ih.eventType == eventType {
			targets = append(targets, ih)
		}
	}
	i.mu.Unlock()

	// Invoke outside the lock; callbacks may call back into the driver
	// surface.
	for _, t := range targets {
		t.cb(h, eventType, t.userData)
	}
	return len(targets)
}

// takeInjected pops a one-shot injected status for op, if any.
// Caller must hold i.mu.
func (i *Instrument) takeInjected(op string) (driver.Status, bool) {
	st, ok := i.injectStatus[op]
	if ok {
		delete(i.injectStatus, op)
	}
	return st, ok
}

// checkHandle validates the session handle. Caller must hold i.mu.
func (i *Instrument) checkHandle(h driver.Handle) driver.Status {
	if !i.opened || h != i.handle {
		return driver.StatusErrorInvalidObject
	}
	return driver.StatusSuccess
}

// Write implements driver.Driver.
func (i *Instrument) Write(h driver.Handle, data []byte) (uint32, driver.Status) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if st := i.checkHandle(h); st.IsError() {
		return 0, st
	}
	if st, ok := i.takeInjected("viWrite"); ok {
		return 0, st
	}

	command := strings.TrimSpace(string(data))
	responder := i.responders[command]
	if responder == nil {
		responder = i.fallback
	}

	st := driver.StatusSuccess
	if responder != nil {
		var response []byte
		response, st = responder(command)
		if st.IsSuccess() {
			i.pending = append(i.pending, response...)
		}
	}

	count := uint32(len(data))
	if i.shortWrite != nil {
		count = *i.shortWrite
		i.shortWrite = nil
	}
	return count, st
}

// Read implements driver.Driver. Reading with no pending response
// reports VI_ERROR_TMO, the way a real read times out on a silent
// device. A read that fills the buffer with data left over reports
// VI_SUCCESS_MAX_CNT.
func (i *Instrument) Read(h driver.Handle, buf []byte) (uint32, driver.Status) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if st := i.checkHandle(h); st.IsError() {
		return 0, st
	}
	if st, ok := i.takeInjected("viRead"); ok {
		return 0, st
	}
	if i.emptyRead {
		i.emptyRead = false
		return 0, driver.StatusSuccess
	}

	if len(i.pending) == 0 {
		return 0, driver.StatusErrorTimeout
	}

	n := copy(buf, i.pending)
	i.pending = i.pending[n:]

	if len(i.pending) > 0 && n == len(buf) {
		return uint32(n), driver.StatusSuccessMaxCount
	}
	return uint32(n), driver.StatusSuccess
}

// Clear implements driver.Driver; it drops any pending response.
func (i *Instrument) Clear(h driver.Handle) driver.Status {
	i.mu.Lock()
	defer i.mu.Unlock()

	if st := i.checkHandle(h); st.IsError() {
		return st
	}
	if st, ok := i.takeInjected("viClear"); ok {
		return st
	}

	i.pending = nil
	return driver.StatusSuccess
}

// Close implements driver.Driver. Handlers, enabled events and queued
// occurrences die with the session.
func (i *Instrument) Close(h driver.Handle) driver.Status {
	i.mu.Lock()
	defer i.mu.Unlock()

	if st := i.checkHandle(h); st.IsError() {
		return st
	}
	if st, ok := i.takeInjected("viClose"); ok {
		return st
	}

	i.opened = false
	i.pending = nil
	i.handlers = nil
	i.enabled = make(map[driver.EventType]bool)
	i.queued = make(map[driver.EventType]int)
	return driver.StatusSuccess
}

// SetAttribute implements driver.Driver. Only the timeout attribute is
// writable; identification attributes are read-only and everything
// else is unsupported.
func (i *Instrument) SetAttribute(h driver.Handle, attr driver.Attribute, value uint32) driver.Status {
	i.mu.Lock()
	defer i.mu.Unlock()

	if st := i.checkHandle(h); st.IsError() {
		return st
	}
	if st, ok := i.takeInjected("viSetAttribute"); ok {
		return st
	}

	switch attr {
	case driver.AttrTimeoutValue:
		i.timeoutMS = value
		return driver.StatusSuccess
	case driver.AttrManufacturerName, driver.AttrModelName,
		driver.AttrUSBSerialNumber, driver.AttrResourceName, driver.AttrResourceClass:
		return driver.StatusErrorAttributeReadOnly
	default:
		return driver.StatusErrorUnsupportedAttribute
	}
}

// GetAttribute implements driver.Driver, filling buf NUL-terminated.
func (i *Instrument) GetAttribute(h driver.Handle, attr driver.Attribute, buf []byte) driver.Status {
	i.mu.Lock()
	defer i.mu.Unlock()

	if st := i.checkHandle(h); st.IsError() {
		return st
	}
	if st, ok := i.takeInjected("viGetAttribute"); ok {
		return st
	}

	var value string
	switch attr {
	case driver.AttrManufacturerName:
		value = i.manufacturer
	case driver.AttrModelName:
		value = i.model
	case driver.AttrUSBSerialNumber:
		value = i.serial
	case driver.AttrResourceName:
		value = i.resource
	case driver.AttrResourceClass:
		value = "INSTR"
	case driver.AttrTimeoutValue:
		value = fmt.Sprintf("%d", i.timeoutMS)
	default:
		return driver.StatusErrorUnsupportedAttribute
	}

	n := copy(buf, value)
	if n < len(buf) {
		buf[n] = 0
	}
	return driver.StatusSuccess
}

// InstallHandler implements driver.Driver.
func (i *Instrument) InstallHandler(h driver.Handle, eventType driver.EventType, cb driver.EventCallback, userData any) driver.Status {
	i.mu.Lock()
	defer i.mu.Unlock()

	if st := i.checkHandle(h); st.IsError() {
		return st
	}
	if st, ok := i.takeInjected("viInstallHandler"); ok {
		return st
	}
	if cb == nil {
		return driver.StatusErrorInvalidHandlerRef
	}

	i.handlers = append(i.handlers, installedHandler{
		eventType: eventType,
		cb:        cb,
		cbPtr:     reflect.ValueOf(cb).Pointer(),
		userData:  userData,
	})
	return driver.StatusSuccess
}

// UninstallHandler implements driver.Driver. The triple must match an
// installed registration exactly.
func (i *Instrument) UninstallHandler(h driver.Handle, eventType driver.EventType, cb driver.EventCallback, userData any) driver.Status {
	i.mu.Lock()
	defer i.mu.Unlock()

	if st := i.checkHandle(h); st.IsError() {
		return st
	}
	if st, ok := i.takeInjected("viUninstallHandler"); ok {
		return st
	}
	if cb == nil {
		return driver.StatusErrorInvalidHandlerRef
	}

	cbPtr := reflect.ValueOf(cb).Pointer()
	for idx, ih := range i.handlers {
		if ih.eventType == eventType && ih.cbPtr == cbPtr && reflect.DeepEqual(ih.userData, userData) {
			i.handlers = append(i.handlers[:idx], i.handlers[idx+1:]...)
			return driver.StatusSuccess
		}
	}
	return driver.StatusErrorInvalidHandlerRef
}

// EnableEvent implements driver.Driver. Only handler delivery is
// simulated.
func (i *Instrument) EnableEvent(h driver.Handle, eventType driver.EventType, mech driver.Mechanism) driver.Status {
	i.mu.Lock()
	defer i.mu.Unlock()

	if st := i.checkHandle(h); st.IsError() {
		return st
	}
	if st, ok := i.takeInjected("viEnableEvent"); ok {
		return st
	}
	if mech != driver.MechanismHandler {
		return driver.StatusErrorInvalidMechanism
	}

	if i.enabled[eventType] {
		return driver.StatusSuccessEventEnabled
	}
	i.enabled[eventType] = true
	return driver.StatusSuccess
}

// DisableEvent implements driver.Driver.
func (i *Instrument) DisableEvent(h driver.Handle, eventType driver.EventType, mech driver.Mechanism) driver.Status {
	i.mu.Lock()
	defer i.mu.Unlock()

	if st := i.checkHandle(h); st.IsError() {
		return st
	}
	if st, ok := i.takeInjected("viDisableEvent"); ok {
		return st
	}
	if mech != driver.MechanismHandler {
		return driver.StatusErrorInvalidMechanism
	}

	if !i.enabled[eventType] {
		return driver.StatusSuccessEventDisabled
	}
	delete(i.enabled, eventType)
	return driver.StatusSuccess
}

// DiscardEvents implements driver.Driver.
func (i *Instrument) DiscardEvents(h driver.Handle, eventType driver.EventType, mech driver.Mechanism) driver.Status {
	i.mu.Lock()
	defer i.mu.Unlock()

	if st := i.checkHandle(h); st.IsError() {
		return st
	}
	if st, ok := i.takeInjected("viDiscardEvents"); ok {
		return st
	}

	if i.queued[eventType] == 0 {
		return driver.StatusSuccessQueueEmpty
	}
	i.queued[eventType] = 0
	return driver.StatusSuccess
}

// Compile-time interface satisfaction checks.
var (
	_ driver.Driver = (*Instrument)(nil)
	_ driver.Opener = (*Instrument)(nil)
)

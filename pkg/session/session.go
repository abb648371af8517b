package session

import (
	"bytes"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Snyder005/govisa/pkg/driver"
	"github.com/Snyder005/govisa/pkg/event"
	"github.com/Snyder005/govisa/pkg/log"
)

const (
	// DefaultBufferSize is the read buffer size used by Query and
	// QueryBytes when no explicit size is given. Responses larger than
	// this are cut off at the buffer boundary without detection; pass
	// an explicit size via QueryN/QueryBytesN for large responses.
	DefaultBufferSize = 1024

	// attrBufferSize is the native buffer capacity for string-valued
	// attribute reads.
	attrBufferSize = 256
)

// Session is an open, stateful connection to one instrument resource.
// It owns its driver handle exclusively; see the package documentation
// for lifecycle and concurrency rules.
type Session struct {
	drv      driver.Driver
	handle   driver.Handle
	resource string

	// id is the session trace identifier (UUID).
	id string

	logger    log.Logger
	describer driver.Describer
	registry  *event.Registry
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the trace logger for the session.
// The default discards all trace events.
func WithLogger(l log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDescriber sets a status describer, typically supplied by the
// resource manager that opened the handle. The default is the built-in
// status table.
func WithDescriber(d driver.Describer) Option {
	return func(s *Session) {
		s.describer = d
	}
}

// New constructs a Session around an open driver handle. The handle
// must come from a successful resource-manager open call and must not
// be shared with any other session.
func New(drv driver.Driver, h driver.Handle, resource string, opts ...Option) *Session {
	s := &Session{
		drv:      drv,
		handle:   h,
		resource: resource,
		id:       uuid.New().String(),
		logger:   log.NoopLogger{},
		registry: event.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.traceState("", "OPEN", "session constructed")
	return s
}

// ID returns the session trace identifier.
func (s *Session) ID() string {
	return s.id
}

// ResourceName returns the resource string this session is bound to.
func (s *Session) ResourceName() string {
	return s.resource
}

// Handle returns the raw driver handle. Exposed for driver-level
// tooling; normal callers never need it.
func (s *Session) Handle() driver.Handle {
	return s.handle
}

// Handlers returns the session's event handler registry.
func (s *Session) Handlers() *event.Registry {
	return s.registry
}

// check translates a native status through the session's describer.
func (s *Session) check(op string, st driver.Status) error {
	return driver.CheckWith(s.describer, op, st)
}

// Write encodes command and transfers it to the instrument. A write
// that transfers fewer bytes than the command length fails with
// IncompleteWriteError; it is never silently truncated.
func (s *Session) Write(command string) error {
	data := []byte(command)

	count, st := s.drv.Write(s.handle, data)
	if err := s.check("viWrite", st); err != nil {
		s.traceError("viWrite", "writing command", st)
		return err
	}

	s.traceTransfer("viWrite", log.DirectionOut, len(data), int(count), st, data)

	if int(count) != len(data) {
		return IncompleteWriteError{Expected: len(data), Actual: int(count)}
	}
	return nil
}

// Read reads up to bufSize bytes from the instrument and returns
// exactly the bytes the driver reported; unused buffer capacity never
// leaks into the result. A successful driver read of zero bytes fails
// with ErrEmptyRead. A response that exactly fills the buffer is
// indistinguishable from a truncated one; the driver's
// VI_SUCCESS_MAX_CNT status is visible in the trace log only.
func (s *Session) Read(bufSize int) ([]byte, error) {
	if bufSize <= 0 {
		return nil, ErrBufferSize
	}

	buf := make([]byte, bufSize)
	count, st := s.drv.Read(s.handle, buf)
	if err := s.check("viRead", st); err != nil {
		s.traceError("viRead", "reading response", st)
		return nil, err
	}

	s.traceTransfer("viRead", log.DirectionIn, bufSize, int(count), st, buf[:count])

	if count == 0 {
		return nil, ErrEmptyRead
	}
	return buf[:count], nil
}

// ReadString reads like Read and decodes the result to text with
// leading and trailing whitespace trimmed.
func (s *Session) ReadString(bufSize int) (string, error) {
	data, err := s.Read(bufSize)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Query sends command and reads the text response using
// DefaultBufferSize. If the write fails, the read is never attempted.
func (s *Session) Query(command string) (string, error) {
	return s.QueryN(command, DefaultBufferSize)
}

// QueryN sends command and reads the text response into a buffer of
// bufSize bytes.
func (s *Session) QueryN(command string, bufSize int) (string, error) {
	if err := s.Write(command); err != nil {
		return "", err
	}
	return s.ReadString(bufSize)
}

// QueryBytes sends command and reads the raw response using
// DefaultBufferSize.
func (s *Session) QueryBytes(command string) ([]byte, error) {
	return s.QueryBytesN(command, DefaultBufferSize)
}

// QueryBytesN sends command and reads the raw response into a buffer
// of bufSize bytes.
func (s *Session) QueryBytesN(command string, bufSize int) ([]byte, error) {
	if err := s.Write(command); err != nil {
		return nil, err
	}
	return s.Read(bufSize)
}

// Clear clears the device input and output buffers.
func (s *Session) Clear() error {
	st := s.drv.Clear(s.handle)
	if err := s.check("viClear", st); err != nil {
		s.traceError("viClear", "clearing device buffers", st)
		return err
	}

	s.emit(log.Event{
		Direction: log.DirectionLocal,
		Category:  log.CategoryState,
		Operation: "viClear",
		Status:    st,
	})
	return nil
}

// Close releases the session handle. It is the terminal transition of
// the session lifecycle and must be invoked exactly once; the handle
// must not be used afterward, by this session or anyone else.
func (s *Session) Close() error {
	st := s.drv.Close(s.handle)
	if err := s.check("viClose", st); err != nil {
		s.traceError("viClose", "closing session", st)
		return err
	}

	s.registry.Clear()
	s.traceState("OPEN", "CLOSED", "session closed")
	return nil
}

// SetTimeout sets the session's I/O timeout attribute. The timeout
// bounds the blocking duration of subsequent reads and writes; it is
// applied by the driver, not re-implemented here.
func (s *Session) SetTimeout(d time.Duration) error {
	ms := uint32(d.Milliseconds())

	st := s.drv.SetAttribute(s.handle, driver.AttrTimeoutValue, ms)
	if err := s.check("viSetAttribute", st); err != nil {
		s.traceError("viSetAttribute", "setting timeout", st)
		return err
	}

	s.traceAttribute("viSetAttribute", driver.AttrTimeoutValue, d.String(), st)
	return nil
}

// GetAttribute reads a string-valued session attribute through a
// fixed 256-byte native buffer and decodes it up to the first NUL.
func (s *Session) GetAttribute(attr driver.Attribute) (string, error) {
	buf := make([]byte, attrBufferSize)

	st := s.drv.GetAttribute(s.handle, attr, buf)
	if err := s.check("viGetAttribute", st); err != nil {
		s.traceError("viGetAttribute", "reading attribute "+attr.String(), st)
		return "", err
	}

	value := string(buf)
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		value = string(buf[:i])
	}

	s.traceAttribute("viGetAttribute", attr, value, st)
	return value, nil
}

// ManufacturerName reads the device manufacturer attribute.
func (s *Session) ManufacturerName() (string, error) {
	return s.GetAttribute(driver.AttrManufacturerName)
}

// ModelName reads the device model attribute.
func (s *Session) ModelName() (string, error) {
	return s.GetAttribute(driver.AttrModelName)
}

// USBSerialNumber reads the USB serial number attribute.
func (s *Session) USBSerialNumber() (string, error) {
	return s.GetAttribute(driver.AttrUSBSerialNumber)
}

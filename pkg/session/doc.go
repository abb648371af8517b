// Package session implements the instrument session, the
// command/response layer on top of a native driver handle.
//
// A Session wraps one open driver handle and exposes the write/read
// cycle, device clear, session attributes and event subscription. The
// handle is obtained from a resource manager (an external
// collaborator, modeled as driver.Opener) and owned exclusively by the
// Session from construction until Close.
//
// # Lifecycle
//
// Open -> (Write/Read/Query, attributes, Clear, events)* -> Closed.
// Close is the terminal transition and must be called exactly once;
// callers bind it to the session's scope:
//
//	s := session.New(drv, handle, "USB0::0x1234::0x5678::INSTR")
//	defer s.Close()
//
// Operations after Close are a caller contract violation: they are not
// validated locally and surface whatever failure status the driver
// reports for the dead handle.
//
// # Buffers and Partial Transfers
//
// Reads fill a caller-sized buffer and return exactly the bytes the
// driver reported; a reported count of zero is a failure (ErrEmptyRead),
// not an empty response. Writes that transfer fewer bytes than the
// command length fail with IncompleteWriteError. Query and QueryBytes
// use DefaultBufferSize (1024 bytes); a response larger than the
// buffer is silently cut off at the buffer boundary, so callers
// expecting large responses must use QueryN or QueryBytesN with an
// explicit size.
//
// # Concurrency
//
// A Session is one conversational stream and is not safe for
// concurrent use; interleaving a write from one goroutine with a read
// from another corrupts the command/response pairing. Applications
// needing shared access must serialize externally. Event callbacks run
// on a driver-managed context concurrently with the session owner and
// must not perform session operations.
//
// All operations block up to the driver timeout configured with
// SetTimeout; there is no cancellation beyond that bound, and no
// operation is ever retried internally.
package session

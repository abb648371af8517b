package session

import (
	"errors"
	"fmt"
)

// Session errors.
var (
	// ErrEmptyRead is returned when the driver reports a successful
	// read of zero bytes. A genuine empty response is not supported;
	// zero bytes means nothing was available.
	ErrEmptyRead = errors.New("read zero bytes from instrument")

	// ErrBufferSize is returned for non-positive read buffer sizes.
	ErrBufferSize = errors.New("buffer size must be positive")
)

// IncompleteWriteError reports a write that succeeded at the driver
// level but transferred fewer bytes than the encoded command length.
// The write is treated as failed; nothing is retried.
type IncompleteWriteError struct {
	// Expected is the encoded command length in bytes.
	Expected int

	// Actual is the byte count the driver reported written.
	Actual int
}

// Error returns the formatted error message.
func (e IncompleteWriteError) Error() string {
	return fmt.Sprintf("incomplete write: wrote %d of %d bytes", e.Actual, e.Expected)
}

package driver

import "fmt"

// Error reports that a native call returned a failure status.
// Op is the name of the native operation, e.g. "viWrite".
type Error struct {
	// Op is the native operation that failed.
	Op string

	// Code is the raw status code reported by the driver.
	Code Status

	// Description is the human-readable meaning of Code.
	Description string
}

// Error returns the formatted error message.
func (e *Error) Error() string {
	return fmt.Sprintf("%s failed with %s (%d): %s", e.Op, e.Code, int32(e.Code), e.Description)
}

// Describer resolves status codes to human-readable descriptions.
// Resource managers may implement it to supply driver-specific text;
// Check uses the built-in table.
type Describer interface {
	// Describe returns the description for the given status code.
	Describe(st Status) string
}

// Check translates a native status code into a Go error. It is the
// single choke point between raw Status values and the rest of the
// library: success (including informational completion codes) yields
// nil, failure yields an *Error carrying the operation name, the code,
// and its description from the built-in table.
//
// Check is pure: the same (op, st) pair always yields the same result.
func Check(op string, st Status) error {
	if st.IsSuccess() {
		return nil
	}
	return &Error{Op: op, Code: st, Description: st.Description()}
}

// CheckWith is Check with descriptions resolved through d instead of
// the built-in table. A nil d falls back to Check.
func CheckWith(d Describer, op string, st Status) error {
	if st.IsSuccess() {
		return nil
	}
	if d == nil {
		return Check(op, st)
	}
	return &Error{Op: op, Code: st, Description: d.Describe(st)}
}

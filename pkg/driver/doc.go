// Package driver defines the native call surface of a VISA-style
// instrument driver and the value types that cross it.
//
// The Driver interface mirrors the viWrite/viRead family of native
// calls one-to-one: every method takes an opaque session Handle and
// returns a raw Status code. Nothing above this package inspects a raw
// status directly; results are funneled through Check (or CheckWith),
// the single translation point from status codes to Go errors.
//
// # Status Codes
//
// Status follows the visa.h convention: zero or positive values are
// success (possibly carrying an informational sub-code such as
// VI_SUCCESS_MAX_CNT), negative values are failures. Constants are
// built the same way visa.h builds them, as an offset from _VI_ERROR.
//
// # Collaborators
//
// Opening a session is the job of a resource manager, which this
// package only models as the Opener interface. Likewise an external
// resource manager may supply its own status descriptions through the
// Describer interface; Check falls back to the built-in table.
package driver

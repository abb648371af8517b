package driver

import "fmt"

// Status is a raw native status code. Zero and positive values denote
// success, where positive values carry an informational sub-code
// (for example StatusSuccessMaxCount). Negative values denote failure.
//
// Status values are consumed immediately by Check; they are never
// stored by this layer.
type Status int32

// viError is _VI_ERROR from visa.h; failure codes are offsets from it.
const viError Status = -0x80000000

// Completion and warning codes.
const (
	// StatusSuccess indicates the operation completed successfully.
	StatusSuccess Status = 0

	// StatusSuccessEventEnabled indicates the event was already enabled
	// for at least one of the specified mechanisms.
	StatusSuccessEventEnabled Status = 0x3FFF0002

	// StatusSuccessEventDisabled indicates the event was already
	// disabled for at least one of the specified mechanisms.
	StatusSuccessEventDisabled Status = 0x3FFF0003

	// StatusSuccessQueueEmpty indicates the operation completed but the
	// event queue was already empty.
	StatusSuccessQueueEmpty Status = 0x3FFF0004

	// StatusSuccessTermChar indicates the read stopped because the
	// termination character was read.
	StatusSuccessTermChar Status = 0x3FFF0005

	// StatusSuccessMaxCount indicates the read transferred exactly the
	// requested count; more data may be available.
	StatusSuccessMaxCount Status = 0x3FFF0006

	// StatusWarnQueueOverflow indicates event information was lost
	// because the event queue was full.
	StatusWarnQueueOverflow Status = 0x3FFF000C

	// StatusSuccessDeviceNotPresent indicates the session opened but
	// the device is not responding.
	StatusSuccessDeviceNotPresent Status = 0x3FFF007D
)

// Failure codes, built as offsets from _VI_ERROR like visa.h does.
const (
	// StatusErrorSystemError indicates an unknown system error.
	StatusErrorSystemError Status = viError + 0x3FFF0000

	// StatusErrorInvalidObject indicates the session or object
	// reference is invalid.
	StatusErrorInvalidObject Status = viError + 0x3FFF000E

	// StatusErrorResourceLocked indicates the resource is locked.
	StatusErrorResourceLocked Status = viError + 0x3FFF000F

	// StatusErrorInvalidExpr indicates an invalid search expression.
	StatusErrorInvalidExpr Status = viError + 0x3FFF0010

	// StatusErrorResourceNotFound indicates the device or resource is
	// not present in the system.
	StatusErrorResourceNotFound Status = viError + 0x3FFF0011

	// StatusErrorInvalidResourceName indicates a resource string that
	// could not be parsed.
	StatusErrorInvalidResourceName Status = viError + 0x3FFF0012

	// StatusErrorInvalidAccessMode indicates an invalid access mode.
	StatusErrorInvalidAccessMode Status = viError + 0x3FFF0013

	// StatusErrorTimeout indicates the timeout expired before the
	// operation completed.
	StatusErrorTimeout Status = viError + 0x3FFF0015

	// StatusErrorClosingFailed indicates the driver failed to close the
	// session or object reference.
	StatusErrorClosingFailed Status = viError + 0x3FFF0016

	// StatusErrorUnsupportedAttribute indicates the attribute is not
	// defined or supported by the referenced object.
	StatusErrorUnsupportedAttribute Status = viError + 0x3FFF001D

	// StatusErrorUnsupportedAttributeState indicates the attribute
	// state is invalid or unsupported.
	StatusErrorUnsupportedAttributeState Status = viError + 0x3FFF001E

	// StatusErrorAttributeReadOnly indicates a write to a read-only
	// attribute.
	StatusErrorAttributeReadOnly Status = viError + 0x3FFF001F

	// StatusErrorInvalidEvent indicates the event type is not supported
	// by the resource.
	StatusErrorInvalidEvent Status = viError + 0x3FFF0026

	// StatusErrorInvalidMechanism indicates an invalid delivery
	// mechanism.
	StatusErrorInvalidMechanism Status = viError + 0x3FFF0027

	// StatusErrorHandlerNotInstalled indicates a handler was not
	// installed for the event type.
	StatusErrorHandlerNotInstalled Status = viError + 0x3FFF0028

	// StatusErrorInvalidHandlerRef indicates the handler reference is
	// invalid or does not match an installed handler.
	StatusErrorInvalidHandlerRef Status = viError + 0x3FFF0029

	// StatusErrorInvalidContext indicates an invalid event context.
	StatusErrorInvalidContext Status = viError + 0x3FFF002A

	// StatusErrorQueueOverflow indicates the event queue for the
	// specified type has overflowed.
	StatusErrorQueueOverflow Status = viError + 0x3FFF002D

	// StatusErrorNotEnabled indicates the session is not enabled for
	// events of the specified type.
	StatusErrorNotEnabled Status = viError + 0x3FFF002F

	// StatusErrorAbort indicates a user abort occurred during transfer.
	StatusErrorAbort Status = viError + 0x3FFF0030

	// StatusErrorRawWriteProtocolViolation indicates a violation of the
	// raw write protocol during transfer.
	StatusErrorRawWriteProtocolViolation Status = viError + 0x3FFF0034

	// StatusErrorRawReadProtocolViolation indicates a violation of the
	// raw read protocol during transfer.
	StatusErrorRawReadProtocolViolation Status = viError + 0x3FFF0035

	// StatusErrorOutputProtocolViolation indicates the device reported
	// an output protocol error during transfer.
	StatusErrorOutputProtocolViolation Status = viError + 0x3FFF0036

	// StatusErrorInputProtocolViolation indicates the device reported
	// an input protocol error during transfer.
	StatusErrorInputProtocolViolation Status = viError + 0x3FFF0037

	// StatusErrorBusError indicates a bus error during transfer.
	StatusErrorBusError Status = viError + 0x3FFF0038

	// StatusErrorInProgress indicates an asynchronous operation is
	// already in progress.
	StatusErrorInProgress Status = viError + 0x3FFF0039

	// StatusErrorInvalidSetup indicates the operation could not start
	// because attributes are in an inconsistent state.
	StatusErrorInvalidSetup Status = viError + 0x3FFF003A

	// StatusErrorQueueError indicates the asynchronous operation could
	// not be queued.
	StatusErrorQueueError Status = viError + 0x3FFF003B

	// StatusErrorAllocation indicates insufficient system resources.
	StatusErrorAllocation Status = viError + 0x3FFF003C

	// StatusErrorInvalidMask indicates an invalid buffer mask.
	StatusErrorInvalidMask Status = viError + 0x3FFF003D

	// StatusErrorIO indicates an I/O error.
	StatusErrorIO Status = viError + 0x3FFF003E

	// StatusErrorUnsupportedOperation indicates the session does not
	// support the operation.
	StatusErrorUnsupportedOperation Status = viError + 0x3FFF0067

	// StatusErrorConnectionLost indicates the I/O connection for the
	// session has been lost.
	StatusErrorConnectionLost Status = viError + 0x3FFF00A6

	// StatusErrorNoPermission indicates access to the resource or
	// remote machine was denied.
	StatusErrorNoPermission Status = viError + 0x3FFF00A8
)

// IsSuccess returns true if the status denotes success, including
// informational completion codes.
func (s Status) IsSuccess() bool {
	return s >= 0
}

// IsError returns true if the status denotes failure.
func (s Status) IsError() bool {
	return s < 0
}

// statusNames maps known codes to their canonical visa.h names.
var statusNames = map[Status]string{
	StatusSuccess:                        "VI_SUCCESS",
	StatusSuccessEventEnabled:            "VI_SUCCESS_EVENT_EN",
	StatusSuccessEventDisabled:           "VI_SUCCESS_EVENT_DIS",
	StatusSuccessQueueEmpty:              "VI_SUCCESS_QUEUE_EMPTY",
	StatusSuccessTermChar:                "VI_SUCCESS_TERM_CHAR",
	StatusSuccessMaxCount:                "VI_SUCCESS_MAX_CNT",
	StatusWarnQueueOverflow:              "VI_WARN_QUEUE_OVERFLOW",
	StatusSuccessDeviceNotPresent:        "VI_SUCCESS_DEV_NPRESENT",
	StatusErrorSystemError:               "VI_ERROR_SYSTEM_ERROR",
	StatusErrorInvalidObject:             "VI_ERROR_INV_OBJECT",
	StatusErrorResourceLocked:            "VI_ERROR_RSRC_LOCKED",
	StatusErrorInvalidExpr:               "VI_ERROR_INV_EXPR",
	StatusErrorResourceNotFound:          "VI_ERROR_RSRC_NFOUND",
	StatusErrorInvalidResourceName:       "VI_ERROR_INV_RSRC_NAME",
	StatusErrorInvalidAccessMode:         "VI_ERROR_INV_ACC_MODE",
	StatusErrorTimeout:                   "VI_ERROR_TMO",
	StatusErrorClosingFailed:             "VI_ERROR_CLOSING_FAILED",
	StatusErrorUnsupportedAttribute:      "VI_ERROR_NSUP_ATTR",
	StatusErrorUnsupportedAttributeState: "VI_ERROR_NSUP_ATTR_STATE",
	StatusErrorAttributeReadOnly:         "VI_ERROR_ATTR_READONLY",
	StatusErrorInvalidEvent:              "VI_ERROR_INV_EVENT",
	StatusErrorInvalidMechanism:          "VI_ERROR_INV_MECH",
	StatusErrorHandlerNotInstalled:       "VI_ERROR_HNDLR_NINSTALLED",
	StatusErrorInvalidHandlerRef:         "VI_ERROR_INV_HNDLR_REF",
	StatusErrorInvalidContext:            "VI_ERROR_INV_CONTEXT",
	StatusErrorQueueOverflow:             "VI_ERROR_QUEUE_OVERFLOW",
	StatusErrorNotEnabled:                "VI_ERROR_NENABLED",
	StatusErrorAbort:                     "VI_ERROR_ABORT",
	StatusErrorRawWriteProtocolViolation: "VI_ERROR_RAW_WR_PROT_VIOL",
	StatusErrorRawReadProtocolViolation:  "VI_ERROR_RAW_RD_PROT_VIOL",
	StatusErrorOutputProtocolViolation:   "VI_ERROR_OUTP_PROT_VIOL",
	StatusErrorInputProtocolViolation:    "VI_ERROR_INP_PROT_VIOL",
	StatusErrorBusError:                  "VI_ERROR_BERR",
	StatusErrorInProgress:                "VI_ERROR_IN_PROGRESS",
	StatusErrorInvalidSetup:              "VI_ERROR_INV_SETUP",
	StatusErrorQueueError:                "VI_ERROR_QUEUE_ERROR",
	StatusErrorAllocation:                "VI_ERROR_ALLOC",
	StatusErrorInvalidMask:               "VI_ERROR_INV_MASK",
	StatusErrorIO:                        "VI_ERROR_IO",
	StatusErrorUnsupportedOperation:      "VI_ERROR_NSUP_OPER",
	StatusErrorConnectionLost:            "VI_ERROR_CONN_LOST",
	StatusErrorNoPermission:              "VI_ERROR_NPERMISSION",
}

// statusDescriptions maps known codes to human-readable meanings.
var statusDescriptions = map[Status]string{
	StatusSuccess:                        "Operation completed successfully.",
	StatusSuccessEventEnabled:            "Specified event is already enabled for at least one of the specified mechanisms.",
	StatusSuccessEventDisabled:           "Specified event is already disabled for at least one of the specified mechanisms.",
	StatusSuccessQueueEmpty:              "Operation completed successfully, but the queue was already empty.",
	StatusSuccessTermChar:                "The specified termination character was read.",
	StatusSuccessMaxCount:                "The number of bytes transferred is equal to the requested input count. More data may be available.",
	StatusWarnQueueOverflow:              "The event queue is full; event information was lost.",
	StatusSuccessDeviceNotPresent:        "Session opened successfully, but the device at the specified address is not responding.",
	StatusErrorSystemError:               "Unknown system error.",
	StatusErrorInvalidObject:             "The given session or object reference is invalid.",
	StatusErrorResourceLocked:            "The resource is locked; the operation cannot be performed.",
	StatusErrorInvalidExpr:               "Invalid expression specified for search.",
	StatusErrorResourceNotFound:          "Insufficient location information, or the requested device or resource is not present in the system.",
	StatusErrorInvalidResourceName:       "Invalid resource reference specified. Parsing error.",
	StatusErrorInvalidAccessMode:         "Invalid access mode.",
	StatusErrorTimeout:                   "Timeout expired before operation completed.",
	StatusErrorClosingFailed:             "The driver failed to properly close the session or object reference.",
	StatusErrorUnsupportedAttribute:      "The specified attribute is not defined or supported by the referenced object.",
	StatusErrorUnsupportedAttributeState: "The specified state of the attribute is not valid or is not supported by the object.",
	StatusErrorAttributeReadOnly:         "The specified attribute is read-only.",
	StatusErrorInvalidEvent:              "Specified event type is not supported by the resource.",
	StatusErrorInvalidMechanism:          "Invalid mechanism specified.",
	StatusErrorHandlerNotInstalled:       "A handler was not installed for the specified event.",
	StatusErrorInvalidHandlerRef:         "The given handler reference is either invalid or was not installed.",
	StatusErrorInvalidContext:            "Specified event context is invalid.",
	StatusErrorQueueOverflow:             "The event queue for the specified type has overflowed.",
	StatusErrorNotEnabled:                "The session must be enabled for events of the specified type in order to receive them.",
	StatusErrorAbort:                     "User abort occurred during transfer.",
	StatusErrorRawWriteProtocolViolation: "Violation of raw write protocol occurred during transfer.",
	StatusErrorRawReadProtocolViolation:  "Violation of raw read protocol occurred during transfer.",
	StatusErrorOutputProtocolViolation:   "Device reported an output protocol error during transfer.",
	StatusErrorInputProtocolViolation:    "Device reported an input protocol error during transfer.",
	StatusErrorBusError:                  "Bus error occurred during transfer.",
	StatusErrorInProgress:                "Unable to queue the asynchronous operation because there is already an operation in progress.",
	StatusErrorInvalidSetup:              "Unable to start operation because the setup is invalid due to inconsistent attribute state.",
	StatusErrorQueueError:                "Unable to queue the asynchronous operation.",
	StatusErrorAllocation:                "Insufficient system resources to perform necessary memory allocation.",
	StatusErrorInvalidMask:               "Invalid buffer mask specified.",
	StatusErrorIO:                        "Could not perform operation because of I/O error.",
	StatusErrorUnsupportedOperation:      "The given session or object reference does not support this operation.",
	StatusErrorConnectionLost:            "The I/O connection for the given session has been lost.",
	StatusErrorNoPermission:              "Access to the resource or remote machine is denied.",
}

// String returns the canonical visa.h name of the code, or a hex
// rendering for codes outside the known table.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("0x%08X", uint32(s))
}

// Description returns the human-readable meaning of the code. Unknown
// codes get a generic description so that unknown failures still carry
// usable text.
func (s Status) Description() string {
	if desc, ok := statusDescriptions[s]; ok {
		return desc
	}
	if s.IsError() {
		return "Unknown error code."
	}
	return "Unknown completion code."
}

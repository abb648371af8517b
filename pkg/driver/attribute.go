package driver

// Attribute identifies a session attribute. Values follow visa.h:
// numeric attributes live in the 0x3FFF range, read-only string
// attributes in the 0xBFFF range.
type Attribute uint32

const (
	// AttrTimeoutValue is the I/O timeout in milliseconds
	// (VI_ATTR_TMO_VALUE). Numeric, read-write.
	AttrTimeoutValue Attribute = 0x3FFF001A

	// AttrTermChar is the read termination character (VI_ATTR_TERMCHAR).
	AttrTermChar Attribute = 0x3FFF0018

	// AttrTermCharEnabled enables read termination on AttrTermChar
	// (VI_ATTR_TERMCHAR_EN).
	AttrTermCharEnabled Attribute = 0x3FFF0038

	// AttrResourceClass is the resource class, e.g. "INSTR"
	// (VI_ATTR_RSRC_CLASS). String, read-only.
	AttrResourceClass Attribute = 0xBFFF0001

	// AttrResourceName is the full resource string (VI_ATTR_RSRC_NAME).
	// String, read-only.
	AttrResourceName Attribute = 0xBFFF0002

	// AttrManufacturerName is the device manufacturer
	// (VI_ATTR_MANF_NAME). String, read-only.
	AttrManufacturerName Attribute = 0xBFFF0072

	// AttrModelName is the device model (VI_ATTR_MODEL_NAME).
	// String, read-only.
	AttrModelName Attribute = 0xBFFF0077

	// AttrUSBSerialNumber is the USB serial number
	// (VI_ATTR_USB_SERIAL_NUM). String, read-only.
	AttrUSBSerialNumber Attribute = 0xBFFF01A0
)

// String returns the canonical visa.h attribute name.
func (a Attribute) String() string {
	switch a {
	case AttrTimeoutValue:
		return "VI_ATTR_TMO_VALUE"
	case AttrTermChar:
		return "VI_ATTR_TERMCHAR"
	case AttrTermCharEnabled:
		return "VI_ATTR_TERMCHAR_EN"
	case AttrResourceClass:
		return "VI_ATTR_RSRC_CLASS"
	case AttrResourceName:
		return "VI_ATTR_RSRC_NAME"
	case AttrManufacturerName:
		return "VI_ATTR_MANF_NAME"
	case AttrModelName:
		return "VI_ATTR_MODEL_NAME"
	case AttrUSBSerialNumber:
		return "VI_ATTR_USB_SERIAL_NUM"
	default:
		return "UNKNOWN"
	}
}

package core

import "fmt"

// Error is a SCPI error as defined in IEEE 488.2, 21.8: a negative
// numeric code plus the canonical message reported verbatim in
// SYSTem:ERRor? responses.
//
// Error values are plain, comparable and allocation free. They describe
// protocol state, not program faults; infrastructure failures (config,
// transport, tree construction) use github.com/vuuvv/errors instead.
type Error struct {
	Code    int16
	Message string
}

func (e Error) Error() string {
	return e.Message
}

// Response renders the error the way the error queue query reports it,
// e.g. `-113,"Undefined header"`.
func (e Error) Response() string {
	return fmt.Sprintf("%d,%q", e.Code, e.Message)
}

// Custom builds a device specific error with a caller-chosen code.
func Custom(code int16, name string) Error {
	return Error{Code: code, Message: name}
}

var (
	// ErrCommandError (-100) is the generic syntax error for devices that
	// cannot detect a more specific one (IEEE 488.2, 11.5.1.1.4).
	ErrCommandError = Error{-100, "Command error"}

	// ErrInvalidCharacter (-101): a syntactic element contains a
	// character which is invalid for that type, e.g. SETUP&.
	ErrInvalidCharacter = Error{-101, "Invalid character"}

	// ErrSyntaxError (-102): an unrecognized command or data type was
	// encountered.
	ErrSyntaxError = Error{-102, "Syntax Error"}

	// ErrInvalidSeparator (-103): the parser expected a separator and
	// found an illegal character, e.g. `*EMC 1:CH1:VOLTS 5.`
	ErrInvalidSeparator = Error{-103, "Invalid separator"}

	// ErrDataTypeError (-104): a data element of a different type than
	// allowed was recognized, e.g. block data where numeric was expected.
	ErrDataTypeError = Error{-104, "Data type error"}

	// ErrParameterNotAllowed (-108): more parameters than the header
	// accepts.
	ErrParameterNotAllowed = Error{-108, "Parameter not allowed"}

	// ErrMissingParameter (-109): fewer parameters than the header
	// requires.
	ErrMissingParameter = Error{-109, "Missing parameter"}

	// ErrCommandHeaderError (-110): an error was detected in the header
	// and no more specific -111..-119 code applies.
	ErrCommandHeaderError = Error{-110, "Command header error"}

	// ErrHeaderSeparatorError (-111): an illegal header separator was
	// encountered, e.g. `*GMC"MACRO"`.
	ErrHeaderSeparatorError = Error{-111, "Header separator error"}

	// ErrProgramMnemonicTooLong (-112): the header exceeds twelve
	// characters (IEEE 488.2, 7.6.1.4.1).
	ErrProgramMnemonicTooLong = Error{-112, "Program mnemonic too long"}

	// ErrUndefinedHeader (-113): syntactically correct header that is not
	// defined for this device, e.g. *XYZ.
	ErrUndefinedHeader = Error{-113, "Undefined header"}

	// ErrHeaderSuffixOutOfRange (-114): a numeric suffix attached to a
	// program mnemonic makes the header invalid.
	ErrHeaderSuffixOutOfRange = Error{-114, "Header suffix out of range"}

	// ErrUnexpectedNumberOfParameters (-115): the number of received
	// parameters does not match the handler signature.
	ErrUnexpectedNumberOfParameters = Error{-115, "Argument overflow"}

	// ErrNumericDataError (-120): generic error while parsing a numeric
	// data element, including the nondecimal types.
	ErrNumericDataError = Error{-120, "Numeric data error"}

	// ErrInvalidCharacterInNumber (-121): e.g. an alpha in decimal data
	// or a `9` in octal data.
	ErrInvalidCharacterInNumber = Error{-121, "Invalid character in number"}

	// ErrExponentTooLarge (-123): exponent magnitude above 32000
	// (IEEE 488.2, 7.7.2.4.1).
	ErrExponentTooLarge = Error{-123, "Exponent too large"}

	// ErrTooManyDigits (-124): mantissa with more than 255 digits
	// excluding leading zeros.
	ErrTooManyDigits = Error{-124, "Too many digits"}

	// ErrNumericDataNotAllowed (-128): legal numeric data in a position
	// where the header does not accept one.
	ErrNumericDataNotAllowed = Error{-128, "Numeric data not allowed"}

	// ErrInvalidCharacterData (-141): character data element contains an
	// invalid character or is not valid for the header.
	ErrInvalidCharacterData = Error{-141, "Invalid character data"}

	// ErrExecutionError (-200) is the generic execution error
	// (IEEE 488.2, 11.5.1.1.5).
	ErrExecutionError = Error{-200, "Execution error"}

	// ErrInvalidWhileInLocal (-201): command not executable while the
	// device is in local (IEEE 488.2, 5.6.1.5).
	ErrInvalidWhileInLocal = Error{-201, "Invalid while in local"}

	// ErrCommandProtected (-203): password-protected command or query was
	// disabled.
	ErrCommandProtected = Error{-203, "Command protected"}

	// ErrTriggerError (-210): a trigger was recognized but ignored due to
	// device timing considerations.
	ErrTriggerError = Error{-210, "Trigger error"}

	// ErrParameterError (-220): program data element related error with
	// no more specific -221..-229 code.
	ErrParameterError = Error{-220, "Parameter error"}

	// ErrSettingsConflict (-221): legal program data that cannot execute
	// in the current device state.
	ErrSettingsConflict = Error{-221, "Settings conflict"}

	// ErrDataOutOfRange (-222): legal program data outside the range
	// defined by the device.
	ErrDataOutOfRange = Error{-222, "Data out of range"}

	// ErrTooMuchData (-223): block, expression or string data beyond what
	// the device can handle.
	ErrTooMuchData = Error{-223, "Too much data"}

	// ErrIllegalParameterValue (-224): an exact value from a list of
	// possibles was expected.
	ErrIllegalParameterValue = Error{-224, "Illegal parameter value"}

	// ErrHardwareError (-240): command could not execute because of a
	// device hardware problem.
	ErrHardwareError = Error{-240, "Hardware error"}

	// ErrDeviceSpecificError (-300) is the generic device-dependent error
	// (IEEE 488.2, 11.5.1.1.6).
	ErrDeviceSpecificError = Error{-300, "Device specific error"}

	// ErrSystemError (-310): some device-dependent "system error".
	ErrSystemError = Error{-310, "System error"}

	// ErrStorageFault (-320): firmware detected a fault when using data
	// storage.
	ErrStorageFault = Error{-320, "Storage fault"}

	// ErrSelfTestFailed (-330).
	ErrSelfTestFailed = Error{-330, "Self test failed"}

	// ErrCalibrationFailed (-340).
	ErrCalibrationFailed = Error{-340, "Calibration failed"}

	// ErrQueueOverflow (-350) is entered into the queue in lieu of the
	// code that caused an overflow.
	ErrQueueOverflow = Error{-350, "Queue overflow"}

	// ErrCommunicationError (-360) is the generic communication error.
	ErrCommunicationError = Error{-360, "Communication error"}

	// ErrInputBufferOverrun (-363): serial input buffer overflow caused
	// by improper or nonexistent pacing.
	ErrInputBufferOverrun = Error{-363, "Input buffer overrun"}

	// ErrTimeoutError (-365) is a generic device-dependent timeout.
	ErrTimeoutError = Error{-365, "Timeout error"}

	// ErrQueryError (-400) is the generic query error (IEEE 488.2,
	// 11.5.1.1.7 and 6.3).
	ErrQueryError = Error{-400, "Formatter error"}
)

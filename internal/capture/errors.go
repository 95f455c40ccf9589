package capture

import (
	"errors"
	"fmt"
)

// Backend signal conditions. These mark normal control flow at the device
// boundary, not failures.
var (
	// ErrStreamTick is returned by Device.ReadSample when the device had no
	// new frame ready for this poll.
	ErrStreamTick = errors.New("stream tick")

	// ErrFormatQueryEnded is returned by Device.NativeFormat past the last
	// native format index.
	ErrFormatQueryEnded = errors.New("format query ended")
)

// Error codes.
const (
	ErrCodeSessionNotOpen      = "SESSION_NOT_OPEN"
	ErrCodeDeviceOutOfRange    = "DEVICE_OUT_OF_RANGE"
	ErrCodeUnsupportedEncoding = "UNSUPPORTED_ENCODING"
	ErrCodeActivationFailed    = "DEVICE_ACTIVATION_FAILED"
	ErrCodeInvalidBuffer       = "INVALID_BUFFER"
	ErrCodeFrameReadFailed     = "FRAME_READ_FAILED"
	ErrCodeNoSampleDelivered   = "NO_SAMPLE_DELIVERED"
	ErrCodeBufferLockFailed    = "BUFFER_LOCK_FAILED"
)

// Error is a capture domain error.
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new capture error.
func NewError(code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ErrorCode returns the capture error code carried by err, or an empty
// string when err is not a capture error.
func ErrorCode(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

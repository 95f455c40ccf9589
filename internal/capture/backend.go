package capture

import "log/slog"

// NativeFormat carries the raw attributes of one device-native image
// format, prior to any filtering.
type NativeFormat struct {
	Pixel      FourCC
	Width      int
	Height     int
	Stride     int // first-plane scanline size in bytes
	SampleSize int // declared frame size; some devices report zero
	Compressed bool
	FixedSize  bool
}

// Supported reports whether the converter can consume this format.
// Compressed formats, formats with variable-size samples, and unrecognized
// pixel tags are all unsupported.
func (nf NativeFormat) Supported() bool {
	return !nf.Compressed && nf.FixedSize && encodingFromFourCC(nf.Pixel) != EncodingInvalid
}

// Backend is the host capture layer: it lists capture-class devices and
// activates them. The platform backend talks to real hardware; Mock replays
// synthetic devices for tests.
type Backend interface {
	// Devices lists the capture devices currently present, in stable order.
	Devices() ([]DeviceInfo, error)

	// Activate opens the device at the given ordinal for use.
	Activate(index int) (Device, error)
}

// Device is one activated capture device.
type Device interface {
	// NativeFormat returns the attributes of the native format at index.
	// Past the last format it returns ErrFormatQueryEnded.
	NativeFormat(index int) (NativeFormat, error)

	// Select binds the device to the native format at index and enables
	// device-side video processing. The returned format carries the final
	// negotiated geometry, which may differ from what NativeFormat
	// reported.
	Select(index int) (NativeFormat, error)

	// ReadSample polls the device for one frame without waiting. It returns
	// ErrStreamTick when no frame is ready for this poll.
	ReadSample() (Sample, error)

	// Close releases the device handle.
	Close() error
}

// Sample is one captured frame held by the device layer. Lock exposes the
// raw bytes as a contiguous buffer; the slice is valid only until Unlock
// and must not be retained.
type Sample interface {
	Lock() ([]byte, error)
	Unlock()
}

// NewBackend returns the capture backend for the current platform. On
// platforms without a capture stack the returned backend reports no
// devices.
func NewBackend(logger *slog.Logger) Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return newPlatformBackend(logger)
}

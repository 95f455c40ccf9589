package v4l2

import "fmt"

// Capability flags from v4l2_capability.device_caps.
const (
	CapVideoCapture = 0x00000001
	CapReadWrite    = 0x01000000
	CapStreaming    = 0x04000000
)

// Flags from v4l2_fmtdesc.flags.
const (
	fmtFlagCompressed = 0x0001
	fmtFlagEmulated   = 0x0002
)

// Buffer and frame size type discriminators.
const (
	bufTypeVideoCapture = 1
	frmsizeTypeDiscrete = 1
	frmsizeTypeStepwise = 3
)

// fieldNone requests progressive frames in v4l2_pix_format.field.
const fieldNone = 1

// DeviceInfo describes one capture device found on the system.
type DeviceInfo struct {
	// Path is the device node, for example /dev/video0.
	Path string

	// Name is the card name reported by the driver.
	Name string

	// Driver is the kernel driver name.
	Driver string
}

// FormatDesc describes one pixel format a device can produce.
type FormatDesc struct {
	PixelFormat uint32
	Description string
	Compressed  bool
	Emulated    bool
}

// FrameSize is one discrete capture resolution.
type FrameSize struct {
	Width  uint32
	Height uint32
}

// PixFormat mirrors the fields of v4l2_pix_format this package uses.
// On input only Width, Height and PixelFormat matter; the driver fills
// BytesPerLine and SizeImage on return from TryFormat and SetFormat.
type PixFormat struct {
	Width        uint32
	Height       uint32
	PixelFormat  uint32
	BytesPerLine uint32
	SizeImage    uint32
}

// FourCCString renders a pixel format code the way v4l2-ctl does.
func FourCCString(pixelFormat uint32) string {
	b := [4]byte{
		byte(pixelFormat),
		byte(pixelFormat >> 8),
		byte(pixelFormat >> 16),
		byte(pixelFormat >> 24),
	}
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return fmt.Sprintf("0x%08x", pixelFormat)
		}
	}
	return string(b[:])
}

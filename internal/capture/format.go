package capture

// FourCC is a four-character pixel format tag as reported by capture
// devices.
type FourCC uint32

// Pixel format tags the converter understands, plus common compressed tags
// that negotiation must skip.
const (
	FourCCBGR3 FourCC = 0x33524742 // 'BGR3' packed 24-bit, B G R byte order
	FourCCBGR4 FourCC = 0x34524742 // 'BGR4' packed 32-bit, B G R X byte order
	FourCCYUYV FourCC = 0x56595559 // 'YUYV' packed YUY2 macropixels
	FourCCNV12 FourCC = 0x3231564E // 'NV12' luma plane + interleaved UV plane
	FourCCMJPG FourCC = 0x47504A4D // 'MJPG' motion JPEG (compressed)
	FourCCH264 FourCC = 0x34363248 // 'H264' (compressed)
)

// String returns the printable four-character tag.
func (f FourCC) String() string {
	b := []byte{
		byte(f & 0xFF),
		byte((f >> 8) & 0xFF),
		byte((f >> 16) & 0xFF),
		byte((f >> 24) & 0xFF),
	}
	return string(b)
}

// Encoding identifies one of the source pixel layouts the converter
// accepts. The zero value is invalid.
type Encoding int

// Supported source encodings.
const (
	EncodingInvalid Encoding = iota
	EncodingRGB24            // packed, 3 bytes per pixel
	EncodingRGB32            // packed, 4 bytes per pixel, already canonical layout
	EncodingYUY2             // packed, 4-byte macropixels covering 2 pixels
	EncodingNV12             // planar luma followed by half-resolution interleaved chroma
)

func (e Encoding) String() string {
	switch e {
	case EncodingRGB24:
		return "RGB24"
	case EncodingRGB32:
		return "RGB32"
	case EncodingYUY2:
		return "YUY2"
	case EncodingNV12:
		return "NV12"
	default:
		return "Invalid"
	}
}

// BytesPerPixel returns the bytes per pixel of the first plane.
func (e Encoding) BytesPerPixel() int {
	switch e {
	case EncodingRGB24:
		return 3
	case EncodingRGB32:
		return 4
	case EncodingYUY2:
		return 2
	case EncodingNV12:
		return 1
	default:
		return 0
	}
}

// Planar reports whether the encoding stores chroma in a separate plane.
func (e Encoding) Planar() bool {
	return e == EncodingNV12
}

// encodingFromFourCC maps a device-native tag to a supported encoding.
// Unrecognized tags map to EncodingInvalid.
func encodingFromFourCC(fc FourCC) Encoding {
	switch fc {
	case FourCCBGR3:
		return EncodingRGB24
	case FourCCBGR4:
		return EncodingRGB32
	case FourCCYUYV:
		return EncodingYUY2
	case FourCCNV12:
		return EncodingNV12
	default:
		return EncodingInvalid
	}
}

// OutputBitsPerPixel is the depth of the canonical output encoding: three
// color bytes plus one padding byte per pixel.
const OutputBitsPerPixel = 32

// DeviceInfo describes one capture device found during enumeration.
type DeviceInfo struct {
	Index int
	Name  string
}

// Format describes one negotiable image format on a capture device.
//
// Index preserves the device's native format index, which is the value
// Session.Open expects. After negotiation filters out unsupported formats
// the indices are not necessarily contiguous.
type Format struct {
	Index     int
	Width     int
	Height    int
	Stride    int // bytes per scanline of the first plane
	FrameSize int // device-reported frame size in bytes; zero is valid
	Encoding  Encoding
}

// OutputSize returns the destination buffer size in bytes for one converted
// frame.
func (f Format) OutputSize() int {
	return f.Width * f.Height * 4
}

// OutputStride returns the destination scanline size in bytes. The output
// is tightly packed.
func (f Format) OutputStride() int {
	return f.Width * 4
}

// SourceSize returns the minimum number of source bytes one frame of this
// format occupies: stride times height for the first plane, plus the
// half-height chroma plane for planar encodings.
func (f Format) SourceSize() int {
	size := f.Stride * f.Height
	if f.Encoding.Planar() {
		size += f.Stride * (f.Height / 2)
	}
	return size
}

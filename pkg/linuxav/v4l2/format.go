//go:build linux

package v4l2

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"
)

// commonStepwiseSizes are the resolutions reported for drivers that
// answer ENUM_FRAMESIZES with a stepwise range instead of a discrete
// list. Each is clamped against the advertised range.
var commonStepwiseSizes = []FrameSize{
	{640, 480},
	{1280, 720},
	{1920, 1080},
}

// EnumFormats lists the pixel formats the device can capture, in
// driver order. The kernel signals the end of the list with EINVAL.
func (d *Device) EnumFormats() ([]FormatDesc, error) {
	var formats []FormatDesc
	for index := uint32(0); ; index++ {
		desc := v4l2Fmtdesc{
			index: index,
			typ:   bufTypeVideoCapture,
		}
		err := ioctl(d.fd, vidiocEnumFmt, unsafe.Pointer(&desc))
		if errors.Is(err, syscall.EINVAL) {
			return formats, nil
		}
		if err != nil {
			return nil, fmt.Errorf("enumerating format %d on %s: %w", index, d.path, err)
		}
		formats = append(formats, FormatDesc{
			PixelFormat: desc.pixelformat,
			Description: cstring(desc.description[:]),
			Compressed:  desc.flags&fmtFlagCompressed != 0,
			Emulated:    desc.flags&fmtFlagEmulated != 0,
		})
	}
}

// EnumFrameSizes lists the discrete capture resolutions for a pixel
// format. Stepwise and continuous ranges are mapped onto a small set
// of common resolutions clamped to the advertised bounds.
func (d *Device) EnumFrameSizes(pixelFormat uint32) ([]FrameSize, error) {
	var sizes []FrameSize
	for index := uint32(0); ; index++ {
		frm := v4l2Frmsizeenum{
			index:       index,
			pixelFormat: pixelFormat,
		}
		err := ioctl(d.fd, vidiocEnumFramesizes, unsafe.Pointer(&frm))
		if errors.Is(err, syscall.EINVAL) {
			return sizes, nil
		}
		if err != nil {
			return nil, fmt.Errorf("enumerating frame size %d on %s: %w", index, d.path, err)
		}
		switch frm.typ {
		case frmsizeTypeDiscrete:
			sizes = append(sizes, FrameSize{
				Width:  frm.discrete.width,
				Height: frm.discrete.height,
			})
		default:
			// Stepwise and continuous both carry min/max bounds; the
			// driver reports exactly one such entry.
			sw := frm.stepwise()
			for _, s := range commonStepwiseSizes {
				if s.Width >= sw.minWidth && s.Width <= sw.maxWidth &&
					s.Height >= sw.minHeight && s.Height <= sw.maxHeight {
					sizes = append(sizes, s)
				}
			}
			if len(sizes) == 0 {
				sizes = append(sizes, FrameSize{Width: sw.maxWidth, Height: sw.maxHeight})
			}
			return sizes, nil
		}
	}
}

// TryFormat asks the driver how it would satisfy the requested format
// without changing device state. The returned PixFormat carries the
// driver's stride and buffer size for the negotiated geometry.
func (d *Device) TryFormat(pix PixFormat) (PixFormat, error) {
	return d.negotiate(vidiocTryFmt, pix)
}

// SetFormat binds the device to the requested format. The driver may
// adjust the geometry; the returned PixFormat is authoritative.
func (d *Device) SetFormat(pix PixFormat) (PixFormat, error) {
	return d.negotiate(vidiocSFmt, pix)
}

// Format reads back the device's currently configured capture format.
func (d *Device) Format() (PixFormat, error) {
	format := v4l2Format{typ: bufTypeVideoCapture}
	if err := ioctl(d.fd, vidiocGFmt, unsafe.Pointer(&format)); err != nil {
		return PixFormat{}, fmt.Errorf("querying format on %s: %w", d.path, err)
	}
	return pixFromKernel(format.pix), nil
}

func (d *Device) negotiate(req uint, pix PixFormat) (PixFormat, error) {
	format := v4l2Format{
		typ: bufTypeVideoCapture,
		pix: v4l2PixFormat{
			width:       pix.Width,
			height:      pix.Height,
			pixelformat: pix.PixelFormat,
			field:       fieldNone,
		},
	}
	if err := ioctl(d.fd, req, unsafe.Pointer(&format)); err != nil {
		return PixFormat{}, fmt.Errorf("negotiating %s %dx%d on %s: %w",
			FourCCString(pix.PixelFormat), pix.Width, pix.Height, d.path, err)
	}
	return pixFromKernel(format.pix), nil
}

func pixFromKernel(pix v4l2PixFormat) PixFormat {
	return PixFormat{
		Width:        pix.width,
		Height:       pix.height,
		PixelFormat:  pix.pixelformat,
		BytesPerLine: pix.bytesperline,
		SizeImage:    pix.sizeimage,
	}
}

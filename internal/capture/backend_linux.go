//go:build linux

package capture

import (
	"errors"
	"fmt"
	"log/slog"
	"syscall"

	"github.com/ammon-c/timelapse/pkg/linuxav/v4l2"
)

// newPlatformBackend returns the V4L2-backed capture backend.
func newPlatformBackend(logger *slog.Logger) Backend {
	return &v4l2Backend{logger: logger}
}

type v4l2Backend struct {
	logger *slog.Logger
}

func (b *v4l2Backend) Devices() ([]DeviceInfo, error) {
	devs, err := v4l2.FindDevices()
	if err != nil {
		return nil, fmt.Errorf("scanning video devices: %w", err)
	}
	infos := make([]DeviceInfo, 0, len(devs))
	for i, d := range devs {
		infos = append(infos, DeviceInfo{Index: i, Name: d.Name})
	}
	return infos, nil
}

func (b *v4l2Backend) Activate(index int) (Device, error) {
	devs, err := v4l2.FindDevices()
	if err != nil {
		return nil, fmt.Errorf("scanning video devices: %w", err)
	}
	if index < 0 || index >= len(devs) {
		return nil, fmt.Errorf("no video device at index %d", index)
	}
	dev, err := v4l2.Open(devs[index].Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", devs[index].Path, err)
	}
	return &v4l2Device{
		dev:    dev,
		path:   devs[index].Path,
		logger: b.logger,
	}, nil
}

// v4l2Device adapts one open V4L2 capture device. The native format list
// flattens every (pixel format, discrete frame size) pair the driver
// enumerates, in driver order, with TRY_FMT supplying the exact stride and
// buffer size for each pair.
type v4l2Device struct {
	dev    *v4l2.Device
	path   string
	logger *slog.Logger

	formats []NativeFormat
	scanned bool
	scanErr error

	buf []byte
}

func (d *v4l2Device) scan() error {
	if d.scanned {
		return d.scanErr
	}
	d.scanned = true

	descs, err := d.dev.EnumFormats()
	if err != nil {
		d.scanErr = fmt.Errorf("enumerating pixel formats on %s: %w", d.path, err)
		return d.scanErr
	}
	for _, desc := range descs {
		sizes, err := d.dev.EnumFrameSizes(desc.PixelFormat)
		if err != nil {
			d.scanErr = fmt.Errorf("enumerating frame sizes for %s on %s: %w",
				FourCC(desc.PixelFormat), d.path, err)
			return d.scanErr
		}
		for _, size := range sizes {
			nf := NativeFormat{
				Pixel:      FourCC(desc.PixelFormat),
				Width:      int(size.Width),
				Height:     int(size.Height),
				Compressed: desc.Compressed,
				FixedSize:  !desc.Compressed,
			}
			if !desc.Compressed {
				pix, err := d.dev.TryFormat(v4l2.PixFormat{
					Width:       size.Width,
					Height:      size.Height,
					PixelFormat: desc.PixelFormat,
				})
				if err != nil {
					d.scanErr = fmt.Errorf("probing %s %dx%d on %s: %w",
						FourCC(desc.PixelFormat), size.Width, size.Height, d.path, err)
					return d.scanErr
				}
				nf.Stride = int(pix.BytesPerLine)
				nf.SampleSize = int(pix.SizeImage)
			}
			d.formats = append(d.formats, nf)
		}
	}
	d.logger.Debug("scanned native formats", "path", d.path, "count", len(d.formats))
	return nil
}

func (d *v4l2Device) NativeFormat(index int) (NativeFormat, error) {
	if err := d.scan(); err != nil {
		if index == 0 {
			return NativeFormat{}, err
		}
		return NativeFormat{}, ErrFormatQueryEnded
	}
	if index < 0 || index >= len(d.formats) {
		return NativeFormat{}, ErrFormatQueryEnded
	}
	return d.formats[index], nil
}

func (d *v4l2Device) Select(index int) (NativeFormat, error) {
	if err := d.scan(); err != nil {
		return NativeFormat{}, err
	}
	if index < 0 || index >= len(d.formats) {
		return NativeFormat{}, fmt.Errorf("no native format at index %d on %s", index, d.path)
	}
	want := d.formats[index]
	pix, err := d.dev.SetFormat(v4l2.PixFormat{
		Width:       uint32(want.Width),
		Height:      uint32(want.Height),
		PixelFormat: uint32(want.Pixel),
	})
	if err != nil {
		return NativeFormat{}, fmt.Errorf("setting %s %dx%d on %s: %w",
			want.Pixel, want.Width, want.Height, d.path, err)
	}
	got := NativeFormat{
		Pixel:      FourCC(pix.PixelFormat),
		Width:      int(pix.Width),
		Height:     int(pix.Height),
		Stride:     int(pix.BytesPerLine),
		SampleSize: int(pix.SizeImage),
		FixedSize:  true,
	}
	d.buf = make([]byte, got.SampleSize)
	return got, nil
}

func (d *v4l2Device) ReadSample() (Sample, error) {
	if d.buf == nil {
		return nil, errors.New("no format selected")
	}
	n, err := d.dev.ReadFrame(d.buf)
	if errors.Is(err, syscall.EAGAIN) {
		return nil, ErrStreamTick
	}
	if err != nil {
		return nil, fmt.Errorf("reading frame from %s: %w", d.path, err)
	}
	return &v4l2Sample{data: d.buf[:n]}, nil
}

func (d *v4l2Device) Close() error {
	return d.dev.Close()
}

// v4l2Sample wraps the device read buffer. read(2) already delivered a
// contiguous frame, so Lock is trivial; the buffer belongs to the device
// and is overwritten by the next ReadSample.
type v4l2Sample struct {
	data []byte
}

func (s *v4l2Sample) Lock() ([]byte, error) {
	return s.data, nil
}

func (s *v4l2Sample) Unlock() {}

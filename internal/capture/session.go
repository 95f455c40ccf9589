package capture

import (
	"errors"
	"fmt"
	"log/slog"
)

// Session owns the lifecycle of a single open capture device: activation,
// format selection, frame acquisition, and teardown. The zero state is
// closed; Open transitions to open and Close back to closed.
//
// A Session holds at most one device handle at a time and is not safe for
// concurrent use; callers must serialize all calls against one Session.
type Session struct {
	backend Backend
	logger  *slog.Logger
	dev     Device
	device  int
	format  Format
	ticked  bool
}

// NewSession creates a closed capture session on the given backend.
func NewSession(backend Backend, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		backend: backend,
		logger:  logger,
	}
}

// IsOpen reports whether the session currently holds an open device.
func (s *Session) IsOpen() bool {
	return s.dev != nil
}

// Open activates the device at the given zero-based ordinal and binds the
// session to the device's native format at nativeIndex. The index is
// re-validated here even when it came from ListFormats: it must resolve to
// one of the supported encodings or Open fails with UnsupportedEncoding.
// A session that is already open is closed first. On failure the session is
// left closed.
func (s *Session) Open(device, nativeIndex int) error {
	if s.dev != nil {
		s.logger.Debug("open requested on open session, closing previous device", "device", s.device)
		s.Close()
	}

	dev, err := activateByOrdinal(s.backend, device)
	if err != nil {
		return err
	}

	nf, err := dev.NativeFormat(nativeIndex)
	if err != nil {
		dev.Close()
		return NewError(ErrCodeUnsupportedEncoding,
			fmt.Sprintf("native format %d is not available on device %d", nativeIndex, device), err)
	}
	if !nf.Supported() {
		dev.Close()
		return NewError(ErrCodeUnsupportedEncoding,
			fmt.Sprintf("native format %d (%s) is not a supported pixel format", nativeIndex, nf.Pixel), nil)
	}

	selected, err := dev.Select(nativeIndex)
	if err != nil {
		dev.Close()
		return NewError(ErrCodeActivationFailed,
			fmt.Sprintf("selecting native format %d on device %d", nativeIndex, device), err)
	}
	if !selected.Supported() {
		dev.Close()
		return NewError(ErrCodeUnsupportedEncoding,
			fmt.Sprintf("device renegotiated format %d to unsupported pixel format %s", nativeIndex, selected.Pixel), nil)
	}

	s.dev = dev
	s.device = device
	s.format = formatFromNative(nativeIndex, selected)
	s.logger.Info("capture session opened",
		"device", device,
		"format_index", nativeIndex,
		"encoding", s.format.Encoding.String(),
		"width", s.format.Width,
		"height", s.format.Height,
		"stride", s.format.Stride)
	return nil
}

// Close releases the bound device handle and clears the session state. It
// is idempotent: closing an already-closed session is a no-op.
func (s *Session) Close() {
	if s.dev == nil {
		return
	}
	if err := s.dev.Close(); err != nil {
		s.logger.Warn("closing capture device", "device", s.device, "error", err)
	}
	s.dev = nil
	s.device = 0
	s.format = Format{}
	s.ticked = false
}

// GrabFrame reads one frame from the open device and converts it into dst,
// which must hold at least Width*Height*4 bytes.
//
// A device stream tick (no new frame ready for this poll) is a soft drop,
// not an error: dst is zero-filled and GrabFrame returns nil. Devices that
// need warm-up time commonly deliver a few such black frames right after
// Open. After a failed call the contents of dst are unspecified.
func (s *Session) GrabFrame(dst []byte) error {
	if s.dev == nil {
		return NewError(ErrCodeSessionNotOpen, "session is not open", nil)
	}
	need := s.format.OutputSize()
	if dst == nil || len(dst) < need {
		return NewError(ErrCodeInvalidBuffer,
			fmt.Sprintf("destination buffer must hold at least %d bytes", need), nil)
	}
	s.ticked = false

	sample, err := s.dev.ReadSample()
	if errors.Is(err, ErrStreamTick) {
		clear(dst[:need])
		s.ticked = true
		s.logger.Debug("stream tick, delivering black frame", "device", s.device)
		return nil
	}
	if err != nil {
		return NewError(ErrCodeFrameReadFailed, "reading sample from device", err)
	}
	if sample == nil {
		return NewError(ErrCodeNoSampleDelivered, "device delivered no sample data", nil)
	}

	src, err := sample.Lock()
	if err != nil {
		return NewError(ErrCodeBufferLockFailed, "locking sample buffer", err)
	}
	defer sample.Unlock()

	// Quirky drivers can deliver short reads. The converters index the
	// sample by geometry, so a truncated one must be rejected here.
	if want := s.format.SourceSize(); len(src) < want {
		return NewError(ErrCodeFrameReadFailed,
			fmt.Sprintf("device delivered %d bytes, format requires %d", len(src), want), nil)
	}

	return ConvertFrame(dst[:need], src, s.format)
}

// Ticked reports whether the most recent successful GrabFrame delivered a
// black placeholder because the device had no frame ready. It lets callers
// tell a dropped poll from a frame that is genuinely all black.
func (s *Session) Ticked() bool {
	return s.ticked
}

// Format returns the format selected by Open.
func (s *Session) Format() (Format, error) {
	if s.dev == nil {
		return Format{}, NewError(ErrCodeSessionNotOpen, "session is not open", nil)
	}
	return s.format, nil
}

// Width returns the selected format's width in pixels, or zero when the
// session is closed.
func (s *Session) Width() int {
	return s.format.Width
}

// Height returns the selected format's height in pixels, or zero when the
// session is closed.
func (s *Session) Height() int {
	return s.format.Height
}

// Stride returns the output scanline size in bytes (width times four), or
// zero when the session is closed.
func (s *Session) Stride() int {
	return s.format.OutputStride()
}

// BitsPerPixel returns the canonical output depth.
func (s *Session) BitsPerPixel() int {
	return OutputBitsPerPixel
}

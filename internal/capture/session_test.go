package capture

import (
	"bytes"
	"log/slog"
	"testing"
)

func yuyvFormat(width, height int) NativeFormat {
	return NativeFormat{
		Pixel:      FourCCYUYV,
		Width:      width,
		Height:     height,
		Stride:     width * 2,
		SampleSize: width * 2 * height,
		FixedSize:  true,
	}
}

func testBackend(dev *MockDevice) *Mock {
	return &Mock{MockDevices: []*MockDevice{dev}}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestSessionGrabBeforeOpen(t *testing.T) {
	s := NewSession(testBackend(&MockDevice{}), discardLogger())
	dst := []byte{0xAA, 0xAA, 0xAA, 0xAA}
	err := s.GrabFrame(dst)
	if err == nil {
		t.Fatal("GrabFrame succeeded on closed session")
	}
	if code := ErrorCode(err); code != ErrCodeSessionNotOpen {
		t.Errorf("error code = %q, want %q", code, ErrCodeSessionNotOpen)
	}
	if !bytes.Equal(dst, []byte{0xAA, 0xAA, 0xAA, 0xAA}) {
		t.Errorf("dst modified on closed-session failure: %v", dst)
	}
}

func TestSessionOpenAndGrab(t *testing.T) {
	dev := &MockDevice{
		Name:    "mock cam",
		Formats: []NativeFormat{yuyvFormat(2, 1)},
		Frames:  [][]byte{{235, 128, 235, 128}},
	}
	s := NewSession(testBackend(dev), discardLogger())
	if err := s.Open(0, 0); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if !s.IsOpen() {
		t.Error("IsOpen = false after Open")
	}
	if s.Width() != 2 || s.Height() != 1 {
		t.Errorf("geometry = %dx%d, want 2x1", s.Width(), s.Height())
	}
	if s.Stride() != 8 {
		t.Errorf("Stride = %d, want 8", s.Stride())
	}
	if s.BitsPerPixel() != 32 {
		t.Errorf("BitsPerPixel = %d, want 32", s.BitsPerPixel())
	}

	dst := make([]byte, 8)
	if err := s.GrabFrame(dst); err != nil {
		t.Fatalf("GrabFrame: %v", err)
	}
	want := []byte{255, 255, 255, 0, 255, 255, 255, 0}
	if !bytes.Equal(dst, want) {
		t.Errorf("frame = %v, want %v", dst, want)
	}
}

func TestSessionStreamTickDeliversBlackFrame(t *testing.T) {
	dev := &MockDevice{
		Formats: []NativeFormat{yuyvFormat(2, 1)},
		Frames:  [][]byte{{235, 128, 235, 128}},
		Ticks:   1,
	}
	s := NewSession(testBackend(dev), discardLogger())
	if err := s.Open(0, 0); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	dst := bytes.Repeat([]byte{0xAA}, 8)
	if err := s.GrabFrame(dst); err != nil {
		t.Fatalf("GrabFrame during tick: %v", err)
	}
	if !bytes.Equal(dst, make([]byte, 8)) {
		t.Errorf("tick frame = %v, want all zeros", dst)
	}

	// The next poll delivers the real frame.
	if err := s.GrabFrame(dst); err != nil {
		t.Fatalf("GrabFrame after tick: %v", err)
	}
	if dst[0] != 255 {
		t.Errorf("frame after tick = %v, want converted white", dst)
	}
}

func TestSessionTickedTracksPlaceholderFrames(t *testing.T) {
	// The black YUY2 frame converts to all zeros, same bytes as a tick
	// placeholder; Ticked must still tell the two apart.
	dev := &MockDevice{
		Formats: []NativeFormat{yuyvFormat(2, 1)},
		Frames:  [][]byte{{16, 128, 16, 128}},
		Ticks:   1,
	}
	s := NewSession(testBackend(dev), discardLogger())
	if err := s.Open(0, 0); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	dst := make([]byte, 8)
	if err := s.GrabFrame(dst); err != nil {
		t.Fatalf("GrabFrame during tick: %v", err)
	}
	if !s.Ticked() {
		t.Error("Ticked = false after a tick frame")
	}

	if err := s.GrabFrame(dst); err != nil {
		t.Fatalf("GrabFrame of black frame: %v", err)
	}
	if !bytes.Equal(dst, make([]byte, 8)) {
		t.Errorf("black frame = %v, want all zeros", dst)
	}
	if s.Ticked() {
		t.Error("Ticked = true for an all-black device frame")
	}
}

func TestSessionGrabShortSample(t *testing.T) {
	// A quirky driver returning a short read must surface as an error,
	// not an out-of-range panic in the converter.
	dev := &MockDevice{
		Formats: []NativeFormat{{
			Pixel:      FourCCNV12,
			Width:      4,
			Height:     4,
			Stride:     4,
			SampleSize: 24,
			FixedSize:  true,
		}},
		Frames: [][]byte{make([]byte, 10)},
	}
	s := NewSession(testBackend(dev), discardLogger())
	if err := s.Open(0, 0); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	err := s.GrabFrame(make([]byte, 64))
	if err == nil {
		t.Fatal("GrabFrame succeeded on a truncated sample")
	}
	if code := ErrorCode(err); code != ErrCodeFrameReadFailed {
		t.Errorf("error code = %q, want %q", code, ErrCodeFrameReadFailed)
	}
}

func TestSessionOpenUnsupportedFormat(t *testing.T) {
	dev := &MockDevice{
		Formats: []NativeFormat{
			{Pixel: FourCCMJPG, Width: 640, Height: 480, Compressed: true},
		},
	}
	s := NewSession(testBackend(dev), discardLogger())
	err := s.Open(0, 0)
	if err == nil {
		t.Fatal("Open succeeded with compressed format")
	}
	if code := ErrorCode(err); code != ErrCodeUnsupportedEncoding {
		t.Errorf("error code = %q, want %q", code, ErrCodeUnsupportedEncoding)
	}
	if s.IsOpen() {
		t.Error("session open after failed Open")
	}
	if dev.Closed != 1 {
		t.Errorf("device Closed = %d, want 1", dev.Closed)
	}
}

func TestSessionOpenDeviceOutOfRange(t *testing.T) {
	s := NewSession(testBackend(&MockDevice{Formats: []NativeFormat{yuyvFormat(2, 1)}}), discardLogger())
	err := s.Open(5, 0)
	if err == nil {
		t.Fatal("Open succeeded with out-of-range ordinal")
	}
	if code := ErrorCode(err); code != ErrCodeDeviceOutOfRange {
		t.Errorf("error code = %q, want %q", code, ErrCodeDeviceOutOfRange)
	}
}

func TestSessionOpenFormatIndexPastEnd(t *testing.T) {
	dev := &MockDevice{Formats: []NativeFormat{yuyvFormat(2, 1)}}
	s := NewSession(testBackend(dev), discardLogger())
	err := s.Open(0, 7)
	if err == nil {
		t.Fatal("Open succeeded with out-of-range format index")
	}
	if code := ErrorCode(err); code != ErrCodeUnsupportedEncoding {
		t.Errorf("error code = %q, want %q", code, ErrCodeUnsupportedEncoding)
	}
	if dev.Closed != 1 {
		t.Errorf("device Closed = %d, want 1", dev.Closed)
	}
}

func TestSessionCloseIdempotent(t *testing.T) {
	dev := &MockDevice{Formats: []NativeFormat{yuyvFormat(2, 1)}}
	s := NewSession(testBackend(dev), discardLogger())
	if err := s.Open(0, 0); err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.Close()
	s.Close()
	if dev.Closed != 1 {
		t.Errorf("device Closed = %d, want exactly 1", dev.Closed)
	}
	if s.IsOpen() {
		t.Error("IsOpen = true after Close")
	}
	if s.Width() != 0 || s.Height() != 0 || s.Stride() != 0 {
		t.Error("geometry not cleared after Close")
	}
}

func TestSessionReopenClosesPrevious(t *testing.T) {
	dev := &MockDevice{Formats: []NativeFormat{yuyvFormat(2, 1), yuyvFormat(4, 2)}}
	s := NewSession(testBackend(dev), discardLogger())
	if err := s.Open(0, 0); err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := s.Open(0, 1); err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer s.Close()
	if dev.Closed != 1 {
		t.Errorf("device Closed = %d after reopen, want 1", dev.Closed)
	}
	if s.Width() != 4 || s.Height() != 2 {
		t.Errorf("geometry = %dx%d after reopen, want 4x2", s.Width(), s.Height())
	}
}

func TestSessionGrabBufferTooSmall(t *testing.T) {
	dev := &MockDevice{Formats: []NativeFormat{yuyvFormat(2, 1)}}
	s := NewSession(testBackend(dev), discardLogger())
	if err := s.Open(0, 0); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	for _, dst := range [][]byte{nil, make([]byte, 7)} {
		err := s.GrabFrame(dst)
		if err == nil {
			t.Fatalf("GrabFrame succeeded with %d-byte buffer", len(dst))
		}
		if code := ErrorCode(err); code != ErrCodeInvalidBuffer {
			t.Errorf("error code = %q, want %q", code, ErrCodeInvalidBuffer)
		}
	}
}

func TestSessionGrabReadFailure(t *testing.T) {
	dev := &MockDevice{
		Formats:  []NativeFormat{yuyvFormat(2, 1)},
		FailRead: true,
	}
	s := NewSession(testBackend(dev), discardLogger())
	if err := s.Open(0, 0); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	err := s.GrabFrame(make([]byte, 8))
	if code := ErrorCode(err); code != ErrCodeFrameReadFailed {
		t.Errorf("error code = %q, want %q", code, ErrCodeFrameReadFailed)
	}
}

func TestSessionGrabNilSample(t *testing.T) {
	dev := &MockDevice{
		Formats:   []NativeFormat{yuyvFormat(2, 1)},
		NilSample: true,
	}
	s := NewSession(testBackend(dev), discardLogger())
	if err := s.Open(0, 0); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	err := s.GrabFrame(make([]byte, 8))
	if code := ErrorCode(err); code != ErrCodeNoSampleDelivered {
		t.Errorf("error code = %q, want %q", code, ErrCodeNoSampleDelivered)
	}
}

func TestSessionGrabLockFailure(t *testing.T) {
	dev := &MockDevice{
		Formats:  []NativeFormat{yuyvFormat(2, 1)},
		Frames:   [][]byte{{16, 128, 16, 128}},
		FailLock: true,
	}
	s := NewSession(testBackend(dev), discardLogger())
	if err := s.Open(0, 0); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	err := s.GrabFrame(make([]byte, 8))
	if code := ErrorCode(err); code != ErrCodeBufferLockFailed {
		t.Errorf("error code = %q, want %q", code, ErrCodeBufferLockFailed)
	}
}

func TestSessionFormatAccessor(t *testing.T) {
	dev := &MockDevice{Formats: []NativeFormat{yuyvFormat(4, 2)}}
	s := NewSession(testBackend(dev), discardLogger())

	if _, err := s.Format(); ErrorCode(err) != ErrCodeSessionNotOpen {
		t.Errorf("Format on closed session: error = %v, want session-not-open", err)
	}

	if err := s.Open(0, 0); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	f, err := s.Format()
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if f.Encoding != EncodingYUY2 || f.Width != 4 || f.Height != 2 {
		t.Errorf("Format = %+v, want 4x2 YUY2", f)
	}
}

package snapshot

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func TestFramePath(t *testing.T) {
	if got := FramePath("/out", 0); got != filepath.Join("/out", "frame0000.bmp") {
		t.Errorf("FramePath = %q", got)
	}
	if got := FramePath("/out", 123); got != filepath.Join("/out", "frame0123.bmp") {
		t.Errorf("FramePath = %q", got)
	}
	if got := FramePath("/out", 12345); got != filepath.Join("/out", "frame12345.bmp") {
		t.Errorf("FramePath = %q", got)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame0000.bmp")
	// 2x1: pure blue then pure red, in B G R pad order.
	frame := []byte{
		255, 0, 0, 0,
		0, 0, 255, 0,
	}
	if err := Write(path, 2, 1, frame, 0); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := bmp.Decode(f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Fatalf("bounds = %v, want 2x1", img.Bounds())
	}

	r, g, b, _ := img.At(0, 0).RGBA()
	if r != 0 || g != 0 || b>>8 != 255 {
		t.Errorf("pixel 0 = %d,%d,%d, want blue", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = img.At(1, 0).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("pixel 1 = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}
}

func TestWriteScalesDown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scaled.bmp")
	frame := make([]byte, 8*4*4) // 8x4 mid gray
	for i := range frame {
		if i%4 != 3 {
			frame[i] = 100
		}
	}
	if err := Write(path, 8, 4, frame, 4); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := bmp.Decode(f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := image.Rect(0, 0, 4, 2)
	if img.Bounds() != want {
		t.Errorf("bounds = %v, want %v", img.Bounds(), want)
	}
}

func TestWriteRejectsShortBuffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bmp")
	if err := Write(path, 4, 4, make([]byte, 10), 0); err == nil {
		t.Fatal("Write succeeded with short buffer")
	}
	if err := Write(path, 0, 4, nil, 0); err == nil {
		t.Fatal("Write succeeded with zero width")
	}
}

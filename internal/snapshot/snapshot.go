// Package snapshot writes converted frames to disk as BMP images.
package snapshot

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

// FramePath returns the output path for the frame at index, using the
// frame%04d.bmp naming scheme.
func FramePath(dir string, index int) string {
	return filepath.Join(dir, fmt.Sprintf("frame%04d.bmp", index))
}

// Write encodes one frame as a BMP file at path. frame holds
// width*height pixels of 4 bytes each in B, G, R, pad order, tightly
// packed, top-down. When scaleWidth is positive and smaller than width
// the image is downscaled to that width preserving aspect ratio.
func Write(path string, width, height int, frame []byte, scaleWidth int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid frame geometry %dx%d", width, height)
	}
	if need := width * height * 4; len(frame) < need {
		return fmt.Errorf("frame buffer holds %d bytes, need %d", len(frame), need)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		img.Pix[i*4+0] = frame[i*4+2] // R
		img.Pix[i*4+1] = frame[i*4+1] // G
		img.Pix[i*4+2] = frame[i*4+0] // B
		img.Pix[i*4+3] = 0xFF
	}

	var out image.Image = img
	if scaleWidth > 0 && scaleWidth < width {
		out = imaging.Resize(img, scaleWidth, 0, imaging.Lanczos)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := bmp.Encode(f, out); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

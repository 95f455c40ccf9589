//go:build linux

package v4l2

import (
	"fmt"
	"syscall"
)

// ReadFrame reads one frame into buf via read(2) and returns the byte
// count. The device is opened non-blocking, so syscall.EAGAIN comes
// back (wrapped) when no frame is ready yet; callers poll.
func (d *Device) ReadFrame(buf []byte) (int, error) {
	n, err := syscall.Read(d.fd, buf)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", d.path, err)
	}
	return n, nil
}

//go:build linux

package v4l2

import (
	"syscall"
	"unsafe"
)

// ioctl issues one ioctl(2) against fd. The returned error is the raw
// syscall.Errno, so callers can match EINVAL end-of-enumeration markers
// with errors.Is.
func ioctl(fd int, req uint, arg unsafe.Pointer) error {
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// open opens a video node non-blocking so frame reads poll instead of
// stalling when the device has nothing ready.
func open(path string) (int, error) {
	return syscall.Open(path, syscall.O_RDWR|syscall.O_NONBLOCK, 0)
}

func close(fd int) error {
	return syscall.Close(fd)
}

// Package v4l2 is a minimal pure-Go wrapper around the Video4Linux2
// capture API, covering what a still-image grabber needs: device
// discovery under /sys/class/video4linux, pixel format and frame size
// enumeration, format negotiation via TRY_FMT/S_FMT, and frame
// acquisition through non-blocking read(2).
//
// It talks to the kernel directly with ioctl and carries no cgo or
// libv4l dependency. Streaming I/O (mmap/userptr buffers) is out of
// scope; devices must advertise V4L2_CAP_READWRITE.
package v4l2

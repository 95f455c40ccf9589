//go:build linux

package v4l2

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"unsafe"
)

const sysVideoClass = "/sys/class/video4linux"

// Device is an open V4L2 capture device.
type Device struct {
	path string
	fd   int
}

// FindDevices scans /sys/class/video4linux and returns every node that
// is a video capture device usable through read(2). Device order is
// stable: nodes sort by number, so /dev/video0 comes before
// /dev/video10. Metadata-only nodes (the second node UVC cameras
// register) are filtered out by the capability check.
func FindDevices() ([]DeviceInfo, error) {
	entries, err := os.ReadDir(sysVideoClass)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", sysVideoClass, err)
	}

	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "video") {
			names = append(names, e.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return videoNodeNumber(names[i]) < videoNodeNumber(names[j])
	})

	var devices []DeviceInfo
	for _, name := range names {
		path := "/dev/" + name
		info, err := probeDevice(path)
		if err != nil {
			// Busy or permission-restricted nodes are skipped, not fatal.
			continue
		}
		devices = append(devices, info)
	}
	return devices, nil
}

func videoNodeNumber(name string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(name, "video"))
	if err != nil {
		return 1 << 30
	}
	return n
}

// probeDevice opens path just long enough to query its capabilities.
func probeDevice(path string) (DeviceInfo, error) {
	fd, err := open(path)
	if err != nil {
		return DeviceInfo{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer close(fd)

	caps, err := queryCapability(fd)
	if err != nil {
		return DeviceInfo{}, fmt.Errorf("querying %s: %w", path, err)
	}
	if caps.deviceCaps&CapVideoCapture == 0 {
		return DeviceInfo{}, fmt.Errorf("%s is not a video capture device", path)
	}
	if caps.deviceCaps&CapReadWrite == 0 {
		return DeviceInfo{}, fmt.Errorf("%s does not support read I/O", path)
	}
	return DeviceInfo{
		Path:   path,
		Name:   cstring(caps.card[:]),
		Driver: cstring(caps.driver[:]),
	}, nil
}

// Open opens the device node at path for capture. The device must
// support video capture through read(2).
func Open(path string) (*Device, error) {
	fd, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	caps, err := queryCapability(fd)
	if err != nil {
		close(fd)
		return nil, fmt.Errorf("querying %s: %w", path, err)
	}
	if caps.deviceCaps&CapVideoCapture == 0 {
		close(fd)
		return nil, fmt.Errorf("%s is not a video capture device", path)
	}
	if caps.deviceCaps&CapReadWrite == 0 {
		close(fd)
		return nil, fmt.Errorf("%s does not support read I/O", path)
	}
	return &Device{path: path, fd: fd}, nil
}

// Path returns the device node this Device was opened from.
func (d *Device) Path() string {
	return d.path
}

// Close releases the device file descriptor.
func (d *Device) Close() error {
	if d.fd < 0 {
		return nil
	}
	err := close(d.fd)
	d.fd = -1
	return err
}

func queryCapability(fd int) (v4l2Capability, error) {
	var caps v4l2Capability
	if err := ioctl(fd, vidiocQuerycap, unsafe.Pointer(&caps)); err != nil {
		return v4l2Capability{}, err
	}
	// Drivers without device_caps report per-node caps in capabilities.
	if caps.deviceCaps == 0 {
		caps.deviceCaps = caps.capabilities
	}
	return caps, nil
}

// cstring converts a NUL-terminated byte array field to a Go string.
func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

//go:build !linux

package capture

import (
	"errors"
	"log/slog"
)

// newPlatformBackend returns a backend with no devices on platforms
// without V4L2 support. Use Mock for development and tests.
func newPlatformBackend(logger *slog.Logger) Backend {
	return &emptyBackend{}
}

type emptyBackend struct{}

func (*emptyBackend) Devices() ([]DeviceInfo, error) {
	return nil, nil
}

func (*emptyBackend) Activate(index int) (Device, error) {
	return nil, errors.New("video capture is not supported on this platform")
}

package capture

import "fmt"

// ListDevices queries the host capture-device registry and returns the
// devices found. The registry is queried fresh on every call. It returns an
// empty list both when no devices are present and when the query itself
// fails; callers cannot and should not distinguish the two.
func ListDevices(b Backend) []DeviceInfo {
	devices, err := b.Devices()
	if err != nil || devices == nil {
		return []DeviceInfo{}
	}
	return devices
}

// activateByOrdinal bounds-checks the zero-based device ordinal against the
// current enumeration and activates the matching device.
func activateByOrdinal(b Backend, device int) (Device, error) {
	devices, err := b.Devices()
	if err != nil {
		return nil, NewError(ErrCodeActivationFailed, "device query failed", err)
	}
	if device < 0 || device >= len(devices) {
		return nil, NewError(ErrCodeDeviceOutOfRange,
			fmt.Sprintf("device ordinal %d out of range (%d devices present)", device, len(devices)), nil)
	}
	dev, err := b.Activate(device)
	if err != nil {
		return nil, NewError(ErrCodeActivationFailed,
			fmt.Sprintf("activating device %d", device), err)
	}
	return dev, nil
}

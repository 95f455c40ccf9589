package capture

import "errors"

// Mock is an in-memory Backend for tests and development on machines
// without a camera. Devices are served in slice order; ordinal N maps to
// Devices[N].
type Mock struct {
	MockDevices []*MockDevice
	EnumErr     error
}

// Devices implements Backend.
func (m *Mock) Devices() ([]DeviceInfo, error) {
	if m.EnumErr != nil {
		return nil, m.EnumErr
	}
	infos := make([]DeviceInfo, 0, len(m.MockDevices))
	for i, d := range m.MockDevices {
		infos = append(infos, DeviceInfo{Index: i, Name: d.Name})
	}
	return infos, nil
}

// Activate implements Backend.
func (m *Mock) Activate(index int) (Device, error) {
	if index < 0 || index >= len(m.MockDevices) {
		return nil, errors.New("no such device")
	}
	d := m.MockDevices[index]
	if d.FailActivate {
		return nil, errors.New("activation refused")
	}
	d.Activations++
	return d, nil
}

// MockDevice scripts the behavior of a single fake device. ReadSample
// first serves Ticks stream ticks, then the scripted Frames in order; the
// last frame repeats once the script runs out.
type MockDevice struct {
	Name    string
	Formats []NativeFormat
	Frames  [][]byte
	Ticks   int

	FailActivate bool
	FailSelect   bool
	FailRead     bool
	NilSample    bool
	FailLock     bool

	Activations int
	Closed      int
	selected    int
	reads       int
}

// NativeFormat implements Device.
func (d *MockDevice) NativeFormat(index int) (NativeFormat, error) {
	if index < 0 || index >= len(d.Formats) {
		return NativeFormat{}, ErrFormatQueryEnded
	}
	return d.Formats[index], nil
}

// Select implements Device.
func (d *MockDevice) Select(index int) (NativeFormat, error) {
	if d.FailSelect {
		return NativeFormat{}, errors.New("select refused")
	}
	if index < 0 || index >= len(d.Formats) {
		return NativeFormat{}, ErrFormatQueryEnded
	}
	d.selected = index
	return d.Formats[index], nil
}

// ReadSample implements Device.
func (d *MockDevice) ReadSample() (Sample, error) {
	if d.FailRead {
		return nil, errors.New("read refused")
	}
	if d.reads < d.Ticks {
		d.reads++
		return nil, ErrStreamTick
	}
	if d.NilSample {
		return nil, nil
	}
	if len(d.Frames) == 0 {
		return nil, ErrStreamTick
	}
	i := d.reads - d.Ticks
	d.reads++
	if i >= len(d.Frames) {
		i = len(d.Frames) - 1
	}
	return &mockSample{data: d.Frames[i], failLock: d.FailLock}, nil
}

// Close implements Device.
func (d *MockDevice) Close() error {
	d.Closed++
	return nil
}

type mockSample struct {
	data     []byte
	failLock bool
	locked   bool
}

func (s *mockSample) Lock() ([]byte, error) {
	if s.failLock {
		return nil, errors.New("lock refused")
	}
	s.locked = true
	return s.data, nil
}

func (s *mockSample) Unlock() {
	s.locked = false
}

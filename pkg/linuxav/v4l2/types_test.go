package v4l2

import "testing"

func TestFourCCString(t *testing.T) {
	tests := []struct {
		name  string
		value uint32
		want  string
	}{
		{"yuyv", 0x56595559, "YUYV"},
		{"nv12", 0x3231564e, "NV12"},
		{"mjpg", 0x47504a4d, "MJPG"},
		{"bgr3", 0x33524742, "BGR3"},
		{"non printable", 0x00000001, "0x00000001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FourCCString(tt.value); got != tt.want {
				t.Errorf("FourCCString(%#x) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timelapse.toml")
	content := `
[capture]
device = 1
format = 3
frames = 100
delay_seconds = 2.5
output = "/var/lib/timelapse"
scale_width = 640

[logging]
level = "debug"
capture = "warn"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Capture.Device != 1 || cfg.Capture.Format != 3 || cfg.Capture.Frames != 100 {
		t.Errorf("capture = %+v", cfg.Capture)
	}
	if cfg.Capture.DelaySeconds != 2.5 {
		t.Errorf("DelaySeconds = %v, want 2.5", cfg.Capture.DelaySeconds)
	}
	if cfg.Capture.Output != "/var/lib/timelapse" || cfg.Capture.ScaleWidth != 640 {
		t.Errorf("capture = %+v", cfg.Capture)
	}
	if cfg.Logging["level"] != "debug" || cfg.Logging["capture"] != "warn" {
		t.Errorf("logging = %v", cfg.Logging)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("LoadFile succeeded for missing file")
	}
}

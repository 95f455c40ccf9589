package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// CaptureSettings is the [capture] section of the config file. These
// are the settings that make sense to change while a run is in
// progress; DelaySeconds in particular is picked up live by the
// config watcher.
type CaptureSettings struct {
	Device       int     `toml:"device"`
	Format       int     `toml:"format"`
	Frames       int     `toml:"frames"`
	DelaySeconds float64 `toml:"delay_seconds"`
	Output       string  `toml:"output"`
	ScaleWidth   int     `toml:"scale_width"`
}

// FileConfig is the full schema of the TOML config file.
type FileConfig struct {
	Capture CaptureSettings   `toml:"capture"`
	Logging map[string]string `toml:"logging"`
}

// LoadFile parses the TOML config file at path.
func LoadFile(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg FileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

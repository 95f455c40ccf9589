package led

import (
	"fmt"
	"os"
	"path/filepath"
)

const sysfsLEDPath = "/sys/class/leds"

// sysfs implements Controller using the Linux sysfs LED interface.
type sysfs struct {
	leds map[string]string // LED type -> sysfs name
}

func newSysfs(leds map[string]string) *sysfs {
	return &sysfs{leds: leds}
}

// Set controls an LED's state and optional trigger pattern.
func (s *sysfs) Set(ledType string, enabled bool, pattern string) error {
	sysfsName, ok := s.leds[ledType]
	if !ok {
		return fmt.Errorf("LED type %q not supported on this board", ledType)
	}

	ledPath := filepath.Join(sysfsLEDPath, sysfsName)
	if _, err := os.Stat(ledPath); os.IsNotExist(err) {
		return fmt.Errorf("LED %q not found at %s", ledType, ledPath)
	}

	if pattern != "" {
		triggerPath := filepath.Join(ledPath, "trigger")
		var triggerValue string
		switch pattern {
		case "solid":
			// Manual control, brightness below decides on/off.
			triggerValue = "none"
		case "blink", "heartbeat":
			triggerValue = "heartbeat"
		default:
			triggerValue = pattern // raw trigger names pass through
		}
		if err := os.WriteFile(triggerPath, []byte(triggerValue), 0o644); err != nil {
			return fmt.Errorf("failed to set LED trigger: %w", err)
		}
	}

	brightnessPath := filepath.Join(ledPath, "brightness")
	brightnessValue := "0"
	if enabled {
		brightnessValue = "1"
	}
	if err := os.WriteFile(brightnessPath, []byte(brightnessValue), 0o644); err != nil {
		return fmt.Errorf("failed to set LED brightness: %w", err)
	}
	return nil
}

func (s *sysfs) Available() []string {
	types := make([]string, 0, len(s.leds))
	for ledType := range s.leds {
		types = append(types, ledType)
	}
	return types
}

func (s *sysfs) Patterns() []string {
	return []string{"solid", "blink", "heartbeat"}
}

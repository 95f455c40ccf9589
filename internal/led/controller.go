// Package led drives board status LEDs so a headless capture box can
// show run activity without a display.
package led

// Controller abstracts LED hardware control across different SBC boards.
// Implementations handle board-specific LED naming and capabilities.
type Controller interface {
	// Set controls an LED's state and optional pattern. ledType is a
	// board-independent identifier (currently "activity"); pattern is
	// one of Patterns, empty means no pattern change.
	Set(ledType string, enabled bool, pattern string) error

	// Available returns the list of LED types supported by this controller.
	Available() []string

	// Patterns returns the list of patterns supported by this controller.
	Patterns() []string
}

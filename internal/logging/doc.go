// Package logging provides structured logging with per-module log level
// configuration.
//
// The logging system uses Go's slog package with automatic output
// routing: records go to the systemd journal when journald is available,
// to stdout when a terminal, pipe, or file is connected, and to both
// when both are available.
//
// Initialize once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info", // debug, info, warn, error
//		Format: "text", // text or json
//		Modules: map[string]string{
//			"capture": "debug", // per-module overrides
//		},
//	})
//
// Get a logger for your module:
//
//	logger := logging.GetLogger("capture")
//	logger.Info("session opened", "device", 0)
//
// When running under systemd:
//
//	journalctl -t timelapse -f
//	journalctl -t timelapse MODULE=capture
package logging

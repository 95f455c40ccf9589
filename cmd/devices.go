package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ammon-c/timelapse/internal/capture"
	"github.com/ammon-c/timelapse/internal/logging"
)

// CreateDevicesCmd creates the devices command.
func CreateDevicesCmd() *cobra.Command {
	var logJSON bool

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List available capture devices",
		Long: `Enumerates the video capture devices currently attached to the system. ` +
			`The printed device numbers are what the --device flag and the device setting expect.`,
		Run: func(_ *cobra.Command, _ []string) {
			loggingConfig := logging.Config{Level: "warn", Format: "text"}
			if logJSON {
				loggingConfig.Format = "json"
			}
			logging.Initialize(loggingConfig)

			backend := capture.NewBackend(logging.GetLogger("capture"))
			devices := capture.ListDevices(backend)
			if len(devices) == 0 {
				fmt.Fprintln(os.Stderr, "No capture devices found.")
				return
			}

			fmt.Println("Available capture devices:")
			for _, d := range devices {
				// Device numbers are 1-based in the user interface.
				fmt.Printf("  %d: %s\n", d.Index+1, d.Name)
			}
		},
	}

	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Log in JSON format")
	return cmd
}

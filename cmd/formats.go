package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ammon-c/timelapse/internal/capture"
	"github.com/ammon-c/timelapse/internal/logging"
)

// CreateFormatsCmd creates the formats command.
func CreateFormatsCmd() *cobra.Command {
	var logJSON bool

	cmd := &cobra.Command{
		Use:   "formats [device-number]",
		Short: "List usable image formats on a capture device",
		Long: `Lists the uncompressed image formats the given device can deliver. ` +
			`The device number is 1-based as printed by the devices command; it defaults to 1. ` +
			`The printed format numbers are what the --format flag and the format setting expect.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			loggingConfig := logging.Config{Level: "warn", Format: "text"}
			if logJSON {
				loggingConfig.Format = "json"
			}
			logging.Initialize(loggingConfig)

			device := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					fmt.Fprintf(os.Stderr, "Invalid device number %q.\n", args[0])
					os.Exit(1)
				}
				device = n
			}

			backend := capture.NewBackend(logging.GetLogger("capture"))
			formats := capture.ListFormats(backend, device-1)
			if len(formats) == 0 {
				fmt.Fprintf(os.Stderr, "No usable formats on device %d.\n", device)
				return
			}

			fmt.Printf("Usable formats on device %d:\n", device)
			fmt.Println("  num  encoding  width  height  stride  frame bytes")
			for _, f := range formats {
				fmt.Printf("  %3d  %-8s  %5d  %6d  %6d  %11d\n",
					f.Index, f.Encoding, f.Width, f.Height, f.Stride, f.FrameSize)
			}
		},
	}

	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Log in JSON format")
	return cmd
}

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"

	"github.com/ammon-c/timelapse/cmd"
	"github.com/ammon-c/timelapse/internal/capture"
	"github.com/ammon-c/timelapse/internal/config"
	"github.com/ammon-c/timelapse/internal/events"
	"github.com/ammon-c/timelapse/internal/led"
	"github.com/ammon-c/timelapse/internal/logging"
	"github.com/ammon-c/timelapse/internal/metrics"
	"github.com/ammon-c/timelapse/internal/timelapse"
	"github.com/ammon-c/timelapse/internal/version"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"timelapse.toml"`

	// Capture settings
	Device       int    `help:"Capture device number (1-based); 0 lists devices and exits" short:"d" default:"0" toml:"capture.device" env:"DEVICE"`
	Format       int    `help:"Format number from the formats command; -1 lists formats and exits" short:"f" default:"-1" toml:"capture.format" env:"FORMAT"`
	Frames       int    `help:"Number of frames to capture" short:"n" default:"10" toml:"capture.frames" env:"FRAMES"`
	DelaySeconds int    `help:"Delay between frames in seconds" default:"1" toml:"capture.delay_seconds" env:"DELAY_SECONDS"`
	Output       string `help:"Output directory for BMP frames" short:"o" default:"." toml:"capture.output" env:"OUTPUT"`
	ScaleWidth   int    `help:"Downscale saved frames to this width, 0 keeps original size" default:"0" toml:"capture.scale_width" env:"SCALE_WIDTH"`

	// Metrics settings
	MetricsAddr string `help:"Listen address for Prometheus metrics, empty disables" default:"" toml:"metrics.addr" env:"METRICS_ADDR"`

	// Logging settings
	LoggingLevel     string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat    string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingCapture   string `help:"Capture logging level" default:"info" toml:"logging.capture" env:"LOGGING_CAPTURE"`
	LoggingTimelapse string `help:"Timelapse runner logging level" default:"info" toml:"logging.timelapse" env:"LOGGING_TIMELAPSE"`
	LoggingSnapshot  string `help:"Snapshot writer logging level" default:"info" toml:"logging.snapshot" env:"LOGGING_SNAPSHOT"`
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadConfig(opts, nil); loadErr != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", loadErr)
		}

		logging.Initialize(logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"capture":   opts.LoggingCapture,
				"timelapse": opts.LoggingTimelapse,
				"snapshot":  opts.LoggingSnapshot,
			},
		})
		logger := logging.GetLogger("main")

		ctx, cancel := context.WithCancel(context.Background())

		hooks.OnStart(func() {
			defer cancel()

			backend := capture.NewBackend(logging.GetLogger("capture"))

			// Device number 0 means "show me what is attached".
			if opts.Device < 1 {
				printDevices(backend)
				return
			}
			device := opts.Device - 1

			if opts.Format < 0 {
				printFormats(backend, opts.Device)
				return
			}

			bus := events.New()
			recorder := metrics.NewRecorder()
			unobserve := recorder.Observe(bus)
			defer unobserve()

			ledManager := led.NewManager(led.New(logger), bus, logger)
			ledManager.Start()
			defer ledManager.Stop()

			if opts.MetricsAddr != "" {
				go func() {
					if err := recorder.Serve(ctx, opts.MetricsAddr, logger); err != nil {
						logger.Error("metrics server failed", "error", err)
					}
				}()
			}

			session := capture.NewSession(backend, logging.GetLogger("capture"))
			runner := timelapse.New(session, bus, logging.GetLogger("timelapse"), timelapse.Config{
				Device:     device,
				Format:     opts.Format,
				Frames:     opts.Frames,
				Delay:      time.Duration(opts.DelaySeconds) * time.Second,
				OutputDir:  opts.Output,
				ScaleWidth: opts.ScaleWidth,
			})

			// Watch the config file so delay changes apply mid-run.
			if _, statErr := os.Stat(opts.Config); statErr == nil {
				watcher := config.NewConfigWatcher(opts.Config, config.LoadFile, logger)
				watcher.OnReload(func(cfg config.FileConfig) {
					runner.SetDelay(time.Duration(cfg.Capture.DelaySeconds * float64(time.Second)))
				})
				if err := watcher.Start(); err != nil {
					logger.Warn("config watcher failed to start", "error", err)
				} else {
					defer watcher.Stop()
				}
			}

			if err := runner.Run(ctx); err != nil {
				logger.Error("timelapse run failed", "error", err)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("shutting down")
			cancel()
		})
	})

	cli.Root().Use = "timelapse"
	cli.Root().Version = version.String()
	cli.Root().AddCommand(cmd.CreateDevicesCmd())
	cli.Root().AddCommand(cmd.CreateFormatsCmd())

	cli.Run()
}

func printDevices(backend capture.Backend) {
	devices := capture.ListDevices(backend)
	if len(devices) == 0 {
		fmt.Fprintln(os.Stderr, "No capture devices found.")
		return
	}
	fmt.Println("Available capture devices (pass --device with one of these numbers):")
	for _, d := range devices {
		fmt.Printf("  %d: %s\n", d.Index+1, d.Name)
	}
}

func printFormats(backend capture.Backend, device int) {
	formats := capture.ListFormats(backend, device-1)
	if len(formats) == 0 {
		fmt.Fprintf(os.Stderr, "No usable formats on device %d.\n", device)
		return
	}
	fmt.Printf("Usable formats on device %d (pass --format with one of these numbers):\n", device)
	fmt.Println("  num  encoding  width  height  stride  frame bytes")
	for _, f := range formats {
		fmt.Printf("  %3d  %-8s  %5d  %6d  %6d  %11d\n",
			f.Index, f.Encoding, f.Width, f.Height, f.Stride, f.FrameSize)
	}
}

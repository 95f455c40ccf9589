// Package timelapse drives a capture session through a fixed-count,
// fixed-interval still image run.
package timelapse

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/ammon-c/timelapse/internal/capture"
	"github.com/ammon-c/timelapse/internal/events"
	"github.com/ammon-c/timelapse/internal/snapshot"
)

// Config holds the parameters of one capture run.
type Config struct {
	// Device is the zero-based capture device ordinal.
	Device int

	// Format is the device's native format index, as reported by
	// capture.ListFormats.
	Format int

	// Frames is the number of images to capture.
	Frames int

	// Delay is the pause between consecutive frames.
	Delay time.Duration

	// OutputDir receives the frame%04d.bmp files.
	OutputDir string

	// ScaleWidth, when positive, downscales saved images to this width.
	ScaleWidth int
}

// Runner executes a timelapse run against an open capture session.
type Runner struct {
	session *capture.Session
	bus     *events.Bus
	logger  *slog.Logger
	cfg     Config

	mu    sync.Mutex
	delay time.Duration
}

// New creates a runner. The session must be closed; Run opens it.
func New(session *capture.Session, bus *events.Bus, logger *slog.Logger, cfg Config) *Runner {
	return &Runner{
		session: session,
		bus:     bus,
		logger:  logger,
		cfg:     cfg,
		delay:   cfg.Delay,
	}
}

// SetDelay changes the inter-frame delay for subsequent frames. Safe to
// call while Run is in progress; the config watcher uses this for live
// reload.
func (r *Runner) SetDelay(d time.Duration) {
	if d < 0 {
		return
	}
	r.mu.Lock()
	r.delay = d
	r.mu.Unlock()
	r.logger.Info("frame delay updated", "delay", d)
}

func (r *Runner) currentDelay() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.delay
}

// Run captures cfg.Frames images, writing each to cfg.OutputDir. A
// canceled context stops the run between frames without error. Frame
// grab failures are logged and published but do not abort the run;
// failed frames leave no file behind.
func (r *Runner) Run(ctx context.Context) error {
	if r.cfg.Frames <= 0 {
		return fmt.Errorf("frame count must be positive, got %d", r.cfg.Frames)
	}
	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := r.session.Open(r.cfg.Device, r.cfg.Format); err != nil {
		return fmt.Errorf("opening capture session: %w", err)
	}
	defer r.session.Close()

	format, err := r.session.Format()
	if err != nil {
		return err
	}
	r.logger.Info("timelapse run starting",
		"frames", r.cfg.Frames,
		"delay", r.currentDelay(),
		"encoding", format.Encoding.String(),
		"width", format.Width,
		"height", format.Height,
		"output", r.cfg.OutputDir)

	dst := make([]byte, format.OutputSize())
	var captured, dropped, failed int

	for i := 0; i < r.cfg.Frames; i++ {
		if ctx.Err() != nil {
			r.logger.Info("timelapse run canceled", "frame", i)
			break
		}

		start := time.Now()
		if err := r.session.GrabFrame(dst); err != nil {
			failed++
			r.logger.Error("frame grab failed", "frame", i, "error", err)
			r.bus.Publish(events.CaptureErrorEvent{
				FrameIndex: i,
				Error:      err.Error(),
				Timestamp:  time.Now(),
			})
			if !r.sleepBetweenFrames(ctx, i) {
				break
			}
			continue
		}

		path := snapshot.FramePath(r.cfg.OutputDir, i)
		if err := snapshot.Write(path, format.Width, format.Height, dst, r.cfg.ScaleWidth); err != nil {
			failed++
			r.logger.Error("frame write failed", "frame", i, "path", path, "error", err)
			r.bus.Publish(events.CaptureErrorEvent{
				FrameIndex: i,
				Error:      err.Error(),
				Timestamp:  time.Now(),
			})
			if !r.sleepBetweenFrames(ctx, i) {
				break
			}
			continue
		}

		elapsed := time.Since(start)
		if r.session.Ticked() {
			// The device had no frame ready and the session delivered
			// a black placeholder; the file is still written so the
			// frame numbering stays contiguous.
			dropped++
			r.logger.Debug("frame not ready, wrote placeholder", "frame", i, "path", path)
			r.bus.Publish(events.FrameDroppedEvent{FrameIndex: i, Timestamp: time.Now()})
		} else {
			captured++
			r.logger.Info("frame captured", "frame", i, "path", path, "elapsed", elapsed)
			r.bus.Publish(events.FrameCapturedEvent{
				FrameIndex: i,
				Path:       path,
				Elapsed:    elapsed,
				Timestamp:  time.Now(),
			})
		}

		if !r.sleepBetweenFrames(ctx, i) {
			break
		}
	}

	r.logger.Info("timelapse run finished",
		"captured", captured, "dropped", dropped, "errors", failed)
	r.bus.Publish(events.RunCompletedEvent{
		FramesCaptured: captured,
		FramesDropped:  dropped,
		Errors:         failed,
		Timestamp:      time.Now(),
	})
	return nil
}

// sleepBetweenFrames pauses for the configured delay unless frame i was
// the last one. It returns false when the context was canceled.
func (r *Runner) sleepBetweenFrames(ctx context.Context, i int) bool {
	if i >= r.cfg.Frames-1 {
		return true
	}
	delay := r.currentDelay()
	if delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

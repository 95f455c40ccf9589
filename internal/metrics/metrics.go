// Package metrics exposes capture run counters and timings in
// Prometheus format.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ammon-c/timelapse/internal/events"
)

// Recorder registers capture metrics on a Prometheus registry and
// updates them from event bus traffic.
type Recorder struct {
	registry *prometheus.Registry

	framesCaptured prometheus.Counter
	framesDropped  prometheus.Counter
	captureErrors  prometheus.Counter
	grabSeconds    prometheus.Histogram
}

// NewRecorder creates a Recorder on its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		framesCaptured: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timelapse_frames_captured_total",
			Help: "Frames converted and written to disk.",
		}),
		framesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timelapse_frames_dropped_total",
			Help: "Polls that found no frame ready and produced a black placeholder.",
		}),
		captureErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timelapse_capture_errors_total",
			Help: "Frame grabs or writes that failed.",
		}),
		grabSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "timelapse_frame_grab_seconds",
			Help:    "Time spent grabbing, converting, and writing one frame.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
	}
	r.registry.MustRegister(r.framesCaptured, r.framesDropped, r.captureErrors, r.grabSeconds)
	return r
}

// Observe subscribes the recorder to capture events on the bus. The
// returned function unsubscribes.
func (r *Recorder) Observe(bus *events.Bus) func() {
	unsubs := []func(){
		bus.Subscribe(func(e events.FrameCapturedEvent) {
			r.framesCaptured.Inc()
			r.grabSeconds.Observe(e.Elapsed.Seconds())
		}),
		bus.Subscribe(func(e events.FrameDroppedEvent) {
			r.framesDropped.Inc()
		}),
		bus.Subscribe(func(e events.CaptureErrorEvent) {
			r.captureErrors.Inc()
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Handler returns the /metrics HTTP handler for this recorder's
// registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve runs an HTTP server exposing /metrics on addr until ctx is
// canceled.
func (r *Recorder) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

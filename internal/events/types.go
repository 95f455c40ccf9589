package events

import "time"

// Event type constants for kelindar/event.
const (
	TypeFrameCaptured uint32 = iota + 1
	TypeFrameDropped
	TypeCaptureError
	TypeRunCompleted
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// FrameCapturedEvent is published after a frame is converted and written
// to disk.
type FrameCapturedEvent struct {
	FrameIndex int           `json:"frame_index"`
	Path       string        `json:"path"`
	Elapsed    time.Duration `json:"elapsed"`
	Timestamp  time.Time     `json:"timestamp"`
}

// Type returns the event type identifier for FrameCapturedEvent.
func (e FrameCapturedEvent) Type() uint32 { return TypeFrameCaptured }

// FrameDroppedEvent is published when a poll found no frame ready and a
// black placeholder was delivered instead.
type FrameDroppedEvent struct {
	FrameIndex int       `json:"frame_index"`
	Timestamp  time.Time `json:"timestamp"`
}

// Type returns the event type identifier for FrameDroppedEvent.
func (e FrameDroppedEvent) Type() uint32 { return TypeFrameDropped }

// CaptureErrorEvent is published when grabbing or writing a frame fails.
type CaptureErrorEvent struct {
	FrameIndex int       `json:"frame_index"`
	Error      string    `json:"error"`
	Timestamp  time.Time `json:"timestamp"`
}

// Type returns the event type identifier for CaptureErrorEvent.
func (e CaptureErrorEvent) Type() uint32 { return TypeCaptureError }

// RunCompletedEvent is published once when a capture run finishes.
type RunCompletedEvent struct {
	FramesCaptured int       `json:"frames_captured"`
	FramesDropped  int       `json:"frames_dropped"`
	Errors         int       `json:"errors"`
	Timestamp      time.Time `json:"timestamp"`
}

// Type returns the event type identifier for RunCompletedEvent.
func (e RunCompletedEvent) Type() uint32 { return TypeRunCompleted }

package led

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ammon-c/timelapse/internal/events"
)

const activityLED = "activity"

// pulseDuration is how long the activity LED stays lit per frame.
const pulseDuration = 150 * time.Millisecond

// Manager flashes the board's activity LED as the capture run makes
// progress: a short pulse per captured frame, a heartbeat pattern while
// errors accumulate, off once the run completes.
type Manager struct {
	controller Controller
	bus        *events.Bus
	logger     *slog.Logger

	mu       sync.Mutex
	unsubs   []func()
	timer    *time.Timer
	erroring bool
}

// NewManager creates an LED manager driven by capture events.
func NewManager(controller Controller, bus *events.Bus, logger *slog.Logger) *Manager {
	return &Manager{
		controller: controller,
		bus:        bus,
		logger:     logger,
	}
}

// Start begins listening for capture events.
func (m *Manager) Start() {
	m.unsubs = []func(){
		m.bus.Subscribe(func(e events.FrameCapturedEvent) { m.pulse() }),
		m.bus.Subscribe(func(e events.CaptureErrorEvent) { m.signalError() }),
		m.bus.Subscribe(func(e events.RunCompletedEvent) { m.off() }),
	}
	m.logger.Debug("LED manager started")
}

// Stop unsubscribes from events and turns the LED off.
func (m *Manager) Stop() {
	for _, u := range m.unsubs {
		u()
	}
	m.unsubs = nil
	m.off()
	m.logger.Debug("LED manager stopped")
}

func (m *Manager) pulse() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.erroring = false
	if err := m.controller.Set(activityLED, true, "solid"); err != nil {
		m.logger.Debug("failed to light activity LED", "error", err)
		return
	}
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(pulseDuration, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if !m.erroring {
			_ = m.controller.Set(activityLED, false, "")
		}
	})
}

func (m *Manager) signalError() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.erroring = true
	if err := m.controller.Set(activityLED, true, "heartbeat"); err != nil {
		m.logger.Debug("failed to set error pattern", "error", err)
	}
}

func (m *Manager) off() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.erroring = false
	if m.timer != nil {
		m.timer.Stop()
	}
	if err := m.controller.Set(activityLED, false, "solid"); err != nil {
		m.logger.Debug("failed to turn activity LED off", "error", err)
	}
}

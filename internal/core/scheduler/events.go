package scheduler

import (
	"time"

	"autoclicker/internal/core/model"
)

// EventType defines the type of Scheduler event.
type EventType string

const (
	// EventStateChange is sent whenever the scheduler starts or stops.
	EventStateChange EventType = "state_change"
	// EventDispatchError reports a click that could not be injected.
	EventDispatchError EventType = "dispatch_error"
)

// Event represents a Scheduler update for observers. AutoStopped is set on
// the state change produced by the duration timer rather than a command.
type Event struct {
	Type        EventType
	Running     bool
	AutoStopped bool
	RunID       string
	Config      model.ClickConfig
	Err         error
	At          time.Time
}

package model

import (
	"fmt"
	"time"
)

// DefaultIntervalMillis is used when no valid interval has been supplied yet.
const DefaultIntervalMillis = 1000

// DoubleClickDelay separates the two presses of a double click.
const DoubleClickDelay = 10 * time.Millisecond

// PointerMode selects where a click lands.
type PointerMode string

const (
	PointerTracking PointerMode = "tracking"
	PointerFixed    PointerMode = "fixed"
)

// Button names a pointer button.
type Button string

const (
	ButtonLeft   Button = "left"
	ButtonRight  Button = "right"
	ButtonMiddle Button = "middle"
)

// ClickKind selects how many presses make up one tick.
type ClickKind string

const (
	ClickSingle ClickKind = "single"
	ClickDouble ClickKind = "double"
)

// StopPolicy selects whether a run ends on its own.
type StopPolicy string

const (
	StopUntilStopped StopPolicy = "untilStopped"
	StopForDuration  StopPolicy = "forDuration"
)

// Point is a screen coordinate in pixels.
type Point struct {
	X int
	Y int
}

func (point Point) String() string {
	return fmt.Sprintf("(%d,%d)", point.X, point.Y)
}

// ClickConfig is the immutable snapshot a run is started with.
// The interval is in milliseconds and the stop duration in whole seconds.
type ClickConfig struct {
	IntervalMillis      int
	PointerMode         PointerMode
	FixedPosition       Point
	Button              Button
	ClickKind           ClickKind
	StopPolicy          StopPolicy
	StopDurationSeconds int
}

// DefaultClickConfig mirrors the defaults of a fresh installation.
func DefaultClickConfig() ClickConfig {
	return ClickConfig{
		IntervalMillis: DefaultIntervalMillis,
		PointerMode:    PointerTracking,
		Button:         ButtonLeft,
		ClickKind:      ClickSingle,
		StopPolicy:     StopUntilStopped,
	}
}

// Interval returns the tick period.
func (config ClickConfig) Interval() time.Duration {
	return time.Duration(config.IntervalMillis) * time.Millisecond
}

// StopAfter returns the auto-stop delay, or zero when the run is unbounded.
func (config ClickConfig) StopAfter() time.Duration {
	if config.StopPolicy != StopForDuration {
		return 0
	}
	return time.Duration(config.StopDurationSeconds) * time.Second
}

// ValidateEnums checks every enumerated field and the stop duration.
// The interval is not checked here because callers apply a fallback for it.
func (config ClickConfig) ValidateEnums() error {
	switch config.PointerMode {
	case PointerTracking, PointerFixed:
	default:
		return fmt.Errorf("unknown pointer mode %q", config.PointerMode)
	}
	if err := config.Button.Validate(); err != nil {
		return err
	}
	switch config.ClickKind {
	case ClickSingle, ClickDouble:
	default:
		return fmt.Errorf("unknown click kind %q", config.ClickKind)
	}
	switch config.StopPolicy {
	case StopUntilStopped, StopForDuration:
	default:
		return fmt.Errorf("unknown stop policy %q", config.StopPolicy)
	}
	if config.StopDurationSeconds < 0 {
		return fmt.Errorf("stop duration must be >= 0, got %d", config.StopDurationSeconds)
	}
	return nil
}

// Validate checks button names coming from settings or flags.
func (button Button) Validate() error {
	switch button {
	case ButtonLeft, ButtonRight, ButtonMiddle:
		return nil
	default:
		return fmt.Errorf("unknown button %q", button)
	}
}

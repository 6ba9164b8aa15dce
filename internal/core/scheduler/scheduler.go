package scheduler

import (
	stderrors "errors"
	"io"
	"sync"
	"time"

	"autoclicker/internal/core/model"
	"autoclicker/internal/input"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidConfig is returned when a configuration cannot be activated.
	ErrInvalidConfig = stderrors.New("invalid click configuration")
	// ErrClosed is returned by Enable after Close.
	ErrClosed = stderrors.New("scheduler closed")
)

// Scheduler owns the repeating click timer and the enable/disable state.
// All state transitions and tick admission go through mu.
type Scheduler struct {
	mu       sync.Mutex
	executor input.Executor
	logger   logrus.FieldLogger
	config   model.ClickConfig
	current  *run
	events   []chan Event
	closed   bool
}

// run is one activation: a ticker goroutine and an optional auto-stop timer.
type run struct {
	id       string
	config   model.ClickConfig
	stopCh   chan struct{}
	autoStop *time.Timer
}

// New creates a stopped Scheduler that drives executor.
func New(executor input.Executor, logger logrus.FieldLogger) *Scheduler {
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	return &Scheduler{
		executor: executor,
		logger:   logger.WithField("component", "scheduler"),
		config:   model.DefaultClickConfig(),
	}
}

// Subscribe registers a new observer channel. Slow observers miss events
// rather than block the scheduler.
func (scheduler *Scheduler) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.closed {
		close(ch)
		return ch
	}
	scheduler.events = append(scheduler.events, ch)
	return ch
}

// Enable starts a run with config, replacing any run in progress.
func (scheduler *Scheduler) Enable(config model.ClickConfig) error {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.enableLocked(config)
}

// Disable stops the current run. Calling it while stopped does nothing.
func (scheduler *Scheduler) Disable() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.disableLocked()
}

// Reconfigure restarts a running scheduler with config, or only stores config
// for the next Enable when stopped. An invalid config leaves everything as is.
func (scheduler *Scheduler) Reconfigure(config model.ClickConfig) error {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	normalized, err := scheduler.normalizeLocked(config)
	if err != nil {
		return err
	}
	if scheduler.current == nil {
		scheduler.config = normalized
		return nil
	}

	scheduler.stopRunLocked()
	scheduler.config = normalized
	scheduler.startRunLocked()
	scheduler.logger.WithFields(logrus.Fields{
		"run":         scheduler.current.id,
		"interval_ms": normalized.IntervalMillis,
	}).Info("Click run restarted with new configuration")
	return nil
}

// Toggle disables a running scheduler or enables a stopped one with the
// stored configuration.
func (scheduler *Scheduler) Toggle() error {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	if scheduler.current != nil {
		scheduler.disableLocked()
		return nil
	}
	return scheduler.enableLocked(scheduler.config)
}

// IsRunning reports whether the repeating timer is active.
func (scheduler *Scheduler) IsRunning() bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.current != nil
}

// Config returns the configuration of the current or next run.
func (scheduler *Scheduler) Config() model.ClickConfig {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.config
}

// Close cancels all timers and closes observer channels.
func (scheduler *Scheduler) Close() {
	scheduler.mu.Lock()
	if scheduler.closed {
		scheduler.mu.Unlock()
		return
	}
	scheduler.disableLocked()
	scheduler.closed = true
	events := scheduler.events
	scheduler.events = nil
	scheduler.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (scheduler *Scheduler) enableLocked(config model.ClickConfig) error {
	if scheduler.closed {
		return ErrClosed
	}
	normalized, err := scheduler.normalizeLocked(config)
	if err != nil {
		return err
	}

	wasRunning := scheduler.current != nil
	scheduler.stopRunLocked()
	scheduler.config = normalized
	scheduler.startRunLocked()

	scheduler.logger.WithFields(logrus.Fields{
		"run":         scheduler.current.id,
		"interval_ms": normalized.IntervalMillis,
		"mode":        normalized.PointerMode,
		"button":      normalized.Button,
		"kind":        normalized.ClickKind,
		"stop":        normalized.StopPolicy,
	}).Info("Click run started")

	if !wasRunning {
		scheduler.emitLocked(Event{
			Type:    EventStateChange,
			Running: true,
			RunID:   scheduler.current.id,
			Config:  normalized,
			At:      time.Now(),
		})
	}
	return nil
}

func (scheduler *Scheduler) disableLocked() {
	if scheduler.current == nil {
		return
	}
	id := scheduler.current.id
	scheduler.stopRunLocked()
	scheduler.logger.WithField("run", id).Info("Click run stopped")
	scheduler.emitLocked(Event{
		Type:   EventStateChange,
		RunID:  id,
		Config: scheduler.config,
		At:     time.Now(),
	})
}

// normalizeLocked applies the interval fallback and validates the rest.
func (scheduler *Scheduler) normalizeLocked(config model.ClickConfig) (model.ClickConfig, error) {
	if config.IntervalMillis <= 0 {
		fallback := scheduler.config.IntervalMillis
		if fallback <= 0 {
			fallback = model.DefaultIntervalMillis
		}
		scheduler.logger.WithFields(logrus.Fields{
			"requested_ms": config.IntervalMillis,
			"fallback_ms":  fallback,
		}).Warn("Non-positive click interval replaced")
		config.IntervalMillis = fallback
	}
	if err := config.ValidateEnums(); err != nil {
		return config, errors.Wrap(ErrInvalidConfig, err.Error())
	}
	return config, nil
}

func (scheduler *Scheduler) startRunLocked() {
	current := &run{
		id:     uuid.NewString(),
		config: scheduler.config,
		stopCh: make(chan struct{}),
	}
	scheduler.current = current
	go scheduler.loop(current)

	if current.config.StopPolicy == model.StopForDuration {
		current.autoStop = time.AfterFunc(current.config.StopAfter(), func() {
			scheduler.autoStop(current)
		})
	}
}

func (scheduler *Scheduler) stopRunLocked() {
	current := scheduler.current
	if current == nil {
		return
	}
	close(current.stopCh)
	if current.autoStop != nil {
		current.autoStop.Stop()
	}
	scheduler.current = nil
}

func (scheduler *Scheduler) autoStop(target *run) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	if scheduler.current != target {
		return
	}
	scheduler.stopRunLocked()
	scheduler.logger.WithFields(logrus.Fields{
		"run":     target.id,
		"after_s": target.config.StopDurationSeconds,
	}).Info("Click run auto-stopped")
	scheduler.emitLocked(Event{
		Type:        EventStateChange,
		AutoStopped: true,
		RunID:       target.id,
		Config:      target.config,
		At:          time.Now(),
	})
}

func (scheduler *Scheduler) loop(current *run) {
	ticker := time.NewTicker(current.config.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-current.stopCh:
			return
		case <-ticker.C:
			if !scheduler.admit(current) {
				return
			}
			scheduler.tick(current)
		}
	}
}

// admit reports whether current is still the live run. A tick admitted here
// may complete after a concurrent Disable; no later tick is admitted.
func (scheduler *Scheduler) admit(current *run) bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.current == current
}

// tick runs outside mu so a slow executor never delays Disable.
func (scheduler *Scheduler) tick(current *run) {
	config := current.config

	var target *model.Point
	if config.PointerMode == model.PointerFixed {
		point := config.FixedPosition
		target = &point
	} else {
		point, err := scheduler.executor.Position()
		if err != nil {
			scheduler.reportDispatchError(current, errors.Wrap(err, "read pointer position"))
		} else {
			scheduler.logger.WithField("run", current.id).Debugf("Clicking at tracked position %s", point)
		}
	}

	if err := input.DispatchClick(scheduler.executor, config.Button, target); err != nil {
		scheduler.reportDispatchError(current, err)
	}

	if config.ClickKind == model.ClickDouble {
		time.AfterFunc(model.DoubleClickDelay, func() {
			if err := input.DispatchClick(scheduler.executor, config.Button, nil); err != nil {
				scheduler.reportDispatchError(current, err)
			}
		})
	}
}

func (scheduler *Scheduler) reportDispatchError(current *run, err error) {
	scheduler.logger.WithError(err).WithField("run", current.id).Warn("Click dispatch failed")

	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.emitLocked(Event{
		Type:    EventDispatchError,
		Running: scheduler.current != nil,
		RunID:   current.id,
		Config:  current.config,
		Err:     err,
		At:      time.Now(),
	})
}

// emitLocked fans the event out without blocking.
func (scheduler *Scheduler) emitLocked(event Event) {
	for _, ch := range scheduler.events {
		select {
		case ch <- event:
		default:
		}
	}
}

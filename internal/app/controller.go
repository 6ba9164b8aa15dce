// Package app connects the click engine to settings, hotkeys and the UI.
package app

import (
	"context"
	stderrors "errors"
	"io"
	"sync"

	"autoclicker/internal/core/hotkey"
	"autoclicker/internal/core/model"
	"autoclicker/internal/core/scheduler"
	"autoclicker/internal/i18n"
	"autoclicker/internal/input"
	"autoclicker/internal/storage"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidSetting is returned for an unsupported language, theme, mode or
	// repeat option.
	ErrInvalidSetting = stderrors.New("invalid setting")
	// ErrNoPicker is returned by PickPosition when no picker is configured.
	ErrNoPicker = stderrors.New("no position picker")
)

// StateChange is delivered to UI listeners.
type StateChange struct {
	Running     bool
	AutoStopped bool
	// Err is set for a failed click; Running is unchanged in that case.
	Err error
}

// Dependencies are the collaborators a Controller drives.
type Dependencies struct {
	Scheduler  *scheduler.Scheduler
	Registrar  *hotkey.Registrar
	Store      *storage.Store
	Picker     input.Picker
	Translator *i18n.Translator
	Logger     logrus.FieldLogger
}

// Controller is the single entry point for the UI, tray and CLI.
type Controller struct {
	scheduler  *scheduler.Scheduler
	registrar  *hotkey.Registrar
	store      *storage.Store
	picker     input.Picker
	translator *i18n.Translator
	logger     logrus.FieldLogger

	mu                sync.Mutex
	stateListeners    []func(StateChange)
	settingsListeners []func(model.Settings)
	started           bool
	done              chan struct{}
}

// New creates a Controller. Start must be called before use.
func New(deps Dependencies) *Controller {
	logger := deps.Logger
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	return &Controller{
		scheduler:  deps.Scheduler,
		registrar:  deps.Registrar,
		store:      deps.Store,
		picker:     deps.Picker,
		translator: deps.Translator,
		logger:     logger.WithField("component", "controller"),
		done:       make(chan struct{}),
	}
}

// Start applies stored settings, binds the hotkey and begins forwarding
// scheduler events. A hotkey bind failure is returned but does not stop the
// controller.
func (controller *Controller) Start() error {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	if controller.started {
		return nil
	}

	settings := controller.store.Settings()
	if controller.translator != nil {
		controller.translator.SetLanguage(settings.Language)
	}
	if err := controller.scheduler.Reconfigure(settings.ClickConfig()); err != nil {
		return errors.Wrap(err, "apply stored settings")
	}

	events := controller.scheduler.Subscribe(16)
	go controller.forward(events)
	controller.started = true

	return controller.bindHotkey(settings.Hotkey)
}

// Settings returns the current settings.
func (controller *Controller) Settings() model.Settings {
	return controller.store.Settings()
}

// IsRunning reports whether clicking is active.
func (controller *Controller) IsRunning() bool {
	return controller.scheduler.IsRunning()
}

// UpdateSettings stores settings and restarts a running scheduler with them.
// A changed hotkey is rebound.
func (controller *Controller) UpdateSettings(settings model.Settings) error {
	if err := settings.ClickConfig().ValidateEnums(); err != nil {
		return errors.Wrap(scheduler.ErrInvalidConfig, err.Error())
	}
	if err := validateChoices(settings); err != nil {
		return err
	}
	previous := controller.store.Settings()
	if settings.IntervalMillis <= 0 {
		settings.IntervalMillis = previous.IntervalMillis
	}
	if settings.RepeatDurationSeconds <= 0 {
		settings.RepeatDurationSeconds = model.RepeatDuration(previous.RepeatDurationSeconds)
	}
	updated := controller.store.Update(func(current *model.Settings) {
		enabled := current.Enabled
		*current = settings
		current.Enabled = enabled
	})

	if err := controller.scheduler.Reconfigure(updated.ClickConfig()); err != nil {
		return err
	}
	controller.notifySettings(updated)

	if updated.Hotkey != previous.Hotkey {
		return controller.bindHotkey(updated.Hotkey)
	}
	return nil
}

func validateChoices(settings model.Settings) error {
	switch {
	case !model.ValidLanguage(settings.Language):
		return errors.Wrapf(ErrInvalidSetting, "language %q", settings.Language)
	case !model.ValidTheme(settings.Theme):
		return errors.Wrapf(ErrInvalidSetting, "theme %q", settings.Theme)
	case !model.ValidPositionMode(settings.Mode):
		return errors.Wrapf(ErrInvalidSetting, "position mode %q", settings.Mode)
	case !model.ValidRepeatOption(settings.RepeatOption):
		return errors.Wrapf(ErrInvalidSetting, "repeat option %q", settings.RepeatOption)
	}
	return nil
}

// SetEnabled starts or stops clicking with the stored settings.
func (controller *Controller) SetEnabled(enabled bool) error {
	if !enabled {
		controller.scheduler.Disable()
		return nil
	}
	return controller.scheduler.Enable(controller.store.Settings().ClickConfig())
}

// Toggle flips the running state.
func (controller *Controller) Toggle() error {
	return controller.scheduler.Toggle()
}

// SetHotkey stores accelerator and rebinds it. The setting is kept even when
// binding fails so the user can see and fix it.
func (controller *Controller) SetHotkey(accelerator string) error {
	if parsed, err := hotkey.Parse(accelerator); err == nil {
		accelerator = parsed.String()
	}
	updated := controller.store.Update(func(settings *model.Settings) {
		settings.Hotkey = accelerator
	})
	controller.notifySettings(updated)
	return controller.bindHotkey(accelerator)
}

// SetPosition switches to a fixed click position.
func (controller *Controller) SetPosition(point model.Point) error {
	updated := controller.store.Update(func(settings *model.Settings) {
		settings.Mode = model.PositionCustom
		settings.CustomX = point.X
		settings.CustomY = point.Y
	})
	if err := controller.scheduler.Reconfigure(updated.ClickConfig()); err != nil {
		return err
	}
	controller.notifySettings(updated)
	return nil
}

// PickPosition waits for the user to click somewhere and stores that point.
func (controller *Controller) PickPosition(ctx context.Context) (model.Point, error) {
	if controller.picker == nil {
		return model.Point{}, ErrNoPicker
	}
	point, err := controller.picker.Pick(ctx)
	if err != nil {
		return model.Point{}, err
	}
	return point, controller.SetPosition(point)
}

// ChangeLanguage switches the UI language.
func (controller *Controller) ChangeLanguage(lang string) error {
	if !model.ValidLanguage(lang) {
		return errors.Wrapf(ErrInvalidSetting, "language %q", lang)
	}
	if controller.translator != nil {
		controller.translator.SetLanguage(lang)
	}
	updated := controller.store.Update(func(settings *model.Settings) {
		settings.Language = lang
	})
	controller.notifySettings(updated)
	return nil
}

// ChangeTheme switches between the dark and light theme.
func (controller *Controller) ChangeTheme(theme string) error {
	if !model.ValidTheme(theme) {
		return errors.Wrapf(ErrInvalidSetting, "theme %q", theme)
	}
	updated := controller.store.Update(func(settings *model.Settings) {
		settings.Theme = theme
	})
	controller.notifySettings(updated)
	return nil
}

// OnStateChange registers a listener for running-state changes and click errors.
// Listeners run on the controller's event goroutine.
func (controller *Controller) OnStateChange(listener func(StateChange)) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.stateListeners = append(controller.stateListeners, listener)
}

// OnSettingsChange registers a listener for stored settings updates.
func (controller *Controller) OnSettingsChange(listener func(model.Settings)) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.settingsListeners = append(controller.settingsListeners, listener)
}

// Shutdown releases the hotkey, stops clicking and writes pending settings.
func (controller *Controller) Shutdown() error {
	controller.registrar.UnbindAll()
	controller.scheduler.Close()

	controller.mu.Lock()
	started := controller.started
	controller.mu.Unlock()
	if started {
		<-controller.done
	}
	return controller.store.Flush()
}

func (controller *Controller) bindHotkey(accelerator string) error {
	err := controller.registrar.Bind(accelerator, func() {
		if err := controller.Toggle(); err != nil {
			controller.logger.WithError(err).Warn("Hotkey toggle failed")
		}
	})
	if err != nil {
		controller.logger.WithError(err).WithField("accelerator", accelerator).Warn("Hotkey not bound")
	}
	return err
}

func (controller *Controller) forward(events <-chan scheduler.Event) {
	defer close(controller.done)

	for event := range events {
		switch event.Type {
		case scheduler.EventStateChange:
			controller.store.Update(func(settings *model.Settings) {
				settings.Enabled = event.Running
			})
			controller.notifyState(StateChange{Running: event.Running, AutoStopped: event.AutoStopped})
		case scheduler.EventDispatchError:
			controller.notifyState(StateChange{Running: event.Running, Err: event.Err})
		}
	}
}

func (controller *Controller) notifyState(change StateChange) {
	controller.mu.Lock()
	listeners := append([]func(StateChange){}, controller.stateListeners...)
	controller.mu.Unlock()
	for _, listener := range listeners {
		listener(change)
	}
}

func (controller *Controller) notifySettings(settings model.Settings) {
	controller.mu.Lock()
	listeners := append([]func(model.Settings){}, controller.settingsListeners...)
	controller.mu.Unlock()
	for _, listener := range listeners {
		listener(settings)
	}
}

// Package hotkey owns the single global toggle shortcut. It knows nothing
// about the click scheduler; a bound accelerator only invokes a callback.
package hotkey

import (
	stderrors "errors"
	"io"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrBindFailed is returned when an accelerator cannot be registered.
var ErrBindFailed = stderrors.New("hotkey bind failed")

// Backend registers accelerators with the host. The callback is invoked on a
// backend goroutine each time the combination is pressed.
type Backend interface {
	Register(accelerator Accelerator, callback func()) (Binding, error)
}

// Binding is one live registration.
type Binding interface {
	Unregister() error
}

// Registrar keeps at most one binding alive.
type Registrar struct {
	mu      sync.Mutex
	backend Backend
	logger  logrus.FieldLogger
	current *binding
}

type binding struct {
	accelerator Accelerator
	handle      Binding
}

// NewRegistrar creates an empty Registrar on top of backend.
func NewRegistrar(backend Backend, logger logrus.FieldLogger) *Registrar {
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	return &Registrar{
		backend: backend,
		logger:  logger.WithField("component", "hotkey"),
	}
}

// Bind replaces the current binding with accelerator. The previous binding is
// released first, so on failure nothing stays bound.
func (registrar *Registrar) Bind(accelerator string, callback func()) error {
	registrar.mu.Lock()
	defer registrar.mu.Unlock()

	registrar.unbindLocked()

	if callback == nil {
		return errors.Wrap(ErrBindFailed, "nil callback")
	}
	if registrar.backend == nil {
		return errors.Wrap(ErrBindFailed, "no hotkey backend")
	}
	parsed, err := Parse(accelerator)
	if err != nil {
		return bindError(err)
	}
	handle, err := registrar.backend.Register(parsed, callback)
	if err != nil {
		registrar.logger.WithError(err).WithField("accelerator", parsed.String()).Warn("Hotkey registration rejected")
		return bindError(errors.Wrapf(err, "register %s", parsed))
	}

	registrar.current = &binding{accelerator: parsed, handle: handle}
	registrar.logger.WithField("accelerator", parsed.String()).Info("Hotkey bound")
	return nil
}

// UnbindAll releases the current binding, if any.
func (registrar *Registrar) UnbindAll() {
	registrar.mu.Lock()
	defer registrar.mu.Unlock()
	registrar.unbindLocked()
}

// Bound returns the active accelerator.
func (registrar *Registrar) Bound() (Accelerator, bool) {
	registrar.mu.Lock()
	defer registrar.mu.Unlock()
	if registrar.current == nil {
		return Accelerator{}, false
	}
	return registrar.current.accelerator, true
}

func (registrar *Registrar) unbindLocked() {
	current := registrar.current
	if current == nil {
		return
	}
	registrar.current = nil
	if err := current.handle.Unregister(); err != nil {
		registrar.logger.WithError(err).WithField("accelerator", current.accelerator.String()).Warn("Hotkey release failed")
		return
	}
	registrar.logger.WithField("accelerator", current.accelerator.String()).Debug("Hotkey released")
}

func bindError(cause error) error {
	return &bindFailure{cause: cause}
}

type bindFailure struct {
	cause error
}

func (e *bindFailure) Error() string {
	return ErrBindFailed.Error() + ": " + e.cause.Error()
}

func (e *bindFailure) Unwrap() []error {
	return []error{ErrBindFailed, e.cause}
}

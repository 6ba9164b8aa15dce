// Package input defines the capability set the click scheduler needs from the
// host input subsystem.
package input

import (
	stderrors "errors"

	"autoclicker/internal/core/model"

	"github.com/pkg/errors"
)

// ErrInjection marks a failed synthetic input call.
var ErrInjection = stderrors.New("input injection failed")

// Executor reads and moves the pointer and presses buttons.
// Implementations must return promptly; they are called from timer goroutines.
type Executor interface {
	Position() (model.Point, error)
	Move(point model.Point) error
	Click(button model.Button) error
}

// DispatchClick presses button once. When position is non-nil the pointer is
// relocated there first, otherwise the press happens at the current position.
func DispatchClick(executor Executor, button model.Button, position *model.Point) error {
	if executor == nil {
		return errors.Wrap(ErrInjection, "no executor")
	}
	if position != nil {
		if err := executor.Move(*position); err != nil {
			return wrapInjection(err, "move pointer to %s", position)
		}
	}
	if err := executor.Click(button); err != nil {
		return wrapInjection(err, "click %s", button)
	}
	return nil
}

func wrapInjection(err error, format string, args ...any) error {
	if stderrors.Is(err, ErrInjection) {
		return errors.Wrapf(err, format, args...)
	}
	return errors.Wrapf(&injectionError{cause: err}, format, args...)
}

type injectionError struct {
	cause error
}

func (e *injectionError) Error() string {
	return ErrInjection.Error() + ": " + e.cause.Error()
}

func (e *injectionError) Unwrap() []error {
	return []error{ErrInjection, e.cause}
}

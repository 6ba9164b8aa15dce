package input

import (
	"context"
	stderrors "errors"
	"time"

	"autoclicker/internal/core/model"

	"github.com/pkg/errors"
)

// ErrPickCancelled is returned when position picking ends without a click.
var ErrPickCancelled = stderrors.New("position pick cancelled")

// Picker captures one screen position chosen by the user.
type Picker interface {
	Pick(ctx context.Context) (model.Point, error)
}

// SettlingPicker holds a picked point for a short delay and drops it when ctx
// is cancelled meanwhile. A press on an on-screen Cancel button reaches the
// global hook before the button reacts to the release.
type SettlingPicker struct {
	Picker Picker
	Delay  time.Duration
}

func (picker SettlingPicker) Pick(ctx context.Context) (model.Point, error) {
	point, err := picker.Picker.Pick(ctx)
	if err != nil {
		return point, err
	}

	timer := time.NewTimer(picker.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return model.Point{}, errors.Wrap(ErrPickCancelled, ctx.Err().Error())
	case <-timer.C:
		return point, nil
	}
}

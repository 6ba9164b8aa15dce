package platform

import (
	"context"
	"sync"

	"autoclicker/internal/core/model"
	"autoclicker/internal/input"

	"github.com/pkg/errors"
	hook "github.com/robotn/gohook"
	"github.com/sirupsen/logrus"
)

// HookPicker listens to global mouse and keyboard events and returns the
// coordinates of the next mouse press. Escape cancels.
type HookPicker struct {
	// gohook keeps one global event stream, so picks are serialized.
	mu     sync.Mutex
	logger logrus.FieldLogger
}

// NewHookPicker creates a picker backed by the global input hook.
func NewHookPicker(logger logrus.FieldLogger) *HookPicker {
	return &HookPicker{logger: logger.WithField("component", "picker")}
}

func (picker *HookPicker) Pick(ctx context.Context) (model.Point, error) {
	picker.mu.Lock()
	defer picker.mu.Unlock()

	events := hook.Start()
	defer hook.End()

	escape := hook.Keycode["esc"]
	for {
		select {
		case <-ctx.Done():
			return model.Point{}, errors.Wrap(input.ErrPickCancelled, ctx.Err().Error())
		case event, ok := <-events:
			if !ok {
				return model.Point{}, errors.Wrap(input.ErrPickCancelled, "input hook stopped")
			}
			switch event.Kind {
			case hook.MouseHold, hook.MouseDown:
				point := model.Point{X: int(event.X), Y: int(event.Y)}
				picker.logger.WithField("position", point.String()).Info("Position picked")
				return point, nil
			case hook.KeyDown:
				if event.Keycode == escape {
					return model.Point{}, errors.Wrap(input.ErrPickCancelled, "escape pressed")
				}
			}
		}
	}
}

// RecorderPicker returns the current pointer of an executor. The dry-run
// backend uses it in place of the global hook.
type RecorderPicker struct {
	source interface {
		Position() (model.Point, error)
	}
}

func (picker *RecorderPicker) Pick(ctx context.Context) (model.Point, error) {
	if err := ctx.Err(); err != nil {
		return model.Point{}, errors.Wrap(input.ErrPickCancelled, err.Error())
	}
	return picker.source.Position()
}

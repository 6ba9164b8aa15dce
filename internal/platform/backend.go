package platform

import (
	stderrors "errors"
	"io"
	"os"
	"runtime"

	"autoclicker/internal/core/hotkey"
	"autoclicker/internal/core/model"
	"autoclicker/internal/input"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Backend names accepted by --backend.
const (
	BackendAuto   = "auto"
	BackendNative = "native"
	BackendX11    = "x11"
	BackendDryRun = "dry-run"
)

// ErrUnsupported is returned for a backend this build or session cannot use.
var ErrUnsupported = stderrors.New("backend not supported here")

// Devices bundles the host capabilities the application drives.
type Devices struct {
	Name     string
	Executor input.Executor
	Hotkeys  hotkey.Backend
	Picker   input.Picker
	closers  []io.Closer
}

// Close releases backend connections in reverse order.
func (devices *Devices) Close() error {
	var first error
	for i := len(devices.closers) - 1; i >= 0; i-- {
		if err := devices.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	devices.closers = nil
	return first
}

// OpenDevices selects the input backend by name. auto prefers the pure-Go X11
// backend on an X11 session and falls back to the native one.
func OpenDevices(name string, logger logrus.FieldLogger) (*Devices, error) {
	switch name {
	case BackendNative:
		return openNative(logger), nil
	case BackendX11:
		return openX11(logger)
	case BackendDryRun:
		return openDryRun(logger), nil
	case BackendAuto, "":
		if runtime.GOOS == "linux" && os.Getenv("DISPLAY") != "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			devices, err := openX11(logger)
			if err == nil {
				return devices, nil
			}
			logger.WithError(err).Warn("X11 backend unavailable, using native input")
		}
		return openNative(logger), nil
	default:
		return nil, errors.Errorf("unknown backend %q", name)
	}
}

func openNative(logger logrus.FieldLogger) *Devices {
	return &Devices{
		Name:     BackendNative,
		Executor: NewRobotExecutor(),
		Hotkeys:  NewNativeHotkeys(logger),
		Picker:   NewHookPicker(logger),
	}
}

func openDryRun(logger logrus.FieldLogger) *Devices {
	recorder := input.NewRecorder(model.Point{})
	log := logger.WithField("backend", BackendDryRun)
	recorder.OnCall(func(call input.Call) {
		if call.Kind == input.CallPosition {
			return
		}
		log.WithFields(logrus.Fields{
			"call":     call.Kind,
			"position": call.Point.String(),
			"button":   call.Button,
		}).Info("Input call recorded")
	})
	return &Devices{
		Name:     BackendDryRun,
		Executor: recorder,
		Hotkeys:  disabledHotkeys{},
		Picker:   &RecorderPicker{source: recorder},
	}
}

// disabledHotkeys rejects every registration.
type disabledHotkeys struct{}

func (disabledHotkeys) Register(accelerator hotkey.Accelerator, callback func()) (hotkey.Binding, error) {
	return nil, errors.Wrapf(ErrUnsupported, "global hotkey %s in dry-run mode", accelerator)
}

package platform

import (
	"io"

	"github.com/sirupsen/logrus"
)

func openX11(logger logrus.FieldLogger) (*Devices, error) {
	executor, err := NewX11Executor()
	if err != nil {
		return nil, err
	}
	hotkeys, err := NewX11Hotkeys(logger)
	if err != nil {
		_ = executor.Close()
		return nil, err
	}
	return &Devices{
		Name:     BackendX11,
		Executor: executor,
		Hotkeys:  hotkeys,
		Picker:   NewHookPicker(logger),
		closers:  []io.Closer{executor, hotkeys},
	}, nil
}

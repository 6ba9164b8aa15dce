//go:build !linux

package platform

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func openX11(logrus.FieldLogger) (*Devices, error) {
	return nil, errors.Wrap(ErrUnsupported, "x11 backend")
}

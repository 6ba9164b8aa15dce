//go:build windows

package overlay

import (
	"testing"

	"fyne.io/fyne/v2/driver"
	"github.com/stretchr/testify/assert"
)

func TestWindowsBackgroundIsSolid(t *testing.T) {
	assert.Equal(t, uint8(255), backgroundAlpha(Config{Opacity: 80}))
}

func TestWindowHandle(t *testing.T) {
	assert.Equal(t, uintptr(42), windowHandle(driver.WindowsWindowContext{HWND: 42}))
	assert.Equal(t, uintptr(7), windowHandle(&driver.WindowsWindowContext{HWND: 7}))
	assert.Zero(t, windowHandle((*driver.WindowsWindowContext)(nil)))
	assert.Zero(t, windowHandle("x11"))
}

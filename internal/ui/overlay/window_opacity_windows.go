//go:build windows

package overlay

import (
	"syscall"

	"fyne.io/fyne/v2/driver"
)

// The GL surface is opaque on Windows, so the background is painted solid and
// the whole window is faded to Config.Opacity as a layered window.

const (
	exStyleIndex   = ^uintptr(19) // GWL_EXSTYLE, -20
	layeredStyle   = 0x00080000
	alphaAttribute = 0x2
)

var (
	user32               = syscall.NewLazyDLL("user32.dll")
	getWindowLongPtr     = user32.NewProc("GetWindowLongPtrW")
	setWindowLongPtr     = user32.NewProc("SetWindowLongPtrW")
	setLayeredAttributes = user32.NewProc("SetLayeredWindowAttributes")
)

func backgroundAlpha(Config) uint8 {
	return 255
}

func (overlay *Window) applyNativeOpacity(config Config) {
	native, ok := overlay.window.(driver.NativeWindow)
	if !ok {
		return
	}
	native.RunNative(func(context any) {
		if hwnd := windowHandle(context); hwnd != 0 {
			fadeWindow(hwnd, config.Opacity)
		}
	})
}

func windowHandle(context any) uintptr {
	switch value := context.(type) {
	case driver.WindowsWindowContext:
		return value.HWND
	case *driver.WindowsWindowContext:
		if value != nil {
			return value.HWND
		}
	}
	return 0
}

// fadeWindow marks hwnd layered once and sets its constant alpha.
func fadeWindow(hwnd uintptr, alpha uint8) {
	style, _, _ := getWindowLongPtr.Call(hwnd, exStyleIndex)
	if style&layeredStyle == 0 {
		setWindowLongPtr.Call(hwnd, exStyleIndex, style|layeredStyle)
	}
	setLayeredAttributes.Call(hwnd, 0, uintptr(alpha), alphaAttribute)
}
